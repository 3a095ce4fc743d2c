// Package catalog holds the read-only learning-object catalog handle that
// every planning call consumes. A Catalog is built once by a Source and
// never mutated afterward; concurrent planning calls share it freely.
package catalog

import (
	"fmt"
	"sort"

	"github.com/yungbote/learnpath-backend/internal/domain"
)

type Catalog struct {
	version string
	objects map[string]domain.LearningObject
	order   []string
	edges   []domain.PrerequisiteEdge
}

// New builds an immutable catalog. Duplicate object ids are rejected;
// prerequisite edges whose endpoints are not in the object table are
// dropped, matching the upstream ingestion contract where the edge table
// may lag the object table.
func New(version string, objects []domain.LearningObject, edges []domain.PrerequisiteEdge) (*Catalog, error) {
	byID := make(map[string]domain.LearningObject, len(objects))
	order := make([]string, 0, len(objects))
	for _, lo := range objects {
		if lo.ID == "" {
			return nil, fmt.Errorf("catalog: learning object with empty id")
		}
		if _, dup := byID[lo.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate learning object id %q", lo.ID)
		}
		byID[lo.ID] = lo
		order = append(order, lo.ID)
	}
	sort.Strings(order)

	kept := make([]domain.PrerequisiteEdge, 0, len(edges))
	for _, e := range edges {
		if _, ok := byID[e.FromID]; !ok {
			continue
		}
		if _, ok := byID[e.ToID]; !ok {
			continue
		}
		if e.FromID == e.ToID {
			return nil, fmt.Errorf("catalog: self prerequisite on %q", e.FromID)
		}
		kept = append(kept, e)
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].FromID != kept[j].FromID {
			return kept[i].FromID < kept[j].FromID
		}
		return kept[i].ToID < kept[j].ToID
	})

	return &Catalog{version: version, objects: byID, order: order, edges: kept}, nil
}

func (c *Catalog) Version() string { return c.version }

func (c *Catalog) Len() int { return len(c.order) }

// Object looks up a learning object by id.
func (c *Catalog) Object(id string) (domain.LearningObject, bool) {
	lo, ok := c.objects[id]
	return lo, ok
}

// Objects returns all learning objects in ascending id order. The slice is
// a fresh copy; callers cannot reach the catalog's internals through it.
func (c *Catalog) Objects() []domain.LearningObject {
	out := make([]domain.LearningObject, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.objects[id])
	}
	return out
}

// Edges returns a copy of the prerequisite edge set.
func (c *Catalog) Edges() []domain.PrerequisiteEdge {
	out := make([]domain.PrerequisiteEdge, len(c.edges))
	copy(out, c.edges)
	return out
}
