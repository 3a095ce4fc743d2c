package catalog

import (
	"context"
	"fmt"

	"github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/repos"
)

// StoreSource loads the catalog from the gorm ingestion store.
type StoreSource struct {
	Objects repos.LearningObjectRepo
	Edges   repos.PrerequisiteRepo
	Version string
}

func (s StoreSource) Load(ctx context.Context) (*Catalog, error) {
	rows, err := s.Objects.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: list learning objects: %w", err)
	}
	edgeRows, err := s.Edges.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: list prerequisites: %w", err)
	}

	objects := make([]domain.LearningObject, 0, len(rows))
	for _, r := range rows {
		objects = append(objects, r.ToLearningObject())
	}
	edges := make([]domain.PrerequisiteEdge, 0, len(edgeRows))
	for _, r := range edgeRows {
		edges = append(edges, domain.PrerequisiteEdge{FromID: r.FromID, ToID: r.ToID})
	}

	version := s.Version
	if version == "" {
		version = "store"
	}
	return New(version, objects, edges)
}
