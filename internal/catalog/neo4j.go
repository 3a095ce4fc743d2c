package catalog

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/neo4jdb"
)

// Neo4jSource loads the catalog from a graph store holding
// (:LearningObject) nodes and [:PREREQUISITE_OF] relationships.
type Neo4jSource struct {
	Client  *neo4jdb.Client
	Version string
}

const (
	objectsCypher = `MATCH (lo:LearningObject) RETURN lo ORDER BY lo.lo_id`
	edgesCypher   = `MATCH (a:LearningObject)-[:PREREQUISITE_OF]->(b:LearningObject)
RETURN a.lo_id AS from_id, b.lo_id AS to_id ORDER BY from_id, to_id`
)

func (s Neo4jSource) Load(ctx context.Context) (*Catalog, error) {
	if s.Client == nil {
		return nil, fmt.Errorf("catalog: neo4j client not configured")
	}

	records, err := s.Client.ReadQuery(ctx, objectsCypher, nil)
	if err != nil {
		return nil, err
	}
	objects := make([]domain.LearningObject, 0, len(records))
	for _, rec := range records {
		raw, ok := rec.Get("lo")
		if !ok {
			continue
		}
		node, ok := raw.(neo4j.Node)
		if !ok {
			return nil, fmt.Errorf("catalog: unexpected neo4j value %T", raw)
		}
		objects = append(objects, objectFromProps(node.Props))
	}

	records, err = s.Client.ReadQuery(ctx, edgesCypher, nil)
	if err != nil {
		return nil, err
	}
	edges := make([]domain.PrerequisiteEdge, 0, len(records))
	for _, rec := range records {
		from, _ := rec.Get("from_id")
		to, _ := rec.Get("to_id")
		fromID, _ := from.(string)
		toID, _ := to.(string)
		if fromID == "" || toID == "" {
			continue
		}
		edges = append(edges, domain.PrerequisiteEdge{FromID: fromID, ToID: toID})
	}

	version := s.Version
	if version == "" {
		version = "neo4j"
	}
	return New(version, objects, edges)
}

func objectFromProps(props map[string]any) domain.LearningObject {
	kind := neo4jdb.StringProp(props, "kind")
	if kind == "" {
		kind = string(domain.KindQuestion)
	}
	lang := neo4jdb.StringProp(props, "required_language")
	if lang == "" {
		lang = "any"
	}
	bandwidth := neo4jdb.StringProp(props, "media_bandwidth_class")
	if bandwidth == "" {
		bandwidth = string(domain.BandwidthLow)
	}
	return domain.LearningObject{
		ID:                  neo4jdb.StringProp(props, "lo_id"),
		Kind:                domain.LOKind(kind),
		DurationMin:         neo4jdb.FloatProp(props, "duration_min"),
		RequiredMastery:     neo4jdb.FloatProp(props, "required_mastery"),
		RequiredLanguage:    lang,
		DeviceCompat:        domain.SplitDevices(neo4jdb.StringProp(props, "devices")),
		MediaBandwidthClass: domain.BandwidthClass(bandwidth),
		AccuracyStat:        neo4jdb.FloatProp(props, "accuracy_stat"),
	}
}
