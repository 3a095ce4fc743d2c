package catalog

import "context"

// Source produces an immutable catalog snapshot. Implementations exist for
// CSV files, the gorm ingestion store, and neo4j.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}
