// Ingest loads the learning-object and prerequisite tables into the
// database, either from curated CSVs or by aggregating a raw interaction
// log into per-question statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/yungbote/learnpath-backend/internal/catalog"
	"github.com/yungbote/learnpath-backend/internal/db"
	"github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/ingestion"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/repos"
)

func main() {
	interactions := flag.String("interactions", "", "raw interaction log CSV (question_id,elapsed_ms,correct)")
	loCSV := flag.String("lo_csv", "", "curated learning objects CSV")
	edgesCSV := flag.String("edges_csv", "", "curated prerequisites CSV")
	replaceEdges := flag.Bool("replace_edges", false, "drop existing prerequisite rows first")
	flag.Parse()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	objects, edges, err := loadInputs(*interactions, *loCSV, *edgesCSV)
	if err != nil {
		log.Fatal("Could not load inputs", "error", err)
	}
	log.Info("Inputs loaded", "objects", len(objects), "edges", len(edges))

	dbService, err := db.NewService(log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Fatal("Database migration failed", "error", err)
	}
	gdb := dbService.DB()
	loRepo := repos.NewLearningObjectRepo(gdb, log)
	edgeRepo := repos.NewPrerequisiteRepo(gdb, log)

	rows := make([]*domain.LearningObjectRow, 0, len(objects))
	for _, lo := range objects {
		row := domain.RowFromLearningObject(lo)
		rows = append(rows, &row)
	}
	if err := loRepo.Upsert(ctx, nil, rows); err != nil {
		log.Fatal("Could not persist learning objects", "error", err)
	}

	if *replaceEdges {
		if err := edgeRepo.DeleteAll(ctx, nil); err != nil {
			log.Fatal("Could not clear prerequisites", "error", err)
		}
	}
	edgeRows := make([]*domain.PrerequisiteRow, 0, len(edges))
	for _, e := range edges {
		edgeRows = append(edgeRows, &domain.PrerequisiteRow{FromID: e.FromID, ToID: e.ToID})
	}
	if err := edgeRepo.Upsert(ctx, nil, edgeRows); err != nil {
		log.Fatal("Could not persist prerequisites", "error", err)
	}

	log.Info("Ingestion complete", "objects", len(rows), "edges", len(edgeRows))
}

func loadInputs(interactions, loCSV, edgesCSV string) ([]domain.LearningObject, []domain.PrerequisiteEdge, error) {
	switch {
	case interactions != "":
		f, err := os.Open(interactions)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		objects, err := ingestion.BuildLearningObjects(f, ingestion.DefaultDefaults())
		if err != nil {
			return nil, nil, err
		}
		return objects, ingestion.BuildChainEdges(objects), nil

	case loCSV != "":
		f, err := os.Open(loCSV)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		objects, err := catalog.ParseObjects(f)
		if err != nil {
			return nil, nil, err
		}
		var edges []domain.PrerequisiteEdge
		if edgesCSV != "" {
			ef, err := os.Open(edgesCSV)
			if err != nil {
				return nil, nil, err
			}
			defer ef.Close()
			edges, err = catalog.ParseEdges(ef)
			if err != nil {
				return nil, nil, err
			}
		}
		return objects, edges, nil

	default:
		return nil, nil, fmt.Errorf("either -interactions or -lo_csv is required")
	}
}
