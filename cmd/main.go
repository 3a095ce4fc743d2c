package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yungbote/learnpath-backend/internal/catalog"
	redisclient "github.com/yungbote/learnpath-backend/internal/clients/redis"
	"github.com/yungbote/learnpath-backend/internal/db"
	"github.com/yungbote/learnpath-backend/internal/http/handlers"
	"github.com/yungbote/learnpath-backend/internal/observability"
	"github.com/yungbote/learnpath-backend/internal/planner"
	"github.com/yungbote/learnpath-backend/internal/platform/envutil"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/platform/neo4jdb"
	"github.com/yungbote/learnpath-backend/internal/reasoner"
	"github.com/yungbote/learnpath-backend/internal/repos"
	"github.com/yungbote/learnpath-backend/internal/server"
	"github.com/yungbote/learnpath-backend/internal/services"
)

func main() {
	// Logger
	logMode := envutil.String("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Tracing
	shutdownTracing, err := observability.InitTracing(ctx, log)
	if err != nil {
		log.Warn("Tracing init failed", "error", err)
	} else {
		defer func() { _ = shutdownTracing(ctx) }()
	}

	// Catalog
	log.Info("Loading catalog...")
	source, err := buildCatalogSource(log)
	if err != nil {
		log.Error("Could not configure catalog source", "error", err)
		os.Exit(1)
	}
	cat, err := source.Load(ctx)
	if err != nil {
		log.Error("Could not load catalog", "error", err)
		os.Exit(1)
	}
	if err := planner.ValidateCatalog(cat); err != nil {
		log.Error("Catalog failed validation", "error", err)
		os.Exit(1)
	}
	log.Info("Catalog loaded", "version", cat.Version(), "objects", cat.Len(), "edges", len(cat.Edges()))

	// Filter: built-in rules, optionally fronted by the external reasoner
	var filter planner.Filter = planner.NewRuleFilter(nil)
	reasonerCfg := reasoner.LoadConfigFromEnv()
	if reasonerCfg.URL != "" {
		client, err := reasoner.NewClient(reasonerCfg, log)
		if err != nil {
			log.Error("Could not init reasoner client", "error", err)
			os.Exit(1)
		}
		if reasonerCfg.FallbackToRules {
			filter = reasoner.WithFallback(client, nil, log)
		} else {
			filter = client
		}
		log.Info("External reasoner configured", "url", reasonerCfg.URL, "fallback_to_rules", reasonerCfg.FallbackToRules)
	}

	// Planner
	plannerCfg := planner.LoadConfigFromEnv()
	p := planner.New(plannerCfg, filter, log)

	// Plan cache (optional)
	cache, err := redisclient.NewPlanCacheFromEnv(log)
	if err != nil {
		log.Warn("Plan cache init failed, continuing without", "error", err)
		cache = nil
	}
	if cache != nil {
		defer cache.Close()
		log.Info("Plan cache enabled")
	}

	// Services / handlers / router
	planService := services.NewPlanService(log, cat, p, cache)
	planHandler := handlers.NewPlanHandler(planService, log)

	router := server.NewRouter(server.RouterConfig{PlanHandler: planHandler})

	port := envutil.String("PORT", "8080")
	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}

// buildCatalogSource selects the source via CATALOG_SOURCE: csv (default),
// db, or neo4j.
func buildCatalogSource(log *logger.Logger) (catalog.Source, error) {
	mode := strings.ToLower(envutil.String("CATALOG_SOURCE", "csv"))
	switch mode {
	case "csv":
		return catalog.CSVSource{
			ObjectsPath: envutil.String("CATALOG_OBJECTS_CSV", "learning_objects.csv"),
			EdgesPath:   envutil.String("CATALOG_EDGES_CSV", "prerequisites.csv"),
			Version:     envutil.String("CATALOG_VERSION", ""),
		}, nil
	case "db":
		dbService, err := db.NewService(log)
		if err != nil {
			return nil, err
		}
		if err := dbService.AutoMigrateAll(); err != nil {
			return nil, err
		}
		gdb := dbService.DB()
		return catalog.StoreSource{
			Objects: repos.NewLearningObjectRepo(gdb, log),
			Edges:   repos.NewPrerequisiteRepo(gdb, log),
			Version: envutil.String("CATALOG_VERSION", ""),
		}, nil
	case "neo4j":
		client, err := neo4jdb.NewFromEnv(log)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, fmt.Errorf("NEO4J_URI required for neo4j catalog source")
		}
		return catalog.Neo4jSource{
			Client:  client,
			Version: envutil.String("CATALOG_VERSION", ""),
		}, nil
	default:
		return nil, fmt.Errorf("unknown CATALOG_SOURCE %q", mode)
	}
}
