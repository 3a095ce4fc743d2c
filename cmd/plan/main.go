// One-shot planner: reads the learning-object and prerequisite tables plus
// a user context from disk, runs a single planning call, and writes the
// explained path trace as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/learnpath-backend/internal/catalog"
	"github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/planner"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/reasoner"
)

type fileConfig struct {
	Planner  planner.Config `yaml:"planner"`
	Reasoner struct {
		URL             string `yaml:"url"`
		TimeoutSeconds  int    `yaml:"timeout_seconds"`
		FallbackToRules bool   `yaml:"fallback_to_rules"`
	} `yaml:"reasoner"`
}

func main() {
	loCSV := flag.String("lo_csv", "learning_objects.csv", "learning objects CSV")
	edgesCSV := flag.String("edges_csv", "prerequisites.csv", "prerequisites CSV (from_id,to_id)")
	userJSON := flag.String("user_json", "user_context.json", "user context JSON")
	output := flag.String("output", "path_trace.json", "output trace JSON")
	configPath := flag.String("config", "", "optional YAML config")
	k := flag.Int("k", 0, "alternate path count override")
	flag.Parse()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := fileConfig{Planner: planner.LoadConfigFromEnv()}
	if *configPath != "" {
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatal("Could not read config", "path", *configPath, "error", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Fatal("Could not parse config", "path", *configPath, "error", err)
		}
	}
	if *k > 0 {
		cfg.Planner.K = *k
	}

	ctx := context.Background()

	cat, err := catalog.CSVSource{ObjectsPath: *loCSV, EdgesPath: *edgesCSV}.Load(ctx)
	if err != nil {
		log.Fatal("Could not load catalog", "error", err)
	}
	if err := planner.ValidateCatalog(cat); err != nil {
		log.Fatal("Catalog failed validation", "error", err)
	}

	raw, err := os.ReadFile(*userJSON)
	if err != nil {
		log.Fatal("Could not read user context", "path", *userJSON, "error", err)
	}
	var uc domain.UserContext
	if err := json.Unmarshal(raw, &uc); err != nil {
		log.Fatal("Could not parse user context", "error", err)
	}

	var filter planner.Filter = planner.NewRuleFilter(nil)
	if cfg.Reasoner.URL != "" {
		client, err := reasoner.NewClient(reasoner.Config{
			URL:             cfg.Reasoner.URL,
			Timeout:         time.Duration(cfg.Reasoner.TimeoutSeconds) * time.Second,
			FallbackToRules: cfg.Reasoner.FallbackToRules,
		}, log)
		if err != nil {
			log.Fatal("Could not init reasoner client", "error", err)
		}
		if cfg.Reasoner.FallbackToRules {
			filter = reasoner.WithFallback(client, nil, log)
		} else {
			filter = client
		}
	}

	p := planner.New(cfg.Planner, filter, log)
	result, err := p.Plan(ctx, cat, uc)
	if err != nil {
		var notFound *planner.PathNotFoundError
		if errors.As(err, &notFound) {
			log.Error("No feasible path", "excluded", len(notFound.Excluded))
			writeJSON(log, *output, map[string]any{
				"error":        err.Error(),
				"excluded_los": notFound.Excluded,
			})
			os.Exit(2)
		}
		log.Fatal("Planning failed", "error", err)
	}

	writeJSON(log, *output, result)
	log.Info("Plan written",
		"output", *output,
		"runtime_ms", result.RuntimeMS,
		"real_time_compliant", result.RealTimeCompliant,
	)
}

func writeJSON(log *logger.Logger, path string, payload any) {
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Fatal("Could not marshal output", "error", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		log.Fatal("Could not write output", "path", path, "error", err)
	}
}
