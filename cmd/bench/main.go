// Bench measures planning latency across synthetic catalogs of growing
// size, with concurrent learners sharing each catalog handle, and writes
// the results as CSV.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/learnpath-backend/internal/catalog"
	"github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/planner"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

func main() {
	sizesFlag := flag.String("sizes", "100,500,1000,5000", "catalog sizes to benchmark")
	learners := flag.Int("learners", 8, "concurrent planning calls per size")
	output := flag.String("output", "scalability.csv", "output CSV")
	flag.Parse()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	sizes, err := parseSizes(*sizesFlag)
	if err != nil {
		log.Fatal("Bad -sizes", "error", err)
	}

	cfg := planner.LoadConfigFromEnv()
	p := planner.New(cfg, nil, log)
	ctx := context.Background()

	records := [][]string{{"size", "learners", "mean_runtime_ms", "max_runtime_ms", "compliant_fraction"}}
	for _, size := range sizes {
		cat, err := syntheticCatalog(size)
		if err != nil {
			log.Fatal("Could not build synthetic catalog", "size", size, "error", err)
		}

		runtimes := make([]float64, *learners)
		compliant := make([]bool, *learners)
		var mu sync.Mutex

		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < *learners; i++ {
			i := i
			g.Go(func() error {
				uc := domain.UserContext{
					UserID:        fmt.Sprintf("bench_user_%d", i),
					Language:      "en",
					Device:        "desktop",
					Bandwidth:     domain.BandwidthHigh,
					MasteryLevel:  1,
					TimeBudgetMin: float64(size) * 10,
				}
				res, err := p.Plan(gctx, cat, uc)
				if err != nil {
					return err
				}
				mu.Lock()
				runtimes[i] = res.RuntimeMS
				compliant[i] = res.RealTimeCompliant
				mu.Unlock()
				return nil
			})
		}
		started := time.Now()
		if err := g.Wait(); err != nil {
			log.Fatal("Benchmark run failed", "size", size, "error", err)
		}
		wall := time.Since(started)

		var sum, max float64
		okCount := 0
		for i, r := range runtimes {
			sum += r
			if r > max {
				max = r
			}
			if compliant[i] {
				okCount++
			}
		}
		mean := sum / float64(*learners)
		frac := float64(okCount) / float64(*learners)
		log.Info("Benchmarked size",
			"size", size,
			"mean_runtime_ms", mean,
			"max_runtime_ms", max,
			"compliant_fraction", frac,
			"wall", wall,
		)
		records = append(records, []string{
			strconv.Itoa(size),
			strconv.Itoa(*learners),
			strconv.FormatFloat(mean, 'f', 3, 64),
			strconv.FormatFloat(max, 'f', 3, 64),
			strconv.FormatFloat(frac, 'f', 3, 64),
		})
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatal("Could not create output", "path", *output, "error", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		log.Fatal("Could not write output", "error", err)
	}
	log.Info("Benchmark written", "output", *output)
}

func parseSizes(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	sizes := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("bad size %q", part)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// syntheticCatalog builds a chain of n questions with varied durations and
// accuracies, the same baseline shape the ingestion pipeline emits.
func syntheticCatalog(n int) (*catalog.Catalog, error) {
	objects := make([]domain.LearningObject, 0, n)
	for i := 0; i < n; i++ {
		objects = append(objects, domain.LearningObject{
			ID:                  fmt.Sprintf("q_%06d", i),
			Kind:                domain.KindQuestion,
			DurationMin:         1 + float64(i%7),
			RequiredMastery:     0,
			RequiredLanguage:    "any",
			DeviceCompat:        []string{"desktop", "mobile"},
			MediaBandwidthClass: domain.BandwidthLow,
			AccuracyStat:        0.4 + 0.1*float64(i%6),
		})
	}
	edges := make([]domain.PrerequisiteEdge, 0, n-1)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, domain.PrerequisiteEdge{FromID: objects[i].ID, ToID: objects[i+1].ID})
	}
	return catalog.New(fmt.Sprintf("synthetic_%d", n), objects, edges)
}
