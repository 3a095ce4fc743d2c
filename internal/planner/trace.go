package planner

import (
	"slices"
	"time"

	"github.com/yungbote/learnpath-backend/internal/domain"
)

// assembleTrace builds the externally visible result. Pure assembly: every
// field is copied from exactly one upstream stage and nothing is
// re-derived, so each value has a single source of truth.
func assembleTrace(d *WeightedDAG, res SearchResult, excluded []domain.Exclusion, uc domain.UserContext, elapsed time.Duration, latencyBoundMS float64) *domain.PathResult {
	runtimeMS := float64(elapsed) / float64(time.Millisecond)

	alternates := make([]domain.AlternatePath, 0, len(res.Alternates))
	for _, p := range res.Alternates {
		alternates = append(alternates, domain.AlternatePath{
			Path:        slices.Clone(p.Nodes),
			Cost:        p.Cost,
			DurationMin: p.DurationMin,
		})
	}

	breakdown := make([]domain.CostStep, 0, len(res.Primary.Nodes))
	for i := 0; i+1 < len(res.Primary.Nodes); i++ {
		from, to := res.Primary.Nodes[i], res.Primary.Nodes[i+1]
		cost, _ := d.ArcCost(from, to)
		breakdown = append(breakdown, domain.CostStep{
			From:        from,
			To:          to,
			DurationMin: d.Duration(to),
			Risk:        riskOf(d, to),
			Total:       cost,
		})
	}

	return &domain.PathResult{
		UserID:            uc.UserID,
		PrimaryPath:       slices.Clone(res.Primary.Nodes),
		TotalCost:         res.Primary.Cost,
		TotalDurationMin:  res.Primary.DurationMin,
		ExcludedLOs:       excluded,
		AlternatePaths:    alternates,
		CostBreakdown:     breakdown,
		RuntimeMS:         runtimeMS,
		RealTimeCompliant: runtimeMS < latencyBoundMS,
		WithinTimeBudget:  res.WithinBudget,
	}
}

func riskOf(d *WeightedDAG, node string) float64 {
	if lo, ok := d.objects[node]; ok {
		return 1 - lo.AccuracyStat
	}
	return 0
}
