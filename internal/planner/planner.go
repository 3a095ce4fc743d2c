// Package planner implements the context feasibility filter and the
// graph-based path optimizer with its explainability trace. One Plan call
// runs filter -> DAG build -> search -> trace as a single synchronous
// computation over an immutable catalog handle; concurrent calls share
// nothing but that handle.
package planner

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/learnpath-backend/internal/catalog"
	"github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

const tracerName = "github.com/yungbote/learnpath-backend/internal/planner"

type Planner struct {
	cfg    Config
	filter Filter
	log    *logger.Logger
	tracer trace.Tracer
}

func New(cfg Config, filter Filter, log *logger.Logger) *Planner {
	if filter == nil {
		filter = NewRuleFilter(nil)
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Planner{
		cfg:    cfg.withDefaults(),
		filter: filter,
		log:    log.With("component", "planner"),
		tracer: otel.Tracer(tracerName),
	}
}

func (p *Planner) Config() Config { return p.cfg }

// Plan produces a validated, cost-optimal, explained path for one learner
// at one moment. Re-planning is just calling Plan again with the updated
// context; no state survives the call.
func (p *Planner) Plan(ctx context.Context, cat *catalog.Catalog, uc domain.UserContext) (*domain.PathResult, error) {
	if err := ValidateContext(uc); err != nil {
		return nil, err
	}

	ctx, span := p.tracer.Start(ctx, "planner.Plan")
	defer span.End()

	started := time.Now()

	feasible, excluded, err := p.runFilter(ctx, cat, uc)
	if err != nil {
		return nil, err
	}

	dag, err := p.buildDAG(ctx, cat, feasible)
	if err != nil {
		if errors.Is(err, ErrPathNotFound) {
			return nil, &PathNotFoundError{Excluded: excluded}
		}
		return nil, err
	}

	res, err := p.search(ctx, dag, uc)
	if err != nil {
		if errors.Is(err, ErrPathNotFound) {
			return nil, &PathNotFoundError{Excluded: excluded}
		}
		return nil, err
	}

	elapsed := time.Since(started)
	result := assembleTrace(dag, res, excluded, uc, elapsed, p.cfg.LatencyBoundMS)

	p.log.Debug("plan computed",
		"user_id", uc.UserID,
		"path_len", len(result.PrimaryPath),
		"excluded", len(result.ExcludedLOs),
		"alternates", len(result.AlternatePaths),
		"runtime_ms", result.RuntimeMS,
		"real_time_compliant", result.RealTimeCompliant,
		"within_time_budget", result.WithinTimeBudget,
	)
	return result, nil
}

func (p *Planner) runFilter(ctx context.Context, cat *catalog.Catalog, uc domain.UserContext) ([]string, []domain.Exclusion, error) {
	ctx, span := p.tracer.Start(ctx, "planner.filter")
	defer span.End()
	return p.filter.Filter(ctx, cat, uc)
}

func (p *Planner) buildDAG(ctx context.Context, cat *catalog.Catalog, feasible []string) (*WeightedDAG, error) {
	_, span := p.tracer.Start(ctx, "planner.build_dag")
	defer span.End()
	return BuildDAG(cat, feasible, CostConfig{Alpha: p.cfg.Alpha, Beta: p.cfg.Beta})
}

func (p *Planner) search(ctx context.Context, dag *WeightedDAG, uc domain.UserContext) (SearchResult, error) {
	_, span := p.tracer.Start(ctx, "planner.search")
	defer span.End()
	return Search(dag, SearchConfig{K: p.cfg.K, TimeBudgetMin: uc.TimeBudgetMin})
}
