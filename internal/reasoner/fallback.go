package reasoner

import (
	"context"
	"errors"

	"github.com/yungbote/learnpath-backend/internal/catalog"
	"github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/planner"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

// fallbackFilter tries the external reasoner first and, when it is
// unavailable, runs the built-in evaluator instead. Every fallback is
// logged; other reasoner errors pass through untouched.
type fallbackFilter struct {
	primary  planner.Filter
	fallback planner.Filter
	log      *logger.Logger
}

// WithFallback wraps primary with the fallback policy. A nil fallback
// defaults to the built-in rule evaluator.
func WithFallback(primary, fallback planner.Filter, log *logger.Logger) planner.Filter {
	if fallback == nil {
		fallback = planner.NewRuleFilter(nil)
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &fallbackFilter{primary: primary, fallback: fallback, log: log.With("component", "reasoner_fallback")}
}

func (f *fallbackFilter) Filter(ctx context.Context, cat *catalog.Catalog, uc domain.UserContext) ([]string, []domain.Exclusion, error) {
	feasible, excluded, err := f.primary.Filter(ctx, cat, uc)
	if err == nil {
		return feasible, excluded, nil
	}
	if !errors.Is(err, planner.ErrReasonerUnavailable) {
		return nil, nil, err
	}
	f.log.Warn("reasoner unavailable, falling back to rule evaluator", "user_id", uc.UserID, "error", err)
	return f.fallback.Filter(ctx, cat, uc)
}
