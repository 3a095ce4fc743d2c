package planner

import (
	"context"

	"github.com/yungbote/learnpath-backend/internal/catalog"
	"github.com/yungbote/learnpath-backend/internal/domain"
)

// Filter partitions a catalog into feasible ids and explained exclusions.
// Implementations must be pure: identical catalog and context always yield
// identical output, including ordering. The built-in RuleFilter and the
// external reasoner client both satisfy this contract.
type Filter interface {
	Filter(ctx context.Context, cat *catalog.Catalog, uc domain.UserContext) (feasible []string, excluded []domain.Exclusion, err error)
}

// RuleFilter evaluates the fixed rule chain, first-fail-wins.
type RuleFilter struct {
	rules []Rule
}

func NewRuleFilter(rules []Rule) *RuleFilter {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &RuleFilter{rules: rules}
}

// Filter walks the catalog in ascending id order, so output ordering is a
// function of the input alone.
func (f *RuleFilter) Filter(_ context.Context, cat *catalog.Catalog, uc domain.UserContext) ([]string, []domain.Exclusion, error) {
	objects := cat.Objects()
	feasible := make([]string, 0, len(objects))
	excluded := make([]domain.Exclusion, 0)
	for _, lo := range objects {
		if reason, violated := f.firstViolation(lo, uc); violated {
			excluded = append(excluded, domain.Exclusion{LOID: lo.ID, Reason: reason})
			continue
		}
		feasible = append(feasible, lo.ID)
	}
	return feasible, excluded, nil
}

func (f *RuleFilter) firstViolation(lo domain.LearningObject, uc domain.UserContext) (string, bool) {
	for _, rule := range f.rules {
		if ok, reason := rule.Check(lo, uc); !ok {
			return reason, true
		}
	}
	return "", false
}
