package planner

import (
	"fmt"

	"github.com/yungbote/learnpath-backend/internal/catalog"
	"github.com/yungbote/learnpath-backend/internal/domain"
)

// ValidateContext checks the per-request learner context before any graph
// work begins.
func ValidateContext(uc domain.UserContext) error {
	if uc.Language == "" {
		return &ValidationError{Field: "language", Detail: "must not be empty"}
	}
	if uc.Device == "" {
		return &ValidationError{Field: "device", Detail: "must not be empty"}
	}
	if !uc.Bandwidth.Valid() {
		return &ValidationError{Field: "bandwidth", Detail: fmt.Sprintf("unknown class %q", uc.Bandwidth)}
	}
	if uc.MasteryLevel < 0 || uc.MasteryLevel > 1 {
		return &ValidationError{Field: "mastery_level", Detail: "must be within [0, 1]"}
	}
	if uc.TimeBudgetMin <= 0 {
		return &ValidationError{Field: "time_budget_min", Detail: "must be positive"}
	}
	return nil
}

// ValidateCatalog checks the loaded object table. Runs once per catalog
// load, not per request.
func ValidateCatalog(cat *catalog.Catalog) error {
	if cat == nil || cat.Len() == 0 {
		return &ValidationError{Field: "catalog", Detail: "no learning objects loaded"}
	}
	for _, lo := range cat.Objects() {
		if lo.DurationMin <= 0 {
			return &ValidationError{Field: "duration_min", Detail: fmt.Sprintf("%s: must be positive", lo.ID)}
		}
		if lo.RequiredMastery < 0 || lo.RequiredMastery > 1 {
			return &ValidationError{Field: "required_mastery", Detail: fmt.Sprintf("%s: must be within [0, 1]", lo.ID)}
		}
		if lo.AccuracyStat < 0 || lo.AccuracyStat > 1 {
			return &ValidationError{Field: "accuracy_stat", Detail: fmt.Sprintf("%s: must be within [0, 1]", lo.ID)}
		}
		if !lo.MediaBandwidthClass.Valid() {
			return &ValidationError{Field: "media_bandwidth_class", Detail: fmt.Sprintf("%s: unknown class %q", lo.ID, lo.MediaBandwidthClass)}
		}
	}
	return nil
}
