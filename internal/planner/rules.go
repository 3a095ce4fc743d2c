package planner

import (
	"fmt"

	"github.com/yungbote/learnpath-backend/internal/domain"
)

// Rule is a named pure predicate over one learning object and the learner
// context. Check returns ok=false with the reason to report.
type Rule struct {
	Name  string
	Check func(lo domain.LearningObject, uc domain.UserContext) (ok bool, reason string)
}

// DefaultRules returns the fixed rule chain. Order is part of the
// contract: an object violating several rules reports only the first
// violation, so reordering changes observable output.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "language",
			Check: func(lo domain.LearningObject, uc domain.UserContext) (bool, string) {
				if lo.RequiredLanguage == "any" || lo.RequiredLanguage == uc.Language {
					return true, ""
				}
				return false, "language mismatch"
			},
		},
		{
			Name: "device",
			Check: func(lo domain.LearningObject, uc domain.UserContext) (bool, string) {
				if lo.SupportsDevice(uc.Device) {
					return true, ""
				}
				return false, "device incompatible"
			},
		},
		{
			Name: "bandwidth",
			Check: func(lo domain.LearningObject, uc domain.UserContext) (bool, string) {
				if lo.MediaBandwidthClass.Rank() <= uc.Bandwidth.Rank() {
					return true, ""
				}
				return false, "insufficient bandwidth for media"
			},
		},
		{
			Name: "mastery",
			Check: func(lo domain.LearningObject, uc domain.UserContext) (bool, string) {
				if uc.MasteryLevel >= lo.RequiredMastery {
					return true, ""
				}
				return false, fmt.Sprintf("requires mastery %.2f > user mastery %.2f", lo.RequiredMastery, uc.MasteryLevel)
			},
		},
	}
}
