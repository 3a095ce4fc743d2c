package domain

// LOKind distinguishes the two learning-object flavors we plan over.
type LOKind string

const (
	KindQuestion LOKind = "question"
	KindLecture  LOKind = "lecture"
)

// BandwidthClass is an ordinal: low < medium < high.
type BandwidthClass string

const (
	BandwidthLow    BandwidthClass = "low"
	BandwidthMedium BandwidthClass = "medium"
	BandwidthHigh   BandwidthClass = "high"
)

var bandwidthRank = map[BandwidthClass]int{
	BandwidthLow:    0,
	BandwidthMedium: 1,
	BandwidthHigh:   2,
}

// Rank returns the ordinal position of the class, or -1 for unknown values.
func (b BandwidthClass) Rank() int {
	r, ok := bandwidthRank[b]
	if !ok {
		return -1
	}
	return r
}

func (b BandwidthClass) Valid() bool { return b.Rank() >= 0 }

// LearningObject is an atomic educational item. Immutable once loaded;
// owned by the catalog handle that carries it.
type LearningObject struct {
	ID                  string         `json:"lo_id"`
	Kind                LOKind         `json:"kind"`
	DurationMin         float64        `json:"duration_min"`
	RequiredMastery     float64        `json:"required_mastery"`
	RequiredLanguage    string         `json:"required_language"`
	DeviceCompat        []string       `json:"device_compat"`
	MediaBandwidthClass BandwidthClass `json:"media_bandwidth_class"`
	AccuracyStat        float64        `json:"accuracy_stat"`
}

// SupportsDevice reports whether the object can be consumed on the device.
func (lo LearningObject) SupportsDevice(device string) bool {
	for _, d := range lo.DeviceCompat {
		if d == device {
			return true
		}
	}
	return false
}

// PrerequisiteEdge means FromID must precede ToID.
type PrerequisiteEdge struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
}

// UserContext is the per-request learner snapshot. Immutable.
type UserContext struct {
	UserID        string         `json:"user_id"`
	Language      string         `json:"language"`
	Device        string         `json:"device"`
	Bandwidth     BandwidthClass `json:"bandwidth"`
	MasteryLevel  float64        `json:"mastery_level"`
	TimeBudgetMin float64        `json:"time_budget_min"`
}

// Exclusion pairs a filtered-out object with the single reason reported
// by the first violated rule.
type Exclusion struct {
	LOID   string `json:"lo_id"`
	Reason string `json:"reason"`
}

// AlternatePath is an auxiliary candidate kept alongside the primary.
type AlternatePath struct {
	Path        []string `json:"path"`
	Cost        float64  `json:"cost"`
	DurationMin float64  `json:"duration_min"`
}

// CostStep is the per-edge breakdown of the primary path's cost.
type CostStep struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	DurationMin float64 `json:"duration_min"`
	Risk        float64 `json:"risk"`
	Total       float64 `json:"total"`
}

// PathResult is the sole externally visible artifact of a planning call.
// Produced once, never mutated afterward.
type PathResult struct {
	UserID            string          `json:"user_id,omitempty"`
	PrimaryPath       []string        `json:"primary_path"`
	TotalCost         float64         `json:"total_cost"`
	TotalDurationMin  float64         `json:"total_duration_min"`
	ExcludedLOs       []Exclusion     `json:"excluded_los"`
	AlternatePaths    []AlternatePath `json:"alternate_paths,omitempty"`
	CostBreakdown     []CostStep      `json:"primary_cost_breakdown,omitempty"`
	RuntimeMS         float64         `json:"runtime_ms"`
	RealTimeCompliant bool            `json:"real_time_compliant"`
	WithinTimeBudget  bool            `json:"within_time_budget"`
}
