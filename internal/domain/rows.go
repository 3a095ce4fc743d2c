package domain

import (
	"strings"
	"time"
)

// LearningObjectRow is the persisted shape of a learning object in the
// ingestion store. DeviceCompat is flattened to a pipe-separated list so
// the row stays portable across sqlite and postgres.
type LearningObjectRow struct {
	LOID                string    `gorm:"column:lo_id;primaryKey" json:"lo_id"`
	Kind                string    `gorm:"column:kind" json:"kind"`
	DurationMin         float64   `gorm:"column:duration_min" json:"duration_min"`
	RequiredMastery     float64   `gorm:"column:required_mastery" json:"required_mastery"`
	RequiredLanguage    string    `gorm:"column:required_language" json:"required_language"`
	Devices             string    `gorm:"column:devices" json:"devices"`
	MediaBandwidthClass string    `gorm:"column:media_bandwidth_class" json:"media_bandwidth_class"`
	AccuracyStat        float64   `gorm:"column:accuracy_stat" json:"accuracy_stat"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (LearningObjectRow) TableName() string { return "learning_objects" }

// PrerequisiteRow is one directed prerequisite edge in the ingestion store.
type PrerequisiteRow struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FromID string `gorm:"column:from_id;index:idx_prereq_pair,unique" json:"from_id"`
	ToID   string `gorm:"column:to_id;index:idx_prereq_pair,unique" json:"to_id"`
}

func (PrerequisiteRow) TableName() string { return "prerequisites" }

const deviceSeparator = "|"

// ToLearningObject converts a stored row back into the in-memory model.
func (r LearningObjectRow) ToLearningObject() LearningObject {
	return LearningObject{
		ID:                  r.LOID,
		Kind:                LOKind(r.Kind),
		DurationMin:         r.DurationMin,
		RequiredMastery:     r.RequiredMastery,
		RequiredLanguage:    r.RequiredLanguage,
		DeviceCompat:        SplitDevices(r.Devices),
		MediaBandwidthClass: BandwidthClass(r.MediaBandwidthClass),
		AccuracyStat:        r.AccuracyStat,
	}
}

// RowFromLearningObject flattens the in-memory model for persistence.
func RowFromLearningObject(lo LearningObject) LearningObjectRow {
	return LearningObjectRow{
		LOID:                lo.ID,
		Kind:                string(lo.Kind),
		DurationMin:         lo.DurationMin,
		RequiredMastery:     lo.RequiredMastery,
		RequiredLanguage:    lo.RequiredLanguage,
		Devices:             JoinDevices(lo.DeviceCompat),
		MediaBandwidthClass: string(lo.MediaBandwidthClass),
		AccuracyStat:        lo.AccuracyStat,
	}
}

func SplitDevices(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, deviceSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func JoinDevices(devices []string) string {
	return strings.Join(devices, deviceSeparator)
}
