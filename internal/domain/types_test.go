package domain

import (
	"slices"
	"testing"
)

func TestBandwidthRankOrdering(t *testing.T) {
	if !(BandwidthLow.Rank() < BandwidthMedium.Rank() && BandwidthMedium.Rank() < BandwidthHigh.Rank()) {
		t.Fatal("bandwidth classes must order low < medium < high")
	}
	if BandwidthClass("ultra").Rank() != -1 {
		t.Fatal("unknown class must rank -1")
	}
	if !BandwidthLow.Valid() || BandwidthClass("").Valid() {
		t.Fatal("Valid must track the known classes")
	}
}

func TestSupportsDevice(t *testing.T) {
	lo := LearningObject{DeviceCompat: []string{"desktop", "mobile"}}
	if !lo.SupportsDevice("mobile") {
		t.Fatal("mobile listed but not supported")
	}
	if lo.SupportsDevice("tv") {
		t.Fatal("tv not listed but reported supported")
	}
	if (LearningObject{}).SupportsDevice("desktop") {
		t.Fatal("empty compat list supports nothing")
	}
}

func TestRowRoundTrip(t *testing.T) {
	lo := LearningObject{
		ID:                  "Q_1",
		Kind:                KindLecture,
		DurationMin:         7.5,
		RequiredMastery:     0.3,
		RequiredLanguage:    "en",
		DeviceCompat:        []string{"desktop", "mobile"},
		MediaBandwidthClass: BandwidthMedium,
		AccuracyStat:        0.65,
	}
	got := RowFromLearningObject(lo).ToLearningObject()
	if got.ID != lo.ID || got.Kind != lo.Kind || got.DurationMin != lo.DurationMin {
		t.Fatalf("round trip changed scalars: %+v", got)
	}
	if !slices.Equal(got.DeviceCompat, lo.DeviceCompat) {
		t.Fatalf("round trip changed devices: %v", got.DeviceCompat)
	}
	if got.MediaBandwidthClass != lo.MediaBandwidthClass || got.AccuracyStat != lo.AccuracyStat {
		t.Fatalf("round trip changed stats: %+v", got)
	}
}

func TestSplitDevices(t *testing.T) {
	if got := SplitDevices(""); got != nil {
		t.Fatalf("empty input must yield nil, got %v", got)
	}
	got := SplitDevices(" desktop | mobile ||")
	if !slices.Equal(got, []string{"desktop", "mobile"}) {
		t.Fatalf("expected trimmed non-empty parts, got %v", got)
	}
}
