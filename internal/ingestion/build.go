// Package ingestion turns a raw interaction log into the learning-object
// and prerequisite tables the planner consumes. Runs offline, before any
// planning call; the planner only ever sees its immutable output.
package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/yungbote/learnpath-backend/internal/domain"
)

// Defaults fill the attributes an interaction log cannot provide.
type Defaults struct {
	Kind                domain.LOKind
	RequiredLanguage    string
	Devices             []string
	MediaBandwidthClass domain.BandwidthClass
	RequiredMastery     float64
	DurationMin         float64
	AccuracyStat        float64
}

func DefaultDefaults() Defaults {
	return Defaults{
		Kind:                domain.KindQuestion,
		RequiredLanguage:    "any",
		Devices:             []string{"desktop", "mobile"},
		MediaBandwidthClass: domain.BandwidthLow,
		RequiredMastery:     0,
		DurationMin:         1,
		AccuracyStat:        0.5,
	}
}

type interactionStat struct {
	totalDurationMin float64
	durationSamples  int
	correct          int
	answered         int
}

// BuildLearningObjects aggregates an interaction log into per-question
// statistics: mean solving duration and historical accuracy. Expected
// columns: question_id, elapsed_ms, correct (0/1). Unknown or malformed
// rows are skipped, not fatal, matching the tolerant upstream loader.
func BuildLearningObjects(r io.Reader, def Defaults) ([]domain.LearningObject, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ingestion: read interactions: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ingestion: interaction log is empty")
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	qCol, ok := col["question_id"]
	if !ok {
		return nil, fmt.Errorf("ingestion: interactions missing column question_id")
	}

	stats := make(map[string]*interactionStat)
	for _, rec := range records[1:] {
		if qCol >= len(rec) {
			continue
		}
		id := strings.TrimSpace(rec[qCol])
		if id == "" {
			continue
		}
		st := stats[id]
		if st == nil {
			st = &interactionStat{}
			stats[id] = st
		}
		if i, ok := col["elapsed_ms"]; ok && i < len(rec) {
			if ms, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64); err == nil && ms > 0 {
				st.totalDurationMin += ms / 60000.0
				st.durationSamples++
			}
		}
		if i, ok := col["correct"]; ok && i < len(rec) {
			switch strings.TrimSpace(rec[i]) {
			case "1", "true":
				st.correct++
				st.answered++
			case "0", "false":
				st.answered++
			}
		}
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	objects := make([]domain.LearningObject, 0, len(ids))
	for _, id := range ids {
		st := stats[id]
		duration := def.DurationMin
		if st.durationSamples > 0 {
			duration = st.totalDurationMin / float64(st.durationSamples)
		}
		accuracy := def.AccuracyStat
		if st.answered > 0 {
			accuracy = float64(st.correct) / float64(st.answered)
		}
		objects = append(objects, domain.LearningObject{
			ID:                  id,
			Kind:                def.Kind,
			DurationMin:         duration,
			RequiredMastery:     def.RequiredMastery,
			RequiredLanguage:    def.RequiredLanguage,
			DeviceCompat:        def.Devices,
			MediaBandwidthClass: def.MediaBandwidthClass,
			AccuracyStat:        accuracy,
		})
	}
	return objects, nil
}

// BuildChainEdges produces the baseline prerequisite chain lo_1 -> lo_2 ->
// ... used when no curated skill DAG exists yet.
func BuildChainEdges(objects []domain.LearningObject) []domain.PrerequisiteEdge {
	if len(objects) < 2 {
		return nil
	}
	edges := make([]domain.PrerequisiteEdge, 0, len(objects)-1)
	for i := 0; i+1 < len(objects); i++ {
		edges = append(edges, domain.PrerequisiteEdge{
			FromID: objects[i].ID,
			ToID:   objects[i+1].ID,
		})
	}
	return edges
}
