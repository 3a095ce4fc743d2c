package ingestion

import (
	"math"
	"strings"
	"testing"

	"github.com/yungbote/learnpath-backend/internal/domain"
)

func TestBuildLearningObjects(t *testing.T) {
	log := `question_id,elapsed_ms,correct
q_2,60000,1
q_1,120000,0
q_1,60000,1
q_1,,1
q_2,30000,0
`
	objects, err := BuildLearningObjects(strings.NewReader(log), DefaultDefaults())
	if err != nil {
		t.Fatalf("BuildLearningObjects: %v", err)
	}
	if len(objects) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(objects))
	}
	if objects[0].ID != "q_1" || objects[1].ID != "q_2" {
		t.Fatalf("expected sorted ids, got %v", objects)
	}

	// q_1: durations 2min and 1min (blank skipped) -> mean 1.5; 2 of 3 correct.
	q1 := objects[0]
	if math.Abs(q1.DurationMin-1.5) > 1e-9 {
		t.Fatalf("q_1 duration: expected 1.5, got %v", q1.DurationMin)
	}
	if math.Abs(q1.AccuracyStat-2.0/3.0) > 1e-9 {
		t.Fatalf("q_1 accuracy: expected 2/3, got %v", q1.AccuracyStat)
	}

	// q_2: durations 1min and 0.5min -> mean 0.75; 1 of 2 correct.
	q2 := objects[1]
	if math.Abs(q2.DurationMin-0.75) > 1e-9 {
		t.Fatalf("q_2 duration: expected 0.75, got %v", q2.DurationMin)
	}
	if math.Abs(q2.AccuracyStat-0.5) > 1e-9 {
		t.Fatalf("q_2 accuracy: expected 0.5, got %v", q2.AccuracyStat)
	}
}

func TestBuildLearningObjectsDefaults(t *testing.T) {
	log := `question_id
q_only
`
	def := DefaultDefaults()
	objects, err := BuildLearningObjects(strings.NewReader(log), def)
	if err != nil {
		t.Fatalf("BuildLearningObjects: %v", err)
	}
	got := objects[0]
	if got.DurationMin != def.DurationMin {
		t.Fatalf("expected default duration %v, got %v", def.DurationMin, got.DurationMin)
	}
	if got.AccuracyStat != def.AccuracyStat {
		t.Fatalf("expected default accuracy %v, got %v", def.AccuracyStat, got.AccuracyStat)
	}
	if got.Kind != domain.KindQuestion || got.RequiredLanguage != "any" {
		t.Fatalf("defaults not applied: %+v", got)
	}
}

func TestBuildLearningObjectsMissingColumn(t *testing.T) {
	if _, err := BuildLearningObjects(strings.NewReader("elapsed_ms\n100\n"), DefaultDefaults()); err == nil {
		t.Fatal("expected missing question_id error")
	}
}

func TestBuildChainEdges(t *testing.T) {
	objects := []domain.LearningObject{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	edges := BuildChainEdges(objects)
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %v", edges)
	}
	if edges[0].FromID != "a" || edges[0].ToID != "b" || edges[1].FromID != "b" || edges[1].ToID != "c" {
		t.Fatalf("unexpected chain %v", edges)
	}
	if BuildChainEdges(objects[:1]) != nil {
		t.Fatal("single object yields no edges")
	}
}
