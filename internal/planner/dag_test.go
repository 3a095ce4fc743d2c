package planner

import (
	"errors"
	"math"
	"testing"

	"github.com/yungbote/learnpath-backend/internal/domain"
)

func chainObjects(durations map[string]float64, accuracies map[string]float64) []domain.LearningObject {
	objects := make([]domain.LearningObject, 0, len(durations))
	for id, dur := range durations {
		lo := testObject(id)
		lo.DurationMin = dur
		if acc, ok := accuracies[id]; ok {
			lo.AccuracyStat = acc
		}
		objects = append(objects, lo)
	}
	return objects
}

func TestBuildDAGSentinelWiring(t *testing.T) {
	cat := mustCatalog(t,
		chainObjects(map[string]float64{"n_a": 1, "n_b": 2, "n_c": 3}, nil),
		[]domain.PrerequisiteEdge{
			{FromID: "n_a", ToID: "n_b"},
			{FromID: "n_b", ToID: "n_c"},
		},
	)
	d, err := BuildDAG(cat, []string{"n_a", "n_b", "n_c"}, DefaultCostConfig())
	if err != nil {
		t.Fatalf("BuildDAG: %v", err)
	}

	if c, ok := d.ArcCost(StartNode, "n_a"); !ok || c != 0 {
		t.Fatalf("expected zero-cost START->n_a, got %v ok=%v", c, ok)
	}
	if c, ok := d.ArcCost("n_c", GoalNode); !ok || c != 0 {
		t.Fatalf("expected zero-cost n_c->GOAL, got %v ok=%v", c, ok)
	}
	if _, ok := d.ArcCost(StartNode, "n_b"); ok {
		t.Fatal("n_b has a prerequisite, START must not link to it")
	}
	if _, ok := d.ArcCost("n_a", GoalNode); ok {
		t.Fatal("n_a has a successor, it must not link to GOAL")
	}
	if d.Duration(StartNode) != 0 || d.Duration(GoalNode) != 0 {
		t.Fatal("sentinels must carry zero duration")
	}
}

func TestBuildDAGEdgeCost(t *testing.T) {
	cat := mustCatalog(t,
		chainObjects(
			map[string]float64{"n_a": 1, "n_b": 10},
			map[string]float64{"n_b": 0.75},
		),
		[]domain.PrerequisiteEdge{{FromID: "n_a", ToID: "n_b"}},
	)
	d, err := BuildDAG(cat, []string{"n_a", "n_b"}, CostConfig{Alpha: 2, Beta: 4})
	if err != nil {
		t.Fatalf("BuildDAG: %v", err)
	}

	// alpha*duration(target) + beta*(1-accuracy(target))
	want := 2*10.0 + 4*0.25
	got, ok := d.ArcCost("n_a", "n_b")
	if !ok || math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected arc cost %v, got %v ok=%v", want, got, ok)
	}
}

func TestBuildDAGRestrictsToFeasible(t *testing.T) {
	// n_x is infeasible; the n_x->n_a edge must vanish and n_a becomes an
	// entry node.
	cat := mustCatalog(t,
		chainObjects(map[string]float64{"n_x": 1, "n_a": 1, "n_b": 1}, nil),
		[]domain.PrerequisiteEdge{
			{FromID: "n_x", ToID: "n_a"},
			{FromID: "n_a", ToID: "n_b"},
		},
	)
	d, err := BuildDAG(cat, []string{"n_a", "n_b"}, DefaultCostConfig())
	if err != nil {
		t.Fatalf("BuildDAG: %v", err)
	}
	if _, ok := d.ArcCost(StartNode, "n_a"); !ok {
		t.Fatal("n_a lost its only prerequisite, expected START arc")
	}
	for _, n := range d.Nodes() {
		if n == "n_x" {
			t.Fatal("infeasible node present in DAG")
		}
	}
}

func TestBuildDAGCycle(t *testing.T) {
	cat := mustCatalog(t,
		chainObjects(map[string]float64{"n_x": 1, "n_y": 1, "n_z": 1}, nil),
		[]domain.PrerequisiteEdge{
			{FromID: "n_x", ToID: "n_y"},
			{FromID: "n_y", ToID: "n_x"},
		},
	)
	_, err := BuildDAG(cat, []string{"n_x", "n_y", "n_z"}, DefaultCostConfig())
	if err == nil {
		t.Fatal("expected cycle error")
	}
	if !errors.Is(err, ErrGraphIntegrity) {
		t.Fatalf("expected ErrGraphIntegrity, got %v", err)
	}
	var gi *GraphIntegrityError
	if !errors.As(err, &gi) {
		t.Fatalf("expected GraphIntegrityError, got %T", err)
	}
	if len(gi.Cycle) != 2 || gi.Cycle[0] != "n_x" || gi.Cycle[1] != "n_y" {
		t.Fatalf("expected cycle [n_x n_y], got %v", gi.Cycle)
	}
}

func TestBuildDAGEmptyFeasible(t *testing.T) {
	cat := mustCatalog(t, chainObjects(map[string]float64{"n_a": 1}, nil), nil)
	_, err := BuildDAG(cat, nil, DefaultCostConfig())
	if !errors.Is(err, ErrPathNotFound) {
		t.Fatalf("expected ErrPathNotFound, got %v", err)
	}
}

func TestBuildDAGUnknownFeasibleID(t *testing.T) {
	cat := mustCatalog(t, chainObjects(map[string]float64{"n_a": 1}, nil), nil)
	_, err := BuildDAG(cat, []string{"n_a", "n_ghost"}, DefaultCostConfig())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
