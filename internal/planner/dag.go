package planner

import (
	"sort"

	"github.com/yungbote/learnpath-backend/internal/catalog"
	"github.com/yungbote/learnpath-backend/internal/domain"
)

// Sentinel node ids. They carry zero duration and zero-cost boundary arcs.
const (
	StartNode = "START"
	GoalNode  = "GOAL"
)

// Arc is one outgoing weighted edge.
type Arc struct {
	To   string
	Cost float64
}

// WeightedDAG is the per-request planning graph: the feasible slice of the
// prerequisite graph plus START/GOAL sentinels. Built fresh per call,
// never mutated after construction.
type WeightedDAG struct {
	nodes   []string
	adj     map[string][]Arc
	objects map[string]domain.LearningObject
}

// CostConfig holds the edge-cost weights. Cost grows with duration and
// with the risk of repetition (1 - accuracy).
type CostConfig struct {
	Alpha float64
	Beta  float64
}

func DefaultCostConfig() CostConfig {
	return CostConfig{Alpha: 1, Beta: 5}
}

func (c CostConfig) edgeCost(target domain.LearningObject) float64 {
	return c.Alpha*target.DurationMin + c.Beta*(1-target.AccuracyStat)
}

// BuildDAG restricts the prerequisite graph to the feasible set, wires the
// sentinels, weighs the arcs and validates the result. A cycle among
// feasible nodes yields GraphIntegrityError; an unreachable GOAL yields
// ErrPathNotFound.
func BuildDAG(cat *catalog.Catalog, feasible []string, cfg CostConfig) (*WeightedDAG, error) {
	feasSet := make(map[string]bool, len(feasible))
	objects := make(map[string]domain.LearningObject, len(feasible))
	for _, id := range feasible {
		lo, ok := cat.Object(id)
		if !ok {
			return nil, &ValidationError{Field: "feasible", Detail: "unknown learning object id " + id}
		}
		feasSet[id] = true
		objects[id] = lo
	}

	adj := make(map[string][]Arc, len(feasible)+2)
	hasIncoming := make(map[string]bool, len(feasible))
	hasOutgoing := make(map[string]bool, len(feasible))
	for _, e := range cat.Edges() {
		if !feasSet[e.FromID] || !feasSet[e.ToID] {
			continue
		}
		adj[e.FromID] = append(adj[e.FromID], Arc{To: e.ToID, Cost: cfg.edgeCost(objects[e.ToID])})
		hasIncoming[e.ToID] = true
		hasOutgoing[e.FromID] = true
	}

	nodes := make([]string, 0, len(feasible)+2)
	nodes = append(nodes, StartNode, GoalNode)
	for _, id := range feasible {
		nodes = append(nodes, id)
		if !hasIncoming[id] {
			adj[StartNode] = append(adj[StartNode], Arc{To: id, Cost: 0})
		}
		if !hasOutgoing[id] {
			adj[id] = append(adj[id], Arc{To: GoalNode, Cost: 0})
		}
	}
	sort.Strings(nodes)
	for _, arcs := range adj {
		sort.Slice(arcs, func(i, j int) bool { return arcs[i].To < arcs[j].To })
	}

	d := &WeightedDAG{nodes: nodes, adj: adj, objects: objects}
	if cycle := d.findCycle(); len(cycle) > 0 {
		return nil, &GraphIntegrityError{Cycle: cycle}
	}
	if !d.goalReachable() {
		return nil, ErrPathNotFound
	}
	return d, nil
}

// Nodes returns every node id including the sentinels, ascending.
func (d *WeightedDAG) Nodes() []string {
	out := make([]string, len(d.nodes))
	copy(out, d.nodes)
	return out
}

// Arcs returns the outgoing arcs of a node, ordered by target id.
func (d *WeightedDAG) Arcs(node string) []Arc {
	return d.adj[node]
}

// ArcCost looks up the cost of the u->v arc.
func (d *WeightedDAG) ArcCost(u, v string) (float64, bool) {
	for _, a := range d.adj[u] {
		if a.To == v {
			return a.Cost, true
		}
	}
	return 0, false
}

// Duration returns a node's duration in minutes; sentinels contribute zero.
func (d *WeightedDAG) Duration(node string) float64 {
	if lo, ok := d.objects[node]; ok {
		return lo.DurationMin
	}
	return 0
}

// PathDuration sums node durations along a path.
func (d *WeightedDAG) PathDuration(path []string) float64 {
	total := 0.0
	for _, n := range path {
		total += d.Duration(n)
	}
	return total
}

// PathCost sums arc costs along a path. The second return is false when
// the sequence is not a chain of existing arcs.
func (d *WeightedDAG) PathCost(path []string) (float64, bool) {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		c, ok := d.ArcCost(path[i], path[i+1])
		if !ok {
			return 0, false
		}
		total += c
	}
	return total, true
}

// findCycle runs Kahn's algorithm; any nodes left unresolved sit on a
// cycle and are returned sorted.
func (d *WeightedDAG) findCycle() []string {
	inDeg := make(map[string]int, len(d.nodes))
	for _, n := range d.nodes {
		inDeg[n] += 0
	}
	for _, arcs := range d.adj {
		for _, a := range arcs {
			inDeg[a.To]++
		}
	}

	queue := make([]string, 0, len(d.nodes))
	for _, n := range d.nodes {
		if inDeg[n] == 0 {
			queue = append(queue, n)
		}
	}

	processed := 0
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		processed++
		for _, a := range d.adj[n] {
			inDeg[a.To]--
			if inDeg[a.To] == 0 {
				queue = append(queue, a.To)
			}
		}
	}
	if processed == len(d.nodes) {
		return nil
	}

	remaining := make([]string, 0)
	for _, n := range d.nodes {
		if inDeg[n] > 0 {
			remaining = append(remaining, n)
		}
	}
	sort.Strings(remaining)
	return remaining
}

func (d *WeightedDAG) goalReachable() bool {
	seen := map[string]bool{StartNode: true}
	queue := []string{StartNode}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n == GoalNode {
			return true
		}
		for _, a := range d.adj[n] {
			if !seen[a.To] {
				seen[a.To] = true
				queue = append(queue, a.To)
			}
		}
	}
	return false
}
