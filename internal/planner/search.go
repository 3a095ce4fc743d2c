package planner

import (
	"container/heap"
	"slices"
	"sort"
	"strings"
)

// Path is one START->GOAL candidate.
type Path struct {
	Nodes       []string
	Cost        float64
	DurationMin float64
}

type SearchConfig struct {
	// K is the number of alternate paths computed beyond the primary.
	K int
	// TimeBudgetMin caps a path's total duration. Zero or negative means
	// unconstrained.
	TimeBudgetMin float64
}

func DefaultSearchConfig() SearchConfig {
	return SearchConfig{K: 3}
}

type SearchResult struct {
	Primary      Path
	Alternates   []Path
	WithinBudget bool
}

// Search computes the minimum-cost path plus up to K alternates, then
// applies the time budget as a post-filter over the ranked candidates.
// Duration is a path property, not an edge property, so it cannot be
// folded into the arc costs.
//
// When the unconstrained minimum exceeds the budget, the cheapest
// candidate that fits becomes the primary and the rest (the unconstrained
// minimum included) stay visible as alternates. When nothing fits, the
// unconstrained minimum is returned flagged non-compliant: the learner
// still gets a plan, explicitly marked as exceeding the requested time.
func Search(d *WeightedDAG, cfg SearchConfig) (SearchResult, error) {
	if cfg.K < 0 {
		cfg.K = 0
	}
	ranked := kShortestPaths(d, cfg.K+1)
	if len(ranked) == 0 {
		return SearchResult{}, ErrPathNotFound
	}

	chosen := -1
	if cfg.TimeBudgetMin > 0 {
		for i, p := range ranked {
			if p.DurationMin <= cfg.TimeBudgetMin {
				chosen = i
				break
			}
		}
	} else {
		chosen = 0
	}

	if chosen < 0 {
		return SearchResult{
			Primary:      ranked[0],
			Alternates:   ranked[1:],
			WithinBudget: false,
		}, nil
	}

	alternates := make([]Path, 0, len(ranked)-1)
	alternates = append(alternates, ranked[:chosen]...)
	alternates = append(alternates, ranked[chosen+1:]...)
	return SearchResult{
		Primary:      ranked[chosen],
		Alternates:   alternates,
		WithinBudget: true,
	}, nil
}

// exclusionMask bans nodes and arcs for one spur search. Yen's repeated
// removals are expressed through masks so the DAG itself is never touched.
type exclusionMask struct {
	nodes map[string]bool
	arcs  map[[2]string]bool
}

func newExclusionMask() exclusionMask {
	return exclusionMask{nodes: make(map[string]bool), arcs: make(map[[2]string]bool)}
}

// kShortestPaths returns up to limit loopless START->GOAL paths in
// non-decreasing cost order (Yen's algorithm). Ties are broken toward the
// lexicographically smaller node sequence.
func kShortestPaths(d *WeightedDAG, limit int) []Path {
	first, ok := shortestFrom(d, StartNode, newExclusionMask())
	if !ok {
		return nil
	}

	paths := []Path{first}
	accepted := map[string]bool{pathKey(first.Nodes): true}
	var candidates []Path
	candidateSeen := make(map[string]bool)

	for len(paths) < limit {
		prev := paths[len(paths)-1].Nodes
		for j := 0; j+1 < len(prev); j++ {
			spur := prev[j]
			root := prev[:j+1]

			mask := newExclusionMask()
			for _, p := range paths {
				if len(p.Nodes) > j+1 && slices.Equal(p.Nodes[:j+1], root) {
					mask.arcs[[2]string{p.Nodes[j], p.Nodes[j+1]}] = true
				}
			}
			for _, n := range root[:j] {
				mask.nodes[n] = true
			}

			spurPath, found := shortestFrom(d, spur, mask)
			if !found {
				continue
			}

			nodes := append(slices.Clone(root[:j]), spurPath.Nodes...)
			key := pathKey(nodes)
			if accepted[key] || candidateSeen[key] {
				continue
			}
			rootCost, _ := d.PathCost(root)
			candidates = append(candidates, Path{
				Nodes:       nodes,
				Cost:        rootCost + spurPath.Cost,
				DurationMin: d.PathDuration(nodes),
			})
			candidateSeen[key] = true
		}

		if len(candidates) == 0 {
			break
		}
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].Cost != candidates[j].Cost {
				return candidates[i].Cost < candidates[j].Cost
			}
			return slices.Compare(candidates[i].Nodes, candidates[j].Nodes) < 0
		})
		best := candidates[0]
		candidates = candidates[1:]
		accepted[pathKey(best.Nodes)] = true
		paths = append(paths, best)
	}
	return paths
}

type searchItem struct {
	cost  float64
	nodes []string
}

type searchHeap []searchItem

func (h searchHeap) Len() int { return len(h) }
func (h searchHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return slices.Compare(h[i].nodes, h[j].nodes) < 0
}
func (h searchHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *searchHeap) Push(x any)        { *h = append(*h, x.(searchItem)) }
func (h *searchHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// shortestFrom runs Dijkstra from src to GOAL honoring the mask. Costs are
// non-negative by construction, so the first time a node is settled its
// entry is minimal in cost and, among equal costs, lexicographically
// smallest: heap ties order whole node sequences, and any cheaper-or-equal
// lexicographically smaller route is pushed before the larger one pops.
func shortestFrom(d *WeightedDAG, src string, mask exclusionMask) (Path, bool) {
	if mask.nodes[src] {
		return Path{}, false
	}
	h := &searchHeap{{cost: 0, nodes: []string{src}}}
	settled := make(map[string]bool)

	for h.Len() > 0 {
		item := heap.Pop(h).(searchItem)
		node := item.nodes[len(item.nodes)-1]
		if settled[node] {
			continue
		}
		settled[node] = true
		if node == GoalNode {
			return Path{Nodes: item.nodes, Cost: item.cost, DurationMin: d.PathDuration(item.nodes)}, true
		}
		for _, arc := range d.Arcs(node) {
			if settled[arc.To] || mask.nodes[arc.To] || mask.arcs[[2]string{node, arc.To}] {
				continue
			}
			next := append(slices.Clone(item.nodes), arc.To)
			heap.Push(h, searchItem{cost: item.cost + arc.Cost, nodes: next})
		}
	}
	return Path{}, false
}

func pathKey(nodes []string) string {
	return strings.Join(nodes, "\x1f")
}
