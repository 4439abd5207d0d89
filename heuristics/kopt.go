package heuristics

import (
	"time"

	"github.com/vrp-solvers/pdptw/pdp"
	"github.com/vrp-solvers/pdptw/path"
)

// InstanceSizeLimit caps the k-opt window size K admissible for instances of
// at most N requests, mirroring params.ko.instance_size_limits.
type InstanceSizeLimit struct {
	N int
	K int
}

// DefaultInstanceSizeLimits bounds k-opt's window size to the instance
// scale it stays affordable at: larger windows only pay off, and only stay
// cheap to search, on small instances.
var DefaultInstanceSizeLimits = []InstanceSizeLimit{
	{N: 5, K: 3},
	{N: 10, K: 2},
	{N: 20, K: 1},
}

// HeuristicFunc inserts a single request into a path at its cmp-best
// feasible position. InsertBest is the default; KOpt reruns it once for
// every request displaced from a removed window, which is what "re-running
// an insertion heuristic" means for the per-window reinsertion step.
type HeuristicFunc func(g *pdp.Graph, cmp path.Comparator, req int, p path.Path) (path.Path, bool)

// InsertBest is the default HeuristicFunc: the same best-feasible-position
// search BestInsertion uses for one request at a time.
func InsertBest(g *pdp.Graph, cmp path.Comparator, req int, p path.Path) (path.Path, bool) {
	return bestInsertionFor(g, cmp, req, p)
}

// effectiveK picks the tightest InstanceSizeLimit whose N admits n requests
// and returns min(requestedK, that limit's K). Reports false if no limit
// admits n (k-opt does not run for instances past every limit's N).
func effectiveK(n, requestedK int, limits []InstanceSizeLimit) (int, bool) {
	chosen := -1
	for i, lim := range limits {
		if n > lim.N {
			continue
		}
		if chosen == -1 || lim.N < limits[chosen].N {
			chosen = i
		}
	}
	if chosen == -1 {
		return 0, false
	}
	k := requestedK
	if limits[chosen].K < k {
		k = limits[chosen].K
	}
	if k < 1 {
		return 0, false
	}

	return k, true
}

// requestOrderInPath returns the requests in p in the order their pickups
// appear, the sequence k-opt slides its contiguous window over.
func requestOrderInPath(g *pdp.Graph, p path.Path) []int {
	order := make([]int, 0, g.N())
	for _, node := range p.Nodes {
		if g.IsPickup(node) {
			order = append(order, node)
		}
	}

	return order
}

func removeWindow(g *pdp.Graph, window []int, p path.Path) (path.Path, bool) {
	working := p
	for _, req := range window {
		next, ok := path.Remove(g, req, working)
		if !ok {
			return path.Path{}, false
		}
		working = next
	}

	return working, true
}

func reinsertWindow(g *pdp.Graph, cmp path.Comparator, rerun HeuristicFunc, window []int, p path.Path) (path.Path, bool) {
	working := p
	for _, req := range window {
		next, ok := rerun(g, cmp, req, working)
		if !ok {
			return path.Path{}, false
		}
		working = next
	}

	return working, true
}

// KOpt explores, for every input path, every contiguous window of k
// requests (k governed by limits and g.N(), capped by the requested k) by
// removing the window and reinserting each of its requests via rerun. A
// window whose reinsertion strictly improves total cost is kept; the zero
// or more improved paths are returned, originals are left untouched for the
// caller to append alongside.
func KOpt(g *pdp.Graph, paths []path.Path, k int, cmp path.Comparator, rerun HeuristicFunc, limits []InstanceSizeLimit, timer Timer) []path.Path {
	start := time.Now()
	defer report(timer, start)

	eff, ok := effectiveK(g.N(), k, limits)
	if !ok {
		return nil
	}

	var improved []path.Path
	for _, p := range paths {
		order := requestOrderInPath(g, p)
		for s := 0; s+eff <= len(order); s++ {
			window := order[s : s+eff]
			without, ok := removeWindow(g, window, p)
			if !ok {
				continue
			}
			candidate, ok := reinsertWindow(g, cmp, rerun, window, without)
			if !ok {
				continue
			}
			if candidate.TotalCost < p.TotalCost {
				improved = append(improved, candidate)
			}
		}
	}

	return improved
}
