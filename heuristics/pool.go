package heuristics

import (
	"github.com/vrp-solvers/pdptw/pdp"
	"github.com/vrp-solvers/pdptw/path"
)

// RunAll runs a fixed battery of six heuristics: two
// max-regret runs (ratio regret under the ratio comparator, product regret
// under the product comparator), two ordered-request runs (ascending and descending direct
// cost, under the cost-only comparator), and two best-insertion runs (ratio
// and product comparators) — followed by a k-opt improvement pass over
// whatever of those six succeeded. A heuristic that fails to place every
// request is dropped from the pool rather than aborting the batch, per the
// "each heuristic's failure is isolated" error policy.
func RunAll(g *pdp.Graph, timer Timer) []path.Path {
	ratio := RatioComparator()
	product := ProductComparator()
	costOnly := CostOnlyComparator()

	var paths []path.Path

	runners := []func() (path.Path, error){
		func() (path.Path, error) { return MaxRegret(g, ratio, RatioRegret, timer) },
		func() (path.Path, error) { return MaxRegret(g, product, ProductRegret, timer) },
		func() (path.Path, error) { return OrderedRequests(g, costOnly, AscendingDirectCost, timer) },
		func() (path.Path, error) { return OrderedRequests(g, costOnly, DescendingDirectCost, timer) },
		func() (path.Path, error) { return BestInsertion(g, ratio, timer) },
		func() (path.Path, error) { return BestInsertion(g, product, timer) },
	}
	for _, run := range runners {
		p, err := run()
		if err == nil {
			paths = append(paths, p)
		}
	}

	kPaths := KOpt(g, paths, maxRequestedK(DefaultInstanceSizeLimits), ratio, InsertBest, DefaultInstanceSizeLimits, timer)

	return append(kPaths, paths...)
}

func maxRequestedK(limits []InstanceSizeLimit) int {
	max := 0
	for _, lim := range limits {
		if lim.K > max {
			max = lim.K
		}
	}

	return max
}
