package heuristics

import (
	"math"

	"github.com/vrp-solvers/pdptw/pdp"
)

// RequestOrder reports whether request r1 should sort before request r2.
type RequestOrder func(g *pdp.Graph, r1, r2 int) bool

// directCost returns the cost of the direct pickup->delivery arc for
// request r, or +Inf if that arc is forbidden — pushing such a request to
// the end of either ordering rather than letting an arbitrary comparison
// result leak in.
func directCost(g *pdp.Graph, r int) float64 {
	c, ok, err := g.Arc(r, g.DeliveryOf(r))
	if err != nil || !ok {
		return math.Inf(1)
	}

	return c
}

// AscendingDirectCost orders requests by increasing direct
// pickup-to-delivery cost c[r][n+r].
func AscendingDirectCost(g *pdp.Graph, r1, r2 int) bool {
	return directCost(g, r1) < directCost(g, r2)
}

// DescendingDirectCost is the dual of AscendingDirectCost.
func DescendingDirectCost(g *pdp.Graph, r1, r2 int) bool {
	return directCost(g, r1) > directCost(g, r2)
}
