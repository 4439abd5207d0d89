// Package heuristics implements the constructive warm-start families and the
// k-opt local-search improver that feed paths to solver orchestration.
//
// Every heuristic is polymorphic over callable comparator/regret/order
// values rather than an interface hierarchy, per the "callable values, not
// deep inheritance" convention: a Comparator orders two (cost, load)
// candidates, a RegretFunc scores how much deferring a request would cost,
// and a RequestOrder sorts requests before an ordered-insertion pass.
package heuristics

import (
	"errors"
	"math"
	"time"

	"github.com/vrp-solvers/pdptw/pdp"
	"github.com/vrp-solvers/pdptw/path"
)

// ErrNoFeasibleInsertion is returned when a heuristic cannot place every
// request into a single feasible path. Per the error-handling policy, the
// caller (RunAll, which builds solver.Run's warm starts) drops this
// heuristic's output and continues with the others — this is not a fatal
// condition.
var ErrNoFeasibleInsertion = errors.New("heuristics: no feasible insertion for remaining requests")

// Timer receives elapsed wall-clock time spent inside a heuristic or k-opt
// pass. solver.Counters satisfies this interface structurally; heuristics
// never imports solver, avoiding an import cycle. A nil Timer is valid and
// simply discards the measurement.
type Timer interface {
	AddHeuristicTime(d time.Duration)
}

func report(timer Timer, start time.Time) {
	if timer == nil {
		return
	}
	timer.AddHeuristicTime(time.Since(start))
}

// remainingRequests returns {1..g.N()} as a fresh, owned slice.
func remainingRequests(g *pdp.Graph) []int {
	out := make([]int, g.N())
	for i := range out {
		out[i] = i + 1
	}

	return out
}

// without returns a copy of reqs with req removed (reqs is never mutated).
func without(reqs []int, req int) []int {
	out := make([]int, 0, len(reqs)-1)
	for _, r := range reqs {
		if r != req {
			out = append(out, r)
		}
	}

	return out
}

// sentinel incumbent values: Insert only accepts a candidate that beats
// (sbc, sbl) under cmp, so an unset incumbent must never out-compare a real
// candidate — math.MaxInt64 plays that role for every comparator in this
// package (ratio, product, and cost-only alike divide or compare against it
// and always lose to a finite candidate).
const noIncumbent = int64(math.MaxInt64)

// bestInsertionFor finds the best feasible (x, y) to insert req into p under
// cmp, trying every gap pair. Returns the resulting path and true, or the
// zero Path and false if req has no feasible position in p.
func bestInsertionFor(g *pdp.Graph, cmp path.Comparator, req int, p path.Path) (path.Path, bool) {
	var (
		best  path.Path
		found bool
		sbc   = noIncumbent
		sbl   = noIncumbent
	)
	for x := 1; x <= len(p.Nodes)-1; x++ {
		widenedLen := len(p.Nodes) + 1
		for y := x + 1; y <= widenedLen-1; y++ {
			cand, ok := path.Insert(g, cmp, req, x, y, p, sbc, sbl)
			if !ok {
				continue
			}
			best, found = cand, true
			sbc, sbl = cand.TotalCost, cand.TotalLoad
		}
	}

	return best, found
}

// bestTwoInsertionsFor finds the best and (an approximation of the)
// second-best feasible insertion of req into p under cmp: each time a new
// incumbent dethrones the running best, the dethroned candidate becomes the
// running second-best. This follows directly from Insert's own
// incumbent-pruning contract rather than an exhaustive separate pass.
func bestTwoInsertionsFor(g *pdp.Graph, cmp path.Comparator, req int, p path.Path) (best path.Path, ok bool, secondCost, secondLoad int64, secondOK bool) {
	sbc, sbl := noIncumbent, noIncumbent
	for x := 1; x <= len(p.Nodes)-1; x++ {
		widenedLen := len(p.Nodes) + 1
		for y := x + 1; y <= widenedLen-1; y++ {
			cand, candOK := path.Insert(g, cmp, req, x, y, p, sbc, sbl)
			if !candOK {
				continue
			}
			if ok {
				secondCost, secondLoad, secondOK = best.TotalCost, best.TotalLoad, true
			}
			best, ok = cand, true
			sbc, sbl = cand.TotalCost, cand.TotalLoad
		}
	}

	return best, ok, secondCost, secondLoad, secondOK
}

// BestInsertion starts from the empty path and, at every step, inserts
// whichever (request, position) pair is cmp-minimal across every remaining
// request and every feasible gap. Fails if any step finds no feasible
// insertion at all.
func BestInsertion(g *pdp.Graph, cmp path.Comparator, timer Timer) (path.Path, error) {
	start := time.Now()
	defer report(timer, start)

	p := path.New(g)
	remaining := remainingRequests(g)

	for len(remaining) > 0 {
		var (
			bestPath path.Path
			bestReq  int
			found    bool
			sbc, sbl = noIncumbent, noIncumbent
		)
		for _, req := range remaining {
			for x := 1; x <= len(p.Nodes)-1; x++ {
				widenedLen := len(p.Nodes) + 1
				for y := x + 1; y <= widenedLen-1; y++ {
					cand, ok := path.Insert(g, cmp, req, x, y, p, sbc, sbl)
					if !ok {
						continue
					}
					bestPath, bestReq, found = cand, req, true
					sbc, sbl = cand.TotalCost, cand.TotalLoad
				}
			}
		}
		if !found {
			return path.Path{}, ErrNoFeasibleInsertion
		}
		p = bestPath
		remaining = without(remaining, bestReq)
	}

	return p, nil
}

// MaxRegret inserts, at every step, the remaining request with the largest
// regret — the cost of not placing it at its best position now, scored by
// regret from its best and (approximate) second-best feasible insertions.
// Requests with no feasible insertion at all contribute no candidate and are
// skipped; if none of the remaining requests can be placed, MaxRegret fails.
func MaxRegret(g *pdp.Graph, cmp path.Comparator, regret RegretFunc, timer Timer) (path.Path, error) {
	start := time.Now()
	defer report(timer, start)

	p := path.New(g)
	remaining := remainingRequests(g)

	for len(remaining) > 0 {
		var (
			bestOverall path.Path
			bestReq     int
			bestRegret  float64
			found       bool
		)
		for _, req := range remaining {
			best, ok, secondCost, secondLoad, secondOK := bestTwoInsertionsFor(g, cmp, req, p)
			if !ok {
				continue
			}
			rg := math.MaxFloat64
			if secondOK {
				rg = regret(best.TotalCost, best.TotalLoad, secondCost, secondLoad)
			}
			if !found || rg > bestRegret {
				bestOverall, bestReq, bestRegret, found = best, req, rg, true
			}
		}
		if !found {
			return path.Path{}, ErrNoFeasibleInsertion
		}
		p = bestOverall
		remaining = without(remaining, bestReq)
	}

	return p, nil
}

// OrderedRequests sorts the remaining requests once via order, then inserts
// each in that fixed order at its cmp-best feasible position. Fails if any
// request in the order has no feasible position given what came before it.
func OrderedRequests(g *pdp.Graph, cmp path.Comparator, order RequestOrder, timer Timer) (path.Path, error) {
	start := time.Now()
	defer report(timer, start)

	p := path.New(g)
	remaining := remainingRequests(g)
	sortRequests(g, remaining, order)

	for _, req := range remaining {
		cand, ok := bestInsertionFor(g, cmp, req, p)
		if !ok {
			return path.Path{}, ErrNoFeasibleInsertion
		}
		p = cand
	}

	return p, nil
}

// sortRequests performs a simple insertion sort of reqs by order: the
// request lists this package ever sorts are bounded by instance size (a few
// dozen requests at most), so O(n^2) is the straightforward, allocation-free
// choice over pulling in sort.Slice's closure overhead for such small n.
func sortRequests(g *pdp.Graph, reqs []int, order RequestOrder) {
	for i := 1; i < len(reqs); i++ {
		for j := i; j > 0 && order(g, reqs[j], reqs[j-1]); j-- {
			reqs[j], reqs[j-1] = reqs[j-1], reqs[j]
		}
	}
}
