// Package path implements the ordered node sequence ("Path") produced by
// the heuristics and consumed as a warm start by solver orchestration, plus
// the single insertion primitive every heuristic builds on.
package path

import (
	"errors"

	"github.com/vrp-solvers/pdptw/pdp"
)

// Sentinel errors for Path validation.
var (
	// ErrBadEndpoints indicates the path does not start at 0 or end at 2n+1.
	ErrBadEndpoints = errors.New("path: must start at 0 and end at 2n+1")

	// ErrNotPermutation indicates some node is missing or repeated.
	ErrNotPermutation = errors.New("path: must visit every node exactly once")

	// ErrPrecedenceViolated indicates a delivery appears before its pickup.
	ErrPrecedenceViolated = errors.New("path: pickup must precede its delivery")

	// ErrCapacityViolated indicates the running load left [0, capacity] somewhere along the path.
	ErrCapacityViolated = errors.New("path: running load out of [0, capacity]")

	// ErrForbiddenArc indicates a consecutive pair uses an arc with cost < 0.
	ErrForbiddenArc = errors.New("path: uses a forbidden arc")

	// ErrCostMismatch indicates TotalCost does not equal the sum of consecutive arc costs,
	// or TotalLoad does not equal the peak running load.
	ErrCostMismatch = errors.New("path: total_cost does not match the sum of arc costs")
)

// Path is an ordered sequence of node ids together with its running totals.
//
// TotalCost is the sum of consecutive arc costs. TotalLoad is the maximum
// running (cumulative-demand) load observed anywhere along the path — the
// quantity that must stay within [0, capacity] everywhere, and the scalar
// the heuristics' (cost, load) comparators trade off against cost.
type Path struct {
	Nodes     []int
	TotalCost int64
	TotalLoad int64
}

// New returns the empty path [0, 2n+1] with zero cost and zero load: the
// starting point every construction heuristic inserts requests into. The
// bridge between 0 and 2n+1 is virtual (not a real traversed arc) until the
// first Insert replaces it — see Insert's doc comment.
func New(g *pdp.Graph) Path {
	return Path{Nodes: []int{0, 2*g.N() + 1}, TotalCost: 0, TotalLoad: 0}
}

// Len returns the number of nodes currently in the path.
func (p Path) Len() int { return len(p.Nodes) }

// Clone returns a deep copy of p.
func (p Path) Clone() Path {
	nodes := make([]int, len(p.Nodes))
	copy(nodes, p.Nodes)

	return Path{Nodes: nodes, TotalCost: p.TotalCost, TotalLoad: p.TotalLoad}
}

// Validate checks every invariant a path produced by any heuristic must
// satisfy: correct endpoints, a permutation of every node, precedence,
// capacity bounds, only allowed arcs, and a consistent TotalCost.
func Validate(g *pdp.Graph, p Path) error {
	side := g.Size()
	if len(p.Nodes) != side {
		return ErrNotPermutation
	}
	if p.Nodes[0] != 0 || p.Nodes[len(p.Nodes)-1] != side-1 {
		return ErrBadEndpoints
	}

	seen := make([]bool, side)
	posOf := make([]int, side)
	for idx, node := range p.Nodes {
		if node < 0 || node >= side || seen[node] {
			return ErrNotPermutation
		}
		seen[node] = true
		posOf[node] = idx
	}
	for i := range seen {
		if !seen[i] {
			return ErrNotPermutation
		}
	}

	for _, pr := range g.Pairs() {
		if posOf[pr.Pickup] >= posOf[pr.Delivery] {
			return ErrPrecedenceViolated
		}
	}

	var (
		sum     int64
		load    int64
		peak    int64
		i       int
		node    int
		nextNde int
		cost    float64
		ok      bool
		err     error
	)
	for i, node = range p.Nodes {
		d, derr := g.Demand(node)
		if derr != nil {
			return derr
		}
		load += d
		if load < 0 || load > g.Capacity() {
			return ErrCapacityViolated
		}
		if load > peak {
			peak = load
		}
		if i+1 < len(p.Nodes) {
			nextNde = p.Nodes[i+1]
			cost, ok, err = g.Arc(node, nextNde)
			if err != nil {
				return err
			}
			if !ok {
				return ErrForbiddenArc
			}
			sum += int64(cost)
		}
	}
	if sum != p.TotalCost {
		return ErrCostMismatch
	}
	if peak != p.TotalLoad {
		return ErrCostMismatch
	}

	return nil
}
