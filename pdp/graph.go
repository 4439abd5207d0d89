package pdp

import (
	"github.com/vrp-solvers/pdptw/matrix"
)

// Graph is the immutable cost/capacity/demand model of a pickup-and-delivery
// instance: depot 0, pickups 1..n, deliveries n+1..2n, return depot 2n+1.
//
// Invariants (enforced once, at construction, by NewGraph):
//   - Cost is square of side 2n+2.
//   - Cost.At(i,i) < 0 for every i (self-arcs are forbidden).
//   - Cost.At(0,i) >= 0 and Cost.At(n+i,2n+1) >= 0 for every pickup i.
//   - demand[i] > 0 for every pickup i (delivery demand is its negation).
//
// A Cost entry < 0 marks a forbidden arc; callers must check Arc's ok
// return before treating a value as a real cost.
type Graph struct {
	n        int
	capacity int64
	cost     *matrix.Dense
	demand   []int64 // length n; demand[i-1] is the pickup demand of request i
}

// NewGraph validates and constructs a Graph. cost must be square of side
// 2n+2; demand must have length n and hold strictly positive pickup demands.
// NewGraph takes ownership of neither slice nor matrix backing storage by
// reference semantics beyond what *matrix.Dense already implies — callers
// should not mutate cost after construction.
func NewGraph(n int, capacity int64, cost *matrix.Dense, demand []int64) (*Graph, error) {
	if n < 1 {
		return nil, ErrTooFewRequests
	}
	if capacity <= 0 {
		return nil, ErrBadCapacity
	}
	side := 2*n + 2
	if cost == nil || cost.Rows() != side || cost.Cols() != side {
		return nil, ErrCostShape
	}
	if len(demand) != n {
		return nil, ErrDemandShape
	}
	for _, d := range demand {
		if d <= 0 {
			return nil, ErrBadDemand
		}
	}
	for i := 0; i < side; i++ {
		v, err := cost.At(i, i)
		if err != nil {
			return nil, ErrCostShape
		}
		if v >= 0 {
			return nil, ErrCostDiagonal
		}
	}
	for i := 1; i <= n; i++ {
		depotOut, err := cost.At(0, i)
		if err != nil || depotOut < 0 {
			return nil, ErrDepotArc
		}
		depotIn, err := cost.At(n+i, side-1)
		if err != nil || depotIn < 0 {
			return nil, ErrDepotArc
		}
	}

	demandCopy := make([]int64, n)
	copy(demandCopy, demand)

	return &Graph{n: n, capacity: capacity, cost: cost, demand: demandCopy}, nil
}

// N returns the number of pickup-delivery requests.
func (g *Graph) N() int { return g.n }

// Capacity returns the vehicle's capacity.
func (g *Graph) Capacity() int64 { return g.capacity }

// Size returns the number of nodes, 2n+2 (depot, pickups, deliveries, return depot).
func (g *Graph) Size() int { return 2*g.n + 2 }

// Arc reports the cost of arc i->j and whether it is allowed (cost >= 0).
// A forbidden arc (cost < 0, per the data model's convention) reports ok == false.
func (g *Graph) Arc(i, j int) (cost float64, ok bool, err error) {
	if i < 0 || i > 2*g.n+1 || j < 0 || j > 2*g.n+1 {
		return 0, false, ErrNodeOutOfRange
	}
	v, err := g.cost.At(i, j)
	if err != nil {
		return 0, false, err
	}

	return v, v >= 0, nil
}

// Demand returns the (signed) demand carried by node i: positive for a
// pickup, the negation for its paired delivery, zero for the two depots.
func (g *Graph) Demand(i int) (int64, error) {
	switch {
	case i == 0 || i == 2*g.n+1:
		return 0, nil
	case i >= 1 && i <= g.n:
		return g.demand[i-1], nil
	case i >= g.n+1 && i <= 2*g.n:
		return -g.demand[i-g.n-1], nil
	default:
		return 0, ErrNodeOutOfRange
	}
}

// Pairs returns the n pickup/delivery pairs (i, n+i) for i := 1..n.
func (g *Graph) Pairs() []Pair {
	pairs := make([]Pair, g.n)
	for i := 1; i <= g.n; i++ {
		pairs[i-1] = Pair{Request: i, Pickup: i, Delivery: g.n + i}
	}

	return pairs
}

// IsPickup reports whether node i is a pickup node (1..n).
func (g *Graph) IsPickup(i int) bool { return i >= 1 && i <= g.n }

// IsDelivery reports whether node i is a delivery node (n+1..2n).
func (g *Graph) IsDelivery(i int) bool { return i >= g.n+1 && i <= 2*g.n }

// DeliveryOf returns the delivery node paired with pickup i.
func (g *Graph) DeliveryOf(i int) int { return i + g.n }

// PickupOf returns the pickup node paired with delivery j.
func (g *Graph) PickupOf(j int) int { return j - g.n }
