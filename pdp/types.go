// Package pdp defines the data model for the single-vehicle pickup-and-delivery
// routing problem: a depot (node 0), n pickups (nodes 1..n), their paired
// deliveries (nodes n+1..2n), and a return depot (node 2n+1), joined by a
// directed cost matrix and a per-pickup demand.
//
// Graph is immutable after construction and safe to share by reference across
// heuristics, cut separators, and solver orchestration (none of them mutate it).
package pdp

import "errors"

// Sentinel errors for Graph construction and queries.
var (
	// ErrTooFewRequests indicates n < 1; a pickup-delivery instance needs at least one request.
	ErrTooFewRequests = errors.New("pdp: n must be >= 1")

	// ErrBadCapacity indicates a non-positive vehicle capacity.
	ErrBadCapacity = errors.New("pdp: capacity must be > 0")

	// ErrCostShape indicates the cost matrix is not square of side 2n+2.
	ErrCostShape = errors.New("pdp: cost matrix must be square of side 2n+2")

	// ErrCostDiagonal indicates some c[i][i] >= 0 (self-arcs must be forbidden).
	ErrCostDiagonal = errors.New("pdp: cost diagonal must be forbidden (negative)")

	// ErrDepotArc indicates a pickup is unreachable from the depot, or a delivery
	// cannot reach the return depot (c[0][i] < 0 or c[n+i][2n+1] < 0).
	ErrDepotArc = errors.New("pdp: depot must reach every pickup and be reachable from every delivery")

	// ErrDemandShape indicates len(demand) != n.
	ErrDemandShape = errors.New("pdp: demand vector must have length n")

	// ErrBadDemand indicates a non-positive pickup demand.
	ErrBadDemand = errors.New("pdp: pickup demand must be > 0")

	// ErrNodeOutOfRange indicates a node index outside [0, 2n+1].
	ErrNodeOutOfRange = errors.New("pdp: node index out of range")
)

// Pair is a pickup/delivery request: Pickup must precede Delivery in any
// feasible Path. Delivery is always Pickup+n.
type Pair struct {
	Request  int // request number, 1..n
	Pickup   int // node id, == Request
	Delivery int // node id, == Request + n
}
