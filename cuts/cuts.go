// Package cuts implements the two on-the-fly cut separators branch-and-cut
// calls on every fractional LP incumbent: feasibility/subtour cuts derived
// from a min-cut on the reduced support graph, and Grötschel–Padberg-style
// precedence inequalities derived by tabu search over node-set partitions.
package cuts

import (
	"math/rand"
)

// Sense is the comparison operator of a LinearCut's inequality.
type Sense int

const (
	// GE means the left-hand side must be >= RHS.
	GE Sense = iota
	// LE means the left-hand side must be <= RHS.
	LE
)

// LinearCut is a single linear inequality over LP arc variables, indexed by
// the reduced graph's stable LP column numbering (pdp.ReducedGraph.ArcIndex).
type LinearCut struct {
	Coeffs map[int]float64 // LP column index -> coefficient
	RHS    float64
	Sense  Sense
}

// violation returns how much the cut is violated given its left-hand side
// lhs evaluated at xbar: positive means violated. A GE cut with
// lhs < RHS is violated by RHS-lhs; a LE cut with lhs > RHS is violated by
// lhs-RHS.
func (c LinearCut) violation(lhs float64) float64 {
	switch c.Sense {
	case GE:
		return c.RHS - lhs
	case LE:
		return lhs - c.RHS
	default:
		return 0
	}
}

// Options configures both separators, following the functional-options
// idiom every Options-carrying constructor in this module uses.
type Options struct {
	Eps          float64      // numerical tolerance: cuts violated by <= Eps are not emitted
	TabuDuration int          // iterations a toggled-out node stays tabu (default 10)
	Iterations   int          // tabu-search rounds per separator call (default 25)
	Rand         *rand.Rand   // injected RNG for Grötschel anchor permutation (never nil after New)
}

// Option mutates an Options under construction.
type Option func(o *Options)

// WithEps overrides the numerical tolerance.
func WithEps(eps float64) Option {
	return func(o *Options) { o.Eps = eps }
}

// WithTabuDuration overrides the tabu tenure.
func WithTabuDuration(n int) Option {
	return func(o *Options) { o.TabuDuration = n }
}

// WithIterations overrides the number of tabu-search rounds per call.
func WithIterations(n int) Option {
	return func(o *Options) { o.Iterations = n }
}

// WithSeed seeds the Grötschel anchor-permutation RNG reproducibly.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Rand = rand.New(rand.NewSource(seed)) }
}

// WithRand injects an explicit RNG source. Panics on nil, matching the
// builder package's convention of surfacing a nil functional dependency as a
// programmer error immediately rather than deferring to a nil-pointer panic
// deep inside the tabu search.
func WithRand(rng *rand.Rand) Option {
	if rng == nil {
		panic("cuts: WithRand(nil)")
	}

	return func(o *Options) { o.Rand = rng }
}

// NewOptions returns Options with the solver's default tolerances
// (Eps=1e-6, TabuDuration=10, Iterations=25), then applies opts in order.
func NewOptions(opts ...Option) Options {
	o := Options{
		Eps:          1e-6,
		TabuDuration: 10,
		Iterations:   25,
		Rand:         rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
