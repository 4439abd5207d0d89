// Package solver orchestrates a branch-and-cut run against an external,
// opaque MILP engine: it builds warm-start paths from the heuristic pool,
// registers a fractional-solution callback that separates feasibility and
// subtour/precedence cuts on a throttled cadence, and collects the run's
// counters.
package solver

import (
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/vrp-solvers/pdptw/cuts"
	"github.com/vrp-solvers/pdptw/heuristics"
	"github.com/vrp-solvers/pdptw/path"
	"github.com/vrp-solvers/pdptw/pdp"
)

// Engine is the MILP solver's external collaborator boundary: this package
// never builds a model itself, only feeds one through this interface.
type Engine interface {
	// AddCut installs a lazy/user cut on the running model.
	AddCut(c cuts.LinearCut) error
	// SetWarmStart offers p as a candidate warm-start solution.
	SetWarmStart(p path.Path) error
	// Variable returns the LP column for arc (i, j), or ok=false if no such
	// column exists (matches pdp.ReducedGraph.ArcIndex's contract).
	Variable(i, j int) (col int, ok bool)
	// OnFractionalSolution registers cb to run whenever the engine reaches a
	// fractional incumbent at a branch-and-bound node, passing that node's
	// LP solution as xbar. Run wraps cb with the cadence throttle and both
	// separators; a non-nil return aborts the solve.
	OnFractionalSolution(cb func(xbar *mat.Dense) error) error
	// Optimize runs the engine to completion and returns its best found path.
	Optimize() (path.Path, error)
}

// Options configures a solver.Run call, following this module's
// functional-options idiom.
type Options struct {
	Eps          float64
	TabuDuration int
	Iterations   int
	CutEvery     int // separate cuts every CutEvery fractional nodes (1 = every node)
	Rand         *rand.Rand
}

// Option mutates an Options under construction.
type Option func(o *Options)

// WithEps overrides the numerical tolerance forwarded to cuts.Options.
func WithEps(eps float64) Option { return func(o *Options) { o.Eps = eps } }

// WithTabuDuration overrides the subtour separator's tabu tenure.
func WithTabuDuration(n int) Option { return func(o *Options) { o.TabuDuration = n } }

// WithIterations overrides the subtour separator's tabu-search round count.
func WithIterations(n int) Option { return func(o *Options) { o.Iterations = n } }

// WithCutEvery overrides the separation cadence: cuts are only sought at
// every CutEvery-th fractional node reached.
func WithCutEvery(n int) Option { return func(o *Options) { o.CutEvery = n } }

// WithSeed seeds the Grötschel anchor-permutation RNG reproducibly.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Rand = rand.New(rand.NewSource(seed)) }
}

// NewOptions returns Options with this solver's default tolerances
// (Eps=1e-6, TabuDuration=10, Iterations=25, CutEvery=1), then applies opts
// in order.
func NewOptions(opts ...Option) Options {
	o := Options{
		Eps:          1e-6,
		TabuDuration: 10,
		Iterations:   25,
		CutEvery:     1,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Result is a completed run's best path plus the counters accumulated along
// the way.
type Result struct {
	Best     path.Path
	Counters *Counters
}

// Run builds warm-start paths from the full heuristic pool, offers each to
// engine, registers the throttled cut-separation callback, then runs engine
// to completion.
func Run(g *pdp.Graph, gr *pdp.ReducedGraph, engine Engine, opts Options) (Result, error) {
	counters := NewCounters()

	for _, p := range heuristics.RunAll(g, counters) {
		if err := engine.SetWarmStart(p); err != nil {
			return Result{}, fmt.Errorf("solver: warm start: %w", err)
		}
	}

	cutOpts := buildCutOptions(opts)
	node := 0
	separate := func(xbar *mat.Dense) error {
		node++
		if opts.CutEvery > 1 && node%opts.CutEvery != 0 {
			return nil
		}

		start := time.Now()
		feasCuts, err := cuts.SeparateFeasibilityCuts(g, gr, xbar, cutOpts)
		if err != nil {
			return fmt.Errorf("solver: feasibility separation: %w", err)
		}
		subtourCuts, err := cuts.SeparateSubtourCuts(gr, xbar, cutOpts)
		if err != nil {
			return fmt.Errorf("solver: subtour separation: %w", err)
		}
		counters.AddSeparationTime(time.Since(start))

		for _, c := range append(feasCuts, subtourCuts...) {
			if err := engine.AddCut(c); err != nil {
				return fmt.Errorf("solver: add cut: %w", err)
			}
			counters.AddCuts(1)
		}

		return nil
	}

	if err := engine.OnFractionalSolution(separate); err != nil {
		return Result{}, fmt.Errorf("solver: register separator: %w", err)
	}

	best, err := engine.Optimize()
	if err != nil {
		return Result{}, fmt.Errorf("solver: optimize: %w", err)
	}

	return Result{Best: best, Counters: counters}, nil
}

func buildCutOptions(opts Options) cuts.Options {
	cutOpts := []cuts.Option{
		cuts.WithEps(opts.Eps),
		cuts.WithTabuDuration(opts.TabuDuration),
		cuts.WithIterations(opts.Iterations),
	}
	if opts.Rand != nil {
		cutOpts = append(cutOpts, cuts.WithRand(opts.Rand))
	}

	return cuts.NewOptions(cutOpts...)
}
