package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/vrp-solvers/pdptw/cuts"
	"github.com/vrp-solvers/pdptw/matrix"
	"github.com/vrp-solvers/pdptw/path"
	"github.com/vrp-solvers/pdptw/pdp"
)

// fakeEngine is a minimal in-memory Engine stand-in: it records every warm
// start and cut it's offered, and Optimize returns whichever warm start is
// cheapest (there is no real LP solver to exercise).
type fakeEngine struct {
	warmStarts []path.Path
	addedCuts  []cuts.LinearCut
	cb         func(xbar *mat.Dense) error
	addCutErr  error
}

func (f *fakeEngine) AddCut(c cuts.LinearCut) error {
	if f.addCutErr != nil {
		return f.addCutErr
	}
	f.addedCuts = append(f.addedCuts, c)

	return nil
}

func (f *fakeEngine) SetWarmStart(p path.Path) error {
	f.warmStarts = append(f.warmStarts, p)

	return nil
}

func (f *fakeEngine) Variable(i, j int) (int, bool) { return 0, false }

func (f *fakeEngine) OnFractionalSolution(cb func(xbar *mat.Dense) error) error {
	f.cb = cb

	return nil
}

func (f *fakeEngine) Optimize() (path.Path, error) {
	best := f.warmStarts[0]
	for _, p := range f.warmStarts[1:] {
		if p.TotalCost < best.TotalCost {
			best = p
		}
	}

	return best, nil
}

func unitCostGraph(t *testing.T) *pdp.Graph {
	t.Helper()
	n, side := 2, 6
	m, err := matrix.NewDense(side, side)
	require.NoError(t, err)
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			v := 1.0
			if i == j {
				v = -1
			}
			require.NoError(t, m.Set(i, j, v))
		}
	}
	g, err := pdp.NewGraph(n, 10, m, []int64{6, 6})
	require.NoError(t, err)

	return g
}

func TestRun_CollectsWarmStartsAndCounters(t *testing.T) {
	g := unitCostGraph(t)
	gr, err := pdp.Reduce(g)
	require.NoError(t, err)

	engine := &fakeEngine{}
	result, err := Run(g, gr, engine, NewOptions(WithSeed(3)))
	require.NoError(t, err)

	assert.NotEmpty(t, engine.warmStarts)
	assert.NotNil(t, engine.cb)
	assert.Equal(t, result.Best, engine.warmStarts[bestIndex(engine.warmStarts)])
	assert.GreaterOrEqual(t, result.Counters.HeuristicTime().Nanoseconds(), int64(0))
}

func TestRun_SeparationCallbackAddsCuts(t *testing.T) {
	g := unitCostGraph(t)
	gr, err := pdp.Reduce(g)
	require.NoError(t, err)

	engine := &fakeEngine{}
	_, err = Run(g, gr, engine, NewOptions(WithSeed(1), WithCutEvery(1)))
	require.NoError(t, err)
	require.NotNil(t, engine.cb)

	side := g.Size()
	xbar := mat.NewDense(side, side, nil)
	xbar.Set(1, 3, 0.4) // a fractional value well under 1, should trigger a feasibility cut

	require.NoError(t, engine.cb(xbar))
	assert.NotEmpty(t, engine.addedCuts)
	assert.Equal(t, int64(len(engine.addedCuts)), engine.addedCutsCount())
}

func (f *fakeEngine) addedCutsCount() int64 { return int64(len(f.addedCuts)) }

func TestRun_CutEveryThrottlesSeparation(t *testing.T) {
	g := unitCostGraph(t)
	gr, err := pdp.Reduce(g)
	require.NoError(t, err)

	engine := &fakeEngine{}
	_, err = Run(g, gr, engine, NewOptions(WithCutEvery(2)))
	require.NoError(t, err)

	side := g.Size()
	xbar := mat.NewDense(side, side, nil)
	xbar.Set(1, 3, 0.4)

	require.NoError(t, engine.cb(xbar)) // node 1: skipped
	assert.Empty(t, engine.addedCuts)

	require.NoError(t, engine.cb(xbar)) // node 2: separated
	assert.NotEmpty(t, engine.addedCuts)
}

func bestIndex(paths []path.Path) int {
	best := 0
	for i, p := range paths {
		if p.TotalCost < paths[best].TotalCost {
			best = i
		}
	}

	return best
}
