package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrp-solvers/pdptw/matrix"
	"github.com/vrp-solvers/pdptw/path"
	"github.com/vrp-solvers/pdptw/pdp"
)

// unitCostGraph builds the n=2, capacity=10, demands=[6,6], symmetric
// unit-cost, all-arcs-allowed instance from the end-to-end scenario: every
// off-diagonal arc costs 1, every diagonal entry is forbidden (-1).
func unitCostGraph(t *testing.T) *pdp.Graph {
	t.Helper()
	n := 2
	side := 2*n + 2
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

func TestBestInsertion_ValidPath(t *testing.T) {
	g := unitCostGraph(t)
	for _, cmp := range []path.Comparator{RatioComparator(), ProductComparator(), CostOnlyComparator()} {
		p, err := BestInsertion(g, cmp, nil)
		require.NoError(t, err)
		assert.NoError(t, path.Validate(g, p))
	}
}

func TestMaxRegret_ValidPath(t *testing.T) {
	g := unitCostGraph(t)
	p, err := MaxRegret(g, RatioComparator(), RatioRegret, nil)
	require.NoError(t, err)
	assert.NoError(t, path.Validate(g, p))

	p, err = MaxRegret(g, ProductComparator(), ProductRegret, nil)
	require.NoError(t, err)
	assert.NoError(t, path.Validate(g, p))
}

func TestOrderedRequests_ValidPath(t *testing.T) {
	g := unitCostGraph(t)
	for _, order := range []RequestOrder{AscendingDirectCost, DescendingDirectCost} {
		p, err := OrderedRequests(g, CostOnlyComparator(), order, nil)
		require.NoError(t, err)
		assert.NoError(t, path.Validate(g, p))
	}
}

func TestBestInsertion_Deterministic(t *testing.T) {
	g := unitCostGraph(t)
	p1, err1 := BestInsertion(g, RatioComparator(), nil)
	p2, err2 := BestInsertion(g, RatioComparator(), nil)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, p1.TotalCost, p2.TotalCost)
	assert.Equal(t, p1.Nodes, p2.Nodes)
}

func TestRunAll_NonEmpty(t *testing.T) {
	g := unitCostGraph(t)
	paths := RunAll(g, nil)
	require.NotEmpty(t, paths)
	for _, p := range paths {
		assert.NoError(t, path.Validate(g, p))
	}
}

func TestKOpt_NoLimitAdmitsLargeInstance(t *testing.T) {
	g := unitCostGraph(t)
	p, err := BestInsertion(g, RatioComparator(), nil)
	require.NoError(t, err)

	limits := []InstanceSizeLimit{{N: 1, K: 1}} // n=2 exceeds every limit
	out := KOpt(g, []path.Path{p}, 1, RatioComparator(), InsertBest, limits, nil)
	assert.Nil(t, out)
}

func TestForbiddenArc_NeverInPath(t *testing.T) {
	// n=3, one forbidden arc c[1][4] (pickup 1 -> its own delivery, node 4).
	n := 3
	side := 2*n + 2
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
	require.NoError(t, m.Set(1, 4, -1))
	g, err := pdp.NewGraph(n, 20, m, []int64{4, 4, 4})
	require.NoError(t, err)

	p, err := BestInsertion(g, RatioComparator(), nil)
	require.NoError(t, err)
	require.NoError(t, path.Validate(g, p))
	for i := 0; i+1 < len(p.Nodes); i++ {
		assert.False(t, p.Nodes[i] == 1 && p.Nodes[i+1] == 4, "path must not use forbidden arc 1->4")
	}
}
