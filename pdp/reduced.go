package pdp

import (
	"strconv"

	"github.com/vrp-solvers/pdptw/core"
)

// ReducedGraph retains only allowed arcs (cost >= 0) of a Graph, stored as a
// *core.Graph whose vertex IDs are the decimal node indices "0".."2n+1". Each
// retained arc carries a stable ArcIndex assigned by iterating the full
// (i,j) double loop in row-major order and skipping forbidden arcs — the
// same order the LP model builder must use, so that a column index derived
// here always names the same LP variable the solver sees.
type ReducedGraph struct {
	core      *core.Graph
	n         int
	arcIndex  map[[2]int]int // (i,j) -> LP column index
	arcByCol  [][2]int       // column index -> (i,j)
	nextIndex int
}

// Reduce builds the ReducedGraph of g: a directed, weighted *core.Graph
// containing exactly the allowed arcs of g, plus the column-index bookkeeping
// required by the feasibility and subtour separators: a column index must
// advance in lockstep with the LP variable ordering, so any caller building
// an LP model from this ReducedGraph assigns the same ordering.
func Reduce(g *Graph) (*ReducedGraph, error) {
	side := g.Size()
	gc := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	for i := 0; i < side; i++ {
		if err := gc.AddVertex(nodeID(i)); err != nil {
			return nil, err
		}
	}

	rg := &ReducedGraph{
		core:     gc,
		n:        g.n,
		arcIndex: make(map[[2]int]int),
	}

	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			cost, ok, err := g.Arc(i, j)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if _, err := gc.AddEdge(nodeID(i), nodeID(j), int64(cost)); err != nil {
				return nil, err
			}
			key := [2]int{i, j}
			rg.arcIndex[key] = rg.nextIndex
			rg.arcByCol = append(rg.arcByCol, key)
			rg.nextIndex++
		}
	}

	return rg, nil
}

// nodeID formats a node index as the core.Graph vertex ID.
func nodeID(i int) string { return strconv.Itoa(i) }

// NodeOf parses a core.Graph vertex ID back into a node index.
func NodeOf(id string) (int, error) { return strconv.Atoi(id) }

// Core returns the underlying *core.Graph, shared by reference; callers must
// not mutate it (it is rebuilt fresh by Reduce whenever the arc set changes,
// which it never does after construction for a given Graph).
func (rg *ReducedGraph) Core() *core.Graph { return rg.core }

// N returns the number of requests.
func (rg *ReducedGraph) N() int { return rg.n }

// ArcIndex returns the LP column index of arc i->j, or false if i->j is
// forbidden (not present in the reduced graph).
func (rg *ReducedGraph) ArcIndex(i, j int) (int, bool) {
	idx, ok := rg.arcIndex[[2]int{i, j}]
	return idx, ok
}

// NumArcs returns the total number of allowed arcs (LP columns).
func (rg *ReducedGraph) NumArcs() int { return len(rg.arcByCol) }

// ArcAt returns the (i,j) endpoints of LP column idx.
func (rg *ReducedGraph) ArcAt(idx int) (i, j int, ok bool) {
	if idx < 0 || idx >= len(rg.arcByCol) {
		return 0, 0, false
	}
	a := rg.arcByCol[idx]

	return a[0], a[1], true
}
