package cuts

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/vrp-solvers/pdptw/core"
	"github.com/vrp-solvers/pdptw/flow"
	"github.com/vrp-solvers/pdptw/pdp"
)

// xbarScale converts a fractional LP value in [0,1] to the integer edge
// weight core.Graph (and therefore flow.Dinic, which sums int64 weights
// into float64 capacities) requires — core.Graph has no fractional-weight
// representation, so the support network built per separation round is
// scaled up and the resulting min value (1-eps)*xbarScale is compared
// against the scaled max-flow value instead of comparing fractions directly.
const xbarScale = 1 << 20

// SeparateFeasibilityCuts checks, for every request i, a precedence flow
// (source i, sink n+i) and a cycle flow (source n+i, sink 2n+1) on a support
// network built from gr's allowed arcs and the current fractional solution
// xbar. A max-flow strictly below 1-eps yields a min-cut partition (S, S̄);
// the crossing allowed arcs become a violated feasibility cut Σx[u,v] >= 1.
func SeparateFeasibilityCuts(g *pdp.Graph, gr *pdp.ReducedGraph, xbar *mat.Dense, opts Options) ([]LinearCut, error) {
	net, err := buildSupportNetwork(gr, xbar)
	if err != nil {
		return nil, fmt.Errorf("cuts: feasibility: %w", err)
	}

	n := g.N()
	threshold := (1 - opts.Eps) * xbarScale
	flowOpts := flow.DefaultOptions()

	var cuts []LinearCut
	alreadyCheckedCycle := make(map[int]bool, n)

	for i := 1; i <= n; i++ {
		delivery := g.DeliveryOf(i)

		cut, err := separateOne(net, gr, nodeID(i), nodeID(delivery), threshold, flowOpts)
		if err != nil {
			return nil, fmt.Errorf("cuts: feasibility: precedence flow for request %d: %w", i, err)
		}
		if cut != nil {
			cuts = append(cuts, *cut)
		}

		// Cycle flow: skip if this delivery node was already found source-side
		// in a prior cycle computation this round. This only skips cuts
		// already implied by an earlier round's partition, never a
		// correctness-relevant cut.
		if alreadyCheckedCycle[delivery] {
			continue
		}

		returnDepot := g.Size() - 1
		cycleCut, sourceSide, err := separateOneWithSide(net, gr, nodeID(delivery), nodeID(returnDepot), threshold, flowOpts)
		if err != nil {
			return nil, fmt.Errorf("cuts: feasibility: cycle flow for request %d: %w", i, err)
		}
		if cycleCut != nil {
			cuts = append(cuts, *cycleCut)
		}
		for _, id := range sourceSide {
			if j, convErr := strconv.Atoi(id); convErr == nil && g.IsDelivery(j) {
				alreadyCheckedCycle[j] = true
			}
		}
	}

	return cuts, nil
}

// buildSupportNetwork builds the flow network used by both flow families:
// one core.Graph vertex per reduced-graph node, one directed weighted edge
// per allowed arc with weight round(xbar[i][j] * xbarScale).
func buildSupportNetwork(gr *pdp.ReducedGraph, xbar *mat.Dense) (*core.Graph, error) {
	net := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	for idx := 0; idx < gr.NumArcs(); idx++ {
		i, j, ok := gr.ArcAt(idx)
		if !ok {
			continue
		}
		if err := net.AddVertex(nodeID(i)); err != nil {
			return nil, err
		}
		if err := net.AddVertex(nodeID(j)); err != nil {
			return nil, err
		}
		w := int64(xbar.At(i, j)*xbarScale + 0.5)
		if _, err := net.AddEdge(nodeID(i), nodeID(j), w); err != nil {
			return nil, err
		}
	}

	return net, nil
}

// separateOne computes max-flow(source, sink) on net and, if it falls below
// threshold, emits the crossing-arc feasibility cut.
func separateOne(net *core.Graph, gr *pdp.ReducedGraph, source, sink string, threshold float64, flowOpts flow.FlowOptions) (*LinearCut, error) {
	cut, _, err := separateOneWithSide(net, gr, source, sink, threshold, flowOpts)
	return cut, err
}

// separateOneWithSide is separateOne but also returns the min-cut's
// source-side node ids, which the cycle-flow loop uses to populate
// already_checked_cycle.
func separateOneWithSide(net *core.Graph, gr *pdp.ReducedGraph, source, sink string, threshold float64, flowOpts flow.FlowOptions) (*LinearCut, []string, error) {
	if !net.HasVertex(source) || !net.HasVertex(sink) {
		return nil, nil, nil
	}

	maxFlow, residual, err := flow.Dinic(net, source, sink, flowOpts)
	if err != nil {
		return nil, nil, err
	}
	if maxFlow >= threshold {
		return nil, nil, nil
	}

	sourceSide := reachable(residual, source, flowOpts.Epsilon)
	inS := make(map[string]bool, len(sourceSide))
	for _, id := range sourceSide {
		inS[id] = true
	}

	coeffs := make(map[int]float64)
	for idx := 0; idx < gr.NumArcs(); idx++ {
		i, j, ok := gr.ArcAt(idx)
		if !ok {
			continue
		}
		u, v := nodeID(i), nodeID(j)
		if inS[u] && !inS[v] {
			coeffs[idx] = 1
		}
	}
	if len(coeffs) == 0 {
		return nil, sourceSide, nil
	}

	return &LinearCut{Coeffs: coeffs, RHS: 1, Sense: GE}, sourceSide, nil
}

// reachable returns the ids reachable from source following edges with
// residual capacity strictly above eps — the min-cut's source side S.
func reachable(residual *core.Graph, source string, eps float64) []string {
	if eps <= 0 {
		eps = 1e-9
	}
	if !residual.HasVertex(source) {
		return nil
	}

	visited := map[string]bool{source: true}
	queue := []string{source}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		neighbors, err := residual.Neighbors(u)
		if err != nil {
			continue
		}
		for _, e := range neighbors {
			if float64(e.Weight) <= eps || visited[e.To] {
				continue
			}
			visited[e.To] = true
			queue = append(queue, e.To)
		}
	}

	out := make([]string, 0, len(visited))
	for id := range visited {
		out = append(out, id)
	}

	return out
}

// nodeID formats a node index the same way pdp.Reduce does, so vertex ids
// agree between the reduced graph and this package's support network.
func nodeID(i int) string { return strconv.Itoa(i) }
