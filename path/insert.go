package path

import "github.com/vrp-solvers/pdptw/pdp"

// Comparator orders two candidate insertions by their resulting (cost, load)
// pair, reporting whether the first candidate is strictly preferred over the
// second. Insert uses it both to decide whether a new candidate beats the
// incumbent (sbc, sbl) and, at the heuristics layer, to rank positions.
type Comparator func(c1, l1, c2, l2 int64) bool

// Insert attempts to splice request req's pickup and delivery nodes into p at
// gap positions x and y, returning the resulting path and true if the
// insertion is feasible and beats the incumbent (sbc, sbl) under cmp.
//
// x is a gap index into p.Nodes: the pickup lands between p.Nodes[x-1] and
// p.Nodes[x], so 1 <= x <= len(p.Nodes)-1 (the fixed depot at index 0 and
// return depot at the last index are never displaced). y is a gap index into
// the x-widened path (pickup already inserted), so x+1 <= y <= len(p.Nodes).
//
// When p is still the empty path [0, 2n+1] (len(p.Nodes) == 2), the single
// edge it contains is a virtual placeholder of cost 0, not a real traversed
// arc — Insert charges nothing to remove it. Every other removed or added
// edge is a real arc and must be allowed (see pdp.Graph.Arc); a path built
// entirely out of such edges satisfies Validate's ErrCostMismatch check.
//
// Insert never mutates p; on rejection (infeasible or not preferred) it
// returns the zero Path and false.
func Insert(g *pdp.Graph, cmp Comparator, req, x, y int, p Path, sbc, sbl int64) (Path, bool) {
	if req < 1 || req > g.N() {
		return Path{}, false
	}
	if x < 1 || x > len(p.Nodes)-1 {
		return Path{}, false
	}

	pickup := req
	delivery := g.DeliveryOf(req)

	widened := make([]int, 0, len(p.Nodes)+1)
	widened = append(widened, p.Nodes[:x]...)
	widened = append(widened, pickup)
	widened = append(widened, p.Nodes[x:]...)

	if y < x+1 || y > len(widened)-1 {
		return Path{}, false
	}

	nodes := make([]int, 0, len(widened)+1)
	nodes = append(nodes, widened[:y]...)
	nodes = append(nodes, delivery)
	nodes = append(nodes, widened[y:]...)

	var removed, added float64

	// The virtual bridge of the still-empty path costs nothing to remove;
	// every other edge below is real and must be an allowed arc.
	if len(p.Nodes) != 2 {
		bridgeCost, ok, err := g.Arc(p.Nodes[x-1], p.Nodes[x])
		if err != nil || !ok {
			return Path{}, false
		}
		removed += bridgeCost
	}

	leftCost, ok, err := g.Arc(widened[x-1], pickup)
	if err != nil || !ok {
		return Path{}, false
	}
	rightCost, ok, err := g.Arc(pickup, widened[x+1])
	if err != nil || !ok {
		return Path{}, false
	}
	added += leftCost + rightCost

	splitCost, ok, err := g.Arc(widened[y-1], widened[y])
	if err != nil || !ok {
		return Path{}, false
	}
	removed += splitCost

	leftDelCost, ok, err := g.Arc(widened[y-1], delivery)
	if err != nil || !ok {
		return Path{}, false
	}
	rightDelCost, ok, err := g.Arc(delivery, widened[y])
	if err != nil || !ok {
		return Path{}, false
	}
	added += leftDelCost + rightDelCost

	totalCost := p.TotalCost - int64(removed) + int64(added)

	var load, peak int64
	for _, node := range nodes {
		d, err := g.Demand(node)
		if err != nil {
			return Path{}, false
		}
		load += d
		if load < 0 || load > g.Capacity() {
			return Path{}, false
		}
		if load > peak {
			peak = load
		}
	}

	if !cmp(totalCost, peak, sbc, sbl) {
		return Path{}, false
	}

	return Path{Nodes: nodes, TotalCost: totalCost, TotalLoad: peak}, true
}

// Remove splices request req's pickup and delivery nodes out of p, returning
// the resulting path. It is the inverse of Insert: the two real edges
// flanking each removed node collapse into one direct edge, which must be an
// allowed arc in g. Remove never mutates p.
func Remove(g *pdp.Graph, req int, p Path) (Path, bool) {
	pickup := req
	delivery := g.DeliveryOf(req)

	withoutPickup, ok := spliceOut(g, p.Nodes, pickup)
	if !ok {
		return Path{}, false
	}
	withoutBoth, ok := spliceOut(g, withoutPickup, delivery)
	if !ok {
		return Path{}, false
	}

	if len(withoutBoth) == 2 {
		return Path{Nodes: withoutBoth, TotalCost: 0, TotalLoad: 0}, true
	}

	var cost, load, peak int64
	for i, node := range withoutBoth {
		d, err := g.Demand(node)
		if err != nil {
			return Path{}, false
		}
		load += d
		if load > peak {
			peak = load
		}
		if i+1 < len(withoutBoth) {
			c, arcOK, err := g.Arc(node, withoutBoth[i+1])
			if err != nil || !arcOK {
				return Path{}, false
			}
			cost += int64(c)
		}
	}

	return Path{Nodes: withoutBoth, TotalCost: cost, TotalLoad: peak}, true
}

// spliceOut removes node from nodes, reconnecting its former neighbors with
// a direct arc, and reports whether that direct arc is allowed.
func spliceOut(g *pdp.Graph, nodes []int, node int) ([]int, bool) {
	idx := -1
	for i, v := range nodes {
		if v == node {
			idx = i
			break
		}
	}
	if idx < 0 || idx == 0 || idx == len(nodes)-1 {
		return nil, false
	}
	if _, ok, err := g.Arc(nodes[idx-1], nodes[idx+1]); err != nil || !ok {
		return nil, false
	}

	out := make([]int, 0, len(nodes)-1)
	out = append(out, nodes[:idx]...)
	out = append(out, nodes[idx+1:]...)

	return out, true
}
