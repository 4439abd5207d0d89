package cuts

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/vrp-solvers/pdptw/pdp"
)

// groetschelPiCut tries to build a Grötschel–Padberg path inequality out of
// the current pi partition's S: anchor S at the member with the largest
// total inflow, randomly permute the rest, and check whether the resulting
// Hamiltonian-path lower bound on S's internal arcs exceeds |S|-1.
func groetschelPiCut(gr *pdp.ReducedGraph, xbar *mat.Dense, pi *SetsInfo, opts Options) *LinearCut {
	if pi.EmptyS() || pi.CountS() <= 1 {
		return nil
	}

	members := sMembers(pi)
	anchorByMaxFlow(members, func(node int) float64 {
		var inflow float64
		for i := 1; i <= 2*pi.N; i++ {
			if v := xbar.At(i, node); v > 0 {
				inflow += v
			}
		}
		return inflow
	})
	shuffleTail(members, opts.Rand)

	lhs := groetschelLHSPi(members, xbar, pi)
	if lhs > float64(len(members)-1)+opts.Eps {
		return groetschelPiLinearCut(gr, members, pi)
	}

	return nil
}

// groetschelSigmaCut is groetschelPiCut's dual: anchor at maximum outflow.
func groetschelSigmaCut(gr *pdp.ReducedGraph, xbar *mat.Dense, sigma *SetsInfo, opts Options) *LinearCut {
	if sigma.EmptyS() || sigma.CountS() <= 1 {
		return nil
	}

	members := sMembers(sigma)
	anchorByMaxFlow(members, func(node int) float64 {
		var outflow float64
		for j := 1; j <= 2*sigma.N; j++ {
			if v := xbar.At(node, j); v > 0 {
				outflow += v
			}
		}
		return outflow
	})
	shuffleTail(members, opts.Rand)

	lhs := groetschelLHSSigma(members, xbar, sigma)
	if lhs > float64(len(members)-1)+opts.Eps {
		return groetschelSigmaLinearCut(gr, members, sigma)
	}

	return nil
}

func sMembers(s *SetsInfo) []int {
	members := make([]int, 0, s.CountS())
	for i := 1; i <= 2*s.N; i++ {
		if s.InS[i] {
			members = append(members, i)
		}
	}

	return members
}

// anchorByMaxFlow moves the member with the largest score to position 0,
// unless that member is already at position 1 — matching the reference
// solver's literal position check rather than a corrected "already at 0".
func anchorByMaxFlow(members []int, score func(int) float64) {
	best, bestIdx := score(members[0]), 0
	for i := 1; i < len(members); i++ {
		if v := score(members[i]); v > best {
			best, bestIdx = v, i
		}
	}
	if bestIdx != 1 {
		members[0], members[bestIdx] = members[bestIdx], members[0]
	}
}

func shuffleTail(members []int, rng *rand.Rand) {
	tail := members[1:]
	for i := len(tail) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		tail[i], tail[j] = tail[j], tail[i]
	}
}

func groetschelLHSPi(members []int, xbar *mat.Dense, pi *SetsInfo) float64 {
	var lhs float64
	m := len(members)
	for k := 0; k < m; k++ {
		if k < m-1 {
			lhs += xbar.At(members[k], members[k+1])
		}
		if k >= 2 {
			lhs += 2 * xbar.At(members[0], members[k])
		}
		if k >= 3 {
			for l := 2; l < k; l++ {
				lhs += xbar.At(members[k], members[l])
			}
		}
	}
	for i := 1; i <= 2*pi.N; i++ {
		if pi.InSS[i] {
			lhs += xbar.At(members[0], i)
		}
	}
	lhs += xbar.At(members[m-1], members[0])

	return lhs
}

func groetschelLHSSigma(members []int, xbar *mat.Dense, sigma *SetsInfo) float64 {
	var lhs float64
	m := len(members)
	for k := 0; k < m-1; k++ {
		lhs += xbar.At(members[k], members[k+1])
		if k >= 1 {
			lhs += 2 * xbar.At(members[k], members[0])
		}
		if k >= 2 {
			for l := 1; l < k; l++ {
				lhs += xbar.At(members[k], members[l])
			}
		}
	}
	for i := 1; i <= 2*sigma.N; i++ {
		if sigma.InTS[i] {
			lhs += xbar.At(i, members[0])
		}
	}
	lhs += xbar.At(members[m-1], members[0])

	return lhs
}

func groetschelPiLinearCut(gr *pdp.ReducedGraph, members []int, pi *SetsInfo) *LinearCut {
	pos := make(map[int]int, len(members))
	for k, node := range members {
		pos[node] = k
	}
	first, last := members[0], members[len(members)-1]

	coeffs := make(map[int]float64)
	for idx := 0; idx < gr.NumArcs(); idx++ {
		i, j, ok := gr.ArcAt(idx)
		if !ok {
			continue
		}
		posI, iIn := pos[i]
		posJ, jIn := pos[j]

		if iIn && i != last && jIn && posJ == posI+1 {
			coeffs[idx] += 1
		}
		if i == last && j == first {
			coeffs[idx] += 1
		}
		if i == first && jIn && posJ > 1 {
			coeffs[idx] += 2
		}
		if iIn && posI > 2 && jIn && posJ > 1 && posJ < posI {
			coeffs[idx] += 1
		}
		if i == first && pi.InSS[j] {
			coeffs[idx] += 1
		}
	}

	return &LinearCut{Coeffs: coeffs, RHS: float64(len(members) - 1), Sense: LE}
}

func groetschelSigmaLinearCut(gr *pdp.ReducedGraph, members []int, sigma *SetsInfo) *LinearCut {
	pos := make(map[int]int, len(members))
	for k, node := range members {
		pos[node] = k
	}
	first, last := members[0], members[len(members)-1]

	coeffs := make(map[int]float64)
	for idx := 0; idx < gr.NumArcs(); idx++ {
		i, j, ok := gr.ArcAt(idx)
		if !ok {
			continue
		}
		posI, iIn := pos[i]
		posJ, jIn := pos[j]

		if iIn && i != last && jIn && posJ == posI+1 {
			coeffs[idx] += 1
		}
		if i == last && j == first {
			coeffs[idx] += 1
		}
		if iIn && posI > 0 && i != last && j == first {
			coeffs[idx] += 2
		}
		if iIn && posI > 1 && i != last && jIn && posJ > 0 && posJ < posI {
			coeffs[idx] += 1
		}
		if sigma.InTS[j] && j == first {
			coeffs[idx] += 1
		}
	}

	return &LinearCut{Coeffs: coeffs, RHS: float64(len(members) - 1), Sense: LE}
}
