package cuts

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/vrp-solvers/pdptw/pdp"
)

// SeparateSubtourCuts runs opts.Iterations rounds of tabu search over two
// dual node-set partitions (pi and sigma), each round toggling the single
// node that most improves (or, on the first non-tabu node, unconditionally
// sets) that partition's LHS. Whenever a round reaches a partition not seen
// before (by a cheap first-member/set-size hash), it emits the partition's
// own precedence cut if violated and a Grötschel–Padberg cut built by
// permuting S's members into a Hamiltonian-path order.
func SeparateSubtourCuts(gr *pdp.ReducedGraph, xbar *mat.Dense, opts Options) ([]LinearCut, error) {
	n := gr.N()
	pi := NewPiSets(n)
	sigma := NewSigmaSets(n)

	type memKey struct{ first, sum int }
	seenPi := make(map[memKey]bool)
	seenSigma := make(map[memKey]bool)

	var cuts []LinearCut

	for iter := 1; iter <= opts.Iterations; iter++ {
		bestPi, bestSigma := pi.Clone(), sigma.Clone()
		bnPi, bnSigma := -1, -1
		firstNonTabuPi := pi.FirstNonTabu()
		firstNonTabuSigma := sigma.FirstNonTabu()

		for i := 1; i <= 2*n; i++ {
			newPi := pi.Clone()
			newPi.Toggle(i)
			newPi.Recalculate(gr, xbar)

			newSigma := sigma.Clone()
			newSigma.Toggle(i)
			newSigma.Recalculate(gr, xbar)

			if i == firstNonTabuPi || (newPi.LHS < bestPi.LHS && !pi.InTabu[i] && !newPi.EmptyS()) {
				bestPi = newPi
				bnPi = i
			}
			if i == firstNonTabuSigma || (newSigma.LHS < bestSigma.LHS && !sigma.InTabu[i] && !newSigma.EmptyS()) {
				bestSigma = newSigma
				bnSigma = i
			}
		}

		if bnPi == -1 {
			panic(fmt.Sprintf("cuts: subtour: no admissible pi toggle at iteration %d", iter))
		}
		updateInfo(&pi, bestPi, bnPi, iter, opts.TabuDuration)
		keyPi := memoryKey(&pi)
		if !seenPi[keyPi] {
			if c := precedenceCut(gr, &pi, opts.Eps); c != nil {
				cuts = append(cuts, *c)
			}
			if c := groetschelPiCut(gr, xbar, &pi, opts); c != nil {
				cuts = append(cuts, *c)
			}
			seenPi[keyPi] = true
		}

		if bnSigma == -1 {
			panic(fmt.Sprintf("cuts: subtour: no admissible sigma toggle at iteration %d", iter))
		}
		updateInfo(&sigma, bestSigma, bnSigma, iter, opts.TabuDuration)
		keySigma := memoryKey(&sigma)
		if !seenSigma[keySigma] {
			if c := precedenceCut(gr, &sigma, opts.Eps); c != nil {
				cuts = append(cuts, *c)
			}
			if c := groetschelSigmaCut(gr, xbar, &sigma, opts); c != nil {
				cuts = append(cuts, *c)
			}
			seenSigma[keySigma] = true
		}
	}

	return cuts, nil
}

// updateInfo commits best as the new incumbent partition, marking the node
// that left S tabu for opts.TabuDuration rounds, and releases any node whose
// tabu tenure has just expired.
func updateInfo(set *SetsInfo, best SetsInfo, bn, iter, tabuDuration int) {
	removed := set.InS[bn]
	*set = best
	if removed {
		set.InTabu[bn] = true
		set.TabuStart[bn] = iter
	}
	for i := 1; i <= 2*set.N; i++ {
		if set.TabuStart[i] == iter-tabuDuration {
			set.InTabu[i] = false
			set.TabuStart[i] = -1
		}
	}
}

// memoryKey hashes a partition to (index of S's first member, |S|) — a
// deliberately coarse fingerprint that only avoids re-emitting the exact
// same partition repeatedly, not a full set identity check.
func memoryKey(s *SetsInfo) struct{ first, sum int } {
	first := 0
	for i := 1; i <= 2*s.N; i++ {
		if s.InS[i] {
			first = i
			break
		}
	}

	return struct{ first, sum int }{first: first, sum: s.CountS()}
}

// precedenceCut builds S's own two-sided precedence inequality
// Σ(S,S̄)x + Σ(S̄,S)x - 2Σ(firstSet,thirdSet)x - 2Σ(S,secondSet)x >= 2
// (sigma substitutes its own first/second/third-set pairing), skipping S
// empty, trivial (|S|<=1), or not currently violated.
func precedenceCut(gr *pdp.ReducedGraph, s *SetsInfo, eps float64) *LinearCut {
	if s.LHS >= 2-eps || s.EmptyS() || s.CountS() <= 1 {
		return nil
	}

	coeffs := make(map[int]float64)
	for idx := 0; idx < gr.NumArcs(); idx++ {
		i, j, ok := gr.ArcAt(idx)
		if !ok {
			continue
		}
		if s.InS[i] != s.InS[j] {
			coeffs[idx] += 1
		}
		if s.kind == piKind {
			if s.InFS[i] && s.InTS[j] {
				coeffs[idx] -= 2
			}
			if s.InS[i] && s.InSS[j] {
				coeffs[idx] -= 2
			}
		} else {
			if s.InFS[i] && s.InSS[j] {
				coeffs[idx] -= 2
			}
			if s.InTS[i] && s.InS[j] {
				coeffs[idx] -= 2
			}
		}
	}

	return &LinearCut{Coeffs: coeffs, RHS: 2, Sense: GE}
}
