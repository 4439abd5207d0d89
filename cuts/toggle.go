package cuts

import "github.com/vrp-solvers/pdptw/pdp"

// setKind distinguishes the two dual node-set partitions the tabu search
// maintains: pi prunes a pickup's delivery out of S before the pickup enters
// (a "delivery must follow its pickup" direction check); sigma is its mirror
// in the opposite direction.
type setKind int

const (
	piKind setKind = iota
	sigmaKind
)

// SetsInfo tracks one partition (S, firstSet, secondSet, thirdSet) of nodes
// 1..2n plus the running flow sums used to test whether the partition's
// precedence inequality is currently violated by xbar. Index 0 and 2n+1 are
// padding: always absent from every set, permanently tabu.
type SetsInfo struct {
	N         int
	InS       []bool
	InFS      []bool
	InSS      []bool
	InTS      []bool
	InTabu    []bool
	TabuStart []int
	FS        float64
	SS        float64
	TS        float64
	LHS       float64
	kind      setKind
}

// NewPiSets returns the initial pi partition: S empty, every real node placed
// in the third set, only the depots 0 and 2n+1 tabu.
func NewPiSets(n int) SetsInfo {
	size := 2*n + 2
	s := SetsInfo{
		N:         n,
		InS:       make([]bool, size),
		InFS:      make([]bool, size),
		InSS:      make([]bool, size),
		InTS:      make([]bool, size),
		InTabu:    make([]bool, size),
		TabuStart: make([]int, size),
		kind:      piKind,
	}
	for i := 1; i <= 2*n; i++ {
		s.InTS[i] = true
	}
	for i := range s.TabuStart {
		s.TabuStart[i] = -1
	}
	s.InTabu[0], s.InTabu[size-1] = true, true
	s.InTS[0], s.InTS[size-1] = false, false

	return s
}

// NewSigmaSets returns the initial sigma partition: S empty, every real node
// placed in the first set, only the depots 0 and 2n+1 tabu.
func NewSigmaSets(n int) SetsInfo {
	size := 2*n + 2
	s := SetsInfo{
		N:         n,
		InS:       make([]bool, size),
		InFS:      make([]bool, size),
		InSS:      make([]bool, size),
		InTS:      make([]bool, size),
		InTabu:    make([]bool, size),
		TabuStart: make([]int, size),
		kind:      sigmaKind,
	}
	for i := 1; i <= 2*n; i++ {
		s.InFS[i] = true
	}
	for i := range s.TabuStart {
		s.TabuStart[i] = -1
	}
	s.InTabu[0], s.InTabu[size-1] = true, true
	s.InFS[0], s.InFS[size-1] = false, false

	return s
}

// Clone returns a deep copy so toggling a candidate node can be tried without
// disturbing the incumbent partition.
func (s SetsInfo) Clone() SetsInfo {
	c := s
	c.InS = append([]bool(nil), s.InS...)
	c.InFS = append([]bool(nil), s.InFS...)
	c.InSS = append([]bool(nil), s.InSS...)
	c.InTS = append([]bool(nil), s.InTS...)
	c.InTabu = append([]bool(nil), s.InTabu...)
	c.TabuStart = append([]int(nil), s.TabuStart...)

	return c
}

// EmptyS reports whether S currently has no members among nodes 1..2n.
func (s *SetsInfo) EmptyS() bool {
	for i := 1; i <= 2*s.N; i++ {
		if s.InS[i] {
			return false
		}
	}

	return true
}

// CountS returns |S|.
func (s *SetsInfo) CountS() int {
	c := 0
	for i := 1; i <= 2*s.N; i++ {
		if s.InS[i] {
			c++
		}
	}

	return c
}

// FirstNonTabu returns the smallest node in 1..2n not currently tabu, or -1
// if every node is tabu (never expected to happen with a sane tabu duration).
func (s *SetsInfo) FirstNonTabu() int {
	for i := 1; i <= 2*s.N; i++ {
		if !s.InTabu[i] {
			return i
		}
	}

	return -1
}

// Toggle flips node i into or out of S, maintaining the first/second/third
// set membership invariants for this partition's kind. For a tabu node
// outside S, only its S membership flips; the first/second/third sets are
// left unchanged.
func (s *SetsInfo) Toggle(i int) {
	if s.kind == piKind {
		s.togglePi(i)
	} else {
		s.toggleSigma(i)
	}
}

func (s *SetsInfo) togglePi(i int) {
	n := s.N
	if s.InS[i] {
		if i <= n {
			if s.InS[i+n] {
				s.InFS[i] = false
				s.InSS[i] = true
			} else {
				s.InTS[i] = true
			}
		} else {
			if s.InS[i-n] {
				s.InFS[i-n] = false
				s.InTS[i] = true
			} else {
				s.InSS[i-n] = false
				s.InTS[i-n] = true
				s.InTS[i] = true
			}
		}
	} else if !s.InTabu[i] {
		if i <= n {
			if s.InS[i+n] {
				s.InFS[i] = true
				s.InSS[i] = false
			} else {
				s.InTS[i] = false
			}
		} else {
			if s.InS[i-n] {
				s.InFS[i-n] = true
				s.InTS[i] = false
			} else {
				s.InSS[i-n] = true
				s.InTS[i-n] = false
				s.InTS[i] = false
			}
		}
	}
	s.InS[i] = !s.InS[i]
}

func (s *SetsInfo) toggleSigma(i int) {
	n := s.N
	if s.InS[i] {
		if i <= n {
			if s.InS[i+n] {
				s.InFS[i] = true
				s.InSS[i+n] = false
			} else {
				s.InFS[i] = true
				s.InFS[i+n] = true
				s.InTS[i+n] = false
			}
		} else {
			if s.InS[i-n] {
				s.InSS[i] = false
				s.InTS[i] = true
			} else {
				s.InFS[i] = true
			}
		}
	} else if !s.InTabu[i] {
		if i <= n {
			if s.InS[i+n] {
				s.InFS[i] = false
				s.InSS[i+n] = true
			} else {
				s.InFS[i] = false
				s.InFS[i+n] = false
				s.InTS[i+n] = true
			}
		} else {
			if s.InS[i-n] {
				s.InSS[i] = true
				s.InTS[i] = false
			} else {
				s.InFS[i] = false
			}
		}
	}
	s.InS[i] = !s.InS[i]
}

// Recalculate re-derives FS, SS, TS and LHS = FS - 2*SS - 2*TS from scratch
// over gr's allowed arcs and the current fractional solution xbar. gr's arc
// enumeration order is irrelevant here (every allowed arc is visited exactly
// once regardless of order).
func (s *SetsInfo) Recalculate(gr *pdp.ReducedGraph, xbar xbarView) {
	var fs, ss, ts float64
	for idx := 0; idx < gr.NumArcs(); idx++ {
		i, j, ok := gr.ArcAt(idx)
		if !ok {
			continue
		}
		v := xbar.At(i, j)

		if s.InS[i] != s.InS[j] {
			fs += v
		}
		if s.kind == piKind {
			if s.InFS[i] && s.InTS[j] {
				ss += v
			}
			if s.InS[i] && s.InSS[j] {
				ts += v
			}
		} else {
			if s.InFS[i] && s.InSS[j] {
				ss += v
			}
			if s.InTS[i] && s.InS[j] {
				ts += v
			}
		}
	}
	s.FS, s.SS, s.TS = fs, ss, ts
	s.LHS = fs - 2*ss - 2*ts
}

// xbarView abstracts the fractional LP solution lookup so toggle.go doesn't
// need to import gonum directly; *mat.Dense satisfies it via At(i, j int) float64.
type xbarView interface {
	At(i, j int) float64
}
