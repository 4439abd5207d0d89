package heuristics

import "github.com/vrp-solvers/pdptw/path"

// RatioComparator prefers the candidate with the strictly higher load/cost
// ratio. An unset incumbent (cost noIncumbent) is beaten by any candidate.
func RatioComparator() path.Comparator {
	return func(c1, l1, c2, l2 int64) bool {
		if c2 == noIncumbent {
			return true
		}

		return float64(l1)/float64(c1) > float64(l2)/float64(c2)
	}
}

// ProductComparator prefers the candidate with the smaller load*cost
// product, treating a zero product as worst-possible rather than
// automatically best.
func ProductComparator() path.Comparator {
	return func(c1, l1, c2, l2 int64) bool {
		if l1*c1 == 0 {
			return false
		}
		if l2*c2 == 0 {
			return true
		}

		return float64(l1)*float64(c1) < float64(l2)*float64(c2)
	}
}

// CostOnlyComparator prefers the strictly cheaper candidate, ignoring load
// entirely.
func CostOnlyComparator() path.Comparator {
	return func(c1, _, c2, _ int64) bool {
		return c1 < c2
	}
}
