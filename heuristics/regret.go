package heuristics

import "math"

// RegretFunc scores how costly deferring a request's insertion would be,
// given its best (bc, bl) and second-best (sbc, sbl) feasible insertions —
// a larger score means the request should be placed sooner.
type RegretFunc func(bc, bl, sbc, sbl int64) float64

// RatioRegret is the difference between the best and second-best
// insertions' load/cost ratios.
func RatioRegret(bc, bl, sbc, sbl int64) float64 {
	return float64(bl)/float64(bc) - float64(sbl)/float64(sbc)
}

// ProductRegret is the absolute difference between the second-best and
// best insertions' load*cost products.
func ProductRegret(bc, bl, sbc, sbl int64) float64 {
	return math.Abs(float64(sbl)*float64(sbc) - float64(bl)*float64(bc))
}
