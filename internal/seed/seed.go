// Package seed derives reproducible pseudo-random values from a tail number.
//
// Simulated figures (ownership churn, valuation condition, fallback
// utilization) must not change between repeated scans of the same aircraft,
// so nothing here reads a random source.
package seed

import "math"

// Offsets used by callers. Each simulated quantity has its own offset so the
// values are independent of one another.
const (
	OffsetOwnerCount      = 1
	OffsetCondition       = 4
	OffsetMarketTrend     = 5
	OffsetUtilizationHrs  = 30
	OffsetLastTracked     = 31
	OffsetTrackingQuality = 32
)

// Sum is the additive character-code seed of a tail number.
func Sum(tail string) int {
	total := 0
	for _, r := range tail {
		total += int(r)
	}
	return total
}

// UnitInterval returns a value in [0, 1) that depends only on tail and offset.
func UnitInterval(tail string, offset int) float64 {
	x := math.Sin(float64(Sum(tail)+offset)) * 10000
	v := x - math.Floor(x)
	if v >= 1 {
		return 0
	}
	return v
}

// Intn returns a value in [0, n) derived from UnitInterval. n <= 0 yields 0.
func Intn(tail string, offset, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(UnitInterval(tail, offset) * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Between returns a value in [lo, hi) derived from UnitInterval.
func Between(tail string, offset int, lo, hi float64) float64 {
	return lo + UnitInterval(tail, offset)*(hi-lo)
}
