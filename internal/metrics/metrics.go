// Package metrics holds the pure aggregation arithmetic shared by the
// report builders. Every function is total: divide-by-zero cases return 0
// instead of failing, because a cafe with no revenue yet is a normal state.
package metrics

import "math"

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds a percentage to 1 decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// PercentOf returns numerator/denominator as a percentage rounded to 1
// decimal place, or 0 when the denominator is not positive.
func PercentOf(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return Round1(numerator / denominator * 100)
}

// MarginPercent returns the gross margin percentage of a priced item.
func MarginPercent(price, cost float64) float64 {
	if price <= 0 {
		return 0
	}
	return Round1((price - cost) / price * 100)
}

// PeriodDelta returns the relative change from previous to current as a
// percentage rounded to 1 decimal place, or 0 when there is no baseline.
func PeriodDelta(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return Round1((current - previous) / previous * 100)
}
