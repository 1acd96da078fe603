// Package money fixes the rounding rules for every monetary value in
// the system: two decimal places, half-up.
package money

import "math"

// Round2 rounds v to 2 decimal places, half-up. math.Round is not used
// because it rounds half away from zero; billing rounds 0.005 up.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// Convert applies an exchange rate to a single amount and rounds the
// result. Converting per amount and rounding each step is lossy when
// chained; callers convert once from the source currency.
func Convert(amount, rate float64) float64 {
	return Round2(amount * rate)
}
