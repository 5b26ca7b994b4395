package util

import (
	"math"
	"strconv"
)

// SafeDiv returns n/d, or 0 when d is too close to zero.
func SafeDiv(n, d float64) float64 {
	const eps = 1e-12
	if d > eps || d < -eps {
		return n / d
	}
	return 0
}

func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	// guard against NaN
	if math.IsNaN(x) {
		return 0
	}
	return x
}

// FmtFloat formats f with the fewest digits that round-trip.
func FmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Percent renders a [0,1] share as "12.34%".
func Percent(share float64) string {
	return strconv.FormatFloat(Clamp01(share)*100, 'f', 2, 64) + "%"
}

// Pow is math.Pow for a non-negative base; a <= 0 yields 0.
func Pow(a, b float64) float64 {
	if a <= 0 {
		return 0
	}
	return math.Exp(b * math.Log(a))
}
