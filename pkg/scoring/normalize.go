package scoring

import "math"

// NormalizeCount coerces a nullable count to its scoring domain: absent or
// negative values become 0. Malformed input is defaulted, never rejected;
// callers needing strict validation must gate upstream.
func NormalizeCount(v *int64) int64 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}

// NormalizeAmount coerces a nullable monetary amount: absent, NaN, infinite,
// or negative values become 0.
func NormalizeAmount(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return 0
	}
	return *v
}
