package common

import "cmp"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// ClampMin returns v, or min when v is below it.
//
// Parameters:
//   - v: the value to clamp
//   - min: the lower bound
//
// Returns:
//   - T: the clamped value
func ClampMin[T cmp.Ordered](v, min T) T {
	if v < min {
		return min
	}
	return v
}

// Clamp limits v to the closed range [lo, hi]. If hi < lo, lo wins.
//
// Parameters:
//   - v: the value to clamp
//   - lo, hi: the range bounds
//
// Returns:
//   - T: the clamped value
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
