// Package ints provides integer helpers used for block and word arithmetic.
package ints

import "golang.org/x/exp/constraints"

// Clamp returns x if it is in [lo, hi]. Otherwise, the nearest bound is returned.
func Clamp[T constraints.Integer](x, lo, hi T) T {
	return max(lo, min(x, hi))
}

// CeilDiv returns ceil(x / d) for non-negative x and positive d.
func CeilDiv[T constraints.Integer](x, d T) T {
	return (x + d - 1) / d
}

// AlignUp returns v rounded up to a multiple of alignment.
func AlignUp[T constraints.Integer](v, alignment T) T {
	return CeilDiv(v, alignment) * alignment
}

// NextPow2 returns the smallest power of two that is >= n; n <= 1 yields 1.
func NextPow2[T constraints.Unsigned](n T) T {
	p := T(1)
	for p < n {
		p <<= 1
	}

	return p
}
