// Package anim holds the interpolation primitives shared by every animated component.
package anim

import "math"

// Lerp returns start + (end-start)*t. t is not bounded.
func Lerp(start, end, t float64) float64 {
	return start + (end-start)*t
}

// Clamp restricts value to [min, max].
func Clamp(value, min, max float64) float64 {
	return math.Min(math.Max(value, min), max)
}

