// Package physics provides the small numeric helpers used for slope movement and gate checks.
package physics

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// WithinTolerance reports whether a and b are strictly closer than tol.
func WithinTolerance(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// SweptThrough reports whether an object that moved from depth from to depth to
// this frame touched the open window (near, far). A stationary object counts
// when it sits inside the window.
func SweptThrough(from, to, near, far float64) bool {
	lo, hi := math.Min(from, to), math.Max(from, to)
	return lo < far && hi > near
}
