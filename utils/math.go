// Package utils contains small helpers shared by the kinematics, planning and simulation packages.
package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// WrapDeg maps an angle in degrees onto the half-open interval (-180, 180].
// Both 180 and -180 map to 180.
func WrapDeg(deg float64) float64 {
	w := math.Mod(deg+180, 360)
	if w <= 0 {
		w += 360
	}
	return w - 180
}

// AngleDiffDeg returns the signed shortest rotation, in degrees, that takes from to to.
// The result lies in (-180, 180].
func AngleDiffDeg(from, to float64) float64 {
	return WrapDeg(to - from)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Float64AlmostEqual reports whether a and b differ by no more than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
