package mathutil

import "math"

// Clamp limits v to [lo, hi] (search: float-math).
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsFinite reports whether v is neither NaN nor infinite (search: float-math).
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WrapAngle maps an angle into (-Pi, Pi] (search: angle-math).
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// LerpAngle moves from toward to along the shortest arc by fraction t (search: angle-math).
func LerpAngle(from, to, t float64) float64 {
	t = Clamp(t, 0, 1)
	return WrapAngle(from + WrapAngle(to-from)*t)
}

// Deg converts degrees to radians.
func Deg(d float64) float64 {
	return d * math.Pi / 180
}
