package aspect

import "math"

// #region angle

// Normalize maps a longitude into [0, 360).
func Normalize(lon float64) float64 {
	l := math.Mod(lon, 360)
	if l < 0 {
		l += 360
	}
	if l >= 360 {
		l -= 360
	}
	return l
}

// SignedDelta returns a-b wrapped into (-180, 180]. Callers own the argument
// order; swapping a and b flips the sign except at exactly 180.
func SignedDelta(a, b float64) float64 {
	d := math.Mod(a-b+180, 360)
	if d < 0 {
		d += 360
	}
	d -= 180
	if d <= -180 {
		d += 360
	}
	return d
}

// Separation returns the unsigned angular distance between a and b, in [0, 180].
func Separation(a, b float64) float64 {
	return math.Abs(SignedDelta(a, b))
}

// #endregion angle
