package utils

import "math"

// Lerp performs linear interpolation.
func Lerp(from, to float32, t float32) float32 {
	return from + (to-from)*t
}

// Distance returns the euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// MoveTowards steps (x, y) by at most step towards (tx, ty) and reports whether
// the target was reached.
func MoveTowards(x, y, tx, ty, step float64) (float64, float64, bool) {
	dx, dy := tx-x, ty-y
	dist := math.Hypot(dx, dy)
	if dist <= step || dist == 0 {
		return tx, ty, true
	}
	return x + dx/dist*step, y + dy/dist*step, false
}
