package component

// Position is a point in screen space, in pixels.
type Position struct {
	X, Y float64
}

// Velocity is a scalar speed in pixels per second.
type Velocity struct {
	Speed float64
}
