package component

import "image/color"

// DamageFlash tints an entity for a short time after it is hit.
type DamageFlash struct {
	Timer float64 // seconds left
}

// Blast is the expanding ring drawn where an area hit landed.
type Blast struct {
	MaxRadius float64
	Timer     float64 // seconds elapsed
	Duration  float64
	Color     color.RGBA
}
