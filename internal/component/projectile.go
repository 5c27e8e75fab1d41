package component

import (
	"image/color"

	"go-gem-defense/internal/types"
)

// Projectile is a shot in flight. A zero TargetID means it flies straight
// along Direction, hitting whatever it passes through.
type Projectile struct {
	Socket     int
	TargetID   types.EntityID
	Direction  float64 // radians
	Speed      float64
	Damage     float64
	Crit       bool
	PierceLeft int
	ChainLeft  int
	AreaRadius float64
	SelfDamage float64
	Hit        map[types.EntityID]bool
	Color      color.RGBA
}
