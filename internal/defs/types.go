package defs

import "image/color"

// StatKey names one entry of an effective stat vector.
type StatKey string

const (
	StatDamage          StatKey = "damage"
	StatFireInterval    StatKey = "fire_interval"
	StatProjectileCount StatKey = "projectile_count"
	StatPierce          StatKey = "pierce_count"
	StatChain           StatKey = "chain_count"
	StatAreaRadius      StatKey = "area_radius"
	StatProjectileSpeed StatKey = "projectile_speed"
	StatCritChance      StatKey = "crit_chance"
	StatCritMultiplier  StatKey = "crit_multiplier"
)

// AllStats lists every stat key in resolution order.
var AllStats = []StatKey{
	StatDamage,
	StatFireInterval,
	StatProjectileCount,
	StatPierce,
	StatChain,
	StatAreaRadius,
	StatProjectileSpeed,
	StatCritChance,
	StatCritMultiplier,
}

// Known reports whether k is one of the stat keys above.
func (k StatKey) Known() bool {
	for _, s := range AllStats {
		if s == k {
			return true
		}
	}
	return false
}

// StatBonus is a single contribution to a stat. Percent is a fraction (0.25 = +25%).
type StatBonus struct {
	Percent float64 `yaml:"percent,omitempty" json:"percent,omitempty"`
	Flat    float64 `yaml:"flat,omitempty" json:"flat,omitempty"`
}

// StatMap is a sparse set of bonuses keyed by stat.
type StatMap map[StatKey]StatBonus

// Point is a position in world units.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Visuals contains parameters for rendering an entity.
type Visuals struct {
	Color  color.RGBA `yaml:"color" json:"color"`
	Radius float64    `yaml:"radius" json:"radius"`
}
