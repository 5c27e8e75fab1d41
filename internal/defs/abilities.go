package defs

// BaseStats are the unmodified numbers an ability starts resolution from.
// FireInterval is in seconds, speeds in world units per second.
type BaseStats struct {
	Damage          float64 `yaml:"damage" json:"damage"`
	FireInterval    float64 `yaml:"fire_interval" json:"fire_interval"`
	ProjectileSpeed float64 `yaml:"projectile_speed" json:"projectile_speed"`
	Radius          float64 `yaml:"radius" json:"radius"`
	ProjectileCount int     `yaml:"projectile_count" json:"projectile_count"`
	CritChance      float64 `yaml:"crit_chance" json:"crit_chance"`
	CritMultiplier  float64 `yaml:"crit_multiplier" json:"crit_multiplier"`
}

// AbilityDefinition is an active gem.
type AbilityDefinition struct {
	ID      string    `yaml:"id" json:"id"`
	Name    string    `yaml:"name" json:"name"`
	Base    BaseStats `yaml:"base" json:"base"`
	Visuals Visuals   `yaml:"visuals" json:"visuals"`
}

// ModifierKind selects the combination rule of a support gem.
type ModifierKind string

const (
	ModifierMoreDamage    ModifierKind = "more_damage"
	ModifierAdditiveCount ModifierKind = "additive_count"
	ModifierPierce        ModifierKind = "pierce"
	ModifierChain         ModifierKind = "chain"
	ModifierSpeed         ModifierKind = "speed"
)

// ModifierDefinition is a support gem. Which magnitude fields matter depends on Kind:
// Multiplier for more_damage and speed (attack rate), Count for the count kinds,
// ProjectileSpeed (percent) for speed.
type ModifierDefinition struct {
	ID              string       `yaml:"id" json:"id"`
	Name            string       `yaml:"name" json:"name"`
	Kind            ModifierKind `yaml:"kind" json:"kind"`
	Multiplier      float64      `yaml:"multiplier,omitempty" json:"multiplier,omitempty"`
	Count           int          `yaml:"count,omitempty" json:"count,omitempty"`
	ProjectileSpeed float64      `yaml:"projectile_speed,omitempty" json:"projectile_speed,omitempty"`
}

// SlotClass is the equipment slot an equippable occupies.
type SlotClass string

const (
	SlotRing   SlotClass = "ring"
	SlotAmulet SlotClass = "amulet"
)

// EquippableDefinition is an artifact or unique.
type EquippableDefinition struct {
	ID    string    `yaml:"id" json:"id"`
	Name  string    `yaml:"name" json:"name"`
	Slot  SlotClass `yaml:"slot" json:"slot"`
	Stats StatMap   `yaml:"stats" json:"stats"`
}
