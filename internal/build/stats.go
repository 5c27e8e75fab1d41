package build

import (
	"math"

	"go-gem-defense/internal/defs"
)

// StatVector is the final, resolved parameter set of one socketed ability.
// It is derived data: never persisted, recomputed when the build changes.
type StatVector struct {
	Socket  int
	Ability string
	Name    string

	Damage          float64
	FireInterval    float64 // seconds
	ProjectileCount int
	PierceCount     int
	ChainCount      int
	AreaRadius      float64
	ProjectileSpeed float64
	CritChance      float64
	CritMultiplier  float64

	// SelfDamageOnHit is the keystone side effect applied to the defender per hit.
	SelfDamageOnHit float64
}

// Floors are the lowest values rate-like stats may resolve to. All must be > 0.
type Floors struct {
	FireInterval    float64
	AreaRadius      float64
	ProjectileSpeed float64
}

// DefaultFloors keeps every rate-like stat strictly positive.
var DefaultFloors = Floors{
	FireInterval:    0.05,
	AreaRadius:      1,
	ProjectileSpeed: 10,
}

// statSet is the working representation during resolution.
type statSet map[defs.StatKey]float64

func fromBase(b defs.BaseStats) statSet {
	return statSet{
		defs.StatDamage:          b.Damage,
		defs.StatFireInterval:    b.FireInterval,
		defs.StatProjectileCount: float64(b.ProjectileCount),
		defs.StatPierce:          0,
		defs.StatChain:           0,
		defs.StatAreaRadius:      b.Radius,
		defs.StatProjectileSpeed: b.ProjectileSpeed,
		defs.StatCritChance:      b.CritChance,
		defs.StatCritMultiplier:  b.CritMultiplier,
	}
}

// accumulator sums percent and flat bonuses per stat before they are applied.
type accumulator map[defs.StatKey]defs.StatBonus

func (a accumulator) add(stats defs.StatMap, times int) {
	for k, b := range stats {
		cur := a[k]
		cur.Percent += b.Percent * float64(times)
		cur.Flat += b.Flat * float64(times)
		a[k] = cur
	}
}

// applyTo computes v*(1+Σpercent)+Σflat for every key, in fixed key order.
func (a accumulator) applyTo(s statSet) {
	for _, k := range defs.AllStats {
		b, ok := a[k]
		if !ok {
			continue
		}
		s[k] = s[k]*(1+b.Percent) + b.Flat
	}
}

func clampFloor(v, floor float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < floor {
		return floor
	}
	return v
}

func clampCount(v float64, lo int) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return lo
	}
	n := int(math.Round(v))
	if n < lo {
		return lo
	}
	return n
}

// finish converts the working set into a vector, enforcing floors and ranges.
func (s statSet) finish(f Floors) StatVector {
	v := StatVector{
		Damage:          s[defs.StatDamage],
		FireInterval:    clampFloor(s[defs.StatFireInterval], f.FireInterval),
		ProjectileCount: clampCount(s[defs.StatProjectileCount], 1),
		PierceCount:     clampCount(s[defs.StatPierce], 0),
		ChainCount:      clampCount(s[defs.StatChain], 0),
		AreaRadius:      clampFloor(s[defs.StatAreaRadius], f.AreaRadius),
		ProjectileSpeed: clampFloor(s[defs.StatProjectileSpeed], f.ProjectileSpeed),
		CritChance:      s[defs.StatCritChance],
		CritMultiplier:  s[defs.StatCritMultiplier],
	}
	if math.IsNaN(v.Damage) || v.Damage < 0 {
		v.Damage = 0
	}
	switch {
	case math.IsNaN(v.CritChance) || v.CritChance < 0:
		v.CritChance = 0
	case v.CritChance > 1:
		v.CritChance = 1
	}
	if math.IsNaN(v.CritMultiplier) || v.CritMultiplier < 1 {
		v.CritMultiplier = 1
	}
	return v
}
