package system

import (
	"math"

	"go-gem-defense/internal/build"
	"go-gem-defense/internal/component"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/types"
	"go-gem-defense/internal/utils"
)

// spreadAngle separates the projectiles of one volley, in radians.
const spreadAngle = 0.12

var defaultProjectileColor = config.TextLightColor

// CombatSystem fires the defender's socketed abilities at the current target.
// Each socket has its own cooldown driven by the resolved fire interval.
type CombatSystem struct {
	ecs    *entity.ECS
	cat    *defs.Catalog
	rng    *utils.PRNGService
	events *event.Dispatcher
}

func NewCombatSystem(ecs *entity.ECS, cat *defs.Catalog, rng *utils.PRNGService, events *event.Dispatcher) *CombatSystem {
	return &CombatSystem{ecs: ecs, cat: cat, rng: rng, events: events}
}

// Update advances cooldowns and fires every ready socket at target. vectors
// are the stat vectors resolved at the start of the tick. It returns the
// number of volleys fired.
func (s *CombatSystem) Update(deltaTime float64, vectors []build.StatVector, target types.EntityID, hasTarget bool) int {
	combat, ok := s.ecs.Combats[s.ecs.DefenderID]
	if !ok {
		return 0
	}
	live := make(map[int]bool, len(vectors))
	targetPos, targetAlive := s.ecs.Positions[target]
	targetAlive = targetAlive && hasTarget && s.ecs.Enemies[target] != nil

	fired := 0
	for _, vec := range vectors {
		live[vec.Socket] = true
		cd := combat.Cooldowns[vec.Socket] - deltaTime
		if cd > 0 {
			combat.Cooldowns[vec.Socket] = cd
			continue
		}
		if !targetAlive {
			// Ready, holding fire until something is in reach.
			combat.Cooldowns[vec.Socket] = 0
			continue
		}
		s.fire(vec, target, targetPos)
		combat.Cooldowns[vec.Socket] = vec.FireInterval
		fired++
	}
	for socket := range combat.Cooldowns {
		if !live[socket] {
			delete(combat.Cooldowns, socket)
		}
	}
	return fired
}

func (s *CombatSystem) fire(vec build.StatVector, target types.EntityID, targetPos *component.Position) {
	x, y := float64(config.DefenderX), float64(config.DefenderY)
	aim := math.Atan2(targetPos.Y-y, targetPos.X-x)

	clr := defaultProjectileColor
	radius := float32(3)
	if ab, ok := s.cat.Ability(vec.Ability); ok {
		clr = ab.Visuals.Color
		radius = float32(ab.Visuals.Radius)
	}

	n := vec.ProjectileCount
	for i := range n {
		offset := (float64(i) - float64(n-1)/2) * spreadAngle
		dmg := vec.Damage
		crit := s.rng.Roll(vec.CritChance)
		if crit {
			dmg *= vec.CritMultiplier
		}
		p := &component.Projectile{
			Socket:     vec.Socket,
			Direction:  aim + offset,
			Speed:      vec.ProjectileSpeed,
			Damage:     dmg,
			Crit:       crit,
			PierceLeft: vec.PierceCount,
			ChainLeft:  vec.ChainCount,
			AreaRadius: vec.AreaRadius,
			SelfDamage: vec.SelfDamageOnHit,
			Hit:        make(map[types.EntityID]bool),
			Color:      clr,
		}
		// The middle projectile homes in; the rest of the volley flies straight.
		if i == n/2 {
			p.TargetID = target
		}
		id := s.ecs.NewEntity()
		s.ecs.Projectiles[id] = p
		s.ecs.Positions[id] = &component.Position{X: x, Y: y}
		s.ecs.Renderables[id] = &component.Renderable{Color: clr, Radius: radius}
	}

	s.events.Dispatch(event.Event{Type: event.AttackFired, Data: event.AttackFiredData{
		Socket:      vec.Socket,
		Ability:     vec.Ability,
		Target:      target,
		Projectiles: n,
	}})
}
