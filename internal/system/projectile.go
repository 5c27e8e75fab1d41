package system

import (
	"math"

	"go-gem-defense/internal/component"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/types"
	"go-gem-defense/internal/utils"
)

const blastDuration = 0.25 // seconds

// ProjectileSystem moves projectiles and resolves their hits: area splash,
// keystone self-damage, then chain to a new target or pierce onward.
type ProjectileSystem struct {
	ecs    *entity.ECS
	damage *DamageSystem
}

func NewProjectileSystem(ecs *entity.ECS, damage *DamageSystem) *ProjectileSystem {
	return &ProjectileSystem{ecs: ecs, damage: damage}
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	for _, id := range s.ecs.ProjectileIDs() {
		proj := s.ecs.Projectiles[id]
		pos := s.ecs.Positions[id]
		if pos == nil {
			s.ecs.RemoveEntity(id)
			continue
		}
		step := proj.Speed * deltaTime

		if proj.TargetID != 0 {
			targetPos, ok := s.ecs.Positions[proj.TargetID]
			if !ok || s.ecs.Enemies[proj.TargetID] == nil {
				// Target is gone: keep flying along the last heading.
				proj.TargetID = 0
			} else {
				dist := utils.Distance(pos.X, pos.Y, targetPos.X, targetPos.Y)
				proj.Direction = math.Atan2(targetPos.Y-pos.Y, targetPos.X-pos.X)
				if dist <= step || dist < config.ProjectileHitRadius {
					pos.X, pos.Y = targetPos.X, targetPos.Y
					s.hit(id, proj, proj.TargetID)
					continue
				}
			}
		}

		pos.X += math.Cos(proj.Direction) * step
		pos.Y += math.Sin(proj.Direction) * step

		if proj.TargetID == 0 {
			if victim, ok := s.collide(proj, pos); ok {
				s.hit(id, proj, victim)
				continue
			}
		}
		if offScreen(pos) {
			s.ecs.RemoveEntity(id)
		}
	}
}

// collide finds the first enemy not yet hit by proj that overlaps pos.
func (s *ProjectileSystem) collide(proj *component.Projectile, pos *component.Position) (types.EntityID, bool) {
	for _, eid := range s.ecs.EnemyIDs() {
		if proj.Hit[eid] {
			continue
		}
		epos := s.ecs.Positions[eid]
		reach := config.ProjectileHitRadius
		if r, ok := s.ecs.Renderables[eid]; ok {
			reach += float64(r.Radius)
		}
		if utils.Distance(pos.X, pos.Y, epos.X, epos.Y) <= reach {
			return eid, true
		}
	}
	return 0, false
}

func (s *ProjectileSystem) hit(id types.EntityID, proj *component.Projectile, victim types.EntityID) {
	proj.Hit[victim] = true
	impact := *s.ecs.Positions[victim]

	s.damage.HitEnemy(victim, proj.Damage)
	if proj.AreaRadius > config.ProjectileHitRadius {
		for _, other := range enemiesWithin(s.ecs, impact.X, impact.Y, proj.AreaRadius) {
			if other != victim {
				s.damage.HitEnemy(other, proj.Damage)
			}
		}
		s.addBlast(impact, proj)
	}
	if proj.SelfDamage > 0 {
		s.damage.HurtDefender(proj.SelfDamage, true)
	}

	if proj.ChainLeft > 0 {
		if next, ok := s.nearestUnhit(proj, impact); ok {
			proj.ChainLeft--
			proj.TargetID = next
			return
		}
	}
	if proj.PierceLeft > 0 {
		proj.PierceLeft--
		proj.TargetID = 0
		return
	}
	s.ecs.RemoveEntity(id)
}

func (s *ProjectileSystem) nearestUnhit(proj *component.Projectile, from component.Position) (types.EntityID, bool) {
	var best types.EntityID
	bestDist := math.Inf(1)
	for _, eid := range enemiesWithin(s.ecs, from.X, from.Y, config.ChainSearchRadius) {
		if proj.Hit[eid] {
			continue
		}
		epos := s.ecs.Positions[eid]
		if d := utils.Distance(from.X, from.Y, epos.X, epos.Y); d < bestDist {
			best, bestDist = eid, d
		}
	}
	return best, best != 0
}

func (s *ProjectileSystem) addBlast(at component.Position, proj *component.Projectile) {
	id := s.ecs.NewEntity()
	s.ecs.Positions[id] = &component.Position{X: at.X, Y: at.Y}
	s.ecs.Blasts[id] = &component.Blast{MaxRadius: proj.AreaRadius, Duration: blastDuration, Color: proj.Color}
}

func offScreen(pos *component.Position) bool {
	const margin = 50
	return pos.X < -margin || pos.Y < -margin ||
		pos.X > config.ScreenWidth+margin || pos.Y > config.ScreenHeight+margin
}
