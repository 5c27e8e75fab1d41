package system

import (
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/utils"
)

// MovementSystem walks enemies straight at the defender. An enemy that
// reaches it deals its contact damage and is removed.
type MovementSystem struct {
	ecs    *entity.ECS
	damage *DamageSystem
	events *event.Dispatcher
}

func NewMovementSystem(ecs *entity.ECS, damage *DamageSystem, events *event.Dispatcher) *MovementSystem {
	return &MovementSystem{ecs: ecs, damage: damage, events: events}
}

func (s *MovementSystem) Update(deltaTime float64) {
	tx, ty := float64(config.DefenderX), float64(config.DefenderY)
	for _, id := range s.ecs.EnemyIDs() {
		pos, hasPos := s.ecs.Positions[id]
		vel, hasVel := s.ecs.Velocities[id]
		if !hasPos || !hasVel {
			continue
		}
		pos.X, pos.Y, _ = utils.MoveTowards(pos.X, pos.Y, tx, ty, vel.Speed*deltaTime)
		if utils.Distance(pos.X, pos.Y, tx, ty) > config.DefenderRadius {
			continue
		}

		enemy := s.ecs.Enemies[id]
		s.damage.HurtDefender(enemy.Damage, false)
		s.events.Dispatch(event.Event{Type: event.EnemyDestroyed, Data: event.EnemyDestroyedData{
			ID:   id,
			Tier: enemy.Tier,
		}})
		s.ecs.RemoveEntity(id)
	}
}
