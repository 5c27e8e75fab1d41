package system

import (
	"go-gem-defense/internal/component"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/types"
	"go-gem-defense/internal/utils"
)

// DamageSystem applies damage to enemies and the defender and reports the
// outcome through the dispatcher.
type DamageSystem struct {
	ecs    *entity.ECS
	events *event.Dispatcher
}

func NewDamageSystem(ecs *entity.ECS, events *event.Dispatcher) *DamageSystem {
	return &DamageSystem{ecs: ecs, events: events}
}

// HitEnemy deals amount to an enemy and removes it once its health runs out.
// It reports whether the enemy died.
func (s *DamageSystem) HitEnemy(id types.EntityID, amount float64) bool {
	health, ok := s.ecs.Healths[id]
	enemy, isEnemy := s.ecs.Enemies[id]
	if !ok || !isEnemy {
		return false
	}
	if amount < 0 {
		amount = 0
	}
	health.Value -= amount
	s.ecs.DamageFlashes[id] = &component.DamageFlash{Timer: config.DamageFlashDuration}
	if health.Value > 0 {
		return false
	}

	s.events.Dispatch(event.Event{Type: event.EnemyDestroyed, Data: event.EnemyDestroyedData{
		ID:     id,
		Tier:   enemy.Tier,
		Reward: enemy.Reward,
		Killed: true,
	}})
	s.ecs.RemoveEntity(id)
	return true
}

// HurtDefender subtracts amount from the defender. Health never drops below
// zero; DefenderDefeated fires once, on the hit that empties it.
func (s *DamageSystem) HurtDefender(amount float64, self bool) {
	health, ok := s.ecs.Healths[s.ecs.DefenderID]
	if !ok || amount <= 0 || health.Value <= 0 {
		return
	}
	health.Value = max(health.Value-amount, 0)
	s.ecs.DamageFlashes[s.ecs.DefenderID] = &component.DamageFlash{Timer: config.DamageFlashDuration}

	data := event.DefenderDamagedData{Amount: amount, Remaining: health.Value, SelfHit: self}
	s.events.Dispatch(event.Event{Type: event.DefenderDamaged, Data: data})
	if health.Value == 0 {
		s.events.Dispatch(event.Event{Type: event.DefenderDefeated, Data: data})
	}
}

// DefenderAlive reports whether the defender still has health.
func (s *DamageSystem) DefenderAlive() bool {
	health, ok := s.ecs.Healths[s.ecs.DefenderID]
	return ok && health.Value > 0
}

// enemiesWithin returns the enemies whose centre lies within radius of (x, y),
// in spawn order.
func enemiesWithin(ecs *entity.ECS, x, y, radius float64) []types.EntityID {
	var out []types.EntityID
	for _, id := range ecs.EnemyIDs() {
		pos, ok := ecs.Positions[id]
		if !ok {
			continue
		}
		if utils.Distance(x, y, pos.X, pos.Y) <= radius {
			out = append(out, id)
		}
	}
	return out
}
