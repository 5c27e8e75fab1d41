package system

import (
	"go-gem-defense/internal/entity"
)

// VisualEffectSystem ages damage flashes and area blasts.
type VisualEffectSystem struct {
	ecs *entity.ECS
}

func NewVisualEffectSystem(ecs *entity.ECS) *VisualEffectSystem {
	return &VisualEffectSystem{ecs: ecs}
}

func (s *VisualEffectSystem) Update(deltaTime float64) {
	for id, flash := range s.ecs.DamageFlashes {
		flash.Timer -= deltaTime
		if flash.Timer <= 0 {
			delete(s.ecs.DamageFlashes, id)
		}
	}
	for id, blast := range s.ecs.Blasts {
		blast.Timer += deltaTime
		if blast.Timer >= blast.Duration {
			s.ecs.RemoveEntity(id)
		}
	}
}
