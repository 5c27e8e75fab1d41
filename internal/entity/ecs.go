package entity

import (
	"slices"

	"go-gem-defense/internal/component"
	"go-gem-defense/internal/types"
)

// ECS stores every entity of one session as component maps keyed by id.
type ECS struct {
	GameTime      float64
	NextID        types.EntityID
	DefenderID    types.EntityID
	Positions     map[types.EntityID]*component.Position
	Velocities    map[types.EntityID]*component.Velocity
	Healths       map[types.EntityID]*component.Health
	Renderables   map[types.EntityID]*component.Renderable
	Enemies       map[types.EntityID]*component.Enemy
	Projectiles   map[types.EntityID]*component.Projectile
	Combats       map[types.EntityID]*component.Combat
	DamageFlashes map[types.EntityID]*component.DamageFlash
	Blasts        map[types.EntityID]*component.Blast
}

func NewECS() *ECS {
	return &ECS{
		NextID:        1,
		Positions:     make(map[types.EntityID]*component.Position),
		Velocities:    make(map[types.EntityID]*component.Velocity),
		Healths:       make(map[types.EntityID]*component.Health),
		Renderables:   make(map[types.EntityID]*component.Renderable),
		Enemies:       make(map[types.EntityID]*component.Enemy),
		Projectiles:   make(map[types.EntityID]*component.Projectile),
		Combats:       make(map[types.EntityID]*component.Combat),
		DamageFlashes: make(map[types.EntityID]*component.DamageFlash),
		Blasts:        make(map[types.EntityID]*component.Blast),
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// RemoveEntity drops every component of id.
func (ecs *ECS) RemoveEntity(id types.EntityID) {
	delete(ecs.Positions, id)
	delete(ecs.Velocities, id)
	delete(ecs.Healths, id)
	delete(ecs.Renderables, id)
	delete(ecs.Enemies, id)
	delete(ecs.Projectiles, id)
	delete(ecs.Combats, id)
	delete(ecs.DamageFlashes, id)
	delete(ecs.Blasts, id)
}

// EnemyIDs returns the live enemies in spawn order. Map iteration order is
// random, so anything that must be reproducible iterates through this.
func (ecs *ECS) EnemyIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(ecs.Enemies))
	for id := range ecs.Enemies {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ProjectileIDs returns the projectiles in creation order.
func (ecs *ECS) ProjectileIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(ecs.Projectiles))
	for id := range ecs.Projectiles {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
