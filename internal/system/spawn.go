package system

import (
	"log/slog"

	"go-gem-defense/internal/component"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/encounter"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/types"
)

const bossRadiusFactor = 1.6

// SpawnSystem turns scheduler requests into enemy entities.
type SpawnSystem struct {
	ecs    *entity.ECS
	cat    *defs.Catalog
	events *event.Dispatcher
	log    *slog.Logger
}

func NewSpawnSystem(ecs *entity.ECS, cat *defs.Catalog, events *event.Dispatcher, log *slog.Logger) *SpawnSystem {
	return &SpawnSystem{ecs: ecs, cat: cat, events: events, log: log}
}

// SpawnDefender places the defender at the centre of the field and records
// its id on the ECS.
func (s *SpawnSystem) SpawnDefender() types.EntityID {
	id := s.ecs.NewEntity()
	s.ecs.DefenderID = id
	s.ecs.Positions[id] = &component.Position{X: config.DefenderX, Y: config.DefenderY}
	s.ecs.Healths[id] = &component.Health{Value: config.DefenderHealth, Max: config.DefenderHealth}
	s.ecs.Renderables[id] = &component.Renderable{Color: config.DefenderColor, Radius: config.DefenderRadius, HasStroke: true}
	s.ecs.Combats[id] = &component.Combat{Cooldowns: make(map[int]float64)}
	return id
}

// Spawn creates one enemy for req. It returns false if the tier is unknown,
// which the scheduler already filters out.
func (s *SpawnSystem) Spawn(req encounter.SpawnRequest) (types.EntityID, bool) {
	tier, ok := s.cat.Tier(req.Tier)
	if !ok {
		s.log.Warn("spawn skipped", "err", &defs.CatalogReferenceError{Kind: "tier", ID: req.Tier, Where: "spawn"})
		return 0, false
	}
	mult := req.HealthMultiplier
	if mult <= 0 {
		mult = 1
	}
	radius := float32(tier.Visuals.Radius)
	if req.Boss {
		radius *= bossRadiusFactor
	}

	id := s.ecs.NewEntity()
	s.ecs.Positions[id] = &component.Position{X: req.Position.X, Y: req.Position.Y}
	s.ecs.Velocities[id] = &component.Velocity{Speed: tier.Speed}
	s.ecs.Healths[id] = &component.Health{Value: tier.Health * mult, Max: tier.Health * mult}
	s.ecs.Renderables[id] = &component.Renderable{Color: tier.Visuals.Color, Radius: radius, HasStroke: req.Boss}
	s.ecs.Enemies[id] = &component.Enemy{
		Tier:   tier.ID,
		Name:   req.Name,
		Boss:   req.Boss,
		Damage: tier.Damage,
		Reward: tier.Reward,
	}

	s.events.Dispatch(event.Event{Type: event.EnemySpawned, Data: event.EnemySpawnedData{
		ID:       id,
		Tier:     tier.ID,
		Name:     req.Name,
		Boss:     req.Boss,
		Position: req.Position,
	}})
	return id, true
}
