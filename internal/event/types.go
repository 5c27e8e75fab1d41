package event

import (
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/types"
)

const (
	AttackFired      EventType = "AttackFired"
	EnemySpawned     EventType = "EnemySpawned"
	EnemyDestroyed   EventType = "EnemyDestroyed"
	WaveStarted      EventType = "WaveStarted"
	WaveCleared      EventType = "WaveCleared"
	AllWavesCleared  EventType = "AllWavesCleared"
	BuildChanged     EventType = "BuildChanged"
	DefenderDamaged  EventType = "DefenderDamaged"
	DefenderDefeated EventType = "DefenderDefeated"
)

// AttackFiredData accompanies AttackFired.
type AttackFiredData struct {
	Socket      int
	Ability     string
	Target      types.EntityID
	Projectiles int
}

// EnemySpawnedData accompanies EnemySpawned.
type EnemySpawnedData struct {
	ID       types.EntityID
	Tier     string
	Name     string
	Boss     bool
	Position defs.Point
}

// EnemyDestroyedData accompanies EnemyDestroyed. Killed is false when the
// enemy reached the defender instead.
type EnemyDestroyedData struct {
	ID     types.EntityID
	Tier   string
	Reward int
	Killed bool
}

// WaveData accompanies WaveStarted, WaveCleared and AllWavesCleared.
type WaveData struct {
	Wave int
	Boss bool
}

// BuildChangedData accompanies BuildChanged.
type BuildChangedData struct {
	Revision uint64
	Sockets  int
}

// DefenderDamagedData accompanies DefenderDamaged and DefenderDefeated.
type DefenderDamagedData struct {
	Amount    float64
	Remaining float64
	SelfHit   bool
}
