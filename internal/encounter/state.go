package encounter

import (
	"fmt"

	"go-gem-defense/internal/defs"
)

// Phase is the scheduler's state machine position.
type Phase int

const (
	Idle Phase = iota
	SpawningGroup
	InterGroupWait
	WaveComplete
	AllWavesComplete
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case SpawningGroup:
		return "spawning_group"
	case InterGroupWait:
		return "inter_group_wait"
	case WaveComplete:
		return "wave_complete"
	case AllWavesComplete:
		return "all_waves_complete"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is a snapshot of the encounter progress.
type State struct {
	Phase Phase
	Wave  int // index into the stage's wave list
	// ElapsedInWave counts ticks since the current wave began.
	ElapsedInWave int
	// Group is the cursor into the current wave's planned groups.
	Group int
	// Remaining spawns of the current group.
	Remaining int
	// Dispatched counts spawn requests emitted during the current wave.
	Dispatched int
	// Done is set once every wave has completed.
	Done bool
	// Boss is true while the current wave is a boss wave.
	Boss bool
}

// SpawnRequest asks the enemy instantiation layer for one enemy.
type SpawnRequest struct {
	Wave             int
	Group            int
	Tier             string
	Name             string // set for named boss entities
	Boss             bool
	HealthMultiplier float64
	Position         defs.Point
	Count            int
}

// Step is everything one tick produced.
type Step struct {
	Spawns        []SpawnRequest
	WaveStarted   bool
	WaveCompleted bool
	AllComplete   bool
}

// Group is a spawn group after boss substitution and catalog checks.
type Group struct {
	Tier       string
	Pool       []defs.TierChance
	Count      int
	Interval   int
	SpawnPoint int
	BossName   string
	Bosses     []defs.BossEntity // one entry per spawn when set
}

// RandomSource supplies uniform draws in [0, 1).
type RandomSource interface {
	Float64() float64
}
