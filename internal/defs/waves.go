package defs

// TierChance is one entry of a weighted tier pool.
type TierChance struct {
	Tier   string  `yaml:"tier" json:"tier"`
	Chance float64 `yaml:"chance" json:"chance"`
}

// SpawnGroup describes a run of identical spawns inside a wave.
// Either Tier or Pool is set; Pool wins when both are present.
// SpawnPoint < 0 cycles through the stage spawn points.
type SpawnGroup struct {
	Tier       string       `yaml:"tier,omitempty" json:"tier,omitempty"`
	Pool       []TierChance `yaml:"pool,omitempty" json:"pool,omitempty"`
	Count      int          `yaml:"count" json:"count"`
	Interval   int          `yaml:"interval" json:"interval"` // ticks
	SpawnPoint int          `yaml:"spawn_point" json:"spawn_point"`
	Boss       string       `yaml:"boss,omitempty" json:"boss,omitempty"`
}

// WaveDefinition is one timed phase of an encounter.
type WaveDefinition struct {
	Groups     []SpawnGroup `yaml:"groups" json:"groups"`
	GroupDelay int          `yaml:"group_delay" json:"group_delay"` // ticks between groups
}

// Stage is an ordered list of waves plus boss-wave overrides keyed by wave index.
type Stage struct {
	ID            string           `yaml:"id" json:"id"`
	Name          string           `yaml:"name" json:"name"`
	Waves         []WaveDefinition `yaml:"waves" json:"waves"`
	BossWaves     map[int]string   `yaml:"boss_waves,omitempty" json:"boss_waves,omitempty"`
	DefaultTier   string           `yaml:"default_tier" json:"default_tier"`
	SpawnPoints   []Point          `yaml:"spawn_points" json:"spawn_points"`
	WaveBreak     int              `yaml:"wave_break" json:"wave_break"`         // ticks spent in WaveComplete
	FallbackCount int              `yaml:"fallback_count" json:"fallback_count"` // spawns used when a boss reference is broken
}
