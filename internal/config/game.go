package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Game holds the runtime configuration of one simulation session.
type Game struct {
	LogLevel string `yaml:"log_level"`
	Seed     int64  `yaml:"seed"` // 0 picks a time-based seed

	// Data
	CatalogPath   string `yaml:"catalog_path"` // empty uses the built-in catalog
	Stage         string `yaml:"stage"`
	TargetingPath string `yaml:"targeting_path"` // empty uses the built-in nearest-enemy program

	Build  BuildConfig  `yaml:"build"`
	Floors FloorsConfig `yaml:"floors"`

	PointsPerWave int  `yaml:"points_per_wave"`
	Audio         bool `yaml:"audio"`
}

// BuildConfig bounds the player's build.
type BuildConfig struct {
	AllocationPoints int            `yaml:"allocation_points"`
	Sockets          int            `yaml:"sockets"`
	MaxLinks         int            `yaml:"max_links"`
	Slots            map[string]int `yaml:"slots"` // slot class -> capacity
	StartingSockets  []SocketConfig `yaml:"starting_sockets"`
	StartingEquipped []string       `yaml:"starting_equipped"`
}

// SocketConfig is an ability with its linked supports, used to seed a build.
type SocketConfig struct {
	Ability string   `yaml:"ability"`
	Links   []string `yaml:"links"`
}

// FloorsConfig are the lowest values rate-like stats may resolve to.
type FloorsConfig struct {
	FireInterval    float64 `yaml:"fire_interval"`
	AreaRadius      float64 `yaml:"area_radius"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
}

// DefaultGame returns Game config with sensible defaults.
func DefaultGame() Game {
	return Game{
		LogLevel: "info",
		Stage:    "meadow",
		Build: BuildConfig{
			AllocationPoints: 3,
			Sockets:          3,
			MaxLinks:         3,
			Slots:            map[string]int{"ring": 2, "amulet": 1},
			StartingSockets: []SocketConfig{
				{Ability: "ABILITY_FIREBALL", Links: []string{"SUPPORT_ADDED_FIRE"}},
				{Ability: "ABILITY_SPLIT_ARROW"},
			},
		},
		Floors: FloorsConfig{
			FireInterval:    0.05,
			AreaRadius:      1,
			ProjectileSpeed: 10,
		},
		PointsPerWave: 2,
		Audio:         true,
	}
}

// LoadGame loads game config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadGame(path string) (Game, error) {
	cfg := DefaultGame()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (g Game) Validate() error {
	if g.Build.Sockets < 1 {
		return fmt.Errorf("build.sockets must be >= 1, got %d", g.Build.Sockets)
	}
	if g.Build.MaxLinks < 0 {
		return fmt.Errorf("build.max_links must be >= 0, got %d", g.Build.MaxLinks)
	}
	if len(g.Build.StartingSockets) > g.Build.Sockets {
		return fmt.Errorf("%d starting sockets exceed %d sockets", len(g.Build.StartingSockets), g.Build.Sockets)
	}
	if g.Floors.FireInterval <= 0 || g.Floors.AreaRadius <= 0 || g.Floors.ProjectileSpeed <= 0 {
		return fmt.Errorf("floors must be positive: %+v", g.Floors)
	}
	return nil
}

// ParseLogLevel maps a config string onto a slog level; unknown values mean info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
