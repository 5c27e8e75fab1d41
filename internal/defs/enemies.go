package defs

// EnemyTier holds all the static data for one enemy classification.
type EnemyTier struct {
	ID      string  `yaml:"id" json:"id"`
	Name    string  `yaml:"name" json:"name"`
	Health  float64 `yaml:"health" json:"health"`
	Speed   float64 `yaml:"speed" json:"speed"`
	Damage  float64 `yaml:"damage" json:"damage"` // dealt to the defender on contact
	Reward  int     `yaml:"reward" json:"reward"`
	Visuals Visuals `yaml:"visuals" json:"visuals"`
}

// BossEntity is one named member of a boss group.
type BossEntity struct {
	Name             string  `yaml:"name" json:"name"`
	Tier             string  `yaml:"tier" json:"tier"`
	HealthMultiplier float64 `yaml:"health_multiplier" json:"health_multiplier"`
}

// BossTemplate is a themed group of 1-3 named entities.
type BossTemplate struct {
	ID       string       `yaml:"id" json:"id"`
	Name     string       `yaml:"name" json:"name"`
	Entities []BossEntity `yaml:"entities" json:"entities"`
	Interval int          `yaml:"interval" json:"interval"` // ticks between entities
}
