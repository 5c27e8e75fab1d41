package component

// Health of an enemy or the defender.
type Health struct {
	Value float64
	Max   float64
}

// Combat tracks per-socket fire cooldowns of the defender, in seconds.
type Combat struct {
	Cooldowns map[int]float64
}
