package component

// Enemy is a spawned hostile. Tier refers to the catalog; Name is set for boss entities.
type Enemy struct {
	Tier   string
	Name   string
	Boss   bool
	Damage float64 // dealt to the defender on contact
	Reward int
}
