package types

// EntityID identifies an entity in the world.
type EntityID uint64
