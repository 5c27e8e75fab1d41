package defs

import (
	"errors"
	"fmt"
)

// Catalog is the immutable set of definitions shared by every session.
// It must not be modified after NewCatalog returns.
type Catalog struct {
	Abilities   map[string]AbilityDefinition
	Modifiers   map[string]ModifierDefinition
	Equippables map[string]EquippableDefinition
	Passives    PassiveTree
	Tiers       map[string]EnemyTier
	Bosses      map[string]BossTemplate
	Stages      map[string]Stage
}

// CatalogReferenceError reports an id that is absent from the catalog.
type CatalogReferenceError struct {
	Kind  string // "ability", "modifier", "tier", ...
	ID    string
	Where string
}

func (e *CatalogReferenceError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("unknown %s %q", e.Kind, e.ID)
	}
	return fmt.Sprintf("%s: unknown %s %q", e.Where, e.Kind, e.ID)
}

// Contents groups the definition lists a catalog is built from.
type Contents struct {
	Abilities   []AbilityDefinition     `yaml:"abilities" json:"abilities"`
	Modifiers   []ModifierDefinition    `yaml:"modifiers" json:"modifiers"`
	Equippables []EquippableDefinition  `yaml:"equippables" json:"equippables"`
	Origin      string                  `yaml:"passive_origin" json:"passive_origin"`
	Passives    []PassiveNodeDefinition `yaml:"passives" json:"passives"`
	Tiers       []EnemyTier             `yaml:"tiers" json:"tiers"`
	Bosses      []BossTemplate          `yaml:"bosses" json:"bosses"`
	Stages      []Stage                 `yaml:"stages" json:"stages"`
}

// NewCatalog indexes c and validates cross references.
func NewCatalog(c Contents) (*Catalog, error) {
	cat := &Catalog{
		Abilities:   make(map[string]AbilityDefinition, len(c.Abilities)),
		Modifiers:   make(map[string]ModifierDefinition, len(c.Modifiers)),
		Equippables: make(map[string]EquippableDefinition, len(c.Equippables)),
		Passives:    NewPassiveTree(c.Origin, c.Passives),
		Tiers:       make(map[string]EnemyTier, len(c.Tiers)),
		Bosses:      make(map[string]BossTemplate, len(c.Bosses)),
		Stages:      make(map[string]Stage, len(c.Stages)),
	}
	for _, a := range c.Abilities {
		cat.Abilities[a.ID] = a
	}
	for _, m := range c.Modifiers {
		cat.Modifiers[m.ID] = m
	}
	for _, e := range c.Equippables {
		cat.Equippables[e.ID] = e
	}
	for _, t := range c.Tiers {
		cat.Tiers[t.ID] = t
	}
	for _, b := range c.Bosses {
		cat.Bosses[b.ID] = b
	}
	for _, s := range c.Stages {
		cat.Stages[s.ID] = s
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// Ability returns the ability definition for id.
func (c *Catalog) Ability(id string) (AbilityDefinition, bool) {
	a, ok := c.Abilities[id]
	return a, ok
}

// Modifier returns the support gem definition for id.
func (c *Catalog) Modifier(id string) (ModifierDefinition, bool) {
	m, ok := c.Modifiers[id]
	return m, ok
}

// Equippable returns the artifact definition for id.
func (c *Catalog) Equippable(id string) (EquippableDefinition, bool) {
	e, ok := c.Equippables[id]
	return e, ok
}

// Tier returns the enemy tier for id.
func (c *Catalog) Tier(id string) (EnemyTier, bool) {
	t, ok := c.Tiers[id]
	return t, ok
}

// Boss returns the boss template for id.
func (c *Catalog) Boss(id string) (BossTemplate, bool) {
	b, ok := c.Bosses[id]
	return b, ok
}

// Stage returns the stage for id.
func (c *Catalog) Stage(id string) (Stage, bool) {
	s, ok := c.Stages[id]
	return s, ok
}

// Validate checks structural rules that must hold for the whole lifetime of the
// catalog. Broken references inside waves and bosses are tolerated here: the
// scheduler recovers from them at runtime. A stage's default tier must
// resolve, because that recovery spawns it.
func (c *Catalog) Validate() error {
	var errs []error

	for id, m := range c.Modifiers {
		switch m.Kind {
		case ModifierMoreDamage, ModifierAdditiveCount, ModifierPierce, ModifierChain, ModifierSpeed:
		default:
			errs = append(errs, fmt.Errorf("modifier %q: unknown kind %q", id, m.Kind))
		}
	}
	for id, e := range c.Equippables {
		if e.Slot != SlotRing && e.Slot != SlotAmulet {
			errs = append(errs, fmt.Errorf("equippable %q: unknown slot %q", id, e.Slot))
		}
		for k := range e.Stats {
			if !k.Known() {
				errs = append(errs, fmt.Errorf("equippable %q: unknown stat %q", id, k))
			}
		}
	}

	tree := c.Passives
	if len(tree.Nodes) > 0 {
		if _, ok := tree.Nodes[tree.Origin]; !ok {
			errs = append(errs, fmt.Errorf("passive origin %q is not a node", tree.Origin))
		}
		if len(tree.Parents(tree.Origin)) > 0 {
			errs = append(errs, fmt.Errorf("passive origin %q has parents", tree.Origin))
		}
	}
	for id, n := range tree.Nodes {
		if n.RankCap < 1 {
			errs = append(errs, fmt.Errorf("passive %q: rank cap %d < 1", id, n.RankCap))
		}
		for _, child := range n.Children {
			if _, ok := tree.Nodes[child]; !ok {
				errs = append(errs, fmt.Errorf("passive %q: child %q is not a node", id, child))
			}
		}
		for k := range n.Stats {
			if !k.Known() {
				errs = append(errs, fmt.Errorf("passive %q: unknown stat %q", id, k))
			}
		}
		if n.Keystone != nil {
			errs = append(errs, validateKeystone(id, n)...)
		}
	}
	if cycle := tree.findCycle(); cycle != "" {
		errs = append(errs, fmt.Errorf("passive graph has a cycle through %q", cycle))
	}

	for id, st := range c.Stages {
		if _, ok := c.Tiers[st.DefaultTier]; !ok {
			errs = append(errs, fmt.Errorf("stage %q: %w", id,
				&CatalogReferenceError{Kind: "tier", ID: st.DefaultTier, Where: "default_tier"}))
		}
	}

	return errors.Join(errs...)
}

func validateKeystone(id string, n PassiveNodeDefinition) []error {
	var errs []error
	k := n.Keystone
	switch k.Kind {
	case KeystoneFinalDamage, KeystoneResolute, KeystoneBarrage:
	default:
		errs = append(errs, fmt.Errorf("passive %q: unknown keystone kind %q", id, k.Kind))
	}
	if !(k.DamageMultiplier > 0) {
		errs = append(errs, fmt.Errorf("passive %q: keystone damage multiplier must be positive, got %v", id, k.DamageMultiplier))
	}
	if k.SelfDamageOnHit < 0 || k.ExtraProjectiles < 0 {
		errs = append(errs, fmt.Errorf("passive %q: keystone self damage and extra projectiles must not be negative", id))
	}
	if n.RankCap != 1 {
		errs = append(errs, fmt.Errorf("passive %q: keystone node must have rank cap 1, got %d", id, n.RankCap))
	}
	return errs
}

// findCycle returns a node on a cycle, or "" for an acyclic graph.
func (t PassiveTree) findCycle() string {
	const (
		unvisited = iota
		active
		done
	)
	mark := make(map[string]int, len(t.Nodes))
	var visit func(id string) string
	visit = func(id string) string {
		switch mark[id] {
		case active:
			return id
		case done:
			return ""
		}
		mark[id] = active
		for _, child := range t.Nodes[id].Children {
			if c := visit(child); c != "" {
				return c
			}
		}
		mark[id] = done
		return ""
	}
	for id := range t.Nodes {
		if c := visit(id); c != "" {
			return c
		}
	}
	return ""
}
