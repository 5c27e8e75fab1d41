package defs

// KeystoneKind selects the override rule applied after normal scaling.
type KeystoneKind string

const (
	// KeystoneFinalDamage multiplies final damage and hurts the defender on every hit.
	KeystoneFinalDamage KeystoneKind = "final_damage"
	// KeystoneResolute removes critical strikes in exchange for more damage.
	KeystoneResolute KeystoneKind = "resolute"
	// KeystoneBarrage fires extra projectiles that each deal less damage.
	KeystoneBarrage KeystoneKind = "barrage"
)

// Keystone is the trade-off attached to a capstone passive.
type Keystone struct {
	Kind             KeystoneKind `yaml:"kind" json:"kind"`
	DamageMultiplier float64      `yaml:"damage_multiplier" json:"damage_multiplier"`
	SelfDamageOnHit  float64      `yaml:"self_damage_on_hit,omitempty" json:"self_damage_on_hit,omitempty"`
	ExtraProjectiles int          `yaml:"extra_projectiles,omitempty" json:"extra_projectiles,omitempty"`
}

// PassiveNodeDefinition is one node of the passive allocation graph.
// Stats are per rank.
type PassiveNodeDefinition struct {
	ID       string    `yaml:"id" json:"id"`
	Name     string    `yaml:"name" json:"name"`
	RankCap  int       `yaml:"rank_cap" json:"rank_cap"`
	Stats    StatMap   `yaml:"stats,omitempty" json:"stats,omitempty"`
	Children []string  `yaml:"children,omitempty" json:"children,omitempty"`
	Keystone *Keystone `yaml:"keystone,omitempty" json:"keystone,omitempty"`
}

// PassiveTree is the allocation graph. Edges are declared parent -> children;
// a node may have several parents.
type PassiveTree struct {
	Origin string
	Nodes  map[string]PassiveNodeDefinition

	parents map[string][]string
}

// NewPassiveTree indexes the graph's parent edges.
func NewPassiveTree(origin string, nodes []PassiveNodeDefinition) PassiveTree {
	t := PassiveTree{
		Origin:  origin,
		Nodes:   make(map[string]PassiveNodeDefinition, len(nodes)),
		parents: make(map[string][]string),
	}
	for _, n := range nodes {
		t.Nodes[n.ID] = n
	}
	for _, n := range nodes {
		for _, child := range n.Children {
			t.parents[child] = append(t.parents[child], n.ID)
		}
	}
	return t
}

// Node returns the definition for id.
func (t PassiveTree) Node(id string) (PassiveNodeDefinition, bool) {
	n, ok := t.Nodes[id]
	return n, ok
}

// Parents returns every node that declares id as a child, in declaration order.
func (t PassiveTree) Parents(id string) []string {
	return t.parents[id]
}
