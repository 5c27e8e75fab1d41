package build

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"go-gem-defense/internal/defs"
)

// ErrInvariantViolation is returned by a mutation that would break a build rule.
// The state is left unchanged whenever it is returned.
var ErrInvariantViolation = errors.New("build invariant violation")

// Limits bounds the shape of a build.
type Limits struct {
	Sockets  int
	MaxLinks int
	Slots    map[defs.SlotClass]int
}

// Socket holds one active gem and the support gems linked to it.
// An empty Ability means the socket is unused.
type Socket struct {
	Ability string
	Links   []string
}

// State is the mutable player build owned by one session. It is only changed
// through its methods, each of which validates against the catalog first.
type State struct {
	cat    *defs.Catalog
	limits Limits

	sockets  []Socket
	ranks    map[string]int
	equipped []string
	points   int
	spent    int

	rev uint64
}

// NewState creates an empty build with points allocation points available.
func NewState(cat *defs.Catalog, limits Limits, points int) *State {
	if limits.Sockets < 1 {
		limits.Sockets = 1
	}
	return &State{
		cat:     cat,
		limits:  limits,
		sockets: make([]Socket, limits.Sockets),
		ranks:   make(map[string]int),
		points:  points,
	}
}

// Revision increases by one on every accepted mutation.
func (s *State) Revision() uint64 { return s.rev }

// Points returns the total allocation points available.
func (s *State) Points() int { return s.points }

// Spent returns the number of allocated passive ranks.
func (s *State) Spent() int { return s.spent }

// Rank returns the allocated rank of a passive node.
func (s *State) Rank(node string) int { return s.ranks[node] }

// Ranks returns a copy of the rank-count map.
func (s *State) Ranks() map[string]int {
	out := make(map[string]int, len(s.ranks))
	for k, v := range s.ranks {
		out[k] = v
	}
	return out
}

// Sockets returns a copy of the socket list.
func (s *State) Sockets() []Socket {
	out := make([]Socket, len(s.sockets))
	for i, sock := range s.sockets {
		out[i] = Socket{Ability: sock.Ability, Links: slices.Clone(sock.Links)}
	}
	return out
}

// Equipped returns the equipped item ids in equip order.
func (s *State) Equipped() []string { return slices.Clone(s.equipped) }

// Clone returns an independent copy, used for speculative resolution.
func (s *State) Clone() *State {
	c := &State{
		cat:      s.cat,
		limits:   s.limits,
		sockets:  s.Sockets(),
		ranks:    s.Ranks(),
		equipped: s.Equipped(),
		points:   s.points,
		spent:    s.spent,
		rev:      s.rev,
	}
	return c
}

func (s *State) changed() { s.rev++ }

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}

// Allocate adds one rank to a passive node. The node must be below its cap,
// a point must be free, and every declared parent must hold at least one rank.
func (s *State) Allocate(node string) error {
	def, ok := s.cat.Passives.Node(node)
	if !ok {
		return &defs.CatalogReferenceError{Kind: "passive", ID: node, Where: "allocate"}
	}
	if s.ranks[node] >= def.RankCap {
		return violation("passive %q already at rank cap %d", node, def.RankCap)
	}
	if s.spent >= s.points {
		return violation("no allocation points left (%d/%d spent)", s.spent, s.points)
	}
	if !s.reachable(node) {
		return violation("passive %q is not connected to an allocated parent", node)
	}
	s.ranks[node]++
	s.spent++
	s.changed()
	return nil
}

// reachable applies the allocation rule: the origin is always reachable, any
// other node needs all of its declared parents allocated. A non-origin node
// without parents can never be reached.
func (s *State) reachable(node string) bool {
	tree := s.cat.Passives
	if node == tree.Origin {
		return true
	}
	parents := tree.Parents(node)
	if len(parents) == 0 {
		return false
	}
	for _, p := range parents {
		if s.ranks[p] < 1 {
			return false
		}
	}
	return true
}

// Refund removes one rank from a passive node. Dropping a node to zero is
// refused while any allocated child still depends on it.
func (s *State) Refund(node string) error {
	def, ok := s.cat.Passives.Node(node)
	if !ok {
		return &defs.CatalogReferenceError{Kind: "passive", ID: node, Where: "refund"}
	}
	if s.ranks[node] == 0 {
		return violation("passive %q has no allocated rank", node)
	}
	if s.ranks[node] == 1 {
		for _, child := range def.Children {
			if s.ranks[child] > 0 {
				return violation("passive %q is required by allocated %q", node, child)
			}
		}
	}
	s.ranks[node]--
	if s.ranks[node] == 0 {
		delete(s.ranks, node)
	}
	s.spent--
	s.changed()
	return nil
}

// GrantPoints adds allocation points.
func (s *State) GrantPoints(n int) error {
	if n <= 0 {
		return violation("cannot grant %d points", n)
	}
	s.points += n
	s.changed()
	return nil
}

func (s *State) checkSlot(slot int) error {
	if slot < 0 || slot >= len(s.sockets) {
		return violation("socket %d out of range [0,%d)", slot, len(s.sockets))
	}
	return nil
}

// Socket places an ability into a socket, replacing whatever was there.
// Linked supports stay with the socket.
func (s *State) Socket(slot int, ability string) error {
	if err := s.checkSlot(slot); err != nil {
		return err
	}
	if _, ok := s.cat.Ability(ability); !ok {
		return &defs.CatalogReferenceError{Kind: "ability", ID: ability, Where: fmt.Sprintf("socket %d", slot)}
	}
	s.sockets[slot].Ability = ability
	s.changed()
	return nil
}

// Unsocket clears a socket and its links.
func (s *State) Unsocket(slot int) error {
	if err := s.checkSlot(slot); err != nil {
		return err
	}
	if s.sockets[slot].Ability == "" && len(s.sockets[slot].Links) == 0 {
		return violation("socket %d is already empty", slot)
	}
	s.sockets[slot] = Socket{}
	s.changed()
	return nil
}

// Link attaches a support gem to a socket.
func (s *State) Link(slot int, modifier string) error {
	if err := s.checkSlot(slot); err != nil {
		return err
	}
	if _, ok := s.cat.Modifier(modifier); !ok {
		return &defs.CatalogReferenceError{Kind: "modifier", ID: modifier, Where: fmt.Sprintf("socket %d", slot)}
	}
	if len(s.sockets[slot].Links) >= s.limits.MaxLinks {
		return violation("socket %d already has %d links", slot, s.limits.MaxLinks)
	}
	s.sockets[slot].Links = append(s.sockets[slot].Links, modifier)
	s.changed()
	return nil
}

// Unlink removes the link at index from a socket.
func (s *State) Unlink(slot, index int) error {
	if err := s.checkSlot(slot); err != nil {
		return err
	}
	links := s.sockets[slot].Links
	if index < 0 || index >= len(links) {
		return violation("socket %d has no link %d", slot, index)
	}
	s.sockets[slot].Links = slices.Delete(slices.Clone(links), index, index+1)
	s.changed()
	return nil
}

// Equip puts an artifact into a free slot of its class.
func (s *State) Equip(item string) error {
	def, ok := s.cat.Equippable(item)
	if !ok {
		return &defs.CatalogReferenceError{Kind: "equippable", ID: item, Where: "equip"}
	}
	if slices.Contains(s.equipped, item) {
		return violation("%q is already equipped", item)
	}
	used := 0
	for _, id := range s.equipped {
		if e, ok := s.cat.Equippable(id); ok && e.Slot == def.Slot {
			used++
		}
	}
	if used >= s.limits.Slots[def.Slot] {
		return violation("no free %s slot (%d used)", def.Slot, used)
	}
	s.equipped = append(s.equipped, item)
	s.changed()
	return nil
}

// Unequip removes an equipped artifact.
func (s *State) Unequip(item string) error {
	i := slices.Index(s.equipped, item)
	if i < 0 {
		return violation("%q is not equipped", item)
	}
	s.equipped = slices.Delete(slices.Clone(s.equipped), i, i+1)
	s.changed()
	return nil
}

// allocatedNodes returns allocated node ids in sorted order so that
// floating-point sums do not depend on map iteration order.
func (s *State) allocatedNodes() []string {
	ids := make([]string, 0, len(s.ranks))
	for id, r := range s.ranks {
		if r > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
