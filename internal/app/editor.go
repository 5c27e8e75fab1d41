package app

import (
	"fmt"
	"slices"

	"go-gem-defense/internal/build"
	"go-gem-defense/internal/defs"
)

// Editor turns simple cursor commands into build mutations. It only reads the
// build; the mutations go through Session.Enqueue like any other change.
type Editor struct {
	passives  []string
	abilities []string
	modifiers []string
	items     []string

	cursor int
	socket int
}

func NewEditor(cat *defs.Catalog) *Editor {
	return &Editor{
		passives:  sortedKeys(cat.Passives.Nodes),
		abilities: sortedKeys(cat.Abilities),
		modifiers: sortedKeys(cat.Modifiers),
		items:     sortedKeys(cat.Equippables),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Passives lists the passive node ids in cursor order.
func (e *Editor) Passives() []string { return e.passives }

// Cursor is the index of the selected passive.
func (e *Editor) Cursor() int { return e.cursor }

// Socket is the selected socket.
func (e *Editor) Socket() int { return e.socket }

// MoveCursor moves the passive cursor by d, wrapping around.
func (e *Editor) MoveCursor(d int) {
	n := len(e.passives)
	if n == 0 {
		return
	}
	e.cursor = ((e.cursor+d)%n + n) % n
}

// SelectSocket picks the socket later commands act on.
func (e *Editor) SelectSocket(i int, st *build.State) {
	if i >= 0 && i < len(st.Sockets()) {
		e.socket = i
	}
}

func (e *Editor) selected() string {
	if len(e.passives) == 0 {
		return ""
	}
	return e.passives[e.cursor]
}

func (e *Editor) Allocate() build.Mutation {
	return build.Mutation{Kind: build.MutAllocate, ID: e.selected()}
}

func (e *Editor) Refund() build.Mutation {
	return build.Mutation{Kind: build.MutRefund, ID: e.selected()}
}

// CycleAbility puts the ability after the current one into the selected socket.
func (e *Editor) CycleAbility(st *build.State) (build.Mutation, bool) {
	if len(e.abilities) == 0 {
		return build.Mutation{}, false
	}
	cur := st.Sockets()[e.socket].Ability
	next := e.abilities[(slices.Index(e.abilities, cur)+1)%len(e.abilities)]
	return build.Mutation{Kind: build.MutSocket, Slot: e.socket, ID: next}, true
}

// AddLink links the first support not yet linked to the selected socket.
func (e *Editor) AddLink(st *build.State) (build.Mutation, bool) {
	links := st.Sockets()[e.socket].Links
	for _, m := range e.modifiers {
		if !slices.Contains(links, m) {
			return build.Mutation{Kind: build.MutLink, Slot: e.socket, ID: m}, true
		}
	}
	return build.Mutation{}, false
}

// RemoveLink unlinks the most recently linked support.
func (e *Editor) RemoveLink(st *build.State) (build.Mutation, bool) {
	links := st.Sockets()[e.socket].Links
	if len(links) == 0 {
		return build.Mutation{}, false
	}
	return build.Mutation{Kind: build.MutUnlink, Slot: e.socket, Index: len(links) - 1}, true
}

// EquipNext equips the first item not already worn.
func (e *Editor) EquipNext(st *build.State) (build.Mutation, bool) {
	worn := st.Equipped()
	for _, item := range e.items {
		if !slices.Contains(worn, item) {
			return build.Mutation{Kind: build.MutEquip, ID: item}, true
		}
	}
	return build.Mutation{}, false
}

// UnequipLast removes the most recently equipped item.
func (e *Editor) UnequipLast(st *build.State) (build.Mutation, bool) {
	worn := st.Equipped()
	if len(worn) == 0 {
		return build.Mutation{}, false
	}
	return build.Mutation{Kind: build.MutUnequip, ID: worn[len(worn)-1]}, true
}

// Describe renders a mutation for the HUD message line.
func Describe(m build.Mutation) string {
	switch m.Kind {
	case build.MutSocket:
		return fmt.Sprintf("socket %d <- %s", m.Slot+1, m.ID)
	case build.MutLink:
		return fmt.Sprintf("socket %d + %s", m.Slot+1, m.ID)
	case build.MutUnlink:
		return fmt.Sprintf("socket %d - link %d", m.Slot+1, m.Index+1)
	case build.MutGrantPoints:
		return fmt.Sprintf("grant %d points", m.N)
	default:
		return fmt.Sprintf("%s %s", m.Kind, m.ID)
	}
}
