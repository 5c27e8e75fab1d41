package build

import "fmt"

// MutationKind enumerates the build changes a session can queue.
type MutationKind int

const (
	MutAllocate MutationKind = iota
	MutRefund
	MutSocket
	MutUnsocket
	MutLink
	MutUnlink
	MutEquip
	MutUnequip
	MutGrantPoints
)

func (k MutationKind) String() string {
	switch k {
	case MutAllocate:
		return "allocate"
	case MutRefund:
		return "refund"
	case MutSocket:
		return "socket"
	case MutUnsocket:
		return "unsocket"
	case MutLink:
		return "link"
	case MutUnlink:
		return "unlink"
	case MutEquip:
		return "equip"
	case MutUnequip:
		return "unequip"
	case MutGrantPoints:
		return "grant_points"
	default:
		return fmt.Sprintf("mutation(%d)", int(k))
	}
}

// Mutation is a deferred build change. ID is a node, ability, modifier or item
// id depending on Kind; Slot and Index address sockets and links; N is a point count.
type Mutation struct {
	Kind  MutationKind
	ID    string
	Slot  int
	Index int
	N     int
}

// Apply performs m on s.
func Apply(s *State, m Mutation) error {
	switch m.Kind {
	case MutAllocate:
		return s.Allocate(m.ID)
	case MutRefund:
		return s.Refund(m.ID)
	case MutSocket:
		return s.Socket(m.Slot, m.ID)
	case MutUnsocket:
		return s.Unsocket(m.Slot)
	case MutLink:
		return s.Link(m.Slot, m.ID)
	case MutUnlink:
		return s.Unlink(m.Slot, m.Index)
	case MutEquip:
		return s.Equip(m.ID)
	case MutUnequip:
		return s.Unequip(m.ID)
	case MutGrantPoints:
		return s.GrantPoints(m.N)
	default:
		return violation("unknown mutation %s", m.Kind)
	}
}
