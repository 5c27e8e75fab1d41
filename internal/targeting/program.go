package targeting

import (
	"fmt"

	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/types"
)

// Criterion is the ordering a select node applies.
type Criterion string

const (
	Nearest Criterion = "nearest"
	MaxHP   Criterion = "max_hp"
	MinHP   Criterion = "min_hp"
)

// Op is the closed vocabulary of program nodes.
type Op int

const (
	OpListSource Op = iota + 1
	OpSelect
	OpAssign
)

func (o Op) String() string {
	switch o {
	case OpListSource:
		return "list_source"
	case OpSelect:
		return "select"
	case OpAssign:
		return "assign"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Node is one operation of a compiled program. Input is nil when the slot was
// left unconnected in the authoring graph.
type Node struct {
	Op        Op
	Criterion Criterion
	Input     *Node
}

// Program is a compiled targeting program. It is an immutable value; Root is
// expected to be an assign node.
type Program struct {
	Root *Node
}

func (p *Program) String() string {
	if p == nil {
		return "<nil>"
	}
	return nodeString(p.Root, 0)
}

func nodeString(n *Node, depth int) string {
	if n == nil || depth > maxDepth {
		return "_"
	}
	switch n.Op {
	case OpListSource:
		return "list"
	case OpSelect:
		return fmt.Sprintf("select[%s](%s)", n.Criterion, nodeString(n.Input, depth+1))
	case OpAssign:
		return fmt.Sprintf("assign(%s)", nodeString(n.Input, depth+1))
	default:
		return n.Op.String()
	}
}

// NearestProgram is assign(select[nearest](list)), the behaviour of a fresh profile.
func NearestProgram() *Program {
	return &Program{Root: &Node{
		Op: OpAssign,
		Input: &Node{
			Op:        OpSelect,
			Criterion: Nearest,
			Input:     &Node{Op: OpListSource},
		},
	}}
}

// Candidate is a read-only view of an enemy the defender can currently reach.
type Candidate struct {
	ID       types.EntityID
	Position defs.Point
	HP       float64
	Tier     string
}
