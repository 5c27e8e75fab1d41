package targeting

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// GraphNode is a node of the authoring graph.
type GraphNode struct {
	ID        string `yaml:"id"`
	Kind      string `yaml:"kind"`
	Criterion string `yaml:"criterion,omitempty"`
}

// Link connects the output of From into the input slot of To.
type Link struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Graph is the editable form of a targeting program.
type Graph struct {
	Nodes []GraphNode `yaml:"nodes"`
	Links []Link      `yaml:"links"`
}

// Compile lowers an authoring graph into a program tree. The first assign
// node in declaration order becomes the root; with none the program is a
// no-op. Each input slot takes the first link declared into it. Unknown
// kinds, dangling links and cycles all compile to an empty input.
func Compile(g Graph) *Program {
	byID := make(map[string]GraphNode, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, dup := byID[n.ID]; !dup {
			byID[n.ID] = n
		}
	}
	inputs := make(map[string]string, len(g.Links))
	for _, l := range g.Links {
		if _, taken := inputs[l.To]; !taken {
			inputs[l.To] = l.From
		}
	}

	var lower func(id string, visiting map[string]bool) *Node
	lower = func(id string, visiting map[string]bool) *Node {
		gn, ok := byID[id]
		if !ok || visiting[id] {
			return nil
		}
		visiting[id] = true
		defer delete(visiting, id)

		switch gn.Kind {
		case "list_source":
			return &Node{Op: OpListSource}
		case "select":
			n := &Node{Op: OpSelect, Criterion: parseCriterion(gn.Criterion)}
			if from, ok := inputs[id]; ok {
				n.Input = lower(from, visiting)
			}
			return n
		case "assign":
			n := &Node{Op: OpAssign}
			if from, ok := inputs[id]; ok {
				n.Input = lower(from, visiting)
			}
			return n
		default:
			return nil
		}
	}

	for _, n := range g.Nodes {
		if n.Kind == "assign" {
			return &Program{Root: lower(n.ID, map[string]bool{})}
		}
	}
	return &Program{}
}

func parseCriterion(s string) Criterion {
	switch Criterion(s) {
	case MaxHP:
		return MaxHP
	case MinHP:
		return MinHP
	default:
		return Nearest
	}
}

// ParseGraph decodes a YAML authoring graph.
func ParseGraph(data []byte) (Graph, error) {
	var g Graph
	if err := yaml.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("parse targeting graph: %w", err)
	}
	return g, nil
}

// LoadGraph reads a YAML authoring graph from disk.
func LoadGraph(path string) (Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Graph{}, fmt.Errorf("read targeting graph %s: %w", path, err)
	}
	return ParseGraph(data)
}

// LoadProgram reads and compiles the graph at path.
func LoadProgram(path string) (*Program, error) {
	g, err := LoadGraph(path)
	if err != nil {
		return nil, err
	}
	p := Compile(g)
	slog.Info("targeting graph compiled", "path", path, "nodes", len(g.Nodes), "program", p.String())
	return p, nil
}
