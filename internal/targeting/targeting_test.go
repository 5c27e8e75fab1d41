package targeting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/types"
)

func program(c Criterion) *Program {
	return &Program{Root: &Node{
		Op:    OpAssign,
		Input: &Node{Op: OpSelect, Criterion: c, Input: &Node{Op: OpListSource}},
	}}
}

// A has less health but is further away than B.
func pair() []Candidate {
	return []Candidate{
		{ID: 1, Position: defs.Point{X: 5}, HP: 10},
		{ID: 2, Position: defs.Point{X: 2}, HP: 50},
	}
}

func TestExecuteCriteria(t *testing.T) {
	tests := []struct {
		criterion Criterion
		want      types.EntityID
	}{
		{Nearest, 2},
		{MaxHP, 2},
		{MinHP, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.criterion), func(t *testing.T) {
			out := Execute(program(tt.criterion), defs.Point{}, pair())
			assert.True(t, out.Assigned)
			assert.True(t, out.Found)
			assert.Equal(t, tt.want, out.Target)
		})
	}
}

func TestExecuteEmptyList(t *testing.T) {
	for _, c := range []Criterion{Nearest, MaxHP, MinHP} {
		out := Execute(program(c), defs.Point{}, nil)
		assert.True(t, out.Assigned)
		assert.False(t, out.Found)
	}
}

func TestExecuteTieGoesToFirst(t *testing.T) {
	cands := []Candidate{
		{ID: 7, Position: defs.Point{X: 3}, HP: 20},
		{ID: 8, Position: defs.Point{Y: -3}, HP: 20},
	}
	for _, c := range []Criterion{Nearest, MaxHP, MinHP} {
		out := Execute(program(c), defs.Point{}, cands)
		assert.Equal(t, types.EntityID(7), out.Target, string(c))
	}
}

func TestExecuteUsesOrigin(t *testing.T) {
	out := Execute(program(Nearest), defs.Point{X: 6}, pair())
	assert.Equal(t, types.EntityID(1), out.Target)
}

func TestExecuteMissingSlots(t *testing.T) {
	t.Run("no list source", func(t *testing.T) {
		p := &Program{Root: &Node{Op: OpAssign, Input: &Node{Op: OpSelect}}}
		out := Execute(p, defs.Point{}, pair())
		assert.True(t, out.Assigned)
		assert.False(t, out.Found)
	})
	t.Run("no select", func(t *testing.T) {
		p := &Program{Root: &Node{Op: OpAssign}}
		out := Execute(p, defs.Point{}, pair())
		assert.True(t, out.Assigned)
		assert.False(t, out.Found)
	})
	t.Run("no assign", func(t *testing.T) {
		assert.Equal(t, Outcome{}, Execute(&Program{}, defs.Point{}, pair()))
		assert.Equal(t, Outcome{}, Execute(nil, defs.Point{}, pair()))
		p := &Program{Root: &Node{Op: OpSelect, Input: &Node{Op: OpListSource}}}
		assert.False(t, Execute(p, defs.Point{}, pair()).Assigned)
	})
	t.Run("zero criterion is nearest", func(t *testing.T) {
		out := Execute(program(""), defs.Point{}, pair())
		assert.Equal(t, types.EntityID(2), out.Target)
	})
}

func TestExecuteDoesNotMutateCandidates(t *testing.T) {
	cands := pair()
	before := append([]Candidate(nil), cands...)
	Execute(program(MinHP), defs.Point{}, cands)
	assert.Equal(t, before, cands)
}

func TestExecuteCyclicTreeTerminates(t *testing.T) {
	sel := &Node{Op: OpSelect}
	sel.Input = sel
	p := &Program{Root: &Node{Op: OpAssign, Input: sel}}
	out := Execute(p, defs.Point{}, pair())
	assert.False(t, out.Found)
}

func TestRuntimeKeepsTargetWithoutAssign(t *testing.T) {
	r := NewRuntime(NearestProgram(), nil)
	r.Run(defs.Point{}, pair())
	id, ok := r.Target()
	require.True(t, ok)
	assert.Equal(t, types.EntityID(2), id)

	r.SetProgram(&Program{})
	r.Run(defs.Point{}, nil)
	id, ok = r.Target()
	assert.True(t, ok)
	assert.Equal(t, types.EntityID(2), id)

	r.SetProgram(NearestProgram())
	r.Run(defs.Point{}, nil)
	_, ok = r.Target()
	assert.False(t, ok)
}

func TestCompile(t *testing.T) {
	g := Graph{
		Nodes: []GraphNode{
			{ID: "out", Kind: "assign"},
			{ID: "pick", Kind: "select", Criterion: "min_hp"},
			{ID: "enemies", Kind: "list_source"},
		},
		Links: []Link{
			{From: "pick", To: "out"},
			{From: "enemies", To: "pick"},
		},
	}
	p := Compile(g)
	assert.Equal(t, "assign(select[min_hp](list))", p.String())
	assert.Equal(t, types.EntityID(1), Execute(p, defs.Point{}, pair()).Target)
}

func TestCompileDegenerateGraphs(t *testing.T) {
	t.Run("no assign", func(t *testing.T) {
		p := Compile(Graph{Nodes: []GraphNode{{ID: "l", Kind: "list_source"}}})
		assert.Nil(t, p.Root)
	})
	t.Run("unconnected select", func(t *testing.T) {
		p := Compile(Graph{
			Nodes: []GraphNode{{ID: "a", Kind: "assign"}, {ID: "s", Kind: "select"}},
			Links: []Link{{From: "s", To: "a"}},
		})
		assert.Equal(t, "assign(select[nearest](_))", p.String())
	})
	t.Run("cycle", func(t *testing.T) {
		p := Compile(Graph{
			Nodes: []GraphNode{
				{ID: "a", Kind: "assign"},
				{ID: "s1", Kind: "select"},
				{ID: "s2", Kind: "select"},
			},
			Links: []Link{{From: "s1", To: "a"}, {From: "s2", To: "s1"}, {From: "s1", To: "s2"}},
		})
		assert.Equal(t, "assign(select[nearest](select[nearest](_)))", p.String())
		assert.False(t, Execute(p, defs.Point{}, pair()).Found)
	})
	t.Run("dangling link and unknown kind", func(t *testing.T) {
		p := Compile(Graph{
			Nodes: []GraphNode{{ID: "a", Kind: "assign"}, {ID: "x", Kind: "filter"}},
			Links: []Link{{From: "x", To: "a"}, {From: "ghost", To: "x"}},
		})
		assert.Equal(t, "assign(_)", p.String())
	})
	t.Run("first link wins", func(t *testing.T) {
		p := Compile(Graph{
			Nodes: []GraphNode{
				{ID: "a", Kind: "assign"},
				{ID: "hi", Kind: "select", Criterion: "max_hp"},
				{ID: "lo", Kind: "select", Criterion: "min_hp"},
				{ID: "l", Kind: "list_source"},
			},
			Links: []Link{
				{From: "hi", To: "a"},
				{From: "lo", To: "a"},
				{From: "l", To: "hi"},
				{From: "l", To: "lo"},
			},
		})
		assert.Equal(t, "assign(select[max_hp](list))", p.String())
	})
}

func TestLoadProgram(t *testing.T) {
	doc := `
nodes:
  - {id: out, kind: assign}
  - {id: pick, kind: select, criterion: max_hp}
  - {id: all, kind: list_source}
links:
  - {from: all, to: pick}
  - {from: pick, to: out}
`
	path := filepath.Join(t.TempDir(), "targeting.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	p, err := LoadProgram(path)
	require.NoError(t, err)
	assert.Equal(t, "assign(select[max_hp](list))", p.String())

	_, err = LoadProgram(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseGraph([]byte("nodes: [oops"))
	assert.Error(t, err)
}
