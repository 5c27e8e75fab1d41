package targeting

import (
	"log/slog"
	"math"

	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/types"
)

// maxDepth caps how deep evaluation follows inputs. Compiled programs are
// trees of at most a handful of nodes, so it is never reached in practice.
const maxDepth = 16

// Outcome is the result of one program execution.
type Outcome struct {
	Target types.EntityID
	Found  bool
	// Assigned is false when the program has no assign node; the previous
	// target is then left untouched.
	Assigned bool
}

// Execute evaluates p against candidates. It never fails: missing inputs
// evaluate to an empty list and a missing assign node is a no-op. Ties are
// broken by the first candidate in input order. candidates are not modified.
func Execute(p *Program, origin defs.Point, candidates []Candidate) Outcome {
	if p == nil || p.Root == nil || p.Root.Op != OpAssign {
		return Outcome{}
	}
	e := evaluator{origin: origin, candidates: candidates}
	picked := e.list(p.Root.Input, 1)
	if len(picked) == 0 {
		return Outcome{Assigned: true}
	}
	return Outcome{Target: picked[0].ID, Found: true, Assigned: true}
}

type evaluator struct {
	origin     defs.Point
	candidates []Candidate
}

func (e evaluator) list(n *Node, depth int) []Candidate {
	if n == nil || depth > maxDepth {
		return nil
	}
	switch n.Op {
	case OpListSource:
		return e.candidates
	case OpSelect:
		in := e.list(n.Input, depth+1)
		i := e.pick(n.Criterion, in)
		if i < 0 {
			return nil
		}
		return in[i : i+1]
	default:
		return nil
	}
}

// pick returns the index of the best candidate, or -1 for an empty list.
// Only a strictly better score replaces the current best.
func (e evaluator) pick(c Criterion, in []Candidate) int {
	best := -1
	bestScore := math.Inf(1)
	for i, cand := range in {
		var score float64
		switch c {
		case MaxHP:
			score = -cand.HP
		case MinHP:
			score = cand.HP
		default:
			score = math.Hypot(cand.Position.X-e.origin.X, cand.Position.Y-e.origin.Y)
		}
		if math.IsNaN(score) {
			continue
		}
		if best < 0 || score < bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// Runtime owns a compiled program and the target slot it writes to.
type Runtime struct {
	program *Program
	target  types.EntityID
	has     bool
	log     *slog.Logger
}

// NewRuntime creates a runtime for p. A nil logger means slog.Default().
func NewRuntime(p *Program, log *slog.Logger) *Runtime {
	if log == nil {
		log = slog.Default()
	}
	log.Debug("targeting program loaded", "program", p.String())
	return &Runtime{program: p, log: log}
}

// SetProgram swaps the program; the current target is kept.
func (r *Runtime) SetProgram(p *Program) {
	r.program = p
	r.log.Debug("targeting program replaced", "program", p.String())
}

// Program returns the current program.
func (r *Runtime) Program() *Program { return r.program }

// Run executes the program once and writes the result into the target slot.
func (r *Runtime) Run(origin defs.Point, candidates []Candidate) Outcome {
	out := Execute(r.program, origin, candidates)
	if out.Assigned {
		r.target, r.has = out.Target, out.Found
	}
	return out
}

// Target returns the currently assigned target.
func (r *Runtime) Target() (types.EntityID, bool) { return r.target, r.has }

// Clear drops the current target.
func (r *Runtime) Clear() { r.target, r.has = 0, false }
