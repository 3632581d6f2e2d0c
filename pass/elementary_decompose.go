package pass

import (
	"fmt"

	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/decompose"
	"github.com/kegliz/qivm/decomposer"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/qubit"
)

// ElementaryDecompose repeatedly walks the circuit while any elementary
// operation's gate identifier is unavailable on the backend, replacing
// it with the planner's cheapest feasible lowering. Terminates because
// the planner's search only ever returns an acyclic recipe tree (or
// fails outright, surfaced as an error rather than an infinite loop).
// Ported from the original's ElementaryDecompositionPass
// (program/pass/elementary_decomposition.rs), generalized from its
// QIVM_INSTANCE singleton lookup to an injected decomposer.Graph rebuilt
// from the live circuit each sweep.
type ElementaryDecompose struct {
	avail GateAvailability
}

// NewElementaryDecompose returns the pass bound to a backend's gate
// availability.
func NewElementaryDecompose(avail GateAvailability) *ElementaryDecompose {
	return &ElementaryDecompose{avail: avail}
}

func (p *ElementaryDecompose) Apply(c circuit.Circuit) (circuit.Circuit, error) {
	for {
		g := p.buildGraph(c)
		changed := false
		var firstErr error

		out := c.FlatMap(func(op circuit.Op) []circuit.Op {
			if firstErr != nil || op.Operation.Kind != circuit.Elementary {
				return nil
			}
			name := op.Operation.Gate.Name()
			if p.avail.GateAvailable(name) {
				return nil
			}
			changed = true
			results, err := g.Execute(name, op)
			if err != nil {
				firstErr = err
				return nil
			}
			out := make([]circuit.Op, len(results))
			for i, r := range results {
				out[i] = r.(circuit.Op)
			}
			return out
		})
		if firstErr != nil {
			return c, firstErr
		}
		c = out
		if !changed {
			return c, nil
		}
	}
}

// buildGraph registers every gate identifier reachable in c (plus the
// RZ/RY leaves any ZYZ recipe bottoms out on) and wires a lowering for
// each unavailable one, in material-cost-ascending order chosen by the
// planner itself.
func (p *ElementaryDecompose) buildGraph(c circuit.Circuit) *decomposer.Graph {
	g := decomposer.New()
	seen := map[string]bool{}

	ensureItem := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		g.AddItem(name, p.avail.GateAvailable(name))
	}

	ensureItem("RZ")
	ensureItem("RY")

	for _, op := range c.Ops() {
		if op.Operation.Kind != circuit.Elementary {
			continue
		}
		name := op.Operation.Gate.Name()
		ensureItem(name)
		if p.avail.GateAvailable(name) {
			continue
		}
		switch op.Operation.Gate.Arity() {
		case 1:
			g.AddRecipe(name, []string{"RZ", "RY"}, 1, lowerZYZ)
		case 2:
			if name == "CAN" {
				ensureItem("CX")
				ensureItem("H")
				ensureItem("S")
				ensureItem("SD")
				ensureItem("ZPOW")
				g.AddRecipe(name, []string{"CX", "H", "S", "SD", "ZPOW"}, 8, lowerCanonical)
			}
			// Every other two-qubit identifier this pipeline actually
			// materializes (CX, CZ, SWP, ...) is either already native or
			// reaches its own CondCtrlExpand/Swap lowering before this
			// pass ever sees it as an elementary operation.
		case 3:
			if name == "CCX" {
				ensureItem("CX")
				g.AddRecipe(name, []string{"CX", "RZ", "RY"}, 4, lowerToffoli)
			}
			// CSWP (Fredkin) has no registered recipe: the Controlled-SWAP
			// form this pipeline actually emits goes through CondCtrlExpand
			// instead, so a raw elementary CSWP reaching here surfaces as
			// a planner error rather than silently passing through.
		}
	}
	return g
}

func lowerZYZ(o any) []any {
	op := o.(circuit.Op)
	e, err := decompose.ZYZ(op.Operation.Gate.Matrix())
	if err != nil {
		panic(fmt.Errorf("pass: ElementaryDecompose: %w", err))
	}
	targets := op.Operation.Targets
	steps := []circuit.Operation{
		circuit.Elem(gate.RZ(e.Lambda), targets),
		circuit.Elem(gate.RY(e.Phi), targets),
		circuit.Elem(gate.RZ(e.Theta), targets),
	}
	out := make([]any, len(steps))
	for i, s := range steps {
		out[i] = circuit.Op{Operation: s, StackTop: op.StackTop}
	}
	return out
}

// canonicalParams is implemented by gate.Canonical's concrete type,
// which carries its three rotation angles but doesn't export its
// struct fields.
type canonicalParams interface {
	Params() (tx, ty, tz float64)
}

func lowerCanonical(o any) []any {
	op := o.(circuit.Op)
	params, ok := op.Operation.Gate.(canonicalParams)
	if !ok {
		panic(fmt.Errorf("pass: ElementaryDecompose: CAN: gate %T does not expose Params()", op.Operation.Gate))
	}
	tx, ty, tz := params.Params()
	addrs := op.Operation.Targets.Addrs()
	if len(addrs) != 2 {
		panic(fmt.Errorf("pass: ElementaryDecompose: CAN: expected 2 targets, got %d", len(addrs)))
	}
	steps := decompose.Canonical(tx, ty, tz, addrs[0], addrs[1])
	out := make([]any, len(steps))
	for i, s := range steps {
		out[i] = circuit.Op{Operation: s, StackTop: op.StackTop}
	}
	return out
}

func lowerToffoli(o any) []any {
	op := o.(circuit.Op)
	addrs := op.Operation.Targets.Addrs()
	controls := []qubit.Addr{addrs[0], addrs[1]}
	target := addrs[2]
	steps, err := decompose.Network(controls, target, gate.X())
	if err != nil {
		panic(fmt.Errorf("pass: ElementaryDecompose: CCX: %w", err))
	}
	out := make([]any, len(steps))
	for i, s := range steps {
		out[i] = circuit.Op{Operation: s, StackTop: op.StackTop}
	}
	return out
}
