// Package pass implements the rewrite pipeline: a sequence of
// circuit-to-circuit transformations, each walking every operation and
// optionally producing a replacement sequence. Grounded on
// original_source/runtime/src/program/pass/*.rs and its Pass trait
// (pass/mod.rs), generalized from Rust's "apply(&mut self, circuit)" to
// Go's value-semantics Circuit (a pass returns the rewritten circuit
// rather than mutating one in place, matching this module's circuit.Circuit
// rebind-on-mutate convention).
package pass

import "github.com/kegliz/qivm/circuit"

// Pass rewrites a circuit, returning the result or an error if the
// circuit violates the pass's precondition (e.g. a multi-target MUX
// reaching DemultiplexPass).
type Pass interface {
	Apply(c circuit.Circuit) (circuit.Circuit, error)
}

// GateAvailability is the one capability ElementaryDecomposePass needs
// from a backend: whether it can execute a named gate directly. Backends
// satisfy this structurally; the pass package never imports backend.
type GateAvailability interface {
	GateAvailable(name string) bool
}

// Default returns the six-step default pipeline in spec order, grounded
// on program/builder.rs's QuantumProgramContextBuilder.default_passes:
// multiplex-optimize, conditional-control expansion, demultiplex, remove
// identity, elementary decomposition (against avail), remove identity
// again (decomposition can introduce trivial rotations).
func Default(avail GateAvailability) []Pass {
	return []Pass{
		MultiplexOptimize{},
		CondCtrlExpand{},
		Demultiplex{},
		RemoveIdentity{},
		NewElementaryDecompose(avail),
		RemoveIdentity{},
	}
}

// Run applies every pass in order, stopping at the first error.
func Run(c circuit.Circuit, passes []Pass) (circuit.Circuit, error) {
	var err error
	for _, p := range passes {
		c, err = p.Apply(c)
		if err != nil {
			return c, err
		}
	}
	return c, nil
}
