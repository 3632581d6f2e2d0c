// Package circuit implements the Circuit IR: operations tagged with a
// stack-top watermark, and the finite, appendable/flat-mappable sequence
// of them the pass pipeline rewrites in place.
package circuit

import (
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/qubit"
)

// Kind distinguishes the two disjoint operation shapes.
type Kind int

const (
	Elementary Kind = iota
	Controlled
)

// Operation is a gate bound to a target accessor, either standing alone
// (Elementary) or guarded by a control-qubit-set (Controlled). Controls
// and targets are always disjoint (enforced by the builder, not here).
type Operation struct {
	Kind     Kind
	Gate     gate.Gate
	Targets  qubit.Accessor
	Controls qubit.ControlSet // meaningful only when Kind == Controlled
}

// Elem builds an Elementary operation.
func Elem(g gate.Gate, targets qubit.Accessor) Operation {
	return Operation{Kind: Elementary, Gate: g, Targets: targets}
}

// Ctrl builds a Controlled operation.
func Ctrl(g gate.Gate, controls qubit.ControlSet, targets qubit.Accessor) Operation {
	return Operation{Kind: Controlled, Gate: g, Targets: targets, Controls: controls}
}

// Adjoint returns the operation with its gate replaced by its adjoint —
// used by the builder's dagger-section handling and by decomposition
// recipes that need the inverse of an emitted step.
func (op Operation) Adjoint() Operation {
	op.Gate = op.Gate.Adjoint()
	return op
}
