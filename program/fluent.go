package program

import (
	"fmt"

	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/qubit"
)

// Builder is a fluent declarative DSL over a Context, generalizing the
// teacher's qc/builder.Builder (fixed H/X/S/CNOT/... methods) to expose
// every Context operation for an arbitrary gate and an arbitrary
// positive/negative control set, using the same bail-out error pattern:
// once an error occurs every subsequent call is a no-op, surfaced only
// when Build is finally called.
type Builder interface {
	Enter() Builder
	Exit() Builder
	Control(acc qubit.Accessor) Builder
	ControlZero(acc qubit.Accessor) Builder
	Decontrol(acc qubit.Accessor) Builder
	PauseCtrl() Builder
	RestoreCtrl() Builder
	BeginDagger() Builder
	EndDagger() Builder
	Gate(g gate.Gate, targets qubit.Accessor) Builder
	Measure(targets qubit.Accessor) Builder

	// Alloc reserves n qubits in the current scope, returning the
	// accessor alongside the builder for chaining — the one operation
	// whose result the caller needs mid-chain, so it returns a value
	// instead of just Builder (matching Go's multi-return idiom over the
	// teacher's purely side-effecting add1/add2/add3 helpers).
	Alloc(n int) (qubit.Accessor, Builder)

	// Build finalizes the program, returning the first error bailed out
	// on (if any) instead of the circuit.
	Build() (circuit.Circuit, error)

	// Context exposes the underlying state machine for callers that need
	// direct access (e.g. the CLI driving transpile/compile after Build).
	Context() *Context
}

type fluent struct {
	ctx *Context
	err error
}

// NewBuilder returns a fresh fluent Builder over a new Context with one
// already-open outer scope (so the first Alloc call doesn't need a
// caller-visible Enter).
func NewBuilder() Builder {
	ctx := New()
	ctx.Enter()
	return &fluent{ctx: ctx}
}

func (f *fluent) bail(err error) Builder {
	if f.err == nil {
		f.err = err
	}
	return f
}

// guard runs fn, converting a Context panic (a fatal IR contract
// violation) into a bailed error instead of propagating — the fluent
// layer's whole point is to let a caller chain through a mistake and
// inspect it once, at Build, rather than crash mid-program.
func (f *fluent) guard(fn func()) {
	if f.err != nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			f.err = fmt.Errorf("program: %v", r)
		}
	}()
	fn()
}

func (f *fluent) Enter() Builder {
	f.guard(f.ctx.Enter)
	return f
}

func (f *fluent) Exit() Builder {
	f.guard(f.ctx.Exit)
	return f
}

func (f *fluent) Control(acc qubit.Accessor) Builder {
	f.guard(func() { f.ctx.Control(acc, true) })
	return f
}

func (f *fluent) ControlZero(acc qubit.Accessor) Builder {
	f.guard(func() { f.ctx.Control(acc, false) })
	return f
}

func (f *fluent) Decontrol(acc qubit.Accessor) Builder {
	f.guard(func() { f.ctx.Decontrol(acc) })
	return f
}

func (f *fluent) PauseCtrl() Builder {
	f.guard(f.ctx.PauseCtrl)
	return f
}

func (f *fluent) RestoreCtrl() Builder {
	f.guard(f.ctx.RestoreCtrl)
	return f
}

func (f *fluent) BeginDagger() Builder {
	f.guard(f.ctx.BeginDagger)
	return f
}

func (f *fluent) EndDagger() Builder {
	f.guard(f.ctx.EndDagger)
	return f
}

func (f *fluent) Gate(g gate.Gate, targets qubit.Accessor) Builder {
	f.guard(func() { f.ctx.Push(g, targets) })
	return f
}

func (f *fluent) Measure(targets qubit.Accessor) Builder {
	f.guard(func() { f.ctx.Measure(targets) })
	return f
}

func (f *fluent) Alloc(n int) (qubit.Accessor, Builder) {
	if f.err != nil {
		return qubit.Accessor{}, f
	}
	var acc qubit.Accessor
	f.guard(func() { acc = f.ctx.Alloc(n) })
	return acc, f
}

func (f *fluent) Build() (circuit.Circuit, error) {
	if f.err != nil {
		return circuit.Circuit{}, f.err
	}
	return f.ctx.Circuit(), nil
}

func (f *fluent) Context() *Context { return f.ctx }
