// Package program implements the program context: the top-level mutable
// state machine aggregating the active circuit, the qubit scope stack,
// the active control set (with its pause/restore side-stack), the
// adjoint-region stack, the stack-top watermark, and the terminal
// measurement target. Ported from the original runtime's
// QuantumProgramContext (program/mod.rs).
package program

import (
	"fmt"

	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/measurement"
	"github.com/kegliz/qivm/qubit"
)

// scope records the stack_top value at enter(), so exit() can revert to
// it and implicitly deallocate everything allocated inside.
type scope struct {
	base uint32
}

// Context is the program's mutable state machine. Not safe for
// concurrent use — exactly one driver goroutine mutates a given Context,
// per the single-threaded-cooperative concurrency model.
type Context struct {
	circuit  circuit.Circuit
	scopes   []scope
	stackTop uint32

	controls       qubit.ControlSet
	pausedControls []qubit.ControlSet

	daggerStack []circuit.Circuit // each entry is the sub-circuit accumulated since the matching begin_dagger
	daggerDepth int

	measureTarget *qubit.Accessor
	result        *measurement.Result
}

// New returns an empty program context with no open scope.
func New() *Context {
	return &Context{controls: qubit.NewControlSet()}
}

// Enter pushes a new qubit scope.
func (c *Context) Enter() {
	c.scopes = append(c.scopes, scope{base: c.stackTop})
}

// Exit pops the current scope, reverting stack_top to its base — every
// qubit allocated inside is implicitly deallocated. Panics if called
// without a matching Enter (a stack-underflow IR contract violation,
// fatal to the containing context per spec 4.E/7).
func (c *Context) Exit() {
	if len(c.scopes) == 0 {
		panic(fmt.Errorf("program: exit() without a matching enter()"))
	}
	top := c.scopes[len(c.scopes)-1]
	c.scopes = c.scopes[:len(c.scopes)-1]
	c.stackTop = top.base
}

// Alloc reserves the next n addresses contiguously, advances stack_top,
// and returns an accessor over them. Panics if called outside any scope.
func (c *Context) Alloc(n int) qubit.Accessor {
	if len(c.scopes) == 0 {
		panic(fmt.Errorf("program: alloc(%d) outside any scope", n))
	}
	acc := qubit.Accessor{}
	for i := 0; i < n; i++ {
		acc = acc.Append(qubit.Addr(c.stackTop))
		c.stackTop++
	}
	return acc
}

// StackTop returns the current high-water mark.
func (c *Context) StackTop() uint32 { return c.stackTop }

// IsDagger reports whether an adjoint section is currently open.
func (c *Context) IsDagger() bool { return c.daggerDepth > 0 }

// activeCircuit returns the circuit operations are appended to: the
// topmost open adjoint section, or the outermost circuit if none is open.
func (c *Context) activeCircuit() circuit.Circuit {
	if c.daggerDepth > 0 {
		return c.daggerStack[len(c.daggerStack)-1]
	}
	return c.circuit
}

func (c *Context) setActiveCircuit(next circuit.Circuit) {
	if c.daggerDepth > 0 {
		c.daggerStack[len(c.daggerStack)-1] = next
		return
	}
	c.circuit = next
}

// Push validates that no target is currently a control, takes the
// gate's adjoint first if a dagger section is open, wraps the operation
// in a Controlled op if any control is active, and appends it to the
// active circuit.
func (c *Context) Push(g gate.Gate, targets qubit.Accessor) {
	for _, t := range targets.Addrs() {
		if c.controls.Contains(t) {
			panic(fmt.Errorf("program: target qubit %d is currently a control", t))
		}
	}

	if c.IsDagger() {
		g = g.Adjoint()
	}

	var op circuit.Operation
	if c.controls.IsEmpty() {
		op = circuit.Elem(g, targets)
	} else {
		op = circuit.Ctrl(g, c.controls, targets)
	}

	c.setActiveCircuit(c.activeCircuit().Append(circuit.Op{Operation: op, StackTop: c.stackTop}))
}

// Control adds every address in acc to the active ones (positive=true)
// or zeros (positive=false) role.
func (c *Context) Control(acc qubit.Accessor, positive bool) {
	for _, a := range acc.Addrs() {
		c.controls = c.controls.With(a, positive)
	}
}

// Decontrol removes every address in acc from both control roles.
func (c *Context) Decontrol(acc qubit.Accessor) {
	for _, a := range acc.Addrs() {
		c.controls = c.controls.Without(a)
	}
}

// PauseCtrl pushes the current control set onto a side-stack and
// replaces it with an empty one.
func (c *Context) PauseCtrl() {
	c.pausedControls = append(c.pausedControls, c.controls)
	c.controls = qubit.NewControlSet()
}

// RestoreCtrl pops the most recently paused control set back into place.
// Panics if the current set is non-empty or there's nothing paused —
// both are fatal IR contract violations per spec 4.E/7.
func (c *Context) RestoreCtrl() {
	if !c.controls.IsEmpty() {
		panic(fmt.Errorf("program: restore_ctrl() with non-empty current controls"))
	}
	if len(c.pausedControls) == 0 {
		panic(fmt.Errorf("program: restore_ctrl() with nothing paused"))
	}
	c.controls = c.pausedControls[len(c.pausedControls)-1]
	c.pausedControls = c.pausedControls[:len(c.pausedControls)-1]
}

// BeginDagger pushes a new adjoint section: gates pushed while it is
// open are individually inverted (see Push), and the captured
// sub-circuit is reversed and concatenated on EndDagger.
func (c *Context) BeginDagger() {
	c.daggerStack = append(c.daggerStack, circuit.New())
	c.daggerDepth++
}

// EndDagger pops the current adjoint section, reverses its captured
// operations, and concatenates them into the enclosing scope. Panics
// without a matching BeginDagger.
func (c *Context) EndDagger() {
	if c.daggerDepth == 0 {
		panic(fmt.Errorf("program: end_dagger() without a matching begin_dagger()"))
	}
	captured := c.daggerStack[len(c.daggerStack)-1]
	c.daggerStack = c.daggerStack[:len(c.daggerStack)-1]
	c.daggerDepth--

	reversed := captured.Reverse()
	c.setActiveCircuit(c.activeCircuit().Concat(reversed))
}

// Measure records the final measurement target. A program has at most
// one; a later call replaces the earlier target.
func (c *Context) Measure(acc qubit.Accessor) {
	c.measureTarget = &acc
}

// MeasureTarget returns the recorded measurement target, if any.
func (c *Context) MeasureTarget() (qubit.Accessor, bool) {
	if c.measureTarget == nil {
		return qubit.Accessor{}, false
	}
	return *c.measureTarget, true
}

// Circuit returns the outermost circuit built so far.
func (c *Context) Circuit() circuit.Circuit { return c.circuit }

// SetResult attaches a measurement result to the context (the final step
// of the create -> emit -> transpile -> encode -> execute -> attach
// lifecycle).
func (c *Context) SetResult(r measurement.Result) { c.result = &r }

// Result returns the attached measurement result, if execution has run.
func (c *Context) Result() (measurement.Result, bool) {
	if c.result == nil {
		return measurement.Result{}, false
	}
	return *c.result, true
}
