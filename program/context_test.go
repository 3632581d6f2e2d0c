package program_test

import (
	"testing"

	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/program"
	"github.com/kegliz/qivm/qubit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocAdvancesStackTopWithinScope(t *testing.T) {
	ctx := program.New()
	ctx.Enter()
	a := ctx.Alloc(2)
	b := ctx.Alloc(1)
	assert.Equal(t, []qubit.Addr{0, 1}, a.Addrs())
	assert.Equal(t, []qubit.Addr{2}, b.Addrs())
	assert.Equal(t, uint32(3), ctx.StackTop())
}

func TestExitRevertsStackTopAndDeallocatesScope(t *testing.T) {
	ctx := program.New()
	ctx.Enter()
	ctx.Alloc(3)
	ctx.Enter()
	ctx.Alloc(5)
	assert.Equal(t, uint32(8), ctx.StackTop())
	ctx.Exit()
	assert.Equal(t, uint32(3), ctx.StackTop())
}

func TestExitWithoutEnterPanics(t *testing.T) {
	ctx := program.New()
	assert.Panics(t, ctx.Exit)
}

func TestPushPlainGateIsElementary(t *testing.T) {
	ctx := program.New()
	ctx.Enter()
	q := ctx.Alloc(1)
	ctx.Push(gate.H(), q)

	ops := ctx.Circuit().Ops()
	require.Len(t, ops, 1)
	assert.Equal(t, circuit.Elementary, ops[0].Operation.Kind)
	assert.Equal(t, "H", ops[0].Operation.Gate.Name())
}

func TestPushWithActiveControlIsControlled(t *testing.T) {
	ctx := program.New()
	ctx.Enter()
	q := ctx.Alloc(2)
	ctx.Control(q.Slice(0, 1, 1), true)
	ctx.Push(gate.X(), q.Slice(1, 2, 1))

	ops := ctx.Circuit().Ops()
	require.Len(t, ops, 1)
	assert.Equal(t, circuit.Controlled, ops[0].Operation.Kind)
	assert.True(t, ops[0].Operation.Controls.Ones().Contains(0))
}

func TestPushOntoControlQubitPanics(t *testing.T) {
	ctx := program.New()
	ctx.Enter()
	q := ctx.Alloc(2)
	ctx.Control(q.Slice(0, 1, 1), true)
	assert.Panics(t, func() { ctx.Push(gate.X(), q.Slice(0, 1, 1)) })
}

func TestDaggerSectionInvertsAndReversesOps(t *testing.T) {
	ctx := program.New()
	ctx.Enter()
	q := ctx.Alloc(1)
	ctx.BeginDagger()
	ctx.Push(gate.S(), q) // S then T inside the section...
	ctx.Push(gate.T(), q)
	ctx.EndDagger() // ...closes reversed and inverted: [T†, S†]

	ops := ctx.Circuit().Ops()
	require.Len(t, ops, 2)
	assert.Equal(t, "TD", ops[0].Operation.Gate.Name())
	assert.Equal(t, "SD", ops[1].Operation.Gate.Name())
}

func TestPauseRestoreCtrlRoundTrips(t *testing.T) {
	ctx := program.New()
	ctx.Enter()
	q := ctx.Alloc(1)
	ctx.Control(q, true)
	ctx.PauseCtrl()
	ctx.RestoreCtrl()
	ctx.Push(gate.X(), ctx.Alloc(1))
	ops := ctx.Circuit().Ops()
	require.Len(t, ops, 1)
	assert.Equal(t, circuit.Controlled, ops[0].Operation.Kind)
	assert.True(t, ops[0].Operation.Controls.Ones().Contains(0))
}

func TestRestoreCtrlWithoutPauseIsFatal(t *testing.T) {
	ctx := program.New()
	assert.Panics(t, ctx.RestoreCtrl)
}

func TestMeasureRecordsTarget(t *testing.T) {
	ctx := program.New()
	ctx.Enter()
	q := ctx.Alloc(2)
	_, ok := ctx.MeasureTarget()
	assert.False(t, ok)
	ctx.Measure(q)
	got, ok := ctx.MeasureTarget()
	require.True(t, ok)
	assert.Equal(t, q.Addrs(), got.Addrs())
}
