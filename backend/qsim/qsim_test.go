package qsim_test

import (
	"testing"

	"github.com/kegliz/qivm/algebra"
	"github.com/kegliz/qivm/backend/qsim"
	"github.com/kegliz/qivm/bytecode"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/pass"
	"github.com/kegliz/qivm/program"
	"github.com/kegliz/qivm/qubit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, b program.Builder, qubits uint32) bytecode.ByteCode {
	t.Helper()
	c, err := b.Build()
	require.NoError(t, err)

	backend := qsim.New(qubits)
	lowered, err := pass.Run(c, pass.Default(backend))
	require.NoError(t, err)

	target, _ := b.Context().MeasureTarget()
	ins, err := bytecode.FromCircuit(lowered, qubits, target)
	require.NoError(t, err)
	return bytecode.Encode(ins)
}

// Bell state: H on qubit 0, CX(0,1), measure both -> only 00 and 11
// ever observed.
func TestBellStateHistogramIsCorrelated(t *testing.T) {
	b := program.NewBuilder()
	q, b := b.Alloc(2)
	b = b.Gate(gate.H(), q.Slice(0, 1, 1)).
		Control(q.Slice(0, 1, 1)).
		Gate(gate.X(), q.Slice(1, 2, 1)).
		Decontrol(q.Slice(0, 1, 1)).
		Measure(q)

	code := compile(t, b, 2)

	dev := qsim.New(2)
	result, err := dev.Exec(code, 256)
	require.NoError(t, err)

	for _, e := range result.Entries {
		assert.True(t, e.Value == 0 || e.Value == 3, "unexpected bitstring %d", e.Value)
	}
	assert.Equal(t, uint64(256), result.Shots)
}

// A bare X on a single qubit always measures 1.
func TestXFlipAlwaysMeasuresOne(t *testing.T) {
	b := program.NewBuilder()
	q, b := b.Alloc(1)
	b = b.Gate(gate.X(), q).Measure(q)

	code := compile(t, b, 1)
	dev := qsim.New(1)
	result, err := dev.Exec(code, 16)
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, uint64(1), result.Entries[0].Value)
	assert.Equal(t, uint64(16), result.Entries[0].Count)
}

// S5 — Bernstein-Vazirani over 6 input qubits plus one ancilla: the
// oracle XORs the ancilla with the control qubits whose address carries
// a set bit in the hidden string 0b101011 (43), the textbook
// X-ancilla/H^n/oracle/H^n construction. Every one of 64 shots must
// measure the input register back out as exactly the hidden string.
func TestBernsteinVaziraniS5(t *testing.T) {
	const hidden = uint64(0b101011)

	b := program.NewBuilder()
	q, b := b.Alloc(7)
	input := q.Slice(0, 6, 1)
	ancilla := q.Slice(6, 7, 1)

	b = b.Gate(gate.X(), ancilla)
	for _, a := range q.Addrs() {
		b = b.Gate(gate.H(), qubit.New(a))
	}
	for i, a := range input.Addrs() {
		if hidden&(1<<uint(i)) == 0 {
			continue
		}
		b = b.Control(qubit.New(a)).
			Gate(gate.X(), ancilla).
			Decontrol(qubit.New(a))
	}
	for _, a := range input.Addrs() {
		b = b.Gate(gate.H(), qubit.New(a))
	}
	b = b.Measure(input)

	code := compile(t, b, 7)
	dev := qsim.New(7)
	result, err := dev.Exec(code, 64)
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, hidden, result.Entries[0].Value)
	assert.Equal(t, uint64(64), result.Entries[0].Count)
}

func TestCustomGateExecutesViaRegisteredMatrix(t *testing.T) {
	dev := qsim.New(1)
	dev.RegisterCustom("FLIP", func(params []float64) algebra.Matrix {
		return gate.X().Matrix()
	})

	code := bytecode.Encode([]bytecode.Instruction{
		bytecode.Alloc(1),
		bytecode.CustomGate("FLIP", nil, []uint32{0}),
		bytecode.Measure([]uint32{0}),
	})

	result, err := dev.Exec(code, 8)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, uint64(1), result.Entries[0].Value)
}
