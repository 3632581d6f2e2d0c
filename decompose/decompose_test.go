package decompose_test

import (
	"math"
	"testing"

	"github.com/kegliz/qivm/algebra"
	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/decompose"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/qubit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// embedGate places m (acting on the qubits in targets, targets[0] the
// matrix's most-significant tensor factor, matching gate.Gate.Matrix's
// Kron convention) into the full n-qubit space, identity elsewhere.
// Mirrors backend/qsim's state.applyUnitary bit-insertion scheme, but
// builds the dense embedded matrix instead of acting on a state vector.
func embedGate(n int, targets []qubit.Addr, m algebra.Matrix) algebra.Matrix {
	dim := 1 << uint(n)
	k := len(targets)
	sub := 1 << uint(k)
	targetMask := 0
	for _, t := range targets {
		targetMask |= 1 << uint(t)
	}

	out := algebra.NewMatrix(dim)
	visited := make([]bool, dim)
	idxs := make([]int, sub)

	for base := 0; base < dim; base++ {
		if base&targetMask != 0 || visited[base] {
			continue
		}
		for code := 0; code < sub; code++ {
			idx := base
			for b, t := range targets {
				bitPos := k - 1 - b
				if code&(1<<uint(bitPos)) != 0 {
					idx |= 1 << uint(t)
				}
			}
			idxs[code] = idx
			visited[idx] = true
		}
		for row := 0; row < sub; row++ {
			for col := 0; col < sub; col++ {
				out.Set(idxs[row], idxs[col], m.At(row, col))
			}
		}
	}
	return out
}

// buildUnitary multiplies an emitted gate sequence (read left-to-right
// in application order) into the full n-qubit unitary it implements.
func buildUnitary(n int, ops []circuit.Operation) algebra.Matrix {
	dim := 1 << uint(n)
	result := algebra.Identity(dim)
	for _, op := range ops {
		result = embedGate(n, op.Targets.Addrs(), op.Gate.Matrix()).Mul(result)
	}
	return result
}

// S1 — Euler decomposition of H: theta ~ 0, phi ~ pi/2, lambda ~ pi (mod
// 2pi), alpha ~ -pi/2.
func TestZYZOfHadamardS1(t *testing.T) {
	e, err := decompose.ZYZ(gate.H().Matrix())
	require.NoError(t, err)

	assert.InDelta(t, 0, math.Mod(e.Theta+2*math.Pi, 2*math.Pi), 1e-6)
	assert.InDelta(t, math.Pi/2, math.Abs(e.Phi), 1e-6)
	assert.InDelta(t, math.Pi, math.Mod(math.Abs(e.Lambda)+2*math.Pi, 2*math.Pi), 1e-6)
	assert.InDelta(t, -math.Pi/2, e.Alpha, 1e-6)

	// Equivalent unitary within epsilon: e^{i alpha} Rz(theta) Ry(phi) Rz(lambda) == H
	rebuilt := gate.RZ(e.Theta).Matrix().Mul(gate.RY(e.Phi).Matrix()).Mul(gate.RZ(e.Lambda).Matrix())
	rebuilt = rebuilt.Scale(complexExp(e.Alpha))
	assert.True(t, rebuilt.ApproxEqual(gate.H().Matrix()))
}

func complexExp(alpha float64) complex128 {
	return complex(math.Cos(alpha), math.Sin(alpha))
}

// S2 — CX lowering shortcut: controlled-X(c=0,t=1) -> exactly [CX(0,1)].
func TestABCShortcutsControlledXS2(t *testing.T) {
	ops, err := decompose.ABC(0, 1, gate.X())
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "CX", ops[0].Gate.Name())
	assert.Equal(t, []qubit.Addr{0, 1}, ops[0].Targets.Addrs())
}

// S4 — SWAP decomposition: SWP(a,b) -> [CX(a,b), CX(b,a), CX(a,b)].
func TestSwapDecompositionS4(t *testing.T) {
	ops := decompose.Swap(2, 5)
	require.Len(t, ops, 3)
	assert.Equal(t, []qubit.Addr{2, 5}, ops[0].Targets.Addrs())
	assert.Equal(t, []qubit.Addr{5, 2}, ops[1].Targets.Addrs())
	assert.Equal(t, []qubit.Addr{2, 5}, ops[2].Targets.Addrs())
}

// S3 — Multi-control P(3pi/4) on {0,1}->2: expansion uses only gates in
// {RZ, RY, P, CX}, and its overall unitary equals the reference
// controlled-controlled-P within epsilon.
func TestMultiControlPS3(t *testing.T) {
	alpha := 3 * math.Pi / 4
	ops, err := decompose.Network([]qubit.Addr{0, 1}, 2, gate.P(alpha))
	require.NoError(t, err)
	require.NotEmpty(t, ops)

	allowed := map[string]bool{"RZ": true, "RY": true, "P": true, "CX": true}
	for _, op := range ops {
		assert.True(t, allowed[op.Gate.Name()], "unexpected gate %s in expansion", op.Gate.Name())
	}

	got := buildUnitary(3, ops)
	want := algebra.Identity(8)
	want.Set(7, 7, complexExp(alpha))
	assert.True(t, got.ApproxEqual(want), "expansion's unitary does not match the reference doubly-controlled-P(3pi/4)")
}

func TestDemultiplexBaseCase(t *testing.T) {
	ops := decompose.Demultiplex(decompose.MuxRZ, nil, 3, []float64{math.Pi})
	require.Len(t, ops, 1)
	assert.Equal(t, "RZ", ops[0].Gate.Name())
}

func TestDemultiplexRecursiveStructure(t *testing.T) {
	ops := decompose.Demultiplex(decompose.MuxRZ, []qubit.Addr{0}, 1, []float64{math.Pi / 2, -math.Pi / 2})
	// base(1 op) + CX + base(1 op) + CX
	require.Len(t, ops, 4)
	assert.Equal(t, "CX", ops[1].Gate.Name())
	assert.Equal(t, "CX", ops[3].Gate.Name())
}

func TestCanonicalNetworkProducesOnlyAllowedGates(t *testing.T) {
	ops := decompose.Canonical(0.5, 0.25, 0.1, 0, 1)
	allowed := map[string]bool{"H": true, "S": true, "SD": true, "CX": true, "ZPOW": true}
	for _, op := range ops {
		assert.True(t, allowed[op.Gate.Name()], "unexpected gate %s", op.Gate.Name())
	}
}

func TestNetworkRejectsFewerThanTwoControls(t *testing.T) {
	_, err := decompose.Network([]qubit.Addr{0}, 1, gate.X())
	assert.Error(t, err)
}

func TestSqrtOfNetworkVIsWellFormed(t *testing.T) {
	// Sanity: mat_sqrt applied (n-1) times to a unitary stays unitary.
	m := gate.X().Matrix()
	root := algebra.Sqrt(m)
	assert.True(t, root.IsUnitary())
}
