package gate

import (
	"math"
	"math/cmplx"

	"github.com/kegliz/qivm/algebra"
)

// single wraps a fixed-identifier, fixed-matrix single-qubit gate —
// covers I, H, X, Y, Z, S, S†, T, T†, V, V† (the fixed single-qubit
// gates with no free parameter).
type single struct {
	name, symbol string
	m            algebra.Matrix
	adjointName  string // "" means self-adjoint
}

func (g single) Name() string          { return g.name }
func (g single) Arity() int            { return 1 }
func (g single) DrawSymbol() string    { return g.symbol }
func (g single) Matrix() algebra.Matrix { return g.m }
func (g single) Adjoint() Gate {
	if g.adjointName == "" {
		return g
	}
	return mustStandard(g.adjointName)
}

func diag2(a, b complex128) algebra.Matrix {
	return algebra.FromRows([][]complex128{{a, 0}, {0, b}})
}

var (
	invSqrt2 = complex(1/math.Sqrt2, 0)

	iGate = single{"I", "I", algebra.Identity(2), ""}
	hGate = single{"H", "H", algebra.FromRows([][]complex128{
		{invSqrt2, invSqrt2},
		{invSqrt2, -invSqrt2},
	}), ""}
	xGate = single{"X", "X", algebra.FromRows([][]complex128{{0, 1}, {1, 0}}), ""}
	yGate = single{"Y", "Y", algebra.FromRows([][]complex128{{0, -1i}, {1i, 0}}), ""}
	zGate = single{"Z", "Z", diag2(1, -1), ""}
	sGate = single{"S", "S", diag2(1, 1i), "SD"}
	sdGate = single{"SD", "S†", diag2(1, -1i), "S"}
	tGate  = single{"T", "T", diag2(1, cmplx.Exp(1i*math.Pi/4)), "TD"}
	tdGate = single{"TD", "T†", diag2(1, cmplx.Exp(-1i*math.Pi/4)), "T"}
	vGate = single{"V", "V", algebra.FromRows([][]complex128{
		{(1 + 1i) / 2, (1 - 1i) / 2},
		{(1 - 1i) / 2, (1 + 1i) / 2},
	}), "VD"}
	vdGate = single{"VD", "V†", algebra.FromRows([][]complex128{
		{(1 - 1i) / 2, (1 + 1i) / 2},
		{(1 + 1i) / 2, (1 - 1i) / 2},
	}), "V"}
)

// I returns the identity gate.
func I() Gate { return iGate }

// H returns the Hadamard gate.
func H() Gate { return hGate }

// X returns the Pauli-X gate.
func X() Gate { return xGate }

// Y returns the Pauli-Y gate.
func Y() Gate { return yGate }

// Z returns the Pauli-Z gate.
func Z() Gate { return zGate }

// S returns the phase gate diag(1, i).
func S() Gate { return sGate }

// SD returns S†.
func SD() Gate { return sdGate }

// T returns the π/4 phase gate.
func T() Gate { return tGate }

// TD returns T†.
func TD() Gate { return tdGate }

// V returns sqrt(X).
func V() Gate { return vGate }

// VD returns V†.
func VD() Gate { return vdGate }

// ---- parameterized single-qubit gates --------------------------------

// pauliPow is Xᵗ/Yᵗ/Zᵗ: the fractional power of a Pauli, computed via its
// spectral form P^t = (I+P)/2 + e^{iπt}(I-P)/2 (eigenvalues ±1 raised to t).
type pauliPow struct {
	axis string // "X", "Y", or "Z"
	t    float64
}

func (g pauliPow) Name() string       { return g.axis + "POW" }
func (g pauliPow) Arity() int         { return 1 }
func (g pauliPow) DrawSymbol() string { return g.axis + "^t" }
func (g pauliPow) Adjoint() Gate      { return pauliPow{g.axis, -g.t} }
func (g pauliPow) EncodeParams() []float64 { return []float64{g.t} }
func (g pauliPow) Matrix() algebra.Matrix {
	var p algebra.Matrix
	switch g.axis {
	case "X":
		p = xGate.m
	case "Y":
		p = yGate.m
	default:
		p = zGate.m
	}
	half := algebra.Identity(2).Add(p).Scale(0.5)
	other := algebra.Identity(2).Sub(p).Scale(0.5)
	phase := cmplx.Exp(complex(0, math.Pi*g.t))
	return half.Add(other.Scale(phase))
}

// XPow returns Xᵗ.
func XPow(t float64) Gate { return pauliPow{"X", t} }

// YPow returns Yᵗ.
func YPow(t float64) Gate { return pauliPow{"Y", t} }

// ZPow returns Zᵗ.
func ZPow(t float64) Gate { return pauliPow{"Z", t} }

// phaseGate is P(α) = diag(1, e^{iα}).
type phaseGate struct{ alpha float64 }

func (g phaseGate) Name() string       { return "P" }
func (g phaseGate) Arity() int         { return 1 }
func (g phaseGate) DrawSymbol() string { return "P" }
func (g phaseGate) Adjoint() Gate      { return phaseGate{-g.alpha} }
func (g phaseGate) Matrix() algebra.Matrix {
	return diag2(1, cmplx.Exp(complex(0, g.alpha)))
}
func (g phaseGate) Angle() float64 { return g.alpha }
func (g phaseGate) EncodeParams() []float64 { return []float64{g.alpha} }

// P returns the phase gate diag(1, e^{iα}).
func P(alpha float64) Gate { return phaseGate{alpha} }

// rotation is Rx/Ry/Rz(α).
type rotation struct {
	axis  string
	alpha float64
}

func (g rotation) Name() string       { return "R" + g.axis }
func (g rotation) Arity() int         { return 1 }
func (g rotation) DrawSymbol() string { return "R" + g.axis }
func (g rotation) Adjoint() Gate      { return rotation{g.axis, -g.alpha} }
func (g rotation) Angle() float64     { return g.alpha }
func (g rotation) EncodeParams() []float64 { return []float64{g.alpha} }
func (g rotation) Matrix() algebra.Matrix {
	c := complex(math.Cos(g.alpha/2), 0)
	s := complex(math.Sin(g.alpha/2), 0)
	switch g.axis {
	case "X":
		return algebra.FromRows([][]complex128{
			{c, -1i * s},
			{-1i * s, c},
		})
	case "Y":
		return algebra.FromRows([][]complex128{
			{c, -s},
			{s, c},
		})
	default: // "Z"
		return algebra.FromRows([][]complex128{
			{cmplx.Exp(complex(0, -g.alpha/2)), 0},
			{0, cmplx.Exp(complex(0, g.alpha/2))},
		})
	}
}

// RX returns Rx(α).
func RX(alpha float64) Gate { return rotation{"X", alpha} }

// RY returns Ry(α).
func RY(alpha float64) Gate { return rotation{"Y", alpha} }

// RZ returns Rz(α).
func RZ(alpha float64) Gate { return rotation{"Z", alpha} }

// rn is RN(nx,ny,nz,α) = cos(α/2) I - i sin(α/2) (nx X + ny Y + nz Z).
type rn struct{ nx, ny, nz, alpha float64 }

func (g rn) Name() string       { return "RN" }
func (g rn) Arity() int         { return 1 }
func (g rn) DrawSymbol() string { return "RN" }
func (g rn) Adjoint() Gate      { return rn{g.nx, g.ny, g.nz, -g.alpha} }
func (g rn) EncodeParams() []float64 { return []float64{g.nx, g.ny, g.nz, g.alpha} }
func (g rn) Matrix() algebra.Matrix {
	c := complex(math.Cos(g.alpha/2), 0)
	s := complex(math.Sin(g.alpha/2), 0)
	n := xGate.m.Scale(complex(g.nx, 0)).
		Add(yGate.m.Scale(complex(g.ny, 0))).
		Add(zGate.m.Scale(complex(g.nz, 0)))
	return algebra.Identity(2).Scale(c).Sub(n.Scale(1i * s))
}

// RN returns the rotation by α about axis (nx, ny, nz).
func RN(nx, ny, nz, alpha float64) Gate { return rn{nx, ny, nz, alpha} }

// u is the general single-qubit unitary U(θ,φ,λ).
type u struct{ theta, phi, lambda float64 }

func (g u) Name() string       { return "U" }
func (g u) Arity() int         { return 1 }
func (g u) DrawSymbol() string { return "U" }
func (g u) Adjoint() Gate      { return u{-g.theta, -g.lambda, -g.phi} }
func (g u) EncodeParams() []float64 { return []float64{g.theta, g.phi, g.lambda} }
func (g u) Matrix() algebra.Matrix {
	ct := complex(math.Cos(g.theta/2), 0)
	st := complex(math.Sin(g.theta/2), 0)
	eil := cmplx.Exp(complex(0, g.lambda))
	eip := cmplx.Exp(complex(0, g.phi))
	return algebra.FromRows([][]complex128{
		{ct, -eil * st},
		{eip * st, cmplx.Exp(complex(0, g.phi+g.lambda)) * ct},
	})
}

// U returns the general single-qubit gate U(θ,φ,λ).
func U(theta, phi, lambda float64) Gate { return u{theta, phi, lambda} }
