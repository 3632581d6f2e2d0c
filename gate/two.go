package gate

import (
	"math"
	"math/cmplx"

	"github.com/kegliz/qivm/algebra"
)

// twoFixed is a fixed two-qubit gate with no free parameter (SWP, ISWP,
// ISWPD, SSWP, SSWPD, SISWP, SISWPD, CX, CY, CZ, CH).
type twoFixed struct {
	name, symbol string
	m            algebra.Matrix
	adjointName  string
}

func (g twoFixed) Name() string           { return g.name }
func (g twoFixed) Arity() int             { return 2 }
func (g twoFixed) DrawSymbol() string     { return g.symbol }
func (g twoFixed) Matrix() algebra.Matrix { return g.m }
func (g twoFixed) Adjoint() Gate {
	if g.adjointName == "" {
		return g
	}
	return mustStandard(g.adjointName)
}

func cnotLike(ctrlGate algebra.Matrix) algebra.Matrix {
	// block-diagonal: |0><0| ⊗ I  +  |1><1| ⊗ ctrlGate
	p0 := algebra.FromRows([][]complex128{{1, 0}, {0, 0}})
	p1 := algebra.FromRows([][]complex128{{0, 0}, {0, 1}})
	return algebra.Kron(p0, algebra.Identity(2)).Add(algebra.Kron(p1, ctrlGate))
}

var (
	swpGate = twoFixed{"SWP", "×", algebra.FromRows([][]complex128{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
	}), ""}
	iswpGate = twoFixed{"ISWP", "iS", algebra.FromRows([][]complex128{
		{1, 0, 0, 0},
		{0, 0, 1i, 0},
		{0, 1i, 0, 0},
		{0, 0, 0, 1},
	}), "ISWPD"}
	iswpdGate = twoFixed{"ISWPD", "iS†", algebra.FromRows([][]complex128{
		{1, 0, 0, 0},
		{0, 0, -1i, 0},
		{0, -1i, 0, 0},
		{0, 0, 0, 1},
	}), "ISWP"}
	cxGate = twoFixed{"CX", "⊕", cnotLike(xGate.m), "CX"}
	cyGate = twoFixed{"CY", "Y⊕", cnotLike(yGate.m), "CY"}
	czGate = twoFixed{"CZ", "●", cnotLike(zGate.m), "CZ"}
	chGate = twoFixed{"CH", "H⊕", cnotLike(hGate.m), "CH"}
)

func sqrtSwapMatrix() algebra.Matrix { return algebra.Sqrt(swpGate.m) }

var (
	sswpGate  = twoFixed{"SSWP", "√×", sqrtSwapMatrix(), "SSWPD"}
	sswpdGate = twoFixed{"SSWPD", "√×†", sqrtSwapMatrix().Adjoint(), "SSWP"}
	siswpGate = twoFixed{"SISWP", "√iS", algebra.Sqrt(iswpGate.m), "SISWPD"}
)

var siswpdGate = twoFixed{"SISWPD", "√iS†", siswpGate.m.Adjoint(), "SISWP"}

// SWP returns the SWAP gate.
func SWP() Gate { return swpGate }

// ISWP returns the iSWAP gate.
func ISWP() Gate { return iswpGate }

// ISWPD returns iSWAP†.
func ISWPD() Gate { return iswpdGate }

// SSWP returns sqrt(SWAP).
func SSWP() Gate { return sswpGate }

// SSWPD returns sqrt(SWAP)†.
func SSWPD() Gate { return sswpdGate }

// SISWP returns sqrt(iSWAP).
func SISWP() Gate { return siswpGate }

// SISWPD returns sqrt(iSWAP)†.
func SISWPD() Gate { return siswpdGate }

// CX returns the controlled-X (CNOT) gate.
func CX() Gate { return cxGate }

// CY returns the controlled-Y gate.
func CY() Gate { return cyGate }

// CZ returns the controlled-Z gate.
func CZ() Gate { return czGate }

// CH returns the controlled-H gate.
func CH() Gate { return chGate }

// cp is the controlled-phase gate CP(α).
type cp struct{ alpha float64 }

func (g cp) Name() string       { return "CP" }
func (g cp) Arity() int         { return 2 }
func (g cp) DrawSymbol() string { return "CP" }
func (g cp) Adjoint() Gate      { return cp{-g.alpha} }
func (g cp) Angle() float64     { return g.alpha }
func (g cp) EncodeParams() []float64 { return []float64{g.alpha} }
func (g cp) Matrix() algebra.Matrix {
	return cnotLike(diag2(1, cmplx.Exp(complex(0, g.alpha))))
}

// CP returns the controlled-phase gate.
func CP(alpha float64) Gate { return cp{alpha} }

// canonical is the parameterized two-qubit gate
// exp(-iπ/2 (tx XX + ty YY + tz ZZ)). XX, YY, ZZ mutually commute, so the
// exponential of the sum factors into a product of exponentials.
type canonical struct{ tx, ty, tz float64 }

func (g canonical) Name() string       { return "CAN" }
func (g canonical) Arity() int         { return 2 }
func (g canonical) DrawSymbol() string { return "CAN" }
func (g canonical) Adjoint() Gate      { return canonical{-g.tx, -g.ty, -g.tz} }
func (g canonical) Params() (tx, ty, tz float64) { return g.tx, g.ty, g.tz }
func (g canonical) EncodeParams() []float64      { return []float64{g.tx, g.ty, g.tz} }
func (g canonical) Matrix() algebra.Matrix {
	xx := algebra.Kron(xGate.m, xGate.m)
	yy := algebra.Kron(yGate.m, yGate.m)
	zz := algebra.Kron(zGate.m, zGate.m)
	id4 := algebra.Identity(4)
	rot := func(theta float64, pp algebra.Matrix) algebra.Matrix {
		c := complex(math.Cos(theta), 0)
		s := complex(math.Sin(theta), 0)
		return id4.Scale(c).Sub(pp.Scale(1i * s))
	}
	m := rot(math.Pi*g.tx/2, xx)
	m = m.Mul(rot(math.Pi*g.ty/2, yy))
	m = m.Mul(rot(math.Pi*g.tz/2, zz))
	return m
}

// Canonical returns exp(-iπ/2 (tx·XX + ty·YY + tz·ZZ)).
func Canonical(tx, ty, tz float64) Gate { return canonical{tx, ty, tz} }
