package gate

import "github.com/kegliz/qivm/algebra"

// threeFixed is a fixed three-qubit gate (CCX, CSWP).
type threeFixed struct {
	name, symbol string
	m            algebra.Matrix
}

func (g threeFixed) Name() string           { return g.name }
func (g threeFixed) Arity() int             { return 3 }
func (g threeFixed) DrawSymbol() string     { return g.symbol }
func (g threeFixed) Matrix() algebra.Matrix { return g.m }
func (g threeFixed) Adjoint() Gate          { return g } // both Hermitian

func toffoliMatrix() algebra.Matrix {
	m := algebra.Identity(8)
	// swap |110> (6) and |111> (7): flip target when both controls are 1.
	m.Set(6, 6, 0)
	m.Set(7, 7, 0)
	m.Set(6, 7, 1)
	m.Set(7, 6, 1)
	return m
}

func fredkinMatrix() algebra.Matrix {
	m := algebra.Identity(8)
	// swap |101> (5) and |110> (6): swap the two targets when control is 1.
	m.Set(5, 5, 0)
	m.Set(6, 6, 0)
	m.Set(5, 6, 1)
	m.Set(6, 5, 1)
	return m
}

var (
	ccxGate  = threeFixed{"CCX", "⊕⊕", toffoliMatrix()}
	cswpGate = threeFixed{"CSWP", "×⊕", fredkinMatrix()}
)

// CCX returns the Toffoli (doubly-controlled X) gate.
func CCX() Gate { return ccxGate }

// CSWP returns the Fredkin (controlled-SWAP) gate.
func CSWP() Gate { return cswpGate }
