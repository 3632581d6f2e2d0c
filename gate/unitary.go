package gate

import "github.com/kegliz/qivm/algebra"

// Unitary carries an explicit matrix of dimension 2, 4, or dynamic —
// used when a decomposition recipe or a caller needs to push a gate that
// isn't one of the named Standard variants (e.g. an intermediate V from
// the gray-code network, which the recipe constructs on the fly from a
// matrix square root rather than looking it up by name).
type Unitary struct {
	id string
	m  algebra.Matrix
}

// NewUnitary wraps an arbitrary unitary matrix under identifier id.
func NewUnitary(id string, m algebra.Matrix) Unitary { return Unitary{id: id, m: m} }

func (g Unitary) Name() string       { return g.id }
func (g Unitary) Arity() int {
	switch g.m.Dim {
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	default:
		n := 0
		for d := g.m.Dim; d > 1; d >>= 1 {
			n++
		}
		return n
	}
}
func (g Unitary) DrawSymbol() string     { return g.id }
func (g Unitary) Matrix() algebra.Matrix { return g.m }
func (g Unitary) Adjoint() Gate          { return Unitary{id: g.id + "†", m: g.m.Adjoint()} }

// Custom is a named user-supplied gate carrying a matrix and an opaque
// parameter vector (preserved for bytecode's CustomGateOp encoding, which
// round-trips the parameters but not the matrix itself).
type Custom struct {
	id     string
	m      algebra.Matrix
	Params []float64
}

// NewCustom builds a Custom gate.
func NewCustom(id string, m algebra.Matrix, params []float64) Custom {
	return Custom{id: id, m: m, Params: params}
}

func (g Custom) Name() string           { return g.id }
func (g Custom) Arity() int              { return Unitary{id: g.id, m: g.m}.Arity() }
func (g Custom) DrawSymbol() string     { return g.id }
func (g Custom) Matrix() algebra.Matrix { return g.m }
func (g Custom) Adjoint() Gate {
	rev := make([]float64, len(g.Params))
	for i, v := range g.Params {
		rev[len(rev)-1-i] = -v
	}
	return Custom{id: g.id + "†", m: g.m.Adjoint(), Params: rev}
}
