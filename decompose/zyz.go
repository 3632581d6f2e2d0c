// Package decompose implements the algebraic decomposition recipes:
// single-qubit Z-Y-Z Euler, controlled-U via the ABC identity,
// multi-controlled-U via the gray-code network, SWAP -> CNOT, the
// canonical-gate CNOT network, and uniformly-controlled-rotation
// demultiplex.
package decompose

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/kegliz/qivm/algebra"
)

// Euler is the four values a Z-Y-Z decomposition of a 2x2 unitary yields:
// the gate equals, up to the global phase e^{iAlpha},
// Rz(Theta) * Ry(Phi) * Rz(Lambda).
type Euler struct {
	Lambda, Phi, Theta, Alpha float64
}

// ZYZ computes the Z-Y-Z Euler decomposition of a 2x2 unitary m, per
// spec 4.C: extract the global phase, lift to SU(2), then recover phi
// from whichever of |U00|/|U10| is larger (for numerical stability near
// the poles), and theta+-lambda from atan2 of the off-diagonal ratios.
func ZYZ(m algebra.Matrix) (Euler, error) {
	if m.Dim != 2 {
		return Euler{}, fmt.Errorf("decompose: ZYZ requires a 2x2 matrix, got %dx%d", m.Dim, m.Dim)
	}
	alpha := algebra.PhaseAngle(m)
	u := algebra.SU(m)

	u00, u10 := u.At(0, 0), u.At(1, 0)
	var phi float64
	if cmplx.Abs(u00) >= cmplx.Abs(u10) {
		phi = 2 * math.Acos(clamp(cmplx.Abs(u00)))
	} else {
		phi = 2 * math.Asin(clamp(cmplx.Abs(u10)))
	}

	cosHalf := math.Cos(phi / 2)
	sinHalf := math.Sin(phi / 2)

	var sumTL, diffTL float64 // theta+lambda, theta-lambda
	if math.Abs(cosHalf) < algebra.Epsilon {
		sumTL = 0
	} else {
		v := u.At(1, 1) / complex(cosHalf, 0)
		sumTL = 2 * math.Atan2(imag(v), real(v))
	}
	if math.Abs(sinHalf) < algebra.Epsilon {
		diffTL = 0
	} else {
		v := u.At(1, 0) / complex(sinHalf, 0)
		diffTL = 2 * math.Atan2(imag(v), real(v))
	}

	theta := (sumTL + diffTL) / 2
	lambda := (sumTL - diffTL) / 2

	e := Euler{Lambda: lambda, Phi: phi, Theta: theta, Alpha: alpha}
	if math.IsNaN(e.Lambda) || math.IsNaN(e.Phi) || math.IsNaN(e.Theta) || math.IsNaN(e.Alpha) {
		return Euler{}, fmt.Errorf("decompose: ZYZ produced NaN for matrix %v", m)
	}
	return e, nil
}

func clamp(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
