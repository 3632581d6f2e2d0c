package algebra

import "math/cmplx"

// Sqrt returns the principal square root of m.
//
// For the 2x2 case (the only shape the gray-code network ever calls
// mat_sqrt on) it uses the closed-form formula
//
//	sqrt(M) = (M + sqrt(det M)*I) / sqrt(tr(M) + 2*sqrt(det M))
//
// (principal branch of both square roots). For larger matrices — in
// this module the 4x4 sqrt-SWAP and sqrt-iSWAP gate matrices, both
// normal — it falls back to a Schur factorization via
// shifted QR iteration and solves the triangular square root recurrence
// from the spec directly.
func Sqrt(m Matrix) Matrix {
	if m.Dim == 2 {
		return sqrt2x2(m)
	}
	q, u := schur(m)
	b := sqrtUpperTriangular(u)
	return q.Mul(b).Mul(q.Adjoint())
}

func sqrt2x2(m Matrix) Matrix {
	det := m.Det()
	tr := m.At(0, 0) + m.At(1, 1)
	sdet := cmplx.Sqrt(det)
	denom := cmplx.Sqrt(tr + 2*sdet)
	if denom == 0 {
		// Degenerate (m is -identity-like): fall back to the general path.
		q, u := schur(m)
		b := sqrtUpperTriangular(u)
		return q.Mul(b).Mul(q.Adjoint())
	}
	out := NewMatrix(2)
	out.Set(0, 0, m.At(0, 0)+sdet)
	out.Set(0, 1, m.At(0, 1))
	out.Set(1, 0, m.At(1, 0))
	out.Set(1, 1, m.At(1, 1)+sdet)
	return out.Scale(1 / denom)
}

// sqrtUpperTriangular solves the per-entry recurrence from spec 4.A:
//
//	B[i,i] = sqrt(U[i,i])
//	B[i,j] = (U[i,j] - sum_{i<k<j} B[i,k]*B[k,j]) / (B[i,i]+B[j,j])   j>i
func sqrtUpperTriangular(u Matrix) Matrix {
	n := u.Dim
	b := NewMatrix(n)
	for i := 0; i < n; i++ {
		b.Set(i, i, cmplx.Sqrt(u.At(i, i)))
	}
	for d := 1; d < n; d++ {
		for i := 0; i+d < n; i++ {
			j := i + d
			sum := u.At(i, j)
			for k := i + 1; k < j; k++ {
				sum -= b.At(i, k) * b.At(k, j)
			}
			denom := b.At(i, i) + b.At(j, j)
			if cmplx.Abs(denom) < Epsilon {
				b.Set(i, j, 0)
				continue
			}
			b.Set(i, j, sum/denom)
		}
	}
	return b
}
