package polstack

import (
	"math/cmplx"

	"gonum.org/v1/gonum/spatial/r3"
)

// Jones3 is a 3×3 complex matrix (row-major) acting on lab-frame fields.
type Jones3 struct {
	M [3][3]complex128
}

func I3() Jones3 {
	return Jones3{M: [3][3]complex128{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

// outer returns s·a aᵀ for a real vector a.
func outer(a r3.Vec, s complex128) Jones3 {
	v := [3]Real{a.X, a.Y, a.Z}
	var R Jones3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			R.M[r][c] = s * complex(v[r]*v[c], 0)
		}
	}
	return R
}

func (A Jones3) Add(B Jones3) Jones3 {
	var R Jones3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			R.M[r][c] = A.M[r][c] + B.M[r][c]
		}
	}
	return R
}

func (A Jones3) Mul(B Jones3) Jones3 {
	var R Jones3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var sum complex128
			for k := 0; k < 3; k++ {
				sum += A.M[r][k] * B.M[k][c]
			}
			R.M[r][c] = sum
		}
	}
	return R
}

// H returns the conjugate transpose.
func (A Jones3) H() Jones3 {
	var R Jones3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			R.M[r][c] = cmplx.Conj(A.M[c][r])
		}
	}
	return R
}

func (A Jones3) MulVec(v CVec) CVec {
	return CVec{
		A.M[0][0]*v[0] + A.M[0][1]*v[1] + A.M[0][2]*v[2],
		A.M[1][0]*v[0] + A.M[1][1]*v[1] + A.M[1][2]*v[2],
		A.M[2][0]*v[0] + A.M[2][1]*v[1] + A.M[2][2]*v[2],
	}
}
