package polstack

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	xHat = r3.Vec{X: 1}
	yHat = r3.Vec{Y: 1}
	zHat = r3.Vec{Z: 1} // plate normal
)

// unit returns v scaled to unit length; the norm is floored so a zero
// vector stays zero instead of turning into NaN.
func unit(v r3.Vec) r3.Vec {
	return r3.Scale(1/fmax(r3.Norm(v), epsNorm), v)
}

// transverse removes the component of v along unit k.
func transverse(v, k r3.Vec) r3.Vec {
	return r3.Sub(v, r3.Scale(r3.Dot(v, k), k))
}

// CVec is a complex 3-vector (an optical field in the lab frame).
type CVec [3]complex128

func cvec(v r3.Vec) CVec {
	return CVec{complex(v.X, 0), complex(v.Y, 0), complex(v.Z, 0)}
}

func (a CVec) Add(b CVec) CVec { return CVec{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func (a CVec) Sub(b CVec) CVec { return CVec{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func (a CVec) Mul(s complex128) CVec {
	return CVec{a[0] * s, a[1] * s, a[2] * s}
}

// DotReal is the bilinear product r·E with a real vector (no conjugation).
func (a CVec) DotReal(r r3.Vec) complex128 {
	return a[0]*complex(r.X, 0) + a[1]*complex(r.Y, 0) + a[2]*complex(r.Z, 0)
}

// Inner is the Hermitian product ⟨a, b⟩ = Σ conj(a_i)·b_i.
func (a CVec) Inner(b CVec) complex128 {
	return cmplx.Conj(a[0])*b[0] + cmplx.Conj(a[1])*b[1] + cmplx.Conj(a[2])*b[2]
}

// Norm returns the Euclidean length √⟨a, a⟩.
func (a CVec) Norm() Real { return math.Sqrt(real(a.Inner(a))) }

// Transverse removes the component of E along unit k: E − (E·k)k.
func (a CVec) Transverse(k r3.Vec) CVec {
	return a.Sub(cvec(k).Mul(a.DotReal(k)))
}
