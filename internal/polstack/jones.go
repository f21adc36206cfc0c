package polstack

import (
	"math/cmplx"

	"gonum.org/v1/gonum/spatial/r3"
)

// Options is the explicit per-call configuration of an evaluation. The zero
// value means default wavelengths, flat dispersion, default conventions and
// the index-difference C-plate model.
type Options struct {
	Wavelengths WavelengthSet
	Dispersion  DispersionTable
	Convention  Convention
	CPlate      CPlateModel
}

func (o Options) wavelengths() WavelengthSet {
	if len(o.Wavelengths) == 0 {
		return DefaultWavelengths()
	}
	return o.Wavelengths
}

// RetarderOperator builds the lab-frame Jones operator of a retarder with
// optical axis `axis` seen along unit k, retardation gamma (radians).
// The transverse plane is split into e (axis projected ⟂ k) and o = k × e;
// e gets exp(+iσΓ/2), o gets exp(−iσΓ/2), the k component passes unchanged.
// When the axis is parallel to k the plate is isotropic for this direction
// and the identity is returned.
func RetarderOperator(k, axis r3.Vec, gamma Real, pc PhaseConvention) Jones3 {
	p := transverse(axis, k)
	if r3.Norm(p) < epsAxis || gamma == 0 {
		return I3()
	}
	e := unit(p)
	o := unit(r3.Cross(k, e))
	half := 0.5 * pc.sigma() * gamma
	return outer(e, cmplx.Exp(complex(0, half))).
		Add(outer(o, cmplx.Exp(complex(0, -half)))).
		Add(outer(k, 1))
}

// elementOperator builds the operator of el at direction (theta, phi) and
// wavelength nm.
func elementOperator(k r3.Vec, el Element, thetaDeg, phiDeg, nm Real, opts Options) Jones3 {
	no, ne := indicesAt(el, nm, opts.wavelengths(), opts.Dispersion)
	g := ElementGamma(el, thetaDeg, phiDeg, nm*nm2m, no, ne, opts.CPlate)
	return RetarderOperator(k, el.Axis, g, opts.Convention.Phase)
}

// propagateEach sends e0 through the stack at (theta, phi) and wavelength
// nm, calling visit with the field after every element. Each step is
// followed by re-projection ⟂ k. No amplitude normalization is applied.
func propagateEach(thetaDeg, phiDeg Real, e0 CVec, stack Stack, nm Real, opts Options, visit func(i int, E CVec)) CVec {
	k := KHat(thetaDeg, phiDeg)
	E := e0
	for i, el := range stack {
		E = elementOperator(k, el, thetaDeg, phiDeg, nm, opts).MulVec(E).Transverse(k)
		if visit != nil {
			visit(i, E)
		}
	}
	return E
}

// Propagate returns the field leaving the stack when the input polarizer
// with absorption axis c1 launches a unit-amplitude field.
func Propagate(thetaDeg, phiDeg Real, c1 r3.Vec, stack Stack, nm Real, opts Options) CVec {
	k := KHat(thetaDeg, phiDeg)
	return propagateEach(thetaDeg, phiDeg, cvec(PassAxis(k, c1)), stack, nm, opts, nil)
}
