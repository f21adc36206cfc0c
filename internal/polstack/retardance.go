package polstack

import (
	"fmt"
	"math"
)

// GammaInPlane is the phase retardation of a plate with an in-plane optical
// axis. phiRelDeg is the azimuth of incidence measured from the plate's own
// axis azimuth. Lengths in meters, angles in degrees.
func GammaInPlane(thetaDeg, phiRelDeg, lambda, d, no, ne Real) Real {
	s := math.Sin(thetaDeg * deg2rad)
	cp, sp := math.Cos(phiRelDeg*deg2rad), math.Sin(phiRelDeg*deg2rad)
	s2 := s * s
	kE := ne * sqrt0(1-s2*sp*sp/(ne*ne)-s2*cp*cp/(no*no))
	kO := no * sqrt0(1-s2/(no*no))
	return 2 * math.Pi * d / lambda * (kE - kO)
}

// GammaNormal is the phase retardation of a plate whose optical axis lies
// along the normal (CPlateIndexDifference model). Symmetric in azimuth.
func GammaNormal(thetaDeg, lambda, d, no, ne Real) Real {
	s := math.Sin(thetaDeg * deg2rad)
	s2 := s * s
	return 2 * math.Pi * d / lambda * (ne*sqrt0(1-s2/(ne*ne)) - no*sqrt0(1-s2/(no*no)))
}

// GammaNormalWaveVector is the exact TM/TE retardation of a C-plate.
func GammaNormalWaveVector(thetaDeg, lambda, d, no, ne Real) Real {
	s := math.Sin(thetaDeg * deg2rad)
	s2 := s * s
	return 2 * math.Pi * d * no / lambda * (sqrt0(1-s2/(ne*ne)) - sqrt0(1-s2/(no*no)))
}

// ElementGamma dispatches to the formula for el.Type using wavelength
// specific indices no, ne.
func ElementGamma(el Element, thetaDeg, phiDeg, lambda, no, ne Real, model CPlateModel) Real {
	switch el.Type {
	case ElementA, ElementLC:
		phiRel := phiDeg - AzimuthFromAxis(el.Axis)
		return GammaInPlane(thetaDeg, phiRel, lambda, el.Thickness, no, ne)
	case ElementC:
		if model == CPlateWaveVector {
			return GammaNormalWaveVector(thetaDeg, lambda, el.Thickness, no, ne)
		}
		return GammaNormal(thetaDeg, lambda, el.Thickness, no, ne)
	}
	panic(fmt.Sprintf("polstack: invalid element type %d", uint8(el.Type)))
}
