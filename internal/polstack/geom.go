package polstack

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// KHat returns the unit propagation direction for polar angle theta
// (from the plate normal) and azimuth phi, both in degrees.
func KHat(thetaDeg, phiDeg Real) r3.Vec {
	th, ph := thetaDeg*deg2rad, phiDeg*deg2rad
	st := math.Sin(th)
	return r3.Vec{X: st * math.Cos(ph), Y: st * math.Sin(ph), Z: math.Cos(th)}
}

// PolarizerPair holds the lab-frame absorption axes of the input polarizer
// and the output analyzer.
type PolarizerPair struct {
	In, Out r3.Vec
}

// PolAxes rotates the canonical absorption axes (x for the input, y for the
// analyzer) about the normal. PolAxes(0, 0) is a crossed pair.
func PolAxes(polInDeg, polOutDeg Real) PolarizerPair {
	return PolarizerPair{
		In:  RotateAboutNormal(xHat, polInDeg),
		Out: RotateAboutNormal(yHat, polOutDeg),
	}
}

// PassAxis returns the transverse pass axis of a polarizer with absorption
// axis c seen along k: c projected onto the plane ⟂ k, normalized.
// Undefined when c ∥ k; the result is then the zero vector.
func PassAxis(k, c r3.Vec) r3.Vec {
	return unit(transverse(c, k))
}

// AxisFromAzimuth returns the in-plane unit axis at the given azimuth.
func AxisFromAzimuth(azDeg Real) r3.Vec {
	a := azDeg * deg2rad
	return r3.Vec{X: math.Cos(a), Y: math.Sin(a)}
}

// AzimuthFromAxis is the inverse of AxisFromAzimuth for in-plane axes,
// in degrees within (-180, 180]. Meaningless for axes along the normal.
func AzimuthFromAxis(axis r3.Vec) Real {
	return math.Atan2(axis.Y, axis.X) * rad2deg
}

// RotateAboutNormal rotates v right-handedly about z by angle degrees.
func RotateAboutNormal(v r3.Vec, angleDeg Real) r3.Vec {
	if angleDeg == 0 {
		return v
	}
	return r3.Rotate(v, angleDeg*deg2rad, zHat)
}
