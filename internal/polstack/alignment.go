package polstack

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Alignment relates the linear azimuth of a Stokes state to the analyzer
// pass axis, both measured in the same (u, v) basis.
type Alignment struct {
	Stage       string `json:"stage"`
	Key         string `json:"key"`
	NM          Real   `json:"nm"`
	AlphaDeg    Real   `json:"alphaDeg"`    // analyzer pass axis azimuth
	PsiDeg      Real   `json:"psiDeg"`      // ½·atan2(s2, s1)
	DeltaDeg    Real   `json:"deltaDeg"`    // (alpha − psi) mod 180
	OrthoErrDeg Real   `json:"orthoErrDeg"` // |delta − 90|
	Leakage     Real   `json:"leakage"`     // ½·S0·(1 + s1·cos2α + s2·sin2α)
	Contrast    Real   `json:"contrast"`
}

// AlignmentFromStokes evaluates the analyzer alignment of s for the
// transverse analyzer pass axis o2. u and v must be the basis s was
// computed in. S3 does not enter.
func AlignmentFromStokes(s Stokes, o2, u, v r3.Vec) Alignment {
	alpha := math.Atan2(r3.Dot(o2, v), r3.Dot(o2, u))
	s1, s2, _ := s.Reduced()
	psi := 0.5 * math.Atan2(s2, s1)
	delta := math.Mod((alpha-psi)*rad2deg, 180)
	if delta < 0 {
		delta += 180
	}
	if delta >= 180 {
		delta = 0
	}
	T := 0.5 * s.S0 * (1 + s1*math.Cos(2*alpha) + s2*math.Sin(2*alpha))
	if T < 0 {
		T = 0
	}
	return Alignment{
		AlphaDeg:    alpha * rad2deg,
		PsiDeg:      psi * rad2deg,
		DeltaDeg:    delta,
		OrthoErrDeg: abs(delta - 90),
		Leakage:     T,
		Contrast:    Contrast(T),
	}
}

// AnalyzerAlignment traces the stack at (theta, phi) and reports, per
// wavelength, how far the state at stage is from being crossed with the
// analyzer. An empty stage selects the last one.
func (e Evaluator) AnalyzerAlignment(thetaDeg, phiDeg Real, stack Stack, policy BasisPolicy, stage string) ([]Alignment, error) {
	if stage == "" {
		stage = StageInput
		if len(stack) > 0 {
			stage = StageElement(len(stack) - 1)
		}
	}
	pts, err := e.TraceStokes(thetaDeg, phiDeg, stack, policy)
	if err != nil {
		return nil, err
	}
	k := KHat(thetaDeg, phiDeg)
	u, v, err := TransverseBasis(k, policy, &e.Polarizers.In, &e.Polarizers.Out)
	if err != nil {
		return nil, err
	}
	o2 := PassAxis(k, e.Polarizers.Out)

	var out []Alignment
	for _, p := range pts {
		if p.Stage != stage {
			continue
		}
		a := AlignmentFromStokes(p.Stokes, o2, u, v)
		a.Stage, a.Key, a.NM = p.Stage, p.Key, p.NM
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil, configErr("stokes stage", stage, fmt.Sprintf("not in trace of %d elements", len(stack)))
	}
	DebugLog("Alignment at %s (%g, %g): %d wavelengths", stage, thetaDeg, phiDeg, len(out))
	return out, nil
}
