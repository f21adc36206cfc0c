package polstack

import (
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// Evaluator computes leakage and contrast for stacks between a fixed pair
// of polarizers. It holds no mutable state; methods can run concurrently.
type Evaluator struct {
	Polarizers PolarizerPair
	Options
}

// NewEvaluator is a convenience for Evaluator{Polarizers: PolAxes(in, out), Options: opts}.
func NewEvaluator(polInDeg, polOutDeg Real, opts Options) Evaluator {
	return Evaluator{Polarizers: PolAxes(polInDeg, polOutDeg), Options: opts}
}

// Contrast converts leakage into a contrast ratio, 1/max(T, ε).
func Contrast(T Real) Real { return 1 / fmax(T, epsLeak) }

// Leakage is the transmittance |⟨o2, E⟩|² through the analyzer after the
// stack at wavelength nm.
func (e Evaluator) Leakage(thetaDeg, phiDeg Real, stack Stack, nm Real) Real {
	k := KHat(thetaDeg, phiDeg)
	E := Propagate(thetaDeg, phiDeg, e.Polarizers.In, stack, nm, e.Options)
	o2 := cvec(PassAxis(k, e.Polarizers.Out))
	a := o2.Inner(E)
	return real(a * cmplx.Conj(a))
}

// LeakagePrimary evaluates Leakage at the wavelength registered for key.
func (e Evaluator) LeakagePrimary(thetaDeg, phiDeg Real, stack Stack, key string) (Real, error) {
	s, err := e.wavelengths().Lookup(key)
	if err != nil {
		return 0, err
	}
	return e.Leakage(thetaDeg, phiDeg, stack, s.NM), nil
}

// weightedMean returns Σw·f(s) / max(Σw, ε) over the set.
func weightedMean(ws WavelengthSet, f func(Sample) Real) Real {
	w := make([]Real, len(ws))
	v := make([]Real, len(ws))
	for i, s := range ws {
		w[i] = s.Weight
		v[i] = f(s)
	}
	return floats.Dot(w, v) / fmax(floats.Sum(w), epsS0)
}

// LeakageWhite averages leakage (not contrast) over the wavelength set.
func (e Evaluator) LeakageWhite(thetaDeg, phiDeg Real, stack Stack) Real {
	return weightedMean(e.wavelengths(), func(s Sample) Real {
		return e.Leakage(thetaDeg, phiDeg, stack, s.NM)
	})
}

// ContrastAt is Contrast(Leakage(...)) at wavelength nm.
func (e Evaluator) ContrastAt(thetaDeg, phiDeg Real, stack Stack, nm Real) Real {
	return Contrast(e.Leakage(thetaDeg, phiDeg, stack, nm))
}

// ContrastWhite is Contrast(LeakageWhite(...)).
func (e Evaluator) ContrastWhite(thetaDeg, phiDeg Real, stack Stack) Real {
	return Contrast(e.LeakageWhite(thetaDeg, phiDeg, stack))
}

// CR00 returns the normal-incidence contrast per wavelength key plus KeyW
// for the white average.
func (e Evaluator) CR00(stack Stack) map[string]Real {
	ws := e.wavelengths()
	out := make(map[string]Real, len(ws)+1)
	for _, s := range ws {
		out[s.Key] = e.ContrastAt(0, 0, stack, s.NM)
	}
	out[KeyW] = e.ContrastWhite(0, 0, stack)
	return out
}

// Monitor is the white contrast at one polar angle and several azimuths.
type Monitor struct {
	ThetaDeg Real   `json:"thetaDeg"`
	PhisDeg  []Real `json:"phisDeg"`
	CR       []Real `json:"cr"`
	Mean     Real   `json:"mean"`
}

// MonitorContrast evaluates white contrast at thetaDeg for every phi and
// the arithmetic mean of those contrasts.
func (e Evaluator) MonitorContrast(thetaDeg Real, phisDeg []Real, stack Stack) Monitor {
	m := Monitor{ThetaDeg: thetaDeg, PhisDeg: phisDeg, CR: make([]Real, len(phisDeg))}
	for i, ph := range phisDeg {
		m.CR[i] = e.ContrastWhite(thetaDeg, ph, stack)
	}
	if len(m.CR) > 0 {
		m.Mean = floats.Sum(m.CR) / Real(len(m.CR))
	}
	return m
}
