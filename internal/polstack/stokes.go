package polstack

import (
	"encoding/json"
	"fmt"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// BasisPolicy chooses the reference axis u of the transverse Stokes basis.
type BasisPolicy uint8

const (
	BasisLab    BasisPolicy = iota // projection of lab x (y near grazing x)
	BasisPolIn                     // input polarizer pass axis
	BasisPolOut                    // analyzer pass axis
)

var basisTokens = [...]string{BasisLab: "lab", BasisPolIn: "pol_in", BasisPolOut: "pol_out"}

func (b BasisPolicy) String() string {
	if int(b) < len(basisTokens) {
		return basisTokens[b]
	}
	return fmt.Sprintf("BasisPolicy(%d)", uint8(b))
}

func ParseBasisPolicy(token string) (BasisPolicy, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return BasisLab, nil
	}
	for i, s := range basisTokens {
		if t == s {
			return BasisPolicy(i), nil
		}
	}
	return 0, configErr("stokes basis", token, "must be one of lab, pol_in, pol_out")
}

func (b BasisPolicy) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *BasisPolicy) UnmarshalText(text []byte) error {
	v, err := ParseBasisPolicy(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// TransverseBasis returns an orthonormal (u, v) ⟂ k with v = k × u, so
// (u, v, k) is right-handed. c1 and c2 are the polarizer absorption axes;
// the one required by the policy must be non-nil.
func TransverseBasis(k r3.Vec, policy BasisPolicy, c1, c2 *r3.Vec) (u, v r3.Vec, err error) {
	k = unit(k)
	switch policy {
	case BasisLab:
		ref := xHat
		if abs(r3.Dot(ref, k)) > labSwitch {
			ref = yHat
		}
		u = transverse(ref, k)
	case BasisPolIn:
		if c1 == nil {
			return u, v, configErr("stokes basis", policy.String(), "requires the input polarizer axis")
		}
		u = PassAxis(k, *c1)
	case BasisPolOut:
		if c2 == nil {
			return u, v, configErr("stokes basis", policy.String(), "requires the output polarizer axis")
		}
		u = PassAxis(k, *c2)
	default:
		return u, v, configErr("stokes basis", policy.String(), "unknown policy")
	}
	u = unit(u)
	v = unit(r3.Cross(k, u))
	return u, v, nil
}

func abs(x Real) Real {
	if x < 0 {
		return -x
	}
	return x
}

// Stokes holds the four Stokes parameters.
type Stokes struct {
	S0, S1, S2, S3 Real
}

// Reduced returns (S1, S2, S3)/max(S0, ε).
func (s Stokes) Reduced() (s1, s2, s3 Real) {
	d := fmax(s.S0, epsS0)
	return s.S1 / d, s.S2 / d, s.S3 / d
}

// StokesFromField projects E onto the (u, v) basis after enforcing E ⟂ k.
func StokesFromField(E CVec, k, u, v r3.Vec, c S3Convention) Stokes {
	E = E.Transverse(unit(k))
	eu, ev := E.DotReal(u), E.DotReal(v)
	iu := real(eu * cmplx.Conj(eu))
	iv := real(ev * cmplx.Conj(ev))
	x := eu * cmplx.Conj(ev)
	return Stokes{S0: iu + iv, S1: iu - iv, S2: 2 * real(x), S3: 2 * imag(x) * c.sign()}
}

// StageInput labels the field right after the input polarizer.
const StageInput = "input-polarizer"

// StageElement labels the field after stack element i.
func StageElement(i int) string { return fmt.Sprintf("element %d", i) }

// StokesPoint is the Stokes state at one stage for one wavelength.
type StokesPoint struct {
	Stage string
	Key   string
	NM    Real
	Stokes
}

// Record flattens the point for tabular or JSON export.
func (p StokesPoint) Record() map[string]any {
	s1, s2, s3 := p.Reduced()
	return map[string]any{
		"stage": p.Stage, "key": p.Key, "nm": p.NM,
		"S0": p.S0, "S1": p.S1, "S2": p.S2, "S3": p.S3,
		"s1": s1, "s2": s2, "s3": s3,
	}
}

func (p StokesPoint) MarshalJSON() ([]byte, error) { return json.Marshal(p.Record()) }

// WhiteStokesPoint is the weighted Stokes state of one stage.
type WhiteStokesPoint struct {
	Stage string `json:"stage"`
	S0Sum Real   `json:"S0Sum"`
	S1    Real   `json:"s1"`
	S2    Real   `json:"s2"`
	S3    Real   `json:"s3"`
}

// TraceStokes returns the Stokes state after the input polarizer and after
// every element, for each wavelength of the set in order. Stages of one
// wavelength are computed sequentially from the previous stage's field.
func (e Evaluator) TraceStokes(thetaDeg, phiDeg Real, stack Stack, policy BasisPolicy) ([]StokesPoint, error) {
	k := KHat(thetaDeg, phiDeg)
	u, v, err := TransverseBasis(k, policy, &e.Polarizers.In, &e.Polarizers.Out)
	if err != nil {
		return nil, err
	}
	e0 := cvec(PassAxis(k, e.Polarizers.In))
	ws := e.wavelengths()
	out := make([]StokesPoint, 0, len(ws)*(len(stack)+1))
	s3c := e.Convention.S3
	for _, s := range ws {
		out = append(out, StokesPoint{Stage: StageInput, Key: s.Key, NM: s.NM, Stokes: StokesFromField(e0, k, u, v, s3c)})
		propagateEach(thetaDeg, phiDeg, e0, stack, s.NM, e.Options, func(i int, E CVec) {
			out = append(out, StokesPoint{Stage: StageElement(i), Key: s.Key, NM: s.NM, Stokes: StokesFromField(E, k, u, v, s3c)})
		})
	}
	return out, nil
}

// TraceStokesWhite groups the per-wavelength trace by stage (first-seen
// order), sums the weighted Stokes parameters and normalizes by ΣwS0.
func (e Evaluator) TraceStokesWhite(thetaDeg, phiDeg Real, stack Stack, policy BasisPolicy) ([]WhiteStokesPoint, error) {
	pts, err := e.TraceStokes(thetaDeg, phiDeg, stack, policy)
	if err != nil {
		return nil, err
	}
	return whiteStokes(pts, e.wavelengths()), nil
}

func whiteStokes(pts []StokesPoint, ws WavelengthSet) []WhiteStokesPoint {
	weight := func(key string) Real {
		if s, err := ws.Lookup(key); err == nil {
			return s.Weight
		}
		return 1
	}
	var order []string
	sums := map[string]*Stokes{}
	for _, p := range pts {
		acc, ok := sums[p.Stage]
		if !ok {
			acc = &Stokes{}
			sums[p.Stage] = acc
			order = append(order, p.Stage)
		}
		w := weight(p.Key)
		acc.S0 += w * p.S0
		acc.S1 += w * p.S1
		acc.S2 += w * p.S2
		acc.S3 += w * p.S3
	}
	out := make([]WhiteStokesPoint, len(order))
	for i, st := range order {
		acc := sums[st]
		s1, s2, s3 := acc.Reduced()
		out[i] = WhiteStokesPoint{Stage: st, S0Sum: acc.S0, S1: s1, S2: s2, S3: s3}
	}
	return out
}
