package polstack

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/interp"
)

// Sample is one wavelength used for white (polychromatic) evaluation.
type Sample struct {
	Key    string `json:"key" yaml:"key"`
	NM     Real   `json:"nm" yaml:"nm"`
	Weight Real   `json:"weight" yaml:"weight"`
}

// Meters returns the wavelength in meters.
func (s Sample) Meters() Real { return s.NM * nm2m }

// WavelengthSet is the ordered set of primaries and their averaging weights.
type WavelengthSet []Sample

// DefaultWavelengths returns B/G/R at 450/546/610 nm weighted 1/2/1.
func DefaultWavelengths() WavelengthSet {
	return WavelengthSet{
		{Key: KeyB, NM: NMB, Weight: 1},
		{Key: KeyG, NM: NMG, Weight: 2},
		{Key: KeyR, NM: NMR, Weight: 1},
	}
}

// Lookup returns the sample for key.
func (ws WavelengthSet) Lookup(key string) (Sample, error) {
	for _, s := range ws {
		if strings.EqualFold(s.Key, key) {
			return s, nil
		}
	}
	return Sample{}, configErr("wavelength key", key, fmt.Sprintf("not in set %v", ws.Keys()))
}

// Keys returns the sample keys in order.
func (ws WavelengthSet) Keys() []string {
	keys := make([]string, len(ws))
	for i, s := range ws {
		keys[i] = s.Key
	}
	return keys
}

// WithWeights returns a copy with weights overridden by key.
func (ws WavelengthSet) WithWeights(w map[string]Real) (WavelengthSet, error) {
	out := make(WavelengthSet, len(ws))
	copy(out, ws)
	for k, v := range w {
		found := false
		for i := range out {
			if strings.EqualFold(out[i].Key, k) {
				out[i].Weight = v
				found = true
			}
		}
		if !found {
			return nil, configErr("weight key", k, fmt.Sprintf("not in set %v", ws.Keys()))
		}
		if !isFinite(v) || v < 0 {
			return nil, configErr("weight", k, "must be finite and >= 0")
		}
	}
	return out, nil
}

// Validate checks the set is usable for averaging and interpolation.
func (ws WavelengthSet) Validate() error {
	if len(ws) == 0 {
		return configErr("wavelengths", "", "set is empty")
	}
	seen := map[string]bool{}
	for _, s := range ws {
		k := strings.ToUpper(s.Key)
		if k == "" || seen[k] {
			return configErr("wavelength key", s.Key, "must be non-empty and unique")
		}
		if k == KeyW {
			return configErr("wavelength key", s.Key, "is reserved for white results")
		}
		seen[k] = true
		if !isFinite(s.NM) || s.NM <= 0 {
			return configErr("wavelength", s.Key, "nm must be finite and > 0")
		}
		if !isFinite(s.Weight) || s.Weight < 0 {
			return configErr("weight", s.Key, "must be finite and >= 0")
		}
	}
	return nil
}

// PrimaryScales maps a primary key to the Δn scale factor at that primary.
type PrimaryScales map[string]Real

func (ps PrimaryScales) at(key string) Real {
	for k, v := range ps {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return 1
}

// DispersionTable holds per element type Δn scale factors at the primaries.
type DispersionTable struct {
	Name   string
	Scales map[ElementType]PrimaryScales
}

// FlatDispersion keeps Δn constant at every wavelength.
func FlatDispersion() DispersionTable { return DispersionTable{Name: "flat"} }

func normalDispersion() PrimaryScales {
	return PrimaryScales{KeyB: 1.06, KeyG: 1.00, KeyR: 0.97}
}

// MatchedDispersion gives the films the same normal dispersion as the LC.
func MatchedDispersion() DispersionTable {
	return DispersionTable{Name: "matched", Scales: map[ElementType]PrimaryScales{
		ElementLC: normalDispersion(),
		ElementA:  normalDispersion(),
		ElementC:  normalDispersion(),
	}}
}

// MismatchedDispersion keeps the LC dispersive while the films stay flat.
func MismatchedDispersion() DispersionTable {
	return DispersionTable{Name: "mismatched", Scales: map[ElementType]PrimaryScales{
		ElementLC: normalDispersion(),
		ElementA:  {KeyB: 1, KeyG: 1, KeyR: 1},
		ElementC:  {KeyB: 1, KeyG: 1, KeyR: 1},
	}}
}

// DispersionByName returns a preset table.
func DispersionByName(name string) (DispersionTable, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "flat":
		return FlatDispersion(), nil
	case "matched":
		return MatchedDispersion(), nil
	case "mismatched":
		return MismatchedDispersion(), nil
	}
	return DispersionTable{}, configErr("dispersion mode", name, "must be flat, matched or mismatched")
}

// scaleAt interpolates the Δn scale of ps at nm over the primaries of ws,
// piecewise-linearly and flat beyond the first and last primary.
func scaleAt(ps PrimaryScales, nm Real, ws WavelengthSet) Real {
	if len(ps) == 0 || len(ws) == 0 {
		return 1
	}
	prim := make(WavelengthSet, len(ws))
	copy(prim, ws)
	sort.SliceStable(prim, func(i, j int) bool { return prim[i].NM < prim[j].NM })
	xs := make([]Real, 0, len(prim))
	ys := make([]Real, 0, len(prim))
	for _, s := range prim {
		if n := len(xs); n > 0 && s.NM <= xs[n-1] {
			continue
		}
		xs = append(xs, s.NM)
		ys = append(ys, ps.at(s.Key))
	}
	if len(xs) == 1 {
		return ys[0]
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		panic(err) // xs strictly increasing by construction
	}
	return pl.Predict(nm)
}

// indicesAt returns (no, ne) of el at wavelength nm: no is fixed, the
// birefringence is scaled by the element's own scales when present and by
// the table entry for its type otherwise.
func indicesAt(el Element, nm Real, ws WavelengthSet, tab DispersionTable) (no, ne Real) {
	ps := el.Scale
	if ps == nil {
		ps = tab.Scales[el.Type]
	}
	return el.No, el.No + el.Dn()*scaleAt(ps, nm, ws)
}
