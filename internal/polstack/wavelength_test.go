package polstack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleAtInterpolation(t *testing.T) {
	ws := DefaultWavelengths()
	ps := normalDispersion()
	cases := []struct {
		name string
		nm   Real
		want Real
	}{
		{"at B", NMB, 1.06},
		{"at G", NMG, 1.00},
		{"at R", NMR, 0.97},
		{"between B and G", 498, 1.03},
		{"between G and R", 578, 0.985},
		{"below B clamps", 400, 1.06},
		{"above R clamps", 700, 0.97},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, scaleAt(ps, tc.nm, ws), 1e-12)
		})
	}
}

func TestScaleAtDegenerate(t *testing.T) {
	assert.Equal(t, 1.0, scaleAt(nil, 500, DefaultWavelengths()))
	assert.Equal(t, 1.0, scaleAt(normalDispersion(), 500, nil))
	single := WavelengthSet{{Key: KeyB, NM: NMB, Weight: 1}}
	assert.Equal(t, 1.06, scaleAt(normalDispersion(), 700, single))
	// missing keys default to 1 and input order does not matter
	shuffled := WavelengthSet{DefaultWavelengths()[2], DefaultWavelengths()[0], DefaultWavelengths()[1]}
	assert.InDelta(t, 1.0, scaleAt(PrimaryScales{"b": 1.2}, NMR, shuffled), 1e-12)
	assert.InDelta(t, 1.2, scaleAt(PrimaryScales{"b": 1.2}, NMB, shuffled), 1e-12)
}

func TestIndicesAt(t *testing.T) {
	ws := DefaultWavelengths()
	lc := NewInPlane(ElementLC, 0, 3e-6, 1.5, 0.1)
	a := NewAPlate(140, 0, 1.5, 0.001)

	no, ne := indicesAt(lc, NMB, ws, MismatchedDispersion())
	assert.Equal(t, 1.5, no)
	assert.InDelta(t, 1.5+0.1*1.06, ne, 1e-12)

	_, ne = indicesAt(a, NMB, ws, MismatchedDispersion())
	assert.InDelta(t, 1.501, ne, 1e-12)
	_, ne = indicesAt(a, NMB, ws, MatchedDispersion())
	assert.InDelta(t, 1.5+0.001*1.06, ne, 1e-12)
	_, ne = indicesAt(lc, NMR, ws, FlatDispersion())
	assert.InDelta(t, 1.6, ne, 1e-12)

	// per-element scales override the table
	a.Scale = PrimaryScales{KeyB: 2, KeyG: 1, KeyR: 1}
	_, ne = indicesAt(a, NMB, ws, MatchedDispersion())
	assert.InDelta(t, 1.502, ne, 1e-12)
}

func TestDispersionByName(t *testing.T) {
	for _, name := range []string{"", "flat", "Matched", " mismatched "} {
		tab, err := DispersionByName(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, tab.Name)
	}
	_, err := DispersionByName("cauchy")
	require.ErrorIs(t, err, ErrConfiguration)
	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "dispersion mode", ce.Field)
	assert.Equal(t, "cauchy", ce.Value)
}

func TestWavelengthSet(t *testing.T) {
	ws := DefaultWavelengths()
	require.NoError(t, ws.Validate())
	assert.Equal(t, []string{KeyB, KeyG, KeyR}, ws.Keys())

	s, err := ws.Lookup("g")
	require.NoError(t, err)
	assert.Equal(t, NMG, s.NM)
	assert.InDelta(t, 546e-9, s.Meters(), 1e-20)

	_, err = ws.Lookup("W")
	require.ErrorIs(t, err, ErrConfiguration)

	w, err := ws.WithWeights(map[string]Real{"r": 3})
	require.NoError(t, err)
	assert.Equal(t, 3.0, w[2].Weight)
	assert.Equal(t, 1.0, ws[2].Weight, "receiver untouched")

	_, err = ws.WithWeights(map[string]Real{"X": 1})
	require.ErrorIs(t, err, ErrConfiguration)
	_, err = ws.WithWeights(map[string]Real{KeyB: -1})
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestWavelengthSetValidate(t *testing.T) {
	cases := []struct {
		name string
		ws   WavelengthSet
	}{
		{"empty", WavelengthSet{}},
		{"duplicate", WavelengthSet{{Key: "B", NM: 450}, {Key: "b", NM: 460}}},
		{"blank key", WavelengthSet{{NM: 450}}},
		{"zero nm", WavelengthSet{{Key: "B"}}},
		{"negative weight", WavelengthSet{{Key: "B", NM: 450, Weight: -2}}},
		{"reserved white key", WavelengthSet{{Key: "G", NM: 546, Weight: 1}, {Key: "w", NM: 600, Weight: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.ws.Validate(), ErrConfiguration)
		})
	}
}
