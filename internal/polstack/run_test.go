package polstack

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWritesReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Run(writeConfig(t, "ips.json", ipsJSON), &buf))

	var rep Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rep))
	assert.Equal(t, "matched", rep.Dispersion)
	assert.Len(t, rep.Wavelengths, 3)
	assert.Len(t, rep.Stack, 3)
	for _, k := range []string{KeyB, KeyG, KeyR, KeyW} {
		assert.Contains(t, rep.CR00, k)
	}
	require.Len(t, rep.Directions, 1)
	assert.Len(t, rep.Directions[0].Leakage, 4)
	require.NotNil(t, rep.Monitor)
	assert.Len(t, rep.Monitor.CR, len(MonPhisDeg))
	require.NotNil(t, rep.Grid)
	assert.Len(t, rep.Grid.Thetas, 3)
	assert.Len(t, rep.Grid.Phis, 5)
	assert.Len(t, rep.StokesWhite, 4)
	assert.Empty(t, rep.Stokes)
}

func TestEvaluateMatchesEvaluator(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "ips.yaml", ipsYAML))
	require.NoError(t, err)
	cfg.Directions = []DirectionCfg{{ThetaDeg: 20, PhiDeg: 135}}
	cfg.Stokes = &StokesCfg{ThetaDeg: 20, PhiDeg: 135}

	rep, err := Evaluate(cfg)
	require.NoError(t, err)
	stack, ev, _, err := cfg.Build()
	require.NoError(t, err)

	d := rep.Directions[0]
	for _, s := range ev.wavelengths() {
		T := ev.Leakage(20, 135, stack, s.NM)
		assert.Equal(t, T, d.Leakage[s.Key])
		assert.Equal(t, Contrast(T), d.Contrast[s.Key])
	}
	assert.InDelta(t, ev.LeakageWhite(20, 135, stack), d.Leakage[KeyW], 1e-15)
	assert.Len(t, rep.Stokes, 3*(len(stack)+1))
	assert.Len(t, rep.Grid.Phis, 13)
}

func TestRunErrors(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, Run(filepath.Join(t.TempDir(), "none.json"), &buf))

	bad := writeConfig(t, "bad.json", `{"stack": [{"type": "X"}]}`)
	require.ErrorIs(t, Run(bad, &buf), ErrConfiguration)
	assert.Zero(t, buf.Len())
}

func TestEvaluateAlignment(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "ips.yaml", ipsYAML))
	require.NoError(t, err)
	cfg.Grid = nil
	cfg.Stokes = &StokesCfg{ThetaDeg: 20, PhiDeg: 135, Align: true}

	rep, err := Evaluate(cfg)
	require.NoError(t, err)
	require.Len(t, rep.Alignment, 3)
	stack, ev, _, err := cfg.Build()
	require.NoError(t, err)
	for _, a := range rep.Alignment {
		assert.Equal(t, StageElement(len(stack)-1), a.Stage)
		assert.InDelta(t, ev.Leakage(20, 135, stack, a.NM), a.Leakage, 1e-12)
	}

	cfg.Stokes.AlignStage = "element 9"
	_, err = Evaluate(cfg)
	require.ErrorIs(t, err, ErrConfiguration)
}
