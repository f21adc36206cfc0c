package polstack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxis(t *testing.T) {
	assert.Equal(t, []Real{0}, axis(0, 5))
	assert.Equal(t, []Real{0, 5, 10}, axis(10, 5))
	assert.Len(t, axis(60, 5), 13)
	assert.Len(t, axis(360, 5), 73)
	a := axis(10, 3)
	assert.Len(t, a, 4)
	assert.InDelta(t, 9, a[3], 1e-12)
	// tolerance keeps the inclusive end point under rounding
	assert.Len(t, axis(0.3, 0.1), 4)
}

func TestGridSpecValidate(t *testing.T) {
	require.NoError(t, DefaultGrid().Validate())
	bad := []GridSpec{
		{ThetaMaxDeg: -1, DThetaDeg: 5, DPhiDeg: 5},
		{ThetaMaxDeg: 60, DThetaDeg: 0, DPhiDeg: 5},
		{ThetaMaxDeg: 60, DThetaDeg: 5, DPhiDeg: -5},
		{ThetaMaxDeg: 60, DThetaDeg: 5, DPhiDeg: 5, Workers: -1},
		{ThetaMaxDeg: 60, DThetaDeg: 1e-300, DPhiDeg: 5},
		{ThetaMaxDeg: 60, DThetaDeg: 5, DPhiDeg: 1e-9},
		{ThetaMaxDeg: 60, DThetaDeg: 6e-5, DPhiDeg: 5},
	}
	for _, g := range bad {
		assert.ErrorIs(t, g.Validate(), ErrConfiguration, "%+v", g)
	}
	ev := NewEvaluator(0, 0, Options{})
	_, err := ev.ContrastGridWhite(nil, bad[1])
	require.ErrorIs(t, err, ErrConfiguration)
	// a vanishing step is rejected instead of sizing the grid from it
	_, err = ev.ContrastGridWhite(nil, bad[4])
	require.ErrorIs(t, err, ErrConfiguration)
	_, err = ev.ContrastGrid(nil, bad[5], NMG)
	require.ErrorIs(t, err, ErrConfiguration)
	require.NoError(t, GridSpec{ThetaMaxDeg: 60, DThetaDeg: 1e-4, DPhiDeg: 1e-3}.Validate())
}

func TestContrastGrid(t *testing.T) {
	stack := Stack{NewInPlane(ElementLC, 0, 3.4e-6, 1.5, 0.1), NewAPlate(140, 90, 1.5, 0.001)}
	ev := NewEvaluator(0, 0, Options{Dispersion: MatchedDispersion()})
	spec := GridSpec{ThetaMaxDeg: 40, DThetaDeg: 10, DPhiDeg: 45, Workers: 1}

	g, err := ev.ContrastGrid(stack, spec, NMG)
	require.NoError(t, err)
	require.Len(t, g.Thetas, 5)
	require.Len(t, g.Phis, 9)
	require.Len(t, g.CR, 5)
	for i, row := range g.CR {
		require.Len(t, row, 9)
		for j, cr := range row {
			require.Equal(t, ev.ContrastAt(g.Thetas[i], g.Phis[j], stack, NMG), cr)
			require.GreaterOrEqual(t, cr, 1-1e-9)
		}
	}
}

func TestContrastGridWorkerCountInvariant(t *testing.T) {
	c, _ := NewCPlate(-90, 1.5, 0.001)
	stack := Stack{NewInPlane(ElementLC, 0, 3.4e-6, 1.5, 0.1), c}
	ev := NewEvaluator(0, 0, Options{Dispersion: MismatchedDispersion()})
	spec := GridSpec{ThetaMaxDeg: 60, DThetaDeg: 15, DPhiDeg: 30}

	var grids []Grid
	for _, w := range []int{1, 3, 16, 0} {
		spec.Workers = w
		g, err := ev.ContrastGridWhite(stack, spec)
		require.NoError(t, err)
		grids = append(grids, g)
	}
	for _, g := range grids[1:] {
		assert.Equal(t, grids[0], g)
	}
	// phi 0 and 360 are the same direction
	for _, row := range grids[0].CR {
		assert.InDelta(t, row[0], row[len(row)-1], 1e-6*row[0])
	}
}
