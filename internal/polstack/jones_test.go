package polstack

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func requireJonesNear(t *testing.T, want, got Jones3, delta Real) {
	t.Helper()
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			require.LessOrEqual(t, cmplx.Abs(want.M[r][c]-got.M[r][c]), delta, "M[%d][%d]", r, c)
		}
	}
}

func TestRetarderOperatorUnitary(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 200; n++ {
		k := KHat(rng.Float64()*85, rng.Float64()*360)
		axis := unit(r3.Vec{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()})
		gamma := (rng.Float64() - 0.5) * 4 * math.Pi
		for _, pc := range []PhaseConvention{ExtraordinaryLeads, ExtraordinaryLags} {
			M := RetarderOperator(k, axis, gamma, pc)
			requireJonesNear(t, I3(), M.H().Mul(M), 1e-12)
		}
	}
}

func TestRetarderOperatorIdentity(t *testing.T) {
	k := KHat(35, 120)
	requireJonesNear(t, I3(), RetarderOperator(k, AxisFromAzimuth(10), 0, ExtraordinaryLeads), 0)
	// axis along k: isotropic for this direction
	requireJonesNear(t, I3(), RetarderOperator(k, k, 1.3, ExtraordinaryLeads), 0)
	requireJonesNear(t, I3(), RetarderOperator(zHat, zHat, 2.1, ExtraordinaryLags), 0)
}

func TestRetarderOperatorKeepsLongitudinal(t *testing.T) {
	k := KHat(50, 200)
	M := RetarderOperator(k, AxisFromAzimuth(33), 0.9, ExtraordinaryLeads)
	out := M.MulVec(cvec(k))
	for i, want := range []Real{k.X, k.Y, k.Z} {
		assert.InDelta(t, want, real(out[i]), 1e-12)
		assert.InDelta(t, 0, imag(out[i]), 1e-12)
	}
}

func TestHalfWaveRotatesPolarization(t *testing.T) {
	M := RetarderOperator(zHat, AxisFromAzimuth(45), math.Pi, ExtraordinaryLeads)
	out := M.MulVec(cvec(xHat))
	assert.InDelta(t, 0, cmplx.Abs(out[0]), 1e-12)
	assert.InDelta(t, 1, cmplx.Abs(out[1]), 1e-12)
	assert.InDelta(t, 0, cmplx.Abs(out.Inner(cvec(xHat))), 1e-12, "output orthogonal to input")
}

func TestPropagateStaysTransverse(t *testing.T) {
	lc := NewInPlane(ElementLC, 0, 3.4e-6, 1.5, 0.1)
	a := NewAPlate(137.5, 45, 1.5, 0.001)
	c, ok := NewCPlate(-90, 1.5, 0.001)
	require.True(t, ok)
	stack := Stack{lc, a, c}
	opts := Options{CPlate: CPlateWaveVector}
	for th := 0.0; th <= 80; th += 20 {
		for ph := 0.0; ph < 360; ph += 45 {
			k := KHat(th, ph)
			E := Propagate(th, ph, xHat, stack, NMG, opts)
			require.InDelta(t, 0, cmplx.Abs(E.DotReal(k)), 1e-12)
			require.InDelta(t, 1, E.Norm(), 1e-9, "unitary stack keeps the launched amplitude")
		}
	}
}

func TestPropagateEachVisitsEveryElement(t *testing.T) {
	stack := Stack{
		NewAPlate(100, 0, 1.5, 0.001),
		NewAPlate(100, 30, 1.5, 0.001),
		NewInPlane(ElementLC, 60, 2e-6, 1.5, 0.08),
	}
	var seen []int
	k := KHat(20, 10)
	last := propagateEach(20, 10, cvec(PassAxis(k, xHat)), stack, NMB, Options{}, func(i int, E CVec) {
		seen = append(seen, i)
	})
	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Equal(t, Propagate(20, 10, xHat, stack, NMB, Options{}), last)
}
