package polstack

import (
	"math"
)

// Real is the scalar type used throughout the engine.
type Real = float64

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func fmax(a, b Real) Real {
	if a > b {
		return a
	}
	return b
}

// sqrt0 is math.Sqrt with tiny negative arguments clamped to 0.
func sqrt0(x Real) Real {
	if x < 0 {
		return 0
	}
	return math.Sqrt(x)
}

func sign(x Real) Real {
	if x < 0 {
		return -1
	}
	return 1
}
