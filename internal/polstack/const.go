package polstack

import "math"

const (
	// Wavelength keys for the primary samples.
	KeyB = "B"
	KeyG = "G"
	KeyR = "R"
	// Key used for white (weighted) results in reports.
	KeyW = "W"

	NMB = 450.0
	NMG = 546.0
	NMR = 610.0

	// Grid defaults (degrees).
	ThetaMaxDeg = 60.0
	DThetaDeg   = 5.0
	DPhiDeg     = 5.0
	MonThetaDeg = 30.0

	// Upper bound on samples along one grid axis.
	maxAxisSamples = 1000000

	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
	nm2m    = 1e-9
	um2m    = 1e-6

	// Floors used instead of dividing by zero.
	epsLeak   = 1e-12 // leakage floor for contrast, CR <= 1e12
	epsS0     = 1e-30 // S0 and weight-sum floor
	epsNorm   = 1e-15 // vector normalization floor
	epsAxis   = 1e-12 // axis projection below this is treated as parallel to k
	labSwitch = 0.95  // |x·k| above this switches the lab reference to y
)
