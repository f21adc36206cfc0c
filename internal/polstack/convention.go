package polstack

import "strings"

// PhaseConvention fixes how a retarder splits Γ between its eigenmodes.
// The extraordinary (axis-projected) component gets exp(+iσΓ/2) and the
// ordinary one exp(−iσΓ/2).
type PhaseConvention uint8

const (
	ExtraordinaryLeads PhaseConvention = iota // σ = +1
	ExtraordinaryLags                         // σ = −1
)

func (p PhaseConvention) sigma() Real {
	if p == ExtraordinaryLags {
		return -1
	}
	return 1
}

// S3Convention fixes the sign of S3. S3RightHanded uses (u, v, k)
// right-handed with S3 = 2·Im(Eu·conj(Ev)); S3Flipped negates it.
type S3Convention uint8

const (
	S3RightHanded S3Convention = iota
	S3Flipped
)

func (c S3Convention) sign() Real {
	if c == S3Flipped {
		return -1
	}
	return 1
}

// CPlateModel selects the normal-axis retardance formula.
type CPlateModel uint8

const (
	// CPlateIndexDifference: 2πd/λ·[ne·√(1−s²/ne²) − no·√(1−s²/no²)],
	// equal to 2πd(ne−no)/λ at normal incidence. The operator is the
	// identity at θ = 0 but acts with nearly the full Γ0 for any θ > 0, so
	// leakage is discontinuous at the normal. Use CPlateWaveVector for
	// grids that must be continuous there.
	CPlateIndexDifference CPlateModel = iota
	// CPlateWaveVector: TM/TE wave-vector difference
	// 2πd·no/λ·[√(1−s²/ne²) − √(1−s²/no²)], zero at normal incidence.
	CPlateWaveVector
)

// Convention groups the sign choices that no physical result depends on
// except S3 and the sign of the phase of complex amplitudes.
type Convention struct {
	Phase PhaseConvention
	S3    S3Convention
}

func ParsePhaseConvention(token string) (PhaseConvention, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "", "lead", "e-lead":
		return ExtraordinaryLeads, nil
	case "lag", "e-lag":
		return ExtraordinaryLags, nil
	}
	return 0, configErr("phase convention", token, "must be lead or lag")
}

func ParseS3Convention(token string) (S3Convention, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "", "right", "right-handed":
		return S3RightHanded, nil
	case "flipped", "left", "left-handed":
		return S3Flipped, nil
	}
	return 0, configErr("s3 convention", token, "must be right or flipped")
}

func ParseCPlateModel(token string) (CPlateModel, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "", "index", "index-difference":
		return CPlateIndexDifference, nil
	case "wavevector", "wave-vector", "exact":
		return CPlateWaveVector, nil
	}
	return 0, configErr("c-plate model", token, "must be index or wavevector")
}
