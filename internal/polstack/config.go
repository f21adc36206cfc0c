package polstack

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// NoBase is the ordinary index used when an element omits "no".
const NoBase = 1.5

// ElementCfg describes one plate in friendly units: thickness in µm or
// retardation in nm, azimuth in degrees.
type ElementCfg struct {
	Type          string          `json:"type" yaml:"type"`
	AzimuthDeg    Real            `json:"azimuthDeg,omitempty" yaml:"azimuthDeg,omitempty"`
	ThicknessUm   Real            `json:"thicknessUm,omitempty" yaml:"thicknessUm,omitempty"`
	RetardationNm Real            `json:"retardationNm,omitempty" yaml:"retardationNm,omitempty"`
	No            Real            `json:"no,omitempty" yaml:"no,omitempty"`
	Ne            Real            `json:"ne,omitempty" yaml:"ne,omitempty"`
	Dn            Real            `json:"dn,omitempty" yaml:"dn,omitempty"`
	Dispersion    map[string]Real `json:"dispersion,omitempty" yaml:"dispersion,omitempty"`
}

type DirectionCfg struct {
	ThetaDeg Real `json:"thetaDeg" yaml:"thetaDeg"`
	PhiDeg   Real `json:"phiDeg" yaml:"phiDeg"`
}

type MonitorCfg struct {
	ThetaDeg Real   `json:"thetaDeg" yaml:"thetaDeg"`
	PhisDeg  []Real `json:"phisDeg" yaml:"phisDeg"`
}

type GridCfg struct {
	GridSpec `yaml:",inline"`
	// NM selects a monochromatic grid; 0 means white.
	NM Real `json:"nm,omitempty" yaml:"nm,omitempty"`
}

type StokesCfg struct {
	ThetaDeg Real `json:"thetaDeg" yaml:"thetaDeg"`
	PhiDeg   Real `json:"phiDeg" yaml:"phiDeg"`
	White    bool `json:"white,omitempty" yaml:"white,omitempty"`

	// Align adds the analyzer alignment at AlignStage (last stage when empty).
	Align      bool   `json:"align,omitempty" yaml:"align,omitempty"`
	AlignStage string `json:"alignStage,omitempty" yaml:"alignStage,omitempty"`
}

type Config struct {
	PolInDeg    Real            `json:"polInDeg" yaml:"polInDeg"`
	PolOutDeg   Real            `json:"polOutDeg" yaml:"polOutDeg"`
	Stack       []ElementCfg    `json:"stack" yaml:"stack"`
	Wavelengths []Sample        `json:"wavelengths,omitempty" yaml:"wavelengths,omitempty"`
	Weights     map[string]Real `json:"weights,omitempty" yaml:"weights,omitempty"`
	Dispersion  string          `json:"dispersion,omitempty" yaml:"dispersion,omitempty"`
	Phase       string          `json:"phase,omitempty" yaml:"phase,omitempty"`
	S3          string          `json:"s3,omitempty" yaml:"s3,omitempty"`
	CPlate      string          `json:"cPlate,omitempty" yaml:"cPlate,omitempty"`
	Basis       string          `json:"basis,omitempty" yaml:"basis,omitempty"`
	Directions  []DirectionCfg  `json:"directions,omitempty" yaml:"directions,omitempty"`
	Monitor     *MonitorCfg     `json:"monitor,omitempty" yaml:"monitor,omitempty"`
	Grid        *GridCfg        `json:"grid,omitempty" yaml:"grid,omitempty"`
	Stokes      *StokesCfg      `json:"stokes,omitempty" yaml:"stokes,omitempty"`
}

// Build converts the element into engine units (meters, unit axes).
// ok is false for a C-plate specified with zero retardation.
func (ec ElementCfg) Build() (el Element, ok bool, err error) {
	t, err := ParseElementType(ec.Type)
	if err != nil {
		return Element{}, false, err
	}
	no := ec.No
	if no == 0 {
		no = NoBase
	}
	dn := ec.Dn
	if ec.Ne != 0 {
		dn = ec.Ne - no
	}
	if ec.ThicknessUm < 0 {
		return Element{}, false, configErr("thicknessUm", fmt.Sprint(ec.ThicknessUm), "must be >= 0")
	}
	if ec.ThicknessUm == 0 && ec.RetardationNm != 0 && dn == 0 {
		return Element{}, false, configErr("dn", ec.Type, "retardationNm needs a non-zero dn or ne")
	}

	switch {
	case t == ElementC && ec.ThicknessUm == 0:
		el, ok = NewCPlate(ec.RetardationNm, no, dn)
		if !ok {
			DebugLog("C-plate with zero retardation skipped")
			return Element{}, false, nil
		}
	case t == ElementC:
		el = Element{Type: ElementC, Axis: zHat, Thickness: ec.ThicknessUm * um2m, No: no, Ne: no + dn}
	case ec.ThicknessUm == 0 && t == ElementA:
		el = NewAPlate(ec.RetardationNm, ec.AzimuthDeg, no, dn)
	case ec.ThicknessUm == 0:
		d := 0.0
		if ec.RetardationNm != 0 {
			d = math.Abs(ec.RetardationNm*nm2m) / math.Abs(dn)
		}
		el = NewInPlane(t, ec.AzimuthDeg, d, no, sign(ec.RetardationNm)*math.Abs(dn))
	default:
		el = NewInPlane(t, ec.AzimuthDeg, ec.ThicknessUm*um2m, no, dn)
	}
	if len(ec.Dispersion) > 0 {
		el.Scale = PrimaryScales{}
		for k, v := range ec.Dispersion {
			el.Scale[strings.ToUpper(k)] = v
		}
	}
	return el, true, nil
}

// Build validates the config and returns the stack, the evaluator and the
// Stokes basis policy.
func (c *Config) Build() (Stack, Evaluator, BasisPolicy, error) {
	var ev Evaluator
	ws := DefaultWavelengths()
	if len(c.Wavelengths) > 0 {
		ws = make(WavelengthSet, len(c.Wavelengths))
		copy(ws, c.Wavelengths)
	}
	ws, err := ws.WithWeights(c.Weights)
	if err != nil {
		return nil, ev, 0, err
	}
	if err := ws.Validate(); err != nil {
		return nil, ev, 0, err
	}
	disp, err := DispersionByName(c.Dispersion)
	if err != nil {
		return nil, ev, 0, err
	}
	phase, err := ParsePhaseConvention(c.Phase)
	if err != nil {
		return nil, ev, 0, err
	}
	s3, err := ParseS3Convention(c.S3)
	if err != nil {
		return nil, ev, 0, err
	}
	cp, err := ParseCPlateModel(c.CPlate)
	if err != nil {
		return nil, ev, 0, err
	}
	basis, err := ParseBasisPolicy(c.Basis)
	if err != nil {
		return nil, ev, 0, err
	}

	stack := make(Stack, 0, len(c.Stack))
	for i, ec := range c.Stack {
		el, ok, err := ec.Build()
		if err != nil {
			return nil, ev, 0, fmt.Errorf("stack[%d]: %w", i, err)
		}
		if ok {
			stack = append(stack, el)
		}
	}
	if err := stack.Validate(); err != nil {
		return nil, ev, 0, err
	}
	if c.Grid != nil {
		if err := c.Grid.Validate(); err != nil {
			return nil, ev, 0, err
		}
	}

	ev = NewEvaluator(c.PolInDeg, c.PolOutDeg, Options{
		Wavelengths: ws,
		Dispersion:  disp,
		Convention:  Convention{Phase: phase, S3: s3},
		CPlate:      cp,
	})
	return stack, ev, basis, nil
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// Defaults
	if cfg.Monitor == nil {
		cfg.Monitor = &MonitorCfg{ThetaDeg: MonThetaDeg}
	}
	if len(cfg.Monitor.PhisDeg) == 0 {
		cfg.Monitor.PhisDeg = append([]Real(nil), MonPhisDeg...)
	}
	if g := cfg.Grid; g != nil {
		def := DefaultGrid()
		if g.ThetaMaxDeg == 0 {
			g.ThetaMaxDeg = def.ThetaMaxDeg
		}
		if g.DThetaDeg == 0 {
			g.DThetaDeg = def.DThetaDeg
		}
		if g.DPhiDeg == 0 {
			g.DPhiDeg = def.DPhiDeg
		}
	}
	DebugLog("Loaded config from %s: elements=%d, pol=(%g, %g), dispersion=%q", path, len(cfg.Stack), cfg.PolInDeg, cfg.PolOutDeg, cfg.Dispersion)
	return &cfg, nil
}

// LoadConfig reads a JSON (default) or YAML (.yaml/.yml) config and applies defaults.
func LoadConfig(path string) (*Config, error) { return loadConfig(path) }
