package polstack

import (
	"encoding/json"
	"io"
	"time"
)

// DirectionReport is leakage and contrast at one viewing direction.
type DirectionReport struct {
	ThetaDeg Real            `json:"thetaDeg"`
	PhiDeg   Real            `json:"phiDeg"`
	Leakage  map[string]Real `json:"leakage"`
	Contrast map[string]Real `json:"contrast"`
}

// Report is everything Run evaluates for one config.
type Report struct {
	Wavelengths WavelengthSet      `json:"wavelengths"`
	Dispersion  string             `json:"dispersion"`
	Stack       Stack              `json:"stack"`
	CR00        map[string]Real    `json:"cr00"`
	Directions  []DirectionReport  `json:"directions,omitempty"`
	Monitor     *Monitor           `json:"monitor,omitempty"`
	Grid        *Grid              `json:"grid,omitempty"`
	Stokes      []StokesPoint      `json:"stokes,omitempty"`
	StokesWhite []WhiteStokesPoint `json:"stokesWhite,omitempty"`
	Alignment   []Alignment        `json:"alignment,omitempty"`
}

// Direction evaluates leakage and contrast per wavelength key plus KeyW.
func (e Evaluator) Direction(thetaDeg, phiDeg Real, stack Stack) DirectionReport {
	ws := e.wavelengths()
	d := DirectionReport{
		ThetaDeg: thetaDeg,
		PhiDeg:   phiDeg,
		Leakage:  make(map[string]Real, len(ws)+1),
		Contrast: make(map[string]Real, len(ws)+1),
	}
	for _, s := range ws {
		T := e.Leakage(thetaDeg, phiDeg, stack, s.NM)
		d.Leakage[s.Key] = T
		d.Contrast[s.Key] = Contrast(T)
	}
	T := weightedMean(ws, func(s Sample) Real { return d.Leakage[s.Key] })
	d.Leakage[KeyW] = T
	d.Contrast[KeyW] = Contrast(T)
	return d
}

// Evaluate builds the report for an already loaded config.
func Evaluate(cfg *Config) (*Report, error) {
	stack, ev, basis, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	rep := &Report{
		Wavelengths: ev.wavelengths(),
		Dispersion:  ev.Dispersion.Name,
		Stack:       stack,
		CR00:        ev.CR00(stack),
	}
	for _, d := range cfg.Directions {
		rep.Directions = append(rep.Directions, ev.Direction(d.ThetaDeg, d.PhiDeg, stack))
	}
	if m := cfg.Monitor; m != nil {
		mon := ev.MonitorContrast(m.ThetaDeg, m.PhisDeg, stack)
		rep.Monitor = &mon
	}
	if g := cfg.Grid; g != nil {
		var grid Grid
		if g.NM > 0 {
			grid, err = ev.ContrastGrid(stack, g.GridSpec, g.NM)
		} else {
			grid, err = ev.ContrastGridWhite(stack, g.GridSpec)
		}
		if err != nil {
			return nil, err
		}
		rep.Grid = &grid
	}
	if s := cfg.Stokes; s != nil {
		if s.White {
			rep.StokesWhite, err = ev.TraceStokesWhite(s.ThetaDeg, s.PhiDeg, stack, basis)
		} else {
			rep.Stokes, err = ev.TraceStokes(s.ThetaDeg, s.PhiDeg, stack, basis)
		}
		if err != nil {
			return nil, err
		}
		if s.Align {
			rep.Alignment, err = ev.AnalyzerAlignment(s.ThetaDeg, s.PhiDeg, stack, basis, s.AlignStage)
			if err != nil {
				return nil, err
			}
		}
	}
	return rep, nil
}

// Run loads cfgPath, evaluates it and writes the JSON report to w.
func Run(cfgPath string, w io.Writer) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	start := time.Now()
	rep, err := Evaluate(cfg)
	if err != nil {
		return err
	}
	DebugLog("Evaluated %s in %s", cfgPath, time.Since(start))
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
