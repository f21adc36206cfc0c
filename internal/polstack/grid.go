package polstack

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
)

// GridSpec describes a regular (theta, phi) grid in degrees. Theta runs
// from 0 to ThetaMaxDeg and phi from 0 to 360, both inclusive.
type GridSpec struct {
	ThetaMaxDeg Real `json:"thetaMaxDeg" yaml:"thetaMaxDeg"`
	DThetaDeg   Real `json:"dThetaDeg" yaml:"dThetaDeg"`
	DPhiDeg     Real `json:"dPhiDeg" yaml:"dPhiDeg"`
	Workers     int  `json:"workers,omitempty" yaml:"workers,omitempty"` // 0 means runtime.NumCPU()
}

// DefaultGrid is 0..60° by 5° and 0..360° by 5°.
func DefaultGrid() GridSpec {
	return GridSpec{ThetaMaxDeg: ThetaMaxDeg, DThetaDeg: DThetaDeg, DPhiDeg: DPhiDeg}
}

func (g GridSpec) Validate() error {
	if !isFinite(g.ThetaMaxDeg) || g.ThetaMaxDeg < 0 {
		return configErr("grid thetaMaxDeg", fmt.Sprint(g.ThetaMaxDeg), "must be finite and >= 0")
	}
	if !isFinite(g.DThetaDeg) || g.DThetaDeg <= 0 {
		return configErr("grid dThetaDeg", fmt.Sprint(g.DThetaDeg), "must be finite and > 0")
	}
	if !isFinite(g.DPhiDeg) || g.DPhiDeg <= 0 {
		return configErr("grid dPhiDeg", fmt.Sprint(g.DPhiDeg), "must be finite and > 0")
	}
	if g.ThetaMaxDeg/g.DThetaDeg >= maxAxisSamples {
		return configErr("grid dThetaDeg", fmt.Sprint(g.DThetaDeg), fmt.Sprintf("more than %d theta samples", maxAxisSamples))
	}
	if 360/g.DPhiDeg >= maxAxisSamples {
		return configErr("grid dPhiDeg", fmt.Sprint(g.DPhiDeg), fmt.Sprintf("more than %d phi samples", maxAxisSamples))
	}
	if g.Workers < 0 {
		return configErr("grid workers", fmt.Sprint(g.Workers), "must be >= 0")
	}
	return nil
}

// axis returns 0, step, 2·step, ... up to and including max (within 1e-9).
func axis(max, step Real) []Real {
	n := int(math.Floor(max/step+1e-9)) + 1
	out := make([]Real, n)
	if n == 1 {
		return out
	}
	return floats.Span(out, 0, Real(n-1)*step)
}

// Grid holds contrast values CR[i][j] at (Thetas[i], Phis[j]).
type Grid struct {
	Thetas []Real   `json:"thetas"`
	Phis   []Real   `json:"phis"`
	CR     [][]Real `json:"cr"`
}

// ContrastGrid evaluates monochromatic contrast at nm over the grid.
func (e Evaluator) ContrastGrid(stack Stack, spec GridSpec, nm Real) (Grid, error) {
	return evalGrid(spec, func(th, ph Real) Real { return e.ContrastAt(th, ph, stack, nm) })
}

// ContrastGridWhite evaluates white contrast over the grid.
func (e Evaluator) ContrastGridWhite(stack Stack, spec GridSpec) (Grid, error) {
	return evalGrid(spec, func(th, ph Real) Real { return e.ContrastWhite(th, ph, stack) })
}

// evalGrid fans theta rows out to workers; each worker owns its rows.
func evalGrid(spec GridSpec, f func(thetaDeg, phiDeg Real) Real) (Grid, error) {
	if err := spec.Validate(); err != nil {
		return Grid{}, err
	}
	g := Grid{Thetas: axis(spec.ThetaMaxDeg, spec.DThetaDeg), Phis: axis(360, spec.DPhiDeg)}
	g.CR = make([][]Real, len(g.Thetas))

	workers := spec.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(g.Thetas) {
		workers = len(g.Thetas)
	}

	start := time.Now()
	rows := make(chan int, len(g.Thetas))
	for i := range g.Thetas {
		rows <- i
	}
	close(rows)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				row := make([]Real, len(g.Phis))
				for j, ph := range g.Phis {
					row[j] = f(g.Thetas[i], ph)
				}
				g.CR[i] = row
			}
		}()
	}
	wg.Wait()
	DebugLog("Grid %dx%d, workers: %d, time: %s", len(g.Thetas), len(g.Phis), workers, time.Since(start))
	return g, nil
}
