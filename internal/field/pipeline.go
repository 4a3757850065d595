package field

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// DefaultMaxGridPoints bounds the grid allocation (256³ points).
const DefaultMaxGridPoints = 1 << 24

// Params are the numeric inputs of one realization.
type Params struct {
	Cutoff        float64
	SampleCount   int
	Dx            float64
	Extent        float64
	Workers       int
	MaxGridPoints int
}

// Validate rejects parameters that cannot produce a field, before anything
// is allocated.
func (p Params) Validate() error {
	if p.SampleCount <= 0 {
		return paramError("sample_count", float64(p.SampleCount), ErrSampleCount)
	}
	if !(p.Cutoff > 0) || math.IsInf(p.Cutoff, 0) {
		return paramError("cutoff", p.Cutoff, ErrCutoff)
	}
	if !(p.Dx > 0) || math.IsInf(p.Dx, 0) {
		return paramError("dx", p.Dx, ErrStep)
	}
	if !(p.Extent > 0) || math.IsInf(p.Extent, 0) {
		return paramError("extent", p.Extent, ErrExtent)
	}

	limit := p.MaxGridPoints
	if limit <= 0 {
		limit = DefaultMaxGridPoints
	}
	n := AxisLen(p.Extent, p.Dx)
	if n > limit || float64(n)*float64(n)*float64(n) > float64(limit) {
		return paramError("grid_points", float64(n)*float64(n)*float64(n), ErrGridTooLarge)
	}
	return nil
}

// Result is one synthesized realization.
type Result struct {
	Spectrum *Spectrum
	Weights  *Weights
	Grid     *Grid
	Fields   *Fields
	Energy   *Array3
	Elapsed  time.Duration
	Stages   map[string]time.Duration
}

// Run executes the full pipeline for p, drawing every random value from src.
func Run(ctx context.Context, p Params, src Source) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	res := &Result{Stages: make(map[string]time.Duration)}
	start := time.Now()
	stage := func(name string, t0 time.Time) {
		d := time.Since(t0)
		res.Stages[name] = d
		slog.Debug("stage", "name", name, "elapsed", d)
	}

	t0 := time.Now()
	sp, err := Sample(p.Cutoff, p.SampleCount, src)
	if err != nil {
		return nil, err
	}
	res.Spectrum = sp
	stage("spectrum", t0)

	t0 = time.Now()
	w, err := GenerateWeights(sp, src)
	if err != nil {
		return nil, err
	}
	res.Weights = w
	stage("weights", t0)

	t0 = time.Now()
	g, err := NewGrid(p.Extent, p.Dx)
	if err != nil {
		return nil, err
	}
	res.Grid = g
	stage("grid", t0)

	t0 = time.Now()
	synth := NewSynthesizer(p.Workers)
	f, err := synth.Synthesize(ctx, sp, w, g)
	if err != nil {
		return nil, err
	}
	res.Fields = f
	stage("synthesis", t0)

	t0 = time.Now()
	energy, err := EnergyDensity(f.E, f.B)
	if err != nil {
		return nil, err
	}
	res.Energy = energy
	stage("energy", t0)

	res.Elapsed = time.Since(start)
	shape := g.Shape()
	slog.Info("field synthesized",
		"modes", sp.Len(),
		"shape", shape[:],
		"workers", synth.Workers(),
		"elapsed", res.Elapsed,
	)
	return res, nil
}
