package field

import (
	"context"
	"math"
	"runtime"
)

// minChunkPoints keeps goroutine overhead negligible on small grids.
const minChunkPoints = 4096

// Fields are the synthesized scalar fields.
type Fields struct {
	E *Array3
	B *Array3
}

// Synthesizer superposes the modes of a spectrum over a grid.
type Synthesizer struct {
	workers int
}

// NewSynthesizer returns a Synthesizer using the given number of worker
// goroutines; workers <= 0 selects runtime.NumCPU().
func NewSynthesizer(workers int) *Synthesizer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Synthesizer{workers: workers}
}

func (s *Synthesizer) Workers() int { return s.workers }

// axisTables holds sin(k_i*coord + frac*φ_i) per mode, flattened mode-major.
type axisTables struct {
	x, y, z []float64
	nx, ny  int
	nz      int
}

func buildTables(sp *Spectrum, g *Grid) *axisTables {
	n := sp.Len()
	t := &axisTables{
		x:  make([]float64, n*len(g.X)),
		y:  make([]float64, n*len(g.Y)),
		z:  make([]float64, n*len(g.Z)),
		nx: len(g.X),
		ny: len(g.Y),
		nz: len(g.Z),
	}
	for i := 0; i < n; i++ {
		k, ph := sp.Ks[i], sp.Phases[i]
		for b, xv := range g.X {
			t.x[i*t.nx+b] = math.Sin(k*xv + ph)
		}
		for a, yv := range g.Y {
			t.y[i*t.ny+a] = math.Sin(k*yv + 0.5*ph)
		}
		for c, zv := range g.Z {
			t.z[i*t.nz+c] = math.Sin(k*zv + 0.25*ph)
		}
	}
	return t
}

// Synthesize accumulates, for every grid point and for i = 0..N-1,
//
//	E += sin(k_i·x + φ_i)·Ex_i
//	E += sin(k_i·y + φ_i/2)·Ey_i
//	E += sin(k_i·z + φ_i/4)·Ez_i
//
// and the same sines weighted by Bx, By, Bz into B. The sines depend on a
// single coordinate each, so they are tabulated per axis once.
func (s *Synthesizer) Synthesize(ctx context.Context, sp *Spectrum, w *Weights, g *Grid) (*Fields, error) {
	if err := sp.validate(); err != nil {
		return nil, err
	}
	if err := w.validate(sp.Len()); err != nil {
		return nil, err
	}

	f := &Fields{E: g.NewArray(), B: g.NewArray()}
	if g.Points() == 0 || sp.Len() == 0 {
		return f, nil
	}

	t := buildTables(sp, g)
	n := sp.Len()
	nx, nz := t.nx, t.nz
	plane := nx * nz

	err := ParallelFor(ctx, g.Points(), minChunkPoints, s.workers, func(ctx context.Context, start, end int) error {
		e := f.E.Data[start:end]
		b := f.B.Data[start:end]
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			ex, ey, ez := w.Ex[i], w.Ey[i], w.Ez[i]
			bx, by, bz := w.Bx[i], w.By[i], w.Bz[i]
			sx := t.x[i*nx : (i+1)*nx]
			sy := t.y[i*t.ny : (i+1)*t.ny]
			sz := t.z[i*nz : (i+1)*nz]
			for p := start; p < end; p++ {
				a := p / plane
				rem := p - a*plane
				bi := rem / nz
				c := rem - bi*nz

				vx, vy, vz := sx[bi], sy[a], sz[c]
				// Conversions round each product, so no FMA fusion.
				j := p - start
				e[j] += float64(vx * ex)
				e[j] += float64(vy * ey)
				e[j] += float64(vz * ez)
				b[j] += float64(vx * bx)
				b[j] += float64(vy * by)
				b[j] += float64(vz * bz)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}
