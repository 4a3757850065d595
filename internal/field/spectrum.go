package field

import (
	"math"
)

const (
	// SpeedOfLight in m/s.
	SpeedOfLight = 3e8
	// Planck constant in J*s.
	Planck = 6.62e-34
)

// Spectrum holds the per-mode quantities of a discretized frequency axis.
type Spectrum struct {
	Cutoff float64
	Freqs  []float64
	Ks     []float64
	Phases []float64
	E0     []float64
	B0     []float64
}

func (s *Spectrum) Len() int { return len(s.Freqs) }

// Spacing returns the frequency step cutoff/N.
func (s *Spectrum) Spacing() float64 {
	if len(s.Freqs) == 0 {
		return 0
	}
	return s.Cutoff / float64(len(s.Freqs))
}

func (s *Spectrum) validate() error {
	n := len(s.Freqs)
	if len(s.Ks) != n || len(s.Phases) != n || len(s.E0) != n || len(s.B0) != n {
		return ErrLengthMismatch
	}
	return nil
}

// Sample discretizes [0, cutoff) into n modes. Phases are drawn uniformly in
// [0, 2π) from src, one per mode in index order.
func Sample(cutoff float64, n int, src Source) (*Spectrum, error) {
	if n <= 0 {
		return nil, paramError("sample_count", float64(n), ErrSampleCount)
	}
	if !(cutoff > 0) || math.IsInf(cutoff, 0) {
		return nil, paramError("cutoff", cutoff, ErrCutoff)
	}

	df := cutoff / float64(n)
	s := &Spectrum{
		Cutoff: cutoff,
		Freqs:  make([]float64, n),
		Ks:     make([]float64, n),
		Phases: make([]float64, n),
		E0:     make([]float64, n),
		B0:     make([]float64, n),
	}

	for i := 0; i < n; i++ {
		f := float64(i) * df
		s.Freqs[i] = f
		s.Ks[i] = 2 * math.Pi * f / SpeedOfLight
	}
	for i := 0; i < n; i++ {
		s.Phases[i] = 2 * math.Pi * src.Uniform()
	}
	for i := 0; i < n; i++ {
		s.E0[i] = math.Sqrt(Planck * s.Freqs[i])
		s.B0[i] = s.E0[i] / SpeedOfLight
	}

	return s, nil
}
