package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrTooShort = errors.New("analysis: need at least two samples")
	ErrSpacing  = errors.New("analysis: sample spacing must be positive")
)

type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum removes the mean, applies a Hann window and returns the
// one-sided power |X_k|²/N for k = 0..N/2.
func PowerSpectrum(samples []float64, spacing float64) (*Spectrum, error) {
	n := len(samples)
	if n < 2 {
		return nil, ErrTooShort
	}
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return nil, ErrSpacing
	}

	mean := stat.Mean(samples, nil)
	x := make([]float64, n)
	for i, v := range samples {
		x[i] = v - mean
	}
	window.Apply(x, window.Hann)

	coeffs := fft.FFTReal(x)
	bins := n/2 + 1
	s := &Spectrum{Freqs: make([]float64, bins), Power: make([]float64, bins)}
	for k := 0; k < bins; k++ {
		mag := cmplx.Abs(coeffs[k])
		s.Freqs[k] = float64(k) / (float64(n) * spacing)
		s.Power[k] = mag * mag / float64(n)
	}
	return s, nil
}

// Dominant returns the frequency and power of the strongest bin above DC.
// A flat spectrum gives (0, 0).
func (s *Spectrum) Dominant() (freq, power float64) {
	for k := 1; k < len(s.Power); k++ {
		if s.Power[k] > power {
			freq, power = s.Freqs[k], s.Power[k]
		}
	}
	return freq, power
}

// Total is the summed power above DC.
func (s *Spectrum) Total() float64 {
	var sum float64
	for k := 1; k < len(s.Power); k++ {
		sum += s.Power[k]
	}
	return sum
}
