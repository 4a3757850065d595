package field

import "math"

// Weights are the per-mode random polarization weights of each axis.
type Weights struct {
	Ex, Ey, Ez []float64
	Bx, By, Bz []float64
}

func (w *Weights) Len() int { return len(w.Ex) }

func (w *Weights) validate(n int) error {
	for _, a := range [][]float64{w.Ex, w.Ey, w.Ez, w.Bx, w.By, w.Bz} {
		if len(a) != n {
			return ErrLengthMismatch
		}
	}
	return nil
}

// GenerateWeights draws one realization of the field weights:
//
//	Ex = E0·cos(φ)·n   Bx = B0·sin(φ)·n
//	Ey = E0·sin(φ)·n   By = B0·cos(φ)·n
//	Ez = E0·cos(φ/2)·n Bz = B0·sin(φ/2)·n
//
// Each array takes its own batch of N normal draws, in the order listed by
// the struct fields.
func GenerateWeights(s *Spectrum, src Source) (*Weights, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	n := s.Len()
	batch := func(amp []float64, trig func(float64) float64, scale float64) []float64 {
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			out[i] = amp[i] * trig(scale*s.Phases[i]) * src.Normal()
		}
		return out
	}

	w := &Weights{}
	w.Ex = batch(s.E0, math.Cos, 1)
	w.Ey = batch(s.E0, math.Sin, 1)
	w.Ez = batch(s.E0, math.Cos, 0.5)
	w.Bx = batch(s.B0, math.Sin, 1)
	w.By = batch(s.B0, math.Cos, 1)
	w.Bz = batch(s.B0, math.Sin, 0.5)
	return w, nil
}
