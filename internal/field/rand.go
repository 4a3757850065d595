package field

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Source supplies the random draws of one realization.
type Source interface {
	// Uniform returns a value in [0, 1).
	Uniform() float64
	// Normal returns a standard normal value.
	Normal() float64
}

type distSource struct {
	uniform distuv.Uniform
	normal  distuv.Normal
}

// NewSource returns a Source seeded deterministically from seed. Uniform and
// normal draws share one PCG stream, so the draw order is part of a
// realization's identity.
func NewSource(seed uint64) Source {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &distSource{
		uniform: distuv.Uniform{Min: 0, Max: 1, Src: src},
		normal:  distuv.Normal{Mu: 0, Sigma: 1, Src: src},
	}
}

func (s *distSource) Uniform() float64 { return s.uniform.Rand() }
func (s *distSource) Normal() float64  { return s.normal.Rand() }

// FixedSource returns the same values on every draw.
type FixedSource struct {
	U float64
	N float64
}

func (s FixedSource) Uniform() float64 { return s.U }
func (s FixedSource) Normal() float64  { return s.N }
