package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/emfield/internal/field"
)

// Slice is one plane of constant y.
type Slice struct {
	Index    int     `csv:"index"`
	Position float64 `csv:"position"`
	Mean     float64 `csv:"mean_energy"`
	Max      float64 `csv:"max_energy"`
}

// Profile reduces a along its first axis: one Slice per y value, holding the
// mean and peak over the (x, z) plane.
func Profile(a *field.Array3, y []float64) ([]Slice, error) {
	if len(y) != a.Ny {
		return nil, fmt.Errorf("%w: %d positions for %d slices", field.ErrLengthMismatch, len(y), a.Ny)
	}
	plane := a.Nx * a.Nz
	out := make([]Slice, a.Ny)
	for i := range out {
		out[i] = Slice{Index: i, Position: y[i]}
		if plane == 0 {
			continue
		}
		data := a.Data[i*plane : (i+1)*plane]
		out[i].Mean = stat.Mean(data, nil)
		out[i].Max = floats.Max(data)
	}
	return out, nil
}

// Means extracts the per-slice mean energies.
func Means(p []Slice) []float64 {
	out := make([]float64, len(p))
	for i, s := range p {
		out[i] = s.Mean
	}
	return out
}
