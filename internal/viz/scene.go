package viz

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/emfield/internal/field"
)

const (
	Title  = "Spatial Energy Density Distribution"
	XLabel = "X (m)"
	YLabel = "Y (m)"
	ZLabel = "Z (m)"
)

// LabelAnchors places the X, Y and Z labels just outside the unit cube,
// beside the edge running along each axis.
var LabelAnchors = [3]Vec3{{0, -0.65, -0.5}, {0.65, 0, -0.5}, {-0.6, -0.6, 0}}

var (
	ErrStride = errors.New("viz: stride must be positive")
	ErrLevels = errors.New("viz: need at least two levels")
)

// Scene is a renderer-independent description of the plot: a wireframe in
// the unit cube plus the annotations needed to label it.
type Scene struct {
	Title     string
	Labels    [3]string
	Bounds    [3][2]float64
	EnergyMin float64
	EnergyMax float64
	Wireframe *Wireframe
}

// LevelRange returns the energy interval covered by level.
func (s *Scene) LevelRange(level int) (lo, hi float64) {
	n := float64(s.Wireframe.Levels)
	span := s.EnergyMax - s.EnergyMin
	return s.EnergyMin + span*float64(level)/n, s.EnergyMin + span*float64(level+1)/n
}

// BuildScene wraps BuildWireframe with the plot title, axis labels and the
// bounding box of the sampled region.
func BuildScene(g *field.Grid, energy *field.Array3, stride, levels int) (*Scene, error) {
	wf, err := BuildWireframe(g, energy, stride, levels)
	if err != nil {
		return nil, err
	}
	wf.AddBox(1)

	s := &Scene{
		Title:     Title,
		Labels:    [3]string{XLabel, YLabel, ZLabel},
		Bounds:    [3][2]float64{axisBounds(g.X), axisBounds(g.Y), axisBounds(g.Z)},
		Wireframe: wf,
	}
	if energy.Len() > 0 {
		s.EnergyMin, s.EnergyMax = floats.Min(energy.Data), floats.Max(energy.Data)
	}
	return s, nil
}

// BuildWireframe samples every stride-th grid line along each axis, always
// keeping the last one, and joins neighbouring samples with edges.
// Coordinates are mapped into the unit cube centred at the origin and each
// edge is leveled by the mean normalized energy of its endpoints.
func BuildWireframe(g *field.Grid, energy *field.Array3, stride, levels int) (*Wireframe, error) {
	if stride <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrStride, stride)
	}
	if levels < 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrLevels, levels)
	}
	shape := g.Shape()
	if energy.Shape() != shape {
		return nil, fmt.Errorf("%w: energy %v, grid %v", field.ErrShapeMismatch, energy.Shape(), shape)
	}

	wf := NewWireframe(levels)
	if energy.Len() == 0 {
		return wf, nil
	}

	lo, hi := floats.Min(energy.Data), floats.Max(energy.Data)
	norm := func(i, j, k int) float64 {
		if hi == lo {
			return 0
		}
		return (energy.At(i, j, k) - lo) / (hi - lo)
	}
	level := func(t float64) int {
		l := int(t * float64(levels))
		return max(0, min(levels-1, l))
	}

	xs, ys, zs := unitAxis(g.X), unitAxis(g.Y), unitAxis(g.Z)
	iy, ix, iz := sampleIndices(shape[0], stride), sampleIndices(shape[1], stride), sampleIndices(shape[2], stride)
	point := func(i, j, k int) Vec3 { return Vec3{xs[j], ys[i], zs[k]} }
	edge := func(a, b [3]int) {
		t := (norm(a[0], a[1], a[2]) + norm(b[0], b[1], b[2])) / 2
		wf.AddEdge(point(a[0], a[1], a[2]), point(b[0], b[1], b[2]), level(t))
	}

	for _, i := range iy {
		for _, j := range ix {
			for n := 1; n < len(iz); n++ {
				edge([3]int{i, j, iz[n-1]}, [3]int{i, j, iz[n]})
			}
		}
	}
	for _, i := range iy {
		for _, k := range iz {
			for n := 1; n < len(ix); n++ {
				edge([3]int{i, ix[n-1], k}, [3]int{i, ix[n], k})
			}
		}
	}
	for _, j := range ix {
		for _, k := range iz {
			for n := 1; n < len(iy); n++ {
				edge([3]int{iy[n-1], j, k}, [3]int{iy[n], j, k})
			}
		}
	}
	return wf, nil
}

func sampleIndices(n, stride int) []int {
	if n == 0 {
		return nil
	}
	idx := make([]int, 0, n/stride+2)
	for i := 0; i < n; i += stride {
		idx = append(idx, i)
	}
	if idx[len(idx)-1] != n-1 {
		idx = append(idx, n-1)
	}
	return idx
}

// unitAxis maps axis values linearly onto [-0.5, 0.5].
func unitAxis(a []float64) []float64 {
	out := make([]float64, len(a))
	if len(a) < 2 {
		return out
	}
	lo, hi := a[0], a[len(a)-1]
	for i, v := range a {
		out[i] = (v-lo)/(hi-lo) - 0.5
	}
	return out
}

func axisBounds(a []float64) [2]float64 {
	if len(a) == 0 {
		return [2]float64{}
	}
	return [2]float64{a[0], a[len(a)-1]}
}
