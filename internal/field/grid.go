package field

import "math"

// Arange returns start, start+step, ... up to but excluding stop.
// The length is ceil((stop-start)/step), element i is start+i*step.
func Arange(start, stop, step float64) []float64 {
	n := arangeLen(start, stop, step)
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func arangeLen(start, stop, step float64) int {
	if step == 0 || math.IsNaN(step) {
		return 0
	}
	n := math.Ceil((stop - start) / step)
	if n <= 0 || math.IsNaN(n) {
		return 0
	}
	return int(n)
}

// AxisLen returns len(Arange(0, extent, dx)) without allocating.
func AxisLen(extent, dx float64) int {
	return arangeLen(0, extent, dx)
}

// Grid is a cubic sampling region. The axes are kept separately; use Mesh for
// the materialized coordinate arrays.
type Grid struct {
	Extent, Dx float64
	X, Y, Z    []float64
}

// NewGrid builds the axes arange(0, extent, dx) for x, y and z.
func NewGrid(extent, dx float64) (*Grid, error) {
	if !(dx > 0) || math.IsInf(dx, 0) {
		return nil, paramError("dx", dx, ErrStep)
	}
	if !(extent > 0) || math.IsInf(extent, 0) {
		return nil, paramError("extent", extent, ErrExtent)
	}
	return &Grid{
		Extent: extent,
		Dx:     dx,
		X:      Arange(0, extent, dx),
		Y:      Arange(0, extent, dx),
		Z:      Arange(0, extent, dx),
	}, nil
}

// Shape returns (len(y), len(x), len(z)), the meshgrid shape.
func (g *Grid) Shape() [3]int { return [3]int{len(g.Y), len(g.X), len(g.Z)} }

func (g *Grid) Points() int { return len(g.X) * len(g.Y) * len(g.Z) }

// NewArray allocates a zeroed array with the grid's shape.
func (g *Grid) NewArray() *Array3 { return NewArray3(len(g.Y), len(g.X), len(g.Z)) }

// Mesh materializes the coordinate arrays. The first axis indexes y and the
// second x: X[a,b,c] = x[b], Y[a,b,c] = y[a], Z[a,b,c] = z[c].
func (g *Grid) Mesh() (X, Y, Z *Array3) {
	X, Y, Z = g.NewArray(), g.NewArray(), g.NewArray()
	for a, yv := range g.Y {
		for b, xv := range g.X {
			base := X.Index(a, b, 0)
			for c, zv := range g.Z {
				X.Data[base+c] = xv
				Y.Data[base+c] = yv
				Z.Data[base+c] = zv
			}
		}
	}
	return X, Y, Z
}
