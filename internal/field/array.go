package field

import "math"

// Array3 is a dense float64 array of shape (Ny, Nx, Nz) stored row-major.
// Element [a,b,c] lives at (a*Nx+b)*Nz+c.
type Array3 struct {
	Ny, Nx, Nz int
	Data       []float64
}

func NewArray3(ny, nx, nz int) *Array3 {
	return &Array3{Ny: ny, Nx: nx, Nz: nz, Data: make([]float64, ny*nx*nz)}
}

func (a *Array3) Shape() [3]int { return [3]int{a.Ny, a.Nx, a.Nz} }
func (a *Array3) Len() int      { return len(a.Data) }

func (a *Array3) Index(i, j, k int) int { return (i*a.Nx+j)*a.Nz + k }

func (a *Array3) At(i, j, k int) float64     { return a.Data[a.Index(i, j, k)] }
func (a *Array3) Set(i, j, k int, v float64) { a.Data[a.Index(i, j, k)] = v }

func (a *Array3) SameShape(o *Array3) bool {
	return a.Ny == o.Ny && a.Nx == o.Nx && a.Nz == o.Nz
}

// IsValid reports whether every element is finite.
func (a *Array3) IsValid() bool {
	for _, v := range a.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
