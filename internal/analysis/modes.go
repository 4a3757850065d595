package analysis

import (
	"math"

	"github.com/san-kum/emfield/internal/field"
)

// ModeAmplitudes returns |(Ex,Ey,Ez)| and |(Bx,By,Bz)| for each mode.
func ModeAmplitudes(w *field.Weights) (e, b []float64) {
	n := w.Len()
	e = make([]float64, n)
	b = make([]float64, n)
	for i := 0; i < n; i++ {
		e[i] = math.Sqrt(w.Ex[i]*w.Ex[i] + w.Ey[i]*w.Ey[i] + w.Ez[i]*w.Ez[i])
		b[i] = math.Sqrt(w.Bx[i]*w.Bx[i] + w.By[i]*w.By[i] + w.Bz[i]*w.Bz[i])
	}
	return e, b
}
