package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/emfield/internal/field"
)

// Summary holds whole-volume statistics of a scalar field.
type Summary struct {
	Points int     `json:"points"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Total  float64 `json:"total"`
}

// Summarize reduces a over every grid point. The standard deviation is the
// population one. An empty array gives the zero Summary.
func Summarize(a *field.Array3) Summary {
	if a == nil || a.Len() == 0 {
		return Summary{}
	}
	mean, std := stat.PopMeanStdDev(a.Data, nil)
	return Summary{
		Points: a.Len(),
		Min:    floats.Min(a.Data),
		Max:    floats.Max(a.Data),
		Mean:   mean,
		Std:    std,
		Total:  floats.Sum(a.Data),
	}
}

// Contrast is max/mean, the peak-to-average ratio of the field.
func (s Summary) Contrast() float64 {
	if s.Mean == 0 {
		return 0
	}
	return s.Max / s.Mean
}
