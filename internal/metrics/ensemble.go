package metrics

import (
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// Realization is the summary of one ensemble member.
type Realization struct {
	Index   int
	Seed    uint64
	Summary Summary
}

// EnsembleStats collects realizations from concurrent workers.
type EnsembleStats struct {
	mu   sync.Mutex
	runs []Realization
}

func NewEnsembleStats() *EnsembleStats {
	return &EnsembleStats{}
}

func (e *EnsembleStats) Observe(r Realization) {
	e.mu.Lock()
	e.runs = append(e.runs, r)
	e.mu.Unlock()
}

// Runs returns the observed realizations ordered by index.
func (e *EnsembleStats) Runs() []Realization {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := append([]Realization(nil), e.runs...)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// MeanEnergy is the ensemble average of the per-realization mean energy and
// its spread across realizations.
func (e *EnsembleStats) MeanEnergy() (mean, std float64) {
	runs := e.Runs()
	if len(runs) == 0 {
		return 0, 0
	}
	means := make([]float64, len(runs))
	for i, r := range runs {
		means[i] = r.Summary.Mean
	}
	return stat.PopMeanStdDev(means, nil)
}

func (e *EnsembleStats) Reset() {
	e.mu.Lock()
	e.runs = nil
	e.mu.Unlock()
}
