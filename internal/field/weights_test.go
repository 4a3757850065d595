package field

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"
)

// countingSource returns 1, 2, 3, ... from Normal so draw order is visible.
type countingSource struct{ n float64 }

func (c *countingSource) Uniform() float64 { return 0 }
func (c *countingSource) Normal() float64 {
	c.n++
	return c.n
}

func TestGenerateWeights_ZeroPhase(t *testing.T) {
	g := NewWithT(t)
	src := FixedSource{U: 0, N: 1}

	s, err := Sample(1e12, 16, src)
	g.Expect(err).NotTo(HaveOccurred())
	w, err := GenerateWeights(s, src)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(w.Len()).To(Equal(16))
	g.Expect(w.Ex).To(Equal(s.E0))
	g.Expect(w.Ez).To(Equal(s.E0))
	g.Expect(w.By).To(Equal(s.B0))
	for i := 0; i < w.Len(); i++ {
		g.Expect(w.Ey[i]).To(BeZero())
		g.Expect(w.Bx[i]).To(BeZero())
		g.Expect(w.Bz[i]).To(BeZero())
	}
}

func TestGenerateWeights_IndependentBatches(t *testing.T) {
	g := NewWithT(t)

	const n = 4
	s, err := Sample(1e12, n, FixedSource{})
	g.Expect(err).NotTo(HaveOccurred())

	w, err := GenerateWeights(s, &countingSource{})
	g.Expect(err).NotTo(HaveOccurred())

	// Phase 0: Ex = E0*draw, Ez = E0*draw, By = B0*draw.
	for i := 1; i < n; i++ {
		g.Expect(w.Ex[i]).To(Equal(s.E0[i] * float64(i+1)))
		g.Expect(w.Ez[i]).To(Equal(s.E0[i] * float64(2*n+i+1)))
		g.Expect(w.By[i]).To(Equal(s.B0[i] * float64(4*n+i+1)))
	}
}

func TestGenerateWeights_LengthMismatch(t *testing.T) {
	s, err := Sample(1e12, 8, FixedSource{})
	if err != nil {
		t.Fatal(err)
	}
	s.Phases = s.Phases[:4]

	if _, err := GenerateWeights(s, FixedSource{}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}
