package field

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestSample_FrequencyAxis(t *testing.T) {
	g := NewWithT(t)

	s, err := Sample(1e12, 1000, NewSource(1))
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(s.Len()).To(Equal(1000))
	g.Expect(s.Freqs[0]).To(Equal(0.0))
	g.Expect(s.Freqs[1] - s.Freqs[0]).To(Equal(1e9))
	g.Expect(s.Freqs[999]).To(Equal(1e12 - 1e12/1000))
	g.Expect(s.Spacing()).To(Equal(1e9))

	for i := 1; i < s.Len(); i++ {
		if s.Freqs[i] <= s.Freqs[i-1] {
			t.Fatalf("freqs not increasing at %d", i)
		}
		if s.Freqs[i] >= s.Cutoff {
			t.Fatalf("freq %d = %g not below cutoff", i, s.Freqs[i])
		}
	}
}

func TestSample_DerivedQuantities(t *testing.T) {
	s, err := Sample(1e12, 64, NewSource(7))
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	for i := range s.Freqs {
		k := 2 * math.Pi * s.Freqs[i] / SpeedOfLight
		if s.Ks[i] != k {
			t.Errorf("ks[%d] = %g, want %g", i, s.Ks[i], k)
		}
		if s.E0[i] < 0 || s.B0[i] < 0 {
			t.Errorf("negative amplitude at %d: E0=%g B0=%g", i, s.E0[i], s.B0[i])
		}
		if s.B0[i] != s.E0[i]/SpeedOfLight {
			t.Errorf("B0[%d] != E0/c", i)
		}
		if s.Phases[i] < 0 || s.Phases[i] >= 2*math.Pi {
			t.Errorf("phase[%d] = %g outside [0, 2π)", i, s.Phases[i])
		}
	}
}

func TestSample_FixedPhase(t *testing.T) {
	g := NewWithT(t)

	s, err := Sample(1e6, 8, FixedSource{U: 0.25, N: 1})
	g.Expect(err).NotTo(HaveOccurred())
	for _, ph := range s.Phases {
		g.Expect(ph).To(Equal(2 * math.Pi * 0.25))
	}
}

func TestSample_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		cutoff float64
		n      int
		want   error
	}{
		{"zero samples", 1e12, 0, ErrSampleCount},
		{"negative samples", 1e12, -3, ErrSampleCount},
		{"zero cutoff", 0, 10, ErrCutoff},
		{"negative cutoff", -1, 10, ErrCutoff},
		{"nan cutoff", math.NaN(), 10, ErrCutoff},
		{"inf cutoff", math.Inf(1), 10, ErrCutoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sample(tt.cutoff, tt.n, NewSource(1))
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			var pe *ParamError
			if !errors.As(err, &pe) {
				t.Errorf("expected ParamError, got %T", err)
			}
		})
	}
}
