package viz

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/emfield/internal/field"
)

func rampField(g *field.Grid) *field.Array3 {
	e := g.NewArray()
	for i := 0; i < e.Ny; i++ {
		for j := 0; j < e.Nx; j++ {
			for k := 0; k < e.Nz; k++ {
				e.Set(i, j, k, float64(i))
			}
		}
	}
	return e
}

func TestSampleIndices(t *testing.T) {
	tests := []struct {
		n, stride int
		want      []int
	}{
		{10, 3, []int{0, 3, 6, 9}},
		{10, 4, []int{0, 4, 8, 9}},
		{10, 20, []int{0, 9}},
		{1, 5, []int{0}},
		{0, 5, nil},
	}
	for _, tt := range tests {
		got := sampleIndices(tt.n, tt.stride)
		if len(got) != len(tt.want) {
			t.Errorf("sampleIndices(%d,%d) = %v, want %v", tt.n, tt.stride, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("sampleIndices(%d,%d) = %v, want %v", tt.n, tt.stride, got, tt.want)
				break
			}
		}
	}
}

func TestBuildWireframe(t *testing.T) {
	g := NewWithT(t)
	grid, err := field.NewGrid(0.0001, 10e-6)
	g.Expect(err).NotTo(HaveOccurred())

	wf, err := BuildWireframe(grid, rampField(grid), 3, 4)
	g.Expect(err).NotTo(HaveOccurred())

	// 4 samples per axis: 3 directions × 4×4 lines × 3 segments.
	g.Expect(wf.Edges).To(HaveLen(3 * 16 * 3))
	g.Expect(wf.Levels).To(Equal(4))

	seen := map[int]bool{}
	for _, e := range wf.Edges {
		for _, p := range []Vec3{e.Start, e.End} {
			g.Expect(math.Abs(p.X)).To(BeNumerically("<=", 0.5))
			g.Expect(math.Abs(p.Y)).To(BeNumerically("<=", 0.5))
			g.Expect(math.Abs(p.Z)).To(BeNumerically("<=", 0.5))
		}
		g.Expect(e.Level).To(BeNumerically(">=", 0))
		g.Expect(e.Level).To(BeNumerically("<", 4))
		seen[e.Level] = true
	}
	g.Expect(seen).To(HaveKey(0))
	g.Expect(seen).To(HaveKey(3))
}

func TestBuildWireframe_EnergyFollowsY(t *testing.T) {
	g := NewWithT(t)
	grid, err := field.NewGrid(0.0001, 10e-6)
	g.Expect(err).NotTo(HaveOccurred())

	wf, err := BuildWireframe(grid, rampField(grid), 9, 8)
	g.Expect(err).NotTo(HaveOccurred())

	for _, e := range wf.Edges {
		if e.Start.Y == -0.5 && e.End.Y == -0.5 {
			g.Expect(e.Level).To(Equal(0))
		}
		if e.Start.Y == 0.5 && e.End.Y == 0.5 {
			g.Expect(e.Level).To(Equal(7))
		}
	}
}

func TestBuildWireframe_Flat(t *testing.T) {
	grid, _ := field.NewGrid(0.0001, 10e-6)
	wf, err := BuildWireframe(grid, grid.NewArray(), 5, 8)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range wf.Edges {
		if e.Level != 0 {
			t.Fatalf("flat field produced level %d", e.Level)
		}
	}
}

func TestBuildWireframe_Errors(t *testing.T) {
	grid, _ := field.NewGrid(0.0001, 10e-6)
	e := grid.NewArray()

	if _, err := BuildWireframe(grid, e, 0, 8); !errors.Is(err, ErrStride) {
		t.Errorf("expected ErrStride, got %v", err)
	}
	if _, err := BuildWireframe(grid, e, 2, 1); !errors.Is(err, ErrLevels) {
		t.Errorf("expected ErrLevels, got %v", err)
	}
	if _, err := BuildWireframe(grid, field.NewArray3(2, 2, 2), 2, 8); !errors.Is(err, field.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestBuildScene(t *testing.T) {
	g := NewWithT(t)
	grid, _ := field.NewGrid(0.0001, 10e-6)

	s, err := BuildScene(grid, rampField(grid), 3, 4)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(s.Title).To(Equal("Spatial Energy Density Distribution"))
	g.Expect(s.Labels).To(Equal([3]string{"X (m)", "Y (m)", "Z (m)"}))
	g.Expect(s.EnergyMin).To(Equal(0.0))
	g.Expect(s.EnergyMax).To(Equal(9.0))
	g.Expect(s.Bounds[0][0]).To(Equal(0.0))
	g.Expect(s.Bounds[0][1]).To(BeNumerically("~", 9e-5, 1e-12))

	frame := 0
	for _, e := range s.Wireframe.Edges {
		if e.Level == FrameLevel {
			frame++
		}
	}
	g.Expect(frame).To(Equal(12))

	lo, hi := s.LevelRange(0)
	g.Expect(lo).To(Equal(0.0))
	g.Expect(hi).To(Equal(2.25))
	_, hi = s.LevelRange(3)
	g.Expect(hi).To(Equal(9.0))
}
