package viz

import (
	"math"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	. "github.com/onsi/gomega"

	"github.com/san-kum/emfield/internal/field"
	"github.com/san-kum/emfield/internal/metrics"
)

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestCanvasSetAndLevels(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, 3)
	c.Set(3, 3, 5)
	c.Set(-1, 0, 1)
	c.Set(100, 0, 1)

	if c.Grid[0][0] != rune(blank|0x1) {
		t.Errorf("unexpected cell %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != rune(blank|0x80) {
		t.Errorf("unexpected cell %U", c.Grid[0][1])
	}
	if c.Levels[0][0] != 3 || c.Levels[0][1] != 5 {
		t.Errorf("unexpected levels %v", c.Levels[0])
	}

	c.Clear()
	if c.String() != string([]rune{blank, blank})+"\n" {
		t.Errorf("clear left %q", c.String())
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0, 2)
	for col := 0; col < 4; col++ {
		if c.Grid[0][col] != rune(blank|0x1|0x8) {
			t.Errorf("col %d: got %U", col, c.Grid[0][col])
		}
		if c.Levels[0][col] != 2 {
			t.Errorf("col %d: level %d", col, c.Levels[0][col])
		}
	}
}

func TestCanvasTextProtectsLabels(t *testing.T) {
	c := NewCanvas(6, 2)
	c.Text(1, 0, "X (m)")
	c.DrawLine(0, 0, 11, 0, 4)

	if got := string(c.Grid[0][1:6]); got != "X (m)" {
		t.Errorf("label overwritten: %q", got)
	}
	if c.Levels[0][0] != 4 {
		t.Errorf("expected line level outside label, got %d", c.Levels[0][0])
	}

	c.Text(4, 1, "long label")
	if got := string(c.Grid[1][4:]); got != "lo" {
		t.Errorf("expected clipped label, got %q", got)
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Text(0, 0, "abc")
	out := c.Render(func(int) lipgloss.Style { return lipgloss.NewStyle() })
	if ansi.ReplaceAllString(out, "") != "abc\n" {
		t.Errorf("unexpected render %q", out)
	}
}

func TestCameraProjectCenter(t *testing.T) {
	cam := NewCamera()
	x, y, _, ok := cam.Project(Vec3{}, 100, 80)
	if !ok || x != 50 || y != 40 {
		t.Errorf("origin projected to (%d,%d,%v)", x, y, ok)
	}
}

func TestCameraZUp(t *testing.T) {
	cam := NewCamera()
	cam.Azimuth, cam.Elevation = 0, 0

	v := cam.View(Vec3{0, 0, 1})
	if math.Abs(v.Y-1) > 1e-12 || math.Abs(v.X) > 1e-12 {
		t.Errorf("z axis should point up, got %+v", v)
	}
	v = cam.View(Vec3{1, 0, 0})
	if math.Abs(v.X-1) > 1e-12 {
		t.Errorf("x axis should point right, got %+v", v)
	}
}

func TestCameraEye(t *testing.T) {
	cam := NewCamera()
	cam.Orbit(0.7)
	cam.Tilt(0.2)
	cam.ZoomIn()

	v := cam.View(cam.Eye())
	want := cam.Distance / cam.Zoom
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y) > 1e-9 || math.Abs(v.Z-want) > 1e-9 {
		t.Errorf("eye should sit on the view axis at %g, got %+v", want, v)
	}
}

func TestCameraLimits(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 100; i++ {
		cam.Tilt(0.5)
		cam.ZoomIn()
	}
	if cam.Elevation > math.Pi/2 || cam.Zoom > 10 {
		t.Errorf("limits exceeded: %+v", cam)
	}
	cam.Reset()
	if cam.Zoom != 1 || cam.Elevation != defaultElevation {
		t.Errorf("reset failed: %+v", cam)
	}
}

func TestRender3D(t *testing.T) {
	c := NewCanvas(40, 20)
	wf := NewWireframe(2)
	wf.AddBox(1)
	Render3D(c, wf, NewCamera())

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blank {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("box produced no pixels")
	}
}

func TestThemeRamp(t *testing.T) {
	g := NewWithT(t)
	th := GetTheme("cyberpunk")
	ramp := th.Ramp(5)
	g.Expect(ramp).To(HaveLen(5))
	g.Expect(ramp[0]).To(Equal(th.Secondary))
	g.Expect(ramp[2]).To(Equal(th.Primary))
	g.Expect(ramp[4]).To(Equal(th.Accent))

	g.Expect(NextTheme("sunset").Name).To(Equal(Themes[0].Name))
	g.Expect(GetTheme("nope").Name).To(Equal("cyberpunk"))

	r, gg, b := RGB("#ff8000")
	g.Expect([]uint8{r, gg, b}).To(Equal([]uint8{255, 128, 0}))
}

func testViewer(t *testing.T) Viewer {
	t.Helper()
	grid, err := field.NewGrid(0.0001, 10e-6)
	if err != nil {
		t.Fatal(err)
	}
	scene, err := BuildScene(grid, rampField(grid), 3, 4)
	if err != nil {
		t.Fatal(err)
	}
	return NewViewer(scene, Info{
		Subtitle: "16 modes",
		Summary:  metrics.Summary{Min: 0, Max: 9, Mean: 4.5},
		Profile:  []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	}, "cyberpunk")
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewerKeys(t *testing.T) {
	g := NewWithT(t)
	v := testViewer(t)
	az, el := v.Camera().Azimuth, v.Camera().Elevation

	m, _ := v.Update(key("left"))
	v = m.(Viewer)
	g.Expect(v.Camera().Azimuth).To(BeNumerically("~", az-rotStep, 1e-12))

	m, _ = v.Update(key("up"))
	v = m.(Viewer)
	g.Expect(v.Camera().Elevation).To(BeNumerically("~", el+rotStep, 1e-12))

	m, _ = v.Update(key("+"))
	v = m.(Viewer)
	g.Expect(v.Camera().Zoom).To(BeNumerically(">", 1))

	m, _ = v.Update(key("t"))
	v = m.(Viewer)
	g.Expect(v.Theme().Name).To(Equal("retro"))

	m, _ = v.Update(key("r"))
	v = m.(Viewer)
	g.Expect(v.Camera().Zoom).To(Equal(1.0))

	m, _ = v.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	v = m.(Viewer)
	cols, rows := v.canvasSize()
	g.Expect(cols).To(Equal(160 - sidebarWidth - 6))
	g.Expect(rows).To(Equal(46))

	_, cmd := v.Update(key("q"))
	g.Expect(cmd).NotTo(BeNil())
	g.Expect(cmd()).To(Equal(tea.QuitMsg{}))
}

func TestViewerView(t *testing.T) {
	v := testViewer(t)
	out := ansi.ReplaceAllString(v.View(), "")

	for _, want := range []string{"Spatial Energy Density Distribution", "16 modes", "contrast", "mean energy along y"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
