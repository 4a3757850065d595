package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/emfield/internal/metrics"
)

const (
	sidebarWidth = 40
	rotStep      = 0.1
	minCols      = 20
	minRows      = 8
)

// Info is the run context shown next to the plot.
type Info struct {
	Subtitle string
	Summary  metrics.Summary
	Profile  []float64
}

// Viewer is a bubbletea model that shows a Scene on a braille canvas.
type Viewer struct {
	scene         *Scene
	info          Info
	camera        *Camera
	theme         Theme
	width, height int
	showHelp      bool
}

func NewViewer(scene *Scene, info Info, theme string) Viewer {
	return Viewer{
		scene:  scene,
		info:   info,
		camera: NewCamera(),
		theme:  GetTheme(theme),
		width:  120,
		height: 36,
	}
}

func (v Viewer) Init() tea.Cmd { return nil }

func (v Viewer) Camera() *Camera { return v.camera }
func (v Viewer) Theme() Theme    { return v.theme }

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return v, tea.Quit
		case "left", "h":
			v.camera.Orbit(-rotStep)
		case "right", "l":
			v.camera.Orbit(rotStep)
		case "up", "k":
			v.camera.Tilt(rotStep)
		case "down", "j":
			v.camera.Tilt(-rotStep)
		case "+", "=":
			v.camera.ZoomIn()
		case "-", "_":
			v.camera.ZoomOut()
		case "t":
			v.theme = NextTheme(v.theme.Name)
		case "r":
			v.camera.Reset()
		case "?":
			v.showHelp = !v.showHelp
		}
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
	}
	return v, nil
}

func (v Viewer) canvasSize() (int, int) {
	return max(minCols, v.width-sidebarWidth-6), max(minRows, v.height-4)
}

// Draw renders the scene and its axis labels onto a fresh canvas.
func (v Viewer) Draw() *Canvas {
	cols, rows := v.canvasSize()
	c := NewCanvas(cols, rows)
	Render3D(c, v.scene.Wireframe, v.camera)

	for i, a := range LabelAnchors {
		sx, sy, _, ok := v.camera.Project(a, cols*2, rows*4)
		if !ok {
			continue
		}
		label := v.scene.Labels[i]
		c.Text(sx/2-len(label)/2, sy/4, label)
	}
	return c
}

func (v Viewer) styleFor() func(int) lipgloss.Style {
	ramp := v.theme.Ramp(v.scene.Wireframe.Levels)
	styles := make([]lipgloss.Style, len(ramp))
	for i, col := range ramp {
		styles[i] = lipgloss.NewStyle().Foreground(col)
	}
	frame := lipgloss.NewStyle().Foreground(v.theme.Muted)
	label := lipgloss.NewStyle().Foreground(v.theme.Text).Bold(true)
	return func(level int) lipgloss.Style {
		switch {
		case level == LabelLevel:
			return label
		case level >= 0 && level < len(styles):
			return styles[level]
		}
		return frame
	}
}

func (v Viewer) View() string {
	canvasView := lipgloss.NewStyle().Padding(1, 2).Render(v.Draw().Render(v.styleFor()))
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, v.sidebar())
	if v.showHelp {
		return helpText + "\n" + main
	}
	return main
}

func (v Viewer) sidebar() string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render(GradientText(v.scene.Title, v.theme.Secondary, v.theme.Primary)) + "\n")
	if v.info.Subtitle != "" {
		s.WriteString(Subtle.Render(v.info.Subtitle) + "\n")
	}
	s.WriteString("\n")

	sum := v.info.Summary
	for _, row := range []struct {
		label string
		value float64
	}{
		{"min", sum.Min},
		{"max", sum.Max},
		{"mean", sum.Mean},
		{"std", sum.Std},
		{"contrast", sum.Contrast()},
	} {
		s.WriteString(MetricLabel.Render(row.label) + MetricValue.Render(fmt.Sprintf("%.4g", row.value)) + "\n")
	}

	s.WriteString("\n" + Separator(sidebarWidth-4) + "\n\n")
	ramp := v.theme.Ramp(v.scene.Wireframe.Levels)
	for l := len(ramp) - 1; l >= 0; l-- {
		lo, hi := v.scene.LevelRange(l)
		swatch := lipgloss.NewStyle().Foreground(ramp[l]).Render("██")
		s.WriteString(fmt.Sprintf("%s %.3e – %.3e\n", swatch, lo, hi))
	}

	b := v.scene.Bounds
	s.WriteString("\n")
	for i, name := range []string{"x", "y", "z"} {
		s.WriteString(MetricLabel.Render(name) + fmt.Sprintf("%.3g … %.3g m\n", b[i][0], b[i][1]))
	}

	if len(v.info.Profile) > 1 {
		chart := asciigraph.Plot(v.info.Profile,
			asciigraph.Height(5),
			asciigraph.Width(sidebarWidth-14),
			asciigraph.Caption("mean energy along y"))
		s.WriteString("\n" + chart + "\n")
	}

	s.WriteString("\n" + KeyHint.Render("←→/hl orbit  ↑↓/jk tilt  +/- zoom\nt theme  r reset  ? help  q quit"))
	return GlassPanel.Width(sidebarWidth).Render(s.String())
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  ←/→ h/l  - Orbit around z axis      ║
║  ↑/↓ k/j  - Tilt camera              ║
║  + / -    - Zoom in / out            ║
║  T        - Cycle themes             ║
║  R        - Reset camera             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`

// RunViewer blocks until the user quits.
func RunViewer(v Viewer) error {
	_, err := tea.NewProgram(v, tea.WithAltScreen()).Run()
	return err
}
