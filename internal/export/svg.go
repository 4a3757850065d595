package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/emfield/internal/metrics"
	"github.com/san-kum/emfield/internal/viz"
)

type SVGOptions struct {
	Width, Height int
	Theme         viz.Theme
	Camera        *viz.Camera
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Width: 1280, Height: 720, Theme: viz.ThemeCyberpunk, Camera: viz.NewCamera()}
}

const legendWidth = 220

// SceneToSVG renders the wireframe seen from opts.Camera, with the title,
// axis labels and an energy legend.
func SceneToSVG(scene *viz.Scene, opts SVGOptions) string {
	if scene == nil {
		return ""
	}
	if opts.Camera == nil {
		opts.Camera = viz.NewCamera()
	}
	w, h := opts.Width, opts.Height
	plotW, plotH := w-legendWidth, h-60
	ramp := opts.Theme.Ramp(scene.Wireframe.Levels)
	color := func(level int) string {
		if level >= 0 && level < len(ramp) {
			return string(ramp[level])
		}
		return string(opts.Theme.Muted)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="monospace">
<rect width="100%%" height="100%%" fill="%s"/>
<text x="%d" y="36" fill="%s" font-size="22" text-anchor="middle">%s</text>
<g transform="translate(0 50)" stroke-width="1" stroke-linecap="round">
`, w, h, w, h, opts.Theme.Background, w/2, opts.Theme.Text, html.EscapeString(scene.Title)))

	for _, e := range viz.ProjectEdges(scene.Wireframe, opts.Camera, plotW, plotH) {
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s"/>
`, e.X1, e.Y1, e.X2, e.Y2, color(e.Level)))
	}

	for i, a := range viz.LabelAnchors {
		x, y, _, ok := opts.Camera.Project(a, plotW, plotH)
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="%s" font-size="14" text-anchor="middle">%s</text>
`, x, y, opts.Theme.Text, html.EscapeString(scene.Labels[i])))
	}
	sb.WriteString("</g>\n")

	writeLegend(&sb, scene, ramp, opts, w-legendWidth+20, 80)

	sb.WriteString("</svg>")
	return sb.String()
}

func writeLegend(sb *strings.Builder, scene *viz.Scene, ramp []lipgloss.Color, opts SVGOptions, x, y int) {
	sb.WriteString(fmt.Sprintf(`<g font-size="12" fill="%s">
<text x="%d" y="%d">energy density</text>
`, opts.Theme.Text, x, y))
	for i := len(ramp) - 1; i >= 0; i-- {
		lo, hi := scene.LevelRange(i)
		row := y + 14 + (len(ramp)-1-i)*20
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="14" height="14" fill="%s"/>
<text x="%d" y="%d">%.2e - %.2e</text>
`, x, row, ramp[i], x+20, row+11, lo, hi))
	}
	sb.WriteString("</g>\n")
}

const profileMargin = 60

// ProfileToSVG charts the per-slice mean and max energy density against the
// slice position. Both series share one y scale starting at zero, since
// energy density is never negative.
func ProfileToSVG(profile []metrics.Slice, opts SVGOptions) string {
	if len(profile) < 2 {
		return ""
	}

	first, last := profile[0].Position, profile[len(profile)-1].Position
	span := last - first
	if span <= 0 {
		return ""
	}
	top := 0.0
	for _, sl := range profile {
		top = max(top, sl.Max, sl.Mean)
	}
	if top == 0 {
		top = 1
	}

	w, h := opts.Width, opts.Height
	plotW := float64(w - 2*profileMargin)
	plotH := float64(h - 2*profileMargin)
	px := func(pos float64) float64 { return profileMargin + (pos-first)/span*plotW }
	py := func(v float64) float64 { return profileMargin + plotH - v/top*plotH }

	polyline := func(value func(metrics.Slice) float64) string {
		pts := make([]string, len(profile))
		for i, sl := range profile {
			pts[i] = fmt.Sprintf("%.1f,%.1f", px(sl.Position), py(value(sl)))
		}
		return strings.Join(pts, " ")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="monospace">
<rect width="100%%" height="100%%" fill="%s"/>
<text x="%d" y="32" fill="%s" font-size="18" text-anchor="middle">energy density along y</text>
`, w, h, w, h, opts.Theme.Background, w/2, opts.Theme.Text)

	x0, y0 := float64(profileMargin), profileMargin+plotH
	fmt.Fprintf(&sb, `<g stroke="%s" stroke-width="1">
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
</g>
`, opts.Theme.Muted, x0, y0, x0+plotW, y0, x0, y0, x0, float64(profileMargin))

	fmt.Fprintf(&sb, `<g font-size="12" fill="%s">
<text x="%.1f" y="%.1f" text-anchor="middle">%s</text>
<text x="%.1f" y="%.1f">%.2e</text>
<text x="%.1f" y="%.1f" text-anchor="start">%.2e</text>
<text x="%.1f" y="%.1f" text-anchor="end">%.2e</text>
</g>
`, opts.Theme.Text,
		x0+plotW/2, y0+36, html.EscapeString(viz.YLabel),
		4.0, float64(profileMargin)+4, top,
		x0, y0+18, first,
		x0+plotW, y0+18, last)

	fmt.Fprintf(&sb, `<polyline fill="none" stroke="%s" stroke-width="1" stroke-dasharray="4 3" points="%s"/>
<polyline fill="none" stroke="%s" stroke-width="1.5" points="%s"/>
`, opts.Theme.Accent, polyline(func(sl metrics.Slice) float64 { return sl.Max }),
		opts.Theme.Primary, polyline(func(sl metrics.Slice) float64 { return sl.Mean }))

	fmt.Fprintf(&sb, `<g font-size="12">
<text x="%d" y="%d" fill="%s">mean</text>
<text x="%d" y="%d" fill="%s">max</text>
</g>
</svg>`, w-profileMargin-80, profileMargin-8, opts.Theme.Primary, w-profileMargin-30, profileMargin-8, opts.Theme.Accent)
	return sb.String()
}
