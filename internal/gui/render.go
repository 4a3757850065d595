package gui

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/emfield/internal/viz"
)

func rgba(c lipgloss.Color, alpha uint8) color.RGBA {
	r, g, b := viz.RGB(c)
	return rl.NewColor(r, g, b, alpha)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rgba(a.Theme.Background, 255))

	rl.BeginMode3D(a.Camera)
	a.drawWireframe()
	rl.EndMode3D()

	a.drawLabels()
	a.drawHUD()
	a.drawLegend()
	if a.ShowHelp {
		a.drawHelp()
	}
	rl.EndDrawing()
}

func (a *App) drawWireframe() {
	frame := rgba(a.Theme.Muted, 200)
	for _, e := range a.Scene.Wireframe.Edges {
		col := frame
		if e.Level >= 0 && e.Level < len(a.Palette) {
			col = a.Palette[e.Level]
		}
		rl.DrawLine3D(toRL(e.Start), toRL(e.End), col)
	}
}

func (a *App) drawLabels() {
	text := rgba(a.Theme.Text, 255)
	for i, anchor := range viz.LabelAnchors {
		p := rl.GetWorldToScreen(toRL(anchor), a.Camera)
		label := a.Scene.Labels[i]
		w := rl.MeasureText(label, fontSize-4)
		rl.DrawText(label, int32(p.X)-w/2, int32(p.Y), fontSize-4, text)
	}
}

func (a *App) drawHUD() {
	text := rgba(a.Theme.Text, 255)
	dim := rgba(a.Theme.Muted, 255)
	sw := int32(rl.GetScreenWidth())

	title := a.Scene.Title
	rl.DrawText(title, (sw-rl.MeasureText(title, fontSize+4))/2, 20, fontSize+4, text)
	if a.Opts.Subtitle != "" {
		rl.DrawText(a.Opts.Subtitle, (sw-rl.MeasureText(a.Opts.Subtitle, 14))/2, 52, 14, dim)
	}

	sh := int32(rl.GetScreenHeight())
	rl.DrawText("arrows orbit  +/- zoom  t theme  r reset  ? help  q quit", 20, sh-30, 14, dim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), sw-80, sh-30, 14, dim)
}

func (a *App) drawLegend() {
	text := rgba(a.Theme.Text, 255)
	x, y := int32(20), int32(90)
	rl.DrawText("energy density", x, y, 14, text)
	for i := len(a.Palette) - 1; i >= 0; i-- {
		lo, hi := a.Scene.LevelRange(i)
		row := y + 22 + int32(len(a.Palette)-1-i)*20
		rl.DrawRectangle(x, row, 14, 14, a.Palette[i])
		rl.DrawText(fmt.Sprintf("%.2e - %.2e", lo, hi), x+22, row, 12, text)
	}
}

func (a *App) drawHelp() {
	sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	w, h := int32(360), int32(200)
	x, y := (sw-w)/2, (sh-h)/2
	rl.DrawRectangle(x, y, w, h, rgba(a.Theme.Background, 230))
	text := rgba(a.Theme.Text, 255)
	lines := []string{
		"KEYBOARD SHORTCUTS",
		"",
		"left/right h/l   orbit",
		"up/down k/j      tilt",
		"+ / -            zoom",
		"t                cycle theme",
		"r                reset camera",
		"q / esc          quit",
	}
	for i, l := range lines {
		rl.DrawText(l, x+20, y+20+int32(i)*20, 16, text)
	}
}
