package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/emfield/internal/viz"
)

const (
	orbitSpeed = 1.2
	tiltSpeed  = 0.9
	fontSize   = 20
)

type Options struct {
	Width, Height int
	Theme         string
	Subtitle      string
}

// App holds the window state for one scene.
type App struct {
	Scene    *viz.Scene
	Opts     Options
	Orbit    *viz.Camera
	Camera   rl.Camera3D
	Theme    viz.Theme
	Palette  []color.RGBA
	ShowHelp bool
}

func NewApp(scene *viz.Scene, opts Options) *App {
	a := &App{
		Scene: scene,
		Opts:  opts,
		Orbit: viz.NewCamera(),
		Camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, 4),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
	}
	a.setTheme(viz.GetTheme(opts.Theme))
	a.syncCamera()
	return a
}

func initWindow(w, h int) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(int32(w), int32(h), viz.Title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// Show opens a window on scene and blocks until it is closed.
func Show(scene *viz.Scene, opts Options) {
	initWindow(opts.Width, opts.Height)
	defer rl.CloseWindow()
	NewApp(scene, opts).RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles input for one frame and reports whether to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return true
	}
	dt := float64(rl.GetFrameTime())
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyH) {
		a.Orbit.Orbit(-orbitSpeed * dt)
	}
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyL) {
		a.Orbit.Orbit(orbitSpeed * dt)
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyK) {
		a.Orbit.Tilt(tiltSpeed * dt)
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyJ) {
		a.Orbit.Tilt(-tiltSpeed * dt)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.Orbit.ZoomIn()
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.Orbit.ZoomOut()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.setTheme(viz.NextTheme(a.Theme.Name))
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Orbit.Reset()
	}
	if rl.IsKeyPressed(rl.KeySlash) {
		a.ShowHelp = !a.ShowHelp
	}
	a.syncCamera()
	return false
}

func (a *App) setTheme(t viz.Theme) {
	a.Theme = t
	ramp := t.Ramp(a.Scene.Wireframe.Levels)
	a.Palette = make([]color.RGBA, len(ramp))
	for i, c := range ramp {
		a.Palette[i] = rgba(c, 255)
	}
}

func (a *App) syncCamera() {
	a.Camera.Position = toRL(a.Orbit.Eye())
}

// toRL maps z-up scene coordinates onto raylib's y-up frame.
func toRL(v viz.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Z), float32(-v.Y))
}
