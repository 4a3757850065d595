package viz

import (
	"math"
	"sort"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}

const (
	defaultAzimuth   = -math.Pi / 3
	defaultElevation = math.Pi / 7
	maxElevation     = math.Pi/2 - 0.01
)

// Camera orbits the origin with z up. Azimuth turns about the z axis,
// elevation tilts the view above the xy plane.
type Camera struct {
	Distance           float64
	Azimuth, Elevation float64
	Zoom               float64
}

func NewCamera() *Camera {
	c := &Camera{Distance: 4}
	c.Reset()
	return c
}

func (c *Camera) Reset() {
	c.Azimuth, c.Elevation, c.Zoom = defaultAzimuth, defaultElevation, 1.0
}

func (c *Camera) Orbit(a float64) { c.Azimuth = math.Mod(c.Azimuth+a, 2*math.Pi) }
func (c *Camera) Tilt(a float64) {
	c.Elevation = math.Max(-maxElevation, math.Min(maxElevation, c.Elevation+a))
}
func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// View maps a world point to (right, up, depth) camera coordinates; depth
// grows toward the viewer.
func (c *Camera) View(p Vec3) Vec3 {
	ca, sa := math.Cos(c.Azimuth), math.Sin(c.Azimuth)
	x1 := p.X*ca - p.Y*sa
	y1 := p.X*sa + p.Y*ca
	ce, se := math.Cos(c.Elevation), math.Sin(c.Elevation)
	return Vec3{
		X: x1,
		Y: y1*se + p.Z*ce,
		Z: -y1*ce + p.Z*se,
	}
}

// Eye is the camera position in world coordinates, for renderers that do
// their own projection.
func (c *Camera) Eye() Vec3 {
	ca, sa := math.Cos(c.Azimuth), math.Sin(c.Azimuth)
	ce, se := math.Cos(c.Elevation), math.Sin(c.Elevation)
	d := c.Distance / c.Zoom
	return Vec3{-ce * sa * d, -ce * ca * d, se * d}
}

// Project converts world coordinates to screen coordinates on an sw×sh
// surface. Returns x, y, depth, and whether the point is in front of the
// camera; off-screen points are left to the caller to clip.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	v := c.View(p).Scale(c.Zoom)
	if v.Z >= c.Distance-0.1 {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - v.Z)
	minDim := float64(min(sw, sh))
	pScale := minDim / 1.6
	sx := int(v.X*scale*pScale) + sw/2
	sy := int(-v.Y*scale*pScale) + sh/2
	return sx, sy, v.Z, true
}

// FrameLevel marks bounding-box edges, which carry no energy.
const FrameLevel = -1

type Edge struct {
	Start, End Vec3
	Level      int
}

type Wireframe struct {
	Edges  []Edge
	Levels int
}

func NewWireframe(levels int) *Wireframe {
	return &Wireframe{Edges: make([]Edge, 0), Levels: levels}
}

func (w *Wireframe) AddEdge(s, e Vec3, level int) { w.Edges = append(w.Edges, Edge{s, e, level}) }

// AddBox appends the twelve edges of the axis-aligned cube of side size
// centred at the origin.
func (w *Wireframe) AddBox(size float64) {
	s := size / 2
	v := []Vec3{{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s}, {-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s}}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]], FrameLevel)
	}
}

type ProjectedEdge struct {
	X1, Y1, X2, Y2 int
	Depth          float64
	Level          int
}

// ProjectEdges projects every edge lying wholly in front of the camera and
// orders them back to front.
func ProjectEdges(w *Wireframe, cam *Camera, sw, sh int) []ProjectedEdge {
	proj := make([]ProjectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, sw, sh)
		x2, y2, d2, v2 := cam.Project(e.End, sw, sh)
		if v1 && v2 {
			proj = append(proj, ProjectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Level})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].Depth < proj[j].Depth })
	return proj
}

// Render3D draws the wireframe to the canvas using a painter's algorithm;
// nearer edges take over the color of the cells they cross.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	for _, e := range ProjectEdges(w, cam, c.Width*2, c.Height*4) {
		c.DrawLine(e.X1, e.Y1, e.X2, e.Y2, e.Level)
	}
}
