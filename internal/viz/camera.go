package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera orbits the origin. Points are expected in scene space, roughly the
// cube [-1, 1]^3.
type Camera struct {
	Yaw, Pitch float64
	Distance   float64
	Near       float64
	Zoom       float64
}

func NewCamera() *Camera {
	return &Camera{Yaw: mgl64.DegToRad(30), Pitch: mgl64.DegToRad(20), Distance: 4, Near: 0.1, Zoom: 1}
}

func (c *Camera) RotateX(a float64) { c.Pitch += a }
func (c *Camera) RotateY(a float64) { c.Yaw += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotation() mgl64.Mat3 {
	return mgl64.Rotate3DX(c.Pitch).Mul3(mgl64.Rotate3DY(c.Yaw))
}

// project returns screen coordinates, depth, the perspective factor in dots
// per scene unit, and whether the point is in front of the camera.
func (c *Camera) project(rot mgl64.Mat3, p mgl64.Vec3, sw, sh int) (int, int, float64, float64, bool) {
	v := rot.Mul3x1(p).Mul(c.Zoom)
	if v.Z() >= c.Distance-c.Near {
		return 0, 0, 0, 0, false
	}
	minDim := float64(min(sw, sh))
	scale := c.Distance / (c.Distance - v.Z()) * minDim / 3
	sx := int(math.Round(v.X()*scale)) + sw/2
	sy := int(math.Round(-v.Y()*scale)) + sh/2
	return sx, sy, v.Z(), scale * c.Zoom, true
}

// Project maps p to screen coordinates on an sw x sh dot surface. ok is false
// for points behind the camera or off screen.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (x, y int, depth float64, ok bool) {
	x, y, depth, _, front := c.project(c.rotation(), p, sw, sh)
	return x, y, depth, front && x >= 0 && x < sw && y >= 0 && y < sh
}

type Edge struct {
	Start, End mgl64.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe               { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e mgl64.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }

// BoxWireframe returns the twelve edges of the box spanned by lo and hi.
func BoxWireframe(lo, hi mgl64.Vec3) *Wireframe {
	w := NewWireframe()
	corner := func(i int) mgl64.Vec3 {
		v := lo
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				v[axis] = hi[axis]
			}
		}
		return v
	}
	for i := 0; i < 8; i++ {
		for axis := 0; axis < 3; axis++ {
			if j := i | 1<<axis; j != i {
				w.AddEdge(corner(i), corner(j))
			}
		}
	}
	return w
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe back to front.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.DotSize()
	rot := cam.rotation()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, _, v1 := cam.project(rot, e.Start, sw, sh)
		x2, y2, d2, _, v2 := cam.project(rot, e.End, sw, sh)
		if v1 && v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}
