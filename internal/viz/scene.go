package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/cellsim/internal/sim"
)

// Scene maps a world-space box into camera space and draws samples inside it.
type Scene struct {
	Camera *Camera
	// Radii gives the drawn radius per kind name; kinds not listed are
	// drawn as single dots.
	Radii map[string]float64
	// Hidden kinds are skipped.
	Hidden map[string]bool

	center mgl64.Vec3
	scale  float64
	box    *Wireframe
}

func NewScene(lo, hi mgl64.Vec3) *Scene {
	span := hi.Sub(lo)
	half := math.Max(span.X(), math.Max(span.Y(), span.Z())) / 2
	if half <= 0 {
		half = 1
	}
	s := &Scene{
		Camera: NewCamera(),
		Radii:  make(map[string]float64),
		Hidden: make(map[string]bool),
		center: lo.Add(hi).Mul(0.5),
		scale:  1 / half,
	}
	s.box = BoxWireframe(s.toScene(lo), s.toScene(hi))
	return s
}

func (s *Scene) toScene(p mgl64.Vec3) mgl64.Vec3 {
	return p.Sub(s.center).Mul(s.scale)
}

// Draw clears c and renders the box and every visible sample.
func (s *Scene) Draw(c *Canvas, samples []sim.Sample) {
	c.Clear()
	Render3D(c, s.box, s.Camera)

	sw, sh := c.DotSize()
	rot := s.Camera.rotation()
	for _, smp := range samples {
		if !smp.Visible || s.Hidden[smp.Kind] {
			continue
		}
		x, y, _, perspective, ok := s.Camera.project(rot, s.toScene(smp.Position), sw, sh)
		if !ok {
			continue
		}
		r := int(math.Round(s.Radii[smp.Kind] * s.scale * perspective))
		c.DrawCircle(x, y, r)
	}
}
