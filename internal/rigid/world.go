package rigid

import "github.com/go-gl/mathgl/mgl64"

// Pair indexes two overlapping bodies in World.Bodies order, A < B.
type Pair struct {
	A, B int
}

type World struct {
	bodies      []*Body
	bounded     bool
	min, max    mgl64.Vec3
	restitution float64
}

func NewWorld() *World {
	return &World{bodies: make([]*Body, 0)}
}

func (w *World) Add(b *Body)          { w.bodies = append(w.bodies, b) }
func (w *World) Bodies() []*Body      { return w.bodies }
func (w *World) NumBodies() int       { return len(w.bodies) }
func (w *World) Bounded() bool        { return w.bounded }
func (w *World) Restitution() float64 { return w.restitution }

// SetBounds encloses the world in an axis-aligned box. A body touching a wall
// has its normal velocity reflected and scaled by restitution, and the rest
// of its velocity damped by its friction.
func (w *World) SetBounds(min, max mgl64.Vec3, restitution float64) {
	w.bounded = true
	w.min, w.max = min, max
	w.restitution = restitution
}

func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		b.integrate(dt)
		if w.bounded && !b.Static() {
			w.contain(b)
		}
	}
}

func (w *World) contain(b *Body) {
	r := 0.0
	if b.shape != nil {
		r = b.shape.Radius
	}
	p := b.motion.Position
	v := b.linearVelocity
	hit := false
	for axis := 0; axis < 3; axis++ {
		lo, hi := w.min[axis]+r, w.max[axis]-r
		if lo > hi {
			lo, hi = (w.min[axis]+w.max[axis])/2, (w.min[axis]+w.max[axis])/2
		}
		switch {
		case p[axis] < lo:
			p[axis] = lo
			if v[axis] < 0 {
				v[axis] = -v[axis] * w.restitution
			}
			hit = true
		case p[axis] > hi:
			p[axis] = hi
			if v[axis] > 0 {
				v[axis] = -v[axis] * w.restitution
			}
			hit = true
		}
	}
	if hit && b.friction > 0 {
		v = v.Mul(1 - clamp01(b.friction))
	}
	b.motion.Position = p
	b.linearVelocity = v
}

// Overlapping reports whether the sphere volumes of a and b intersect.
// Bodies without a shape never overlap.
func Overlapping(a, b *Body) bool {
	if a.shape == nil || b.shape == nil {
		return false
	}
	reach := a.shape.Radius + b.shape.Radius
	d := a.motion.Position.Sub(b.motion.Position)
	return d.Dot(d) < reach*reach
}

// Overlaps returns every pair of bodies for which Overlapping holds.
func (w *World) Overlaps() []Pair {
	var pairs []Pair
	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			if Overlapping(w.bodies[i], w.bodies[j]) {
				pairs = append(pairs, Pair{A: i, B: j})
			}
		}
	}
	return pairs
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
