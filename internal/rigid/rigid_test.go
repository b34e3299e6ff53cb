package rigid

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vec3AlmostEqual(a, b mgl64.Vec3, tol float64) bool {
	return a.ApproxEqualThreshold(b, tol)
}

func newTestBody(origin mgl64.Vec3, mass float64) *Body {
	s := NewSphere(1.0)
	return NewBody(BodyInfo{
		Mass:         mass,
		Motion:       NewMotionState(origin),
		Shape:        s,
		LocalInertia: s.CalculateLocalInertia(mass),
	})
}

func TestSphereInertia(t *testing.T) {
	s := NewSphere(5.0)
	got := s.CalculateLocalInertia(10.0)
	want := 0.4 * 10.0 * 25.0
	for i := 0; i < 3; i++ {
		if math.Abs(got[i]-want) > 1e-10 {
			t.Errorf("inertia[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestNewBody(t *testing.T) {
	b := newTestBody(mgl64.Vec3{1, 2, 3}, 2.0)

	if !vec3AlmostEqual(b.Position(), mgl64.Vec3{1, 2, 3}, 1e-12) {
		t.Errorf("Position = %v", b.Position())
	}
	if b.InvMass() != 0.5 {
		t.Errorf("InvMass = %v, want 0.5", b.InvMass())
	}
	if b.Static() {
		t.Error("body with mass should be dynamic")
	}
	if b.Orientation() != mgl64.QuatIdent() {
		t.Errorf("Orientation = %v, want identity", b.Orientation())
	}
}

func TestStaticBodyDoesNotMove(t *testing.T) {
	w := NewWorld()
	b := newTestBody(mgl64.Vec3{5, 5, 5}, 0)
	b.SetLinearVelocity(mgl64.Vec3{1, 1, 1})
	b.SetGravity(mgl64.Vec3{0, -10, 0})
	w.Add(b)

	w.Step(0.1)

	if !vec3AlmostEqual(b.Position(), mgl64.Vec3{5, 5, 5}, 1e-12) {
		t.Errorf("static body moved to %v", b.Position())
	}
}

func TestStepWithGravity(t *testing.T) {
	w := NewWorld()
	b := newTestBody(mgl64.Vec3{}, 1.0)
	b.SetGravity(mgl64.Vec3{0, -10, 0})
	w.Add(b)

	for i := 0; i < 3; i++ {
		w.Step(0.1)
	}

	if !vec3AlmostEqual(b.LinearVelocity(), mgl64.Vec3{0, -3, 0}, 1e-9) {
		t.Errorf("velocity = %v, want {0 -3 0}", b.LinearVelocity())
	}
	// semi-implicit Euler: 0.1*(-1) + 0.1*(-2) + 0.1*(-3)
	if !vec3AlmostEqual(b.Position(), mgl64.Vec3{0, -0.6, 0}, 1e-9) {
		t.Errorf("position = %v, want {0 -0.6 0}", b.Position())
	}
}

func TestStepZeroDt(t *testing.T) {
	w := NewWorld()
	b := newTestBody(mgl64.Vec3{}, 1.0)
	b.SetLinearVelocity(mgl64.Vec3{5, 10, 15})
	w.Add(b)

	w.Step(0)

	if !vec3AlmostEqual(b.Position(), mgl64.Vec3{}, 1e-12) {
		t.Errorf("position changed with dt=0: %v", b.Position())
	}
}

func TestAngularIntegrationKeepsUnitQuat(t *testing.T) {
	w := NewWorld()
	b := newTestBody(mgl64.Vec3{}, 1.0)
	b.SetAngularVelocity(mgl64.Vec3{0, 1, 0})
	w.Add(b)

	for i := 0; i < 100; i++ {
		w.Step(0.05)
	}

	if math.Abs(b.Orientation().Len()-1) > 1e-9 {
		t.Errorf("orientation not normalized: len %v", b.Orientation().Len())
	}
}

func TestBoundsContainBodies(t *testing.T) {
	w := NewWorld()
	w.SetBounds(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 10, 10}, 0)
	b := newTestBody(mgl64.Vec3{5, 1.5, 5}, 1.0)
	b.SetLinearVelocity(mgl64.Vec3{0, -20, 0})
	w.Add(b)

	w.Step(0.1)

	if b.Position().Y() != 1.0 {
		t.Errorf("y = %v, want 1.0 (radius clearance)", b.Position().Y())
	}
	if b.LinearVelocity().Y() != 0 {
		t.Errorf("vy = %v, want 0 with zero restitution", b.LinearVelocity().Y())
	}
}

func TestBoundsFrictionDamps(t *testing.T) {
	w := NewWorld()
	w.SetBounds(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 10, 10}, 0)
	s := NewSphere(1.0)
	b := NewBody(BodyInfo{Mass: 1, Motion: NewMotionState(mgl64.Vec3{5, 1, 5}), Shape: s, Friction: 0.5})
	b.SetLinearVelocity(mgl64.Vec3{2, -1, 0})
	w.Add(b)

	w.Step(0.01)

	if math.Abs(b.LinearVelocity().X()-1.0) > 1e-9 {
		t.Errorf("vx = %v, want 1.0 after friction", b.LinearVelocity().X())
	}
}

func TestOverlaps(t *testing.T) {
	w := NewWorld()
	w.Add(newTestBody(mgl64.Vec3{0, 0, 0}, 1))
	w.Add(newTestBody(mgl64.Vec3{1.5, 0, 0}, 1))
	w.Add(newTestBody(mgl64.Vec3{10, 0, 0}, 1))

	pairs := w.Overlaps()
	if len(pairs) != 1 {
		t.Fatalf("expected 1 overlap, got %d", len(pairs))
	}
	if pairs[0] != (Pair{A: 0, B: 1}) {
		t.Errorf("pair = %+v, want {0 1}", pairs[0])
	}
}

func TestOverlapping(t *testing.T) {
	a := newTestBody(mgl64.Vec3{0, 0, 0}, 1)
	tests := []struct {
		name string
		b    *Body
		want bool
	}{
		{"intersecting", newTestBody(mgl64.Vec3{1.9, 0, 0}, 1), true},
		{"touching", newTestBody(mgl64.Vec3{2, 0, 0}, 1), false},
		{"apart", newTestBody(mgl64.Vec3{0, 5, 0}, 1), false},
		{"no shape", NewBody(BodyInfo{Mass: 1, Motion: NewMotionState(mgl64.Vec3{})}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlapping(a, tt.b); got != tt.want {
				t.Errorf("Overlapping = %v, want %v", got, tt.want)
			}
			if got := Overlapping(tt.b, a); got != tt.want {
				t.Errorf("Overlapping reversed = %v, want %v", got, tt.want)
			}
		})
	}
}
