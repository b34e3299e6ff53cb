package bio

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewCellInitialState(t *testing.T) {
	ctx := newTestContext(1)
	k := MustKind(DefaultCellParams())
	origin := mgl64.Vec3{10, 20, 30}

	c := NewCell(ctx, k, origin)

	if c.RigidBody().Position() != origin {
		t.Errorf("body position = %v, want %v", c.RigidBody().Position(), origin)
	}
	if c.Origin() != origin {
		t.Errorf("origin = %v, want %v", c.Origin(), origin)
	}
	if c.RigidBody().Mass() != k.Mass() {
		t.Errorf("body mass = %v, want %v", c.RigidBody().Mass(), k.Mass())
	}
	if c.Friction() != DefaultFriction {
		t.Errorf("friction = %v, want %v", c.Friction(), DefaultFriction)
	}
	if v := c.RigidBody().LinearVelocity().Len(); v > DefaultMaxVelChange+1e-12 {
		t.Errorf("initial speed %v exceeds %v", v, DefaultMaxVelChange)
	}
	want := mgl64.Vec3{0, BuoyantAcceleration(k.Mass(), k.Volume()), 0}
	if c.RigidBody().Gravity() != want {
		t.Errorf("gravity = %v, want %v", c.RigidBody().Gravity(), want)
	}
	if !c.Visible() {
		t.Error("new cell should be visible")
	}
	if c.Color() != DefaultCellColor {
		t.Errorf("color = %v, want %v", c.Color(), DefaultCellColor)
	}
	if len(ctx.objects) != 0 {
		t.Error("NewCell must not register the cell")
	}
}

func TestCellsShareShape(t *testing.T) {
	ctx := newTestContext(1)
	k := MustKind(DefaultCellParams())
	a := NewCell(ctx, k, mgl64.Vec3{})
	b := NewCell(ctx, k, mgl64.Vec3{20, 0, 0})

	if a.CollisionShape() != b.CollisionShape() {
		t.Error("cells of one kind must share a collision shape")
	}
	if a.RigidBody() == b.RigidBody() {
		t.Error("cells must own distinct bodies")
	}
	if a.RigidBody().Shape() != k.Shape() {
		t.Error("body shape should be the kind's shape")
	}
}

func TestCellIDsIncrease(t *testing.T) {
	ctx := newTestContext(1)
	ctx.nextID = 42
	k := MustKind(DefaultCellParams())

	prev := -1
	seen := make(map[int]bool)
	for i := 0; i < 50; i++ {
		c := NewCell(ctx, k, mgl64.Vec3{})
		if i == 0 && c.ID() != 42 {
			t.Errorf("first id = %d, want 42", c.ID())
		}
		if c.ID() <= prev {
			t.Fatalf("id %d not greater than %d", c.ID(), prev)
		}
		if seen[c.ID()] {
			t.Fatalf("duplicate id %d", c.ID())
		}
		seen[c.ID()] = true
		prev = c.ID()
	}
}

func TestCellString(t *testing.T) {
	ctx := newTestContext(1)
	ctx.nextID = 7
	c := NewCell(ctx, MustKind(DefaultCellParams()), mgl64.Vec3{})
	if got := c.String(); got != "I am cell 7" {
		t.Errorf("String() = %q", got)
	}
}

func TestSetVisible(t *testing.T) {
	c := NewCell(newTestContext(1), MustKind(DefaultCellParams()), mgl64.Vec3{})
	before := c.RigidBody().LinearVelocity()
	c.SetVisible(false)
	if c.Visible() {
		t.Error("expected invisible")
	}
	if c.RigidBody().LinearVelocity() != before {
		t.Error("visibility must not touch physical state")
	}
}

func TestUpdateAddsToVelocity(t *testing.T) {
	k := MustKind(DefaultCellParams())
	c := NewCell(newTestContext(1), k, mgl64.Vec3{})
	c.RigidBody().SetLinearVelocity(mgl64.Vec3{1, 2, 3})

	// magnitude 0.5*0.5, horizontal 0°, vertical 0°: kick of {0.25 0 0}
	c.Update(&sequence{vals: []float64{0.5, 0, 0}})

	want := mgl64.Vec3{1.25, 2, 3}
	if !c.RigidBody().LinearVelocity().ApproxEqualThreshold(want, 1e-12) {
		t.Errorf("velocity = %v, want %v", c.RigidBody().LinearVelocity(), want)
	}
}

func TestUpdateGravityIdempotent(t *testing.T) {
	k := MustKind(DefaultCellParams())
	ctx := newTestContext(3)
	c := NewCell(ctx, k, mgl64.Vec3{})
	want := c.RigidBody().Gravity()

	for i := 0; i < 100; i++ {
		c.RigidBody().SetGravity(mgl64.Vec3{0, -9.8, 0})
		c.Update(ctx)
		if c.RigidBody().Gravity() != want {
			t.Fatalf("tick %d: gravity = %v, want %v", i, c.RigidBody().Gravity(), want)
		}
	}
}

func TestUpdateRandomWalkBounded(t *testing.T) {
	ctx := newTestContext(9)
	k := MustKind(DefaultCellParams())
	c := NewCell(ctx, k, mgl64.Vec3{})
	start := c.RigidBody().LinearVelocity()

	const ticks = 200
	for i := 0; i < ticks; i++ {
		c.Update(ctx)
	}
	drift := c.RigidBody().LinearVelocity().Sub(start).Len()
	if drift > ticks*k.MaxVelChange() {
		t.Errorf("velocity drifted %v, more than %d kicks allow", drift, ticks)
	}
}

func TestCollidedDispatch(t *testing.T) {
	ctx := newTestContext(1)
	cell := NewCell(ctx, MustKind(DefaultCellParams()), mgl64.Vec3{})
	other := NewCell(ctx, MustKind(DefaultCellParams()), mgl64.Vec3{1, 0, 0})
	mol := NewMolecule(ctx, MustKind(DefaultMoleculeParams()), mgl64.Vec3{2, 0, 0})

	v := cell.RigidBody().LinearVelocity()
	for _, o := range []Object{other, mol, cell} {
		cell.Collided(o)
		mol.Collided(o)
	}
	if cell.RigidBody().LinearVelocity() != v {
		t.Error("collisions should not change state yet")
	}
}

func TestMolecule(t *testing.T) {
	ctx := newTestContext(1)
	k := MustKind(DefaultMoleculeParams())
	m := NewMolecule(ctx, k, mgl64.Vec3{1, 1, 1})

	if m.String() != "I am molecule 0" {
		t.Errorf("String() = %q", m.String())
	}
	// density 0.9 floats
	if m.RigidBody().Gravity().Y() <= 0 {
		t.Errorf("molecule gravity %v should point up", m.RigidBody().Gravity())
	}
	m.Update(ctx)
	if m.RigidBody().Gravity() != k.BuoyantGravity() {
		t.Error("update should keep buoyant gravity")
	}
}
