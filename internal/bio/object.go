package bio

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/cellsim/internal/rigid"
)

// Object is a simulated biological object. The set of implementations is
// closed: *Cell and *Molecule.
type Object interface {
	fmt.Stringer
	ID() int
	Kind() *Kind
	Origin() mgl64.Vec3
	CollisionShape() *rigid.Sphere
	RigidBody() *rigid.Body
	Color() [4]float32
	Visible() bool
	SetVisible(v bool)
	// Update applies one tick of random motion.
	Update(r Random)
	// Collided is called by the simulation for each overlapping partner.
	Collided(other Object)

	bioObject()
}

// Context is what objects are constructed against: a random source, an id
// counter and a registry.
type Context interface {
	Random
	NextID() int
	AddBioObject(o Object)
}

// physical is the state shared by every object implementation.
type physical struct {
	id      int
	origin  mgl64.Vec3
	kind    *Kind
	body    *rigid.Body
	visible bool
}

func newPhysical(ctx Context, kind *Kind, origin mgl64.Vec3) physical {
	p := physical{
		origin:  origin,
		kind:    kind,
		body:    kind.newBody(origin),
		visible: true,
	}
	p.body.SetLinearVelocity(kind.Kick(ctx))
	p.body.SetGravity(kind.BuoyantGravity())
	p.id = ctx.NextID()
	return p
}

func (p *physical) ID() int                       { return p.id }
func (p *physical) Origin() mgl64.Vec3            { return p.origin }
func (p *physical) Kind() *Kind                   { return p.kind }
func (p *physical) CollisionShape() *rigid.Sphere { return p.kind.shape }
func (p *physical) RigidBody() *rigid.Body        { return p.body }
func (p *physical) Color() [4]float32             { return p.kind.color }
func (p *physical) Visible() bool                 { return p.visible }
func (p *physical) SetVisible(v bool)             { p.visible = v }
func (p *physical) Friction() float64             { return p.body.Friction() }

// perturb adds a random kick to the current velocity and re-applies the
// buoyant gravity override.
func (p *physical) perturb(r Random) {
	kick := p.kind.Kick(r)
	p.body.SetLinearVelocity(p.body.LinearVelocity().Add(kick))
	p.body.SetGravity(p.kind.BuoyantGravity())
}
