package rigid

import "github.com/go-gl/mathgl/mgl64"

type MotionState struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

func NewMotionState(origin mgl64.Vec3) MotionState {
	return MotionState{Position: origin, Orientation: mgl64.QuatIdent()}
}

// BodyInfo carries everything needed to construct a Body.
type BodyInfo struct {
	Mass         float64
	Motion       MotionState
	Shape        *Sphere
	LocalInertia mgl64.Vec3
	Friction     float64
}

// Body is a dynamic rigid body. A zero mass makes the body static.
type Body struct {
	motion          MotionState
	shape           *Sphere
	mass            float64
	invMass         float64
	localInertia    mgl64.Vec3
	friction        float64
	linearVelocity  mgl64.Vec3
	angularVelocity mgl64.Vec3
	gravity         mgl64.Vec3
}

func NewBody(info BodyInfo) *Body {
	b := &Body{
		motion:       info.Motion,
		shape:        info.Shape,
		mass:         info.Mass,
		localInertia: info.LocalInertia,
		friction:     info.Friction,
	}
	if info.Mass > 0 {
		b.invMass = 1 / info.Mass
	}
	return b
}

func (b *Body) Shape() *Sphere             { return b.shape }
func (b *Body) Mass() float64              { return b.mass }
func (b *Body) InvMass() float64           { return b.invMass }
func (b *Body) Friction() float64          { return b.friction }
func (b *Body) LocalInertia() mgl64.Vec3   { return b.localInertia }
func (b *Body) Position() mgl64.Vec3       { return b.motion.Position }
func (b *Body) Orientation() mgl64.Quat    { return b.motion.Orientation }
func (b *Body) LinearVelocity() mgl64.Vec3 { return b.linearVelocity }
func (b *Body) Gravity() mgl64.Vec3        { return b.gravity }

func (b *Body) AngularVelocity() mgl64.Vec3 { return b.angularVelocity }

func (b *Body) SetLinearVelocity(v mgl64.Vec3)  { b.linearVelocity = v }
func (b *Body) SetAngularVelocity(w mgl64.Vec3) { b.angularVelocity = w }

// SetGravity overrides the world acceleration for this body only.
func (b *Body) SetGravity(g mgl64.Vec3) { b.gravity = g }

// Static reports whether the body is unaffected by integration.
func (b *Body) Static() bool { return b.invMass == 0 }

func (b *Body) integrate(dt float64) {
	if b.Static() {
		return
	}
	b.linearVelocity = b.linearVelocity.Add(b.gravity.Mul(dt))
	b.motion.Position = b.motion.Position.Add(b.linearVelocity.Mul(dt))

	if b.angularVelocity.Len() > 0 {
		spin := mgl64.Quat{W: 0, V: b.angularVelocity.Mul(0.5 * dt)}
		q := b.motion.Orientation
		b.motion.Orientation = q.Add(spin.Mul(q)).Normalize()
	}
}
