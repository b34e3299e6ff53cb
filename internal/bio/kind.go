package bio

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/cellsim/internal/rigid"
)

const (
	DefaultCellRadius       = 5.0
	DefaultCellDensity      = 1.03
	DefaultMaxVelChange     = 0.5
	DefaultFriction         = 0.2
	DefaultAngleMax         = 360.0
	DefaultMoleculeRadius   = 0.5
	DefaultMoleculeDensity  = 0.9
	DefaultMoleculeMaxSpeed = 1.0
)

var (
	DefaultCellColor     = [4]float32{1.0, 0.5, 0.5, 1.0}
	DefaultMoleculeColor = [4]float32{0.2, 0.6, 1.0, 1.0}
)

// KindParams is the user-facing description of an object kind.
type KindParams struct {
	Name         string
	Radius       float64
	Density      float64
	MaxVelChange float64
	Friction     float64
	Color        [4]float32
	AngleMin     float64
	AngleMax     float64
}

func DefaultCellParams() KindParams {
	return KindParams{
		Name:         "cell",
		Radius:       DefaultCellRadius,
		Density:      DefaultCellDensity,
		MaxVelChange: DefaultMaxVelChange,
		Friction:     DefaultFriction,
		Color:        DefaultCellColor,
		AngleMax:     DefaultAngleMax,
	}
}

func DefaultMoleculeParams() KindParams {
	return KindParams{
		Name:         "molecule",
		Radius:       DefaultMoleculeRadius,
		Density:      DefaultMoleculeDensity,
		MaxVelChange: DefaultMoleculeMaxSpeed,
		Friction:     DefaultFriction,
		Color:        DefaultMoleculeColor,
		AngleMax:     DefaultAngleMax,
	}
}

// Kind is the immutable configuration shared by every object of one kind.
// Objects hold a pointer to it; nothing in it changes after NewKind.
type Kind struct {
	name         string
	radius       float64
	density      float64
	volume       float64
	mass         float64
	maxVelChange float64
	friction     float64
	color        [4]float32
	angleMin     float64
	angleMax     float64
	shape        *rigid.Sphere
	inertia      mgl64.Vec3
}

func NewKind(p KindParams) (*Kind, error) {
	if p.Radius <= 0 || p.Density <= 0 {
		return nil, fmt.Errorf("%w: kind %q radius=%g density=%g", ErrInvalidGeometry, p.Name, p.Radius, p.Density)
	}
	if p.MaxVelChange < 0 {
		return nil, fmt.Errorf("bio: kind %q max velocity change must not be negative, got %g", p.Name, p.MaxVelChange)
	}
	if p.AngleMax < p.AngleMin {
		return nil, fmt.Errorf("bio: kind %q angle range [%g, %g) is inverted", p.Name, p.AngleMin, p.AngleMax)
	}

	shape := rigid.NewSphere(p.Radius)
	mass := Mass(p.Radius, p.Density)
	return &Kind{
		name:         p.Name,
		radius:       p.Radius,
		density:      p.Density,
		volume:       Volume(p.Radius),
		mass:         mass,
		maxVelChange: p.MaxVelChange,
		friction:     p.Friction,
		color:        p.Color,
		angleMin:     p.AngleMin,
		angleMax:     p.AngleMax,
		shape:        shape,
		inertia:      LocalInertia(mass, shape),
	}, nil
}

// MustKind is NewKind for parameters known to be valid.
func MustKind(p KindParams) *Kind {
	k, err := NewKind(p)
	if err != nil {
		panic(err)
	}
	return k
}

func (k *Kind) Name() string                   { return k.name }
func (k *Kind) Radius() float64                { return k.radius }
func (k *Kind) Density() float64               { return k.density }
func (k *Kind) Volume() float64                { return k.volume }
func (k *Kind) Mass() float64                  { return k.mass }
func (k *Kind) MaxVelChange() float64          { return k.maxVelChange }
func (k *Kind) Friction() float64              { return k.friction }
func (k *Kind) Color() [4]float32              { return k.color }
func (k *Kind) Shape() *rigid.Sphere           { return k.shape }
func (k *Kind) LocalInertia() mgl64.Vec3       { return k.inertia }
func (k *Kind) AngleRange() (float64, float64) { return k.angleMin, k.angleMax }

// BuoyantGravity is the gravity override applied to every body of this kind.
// It is evaluated on each call.
func (k *Kind) BuoyantGravity() mgl64.Vec3 {
	return mgl64.Vec3{0, BuoyantAcceleration(k.mass, k.volume), 0}
}

// Kick samples one random velocity increment for an object of this kind.
func (k *Kind) Kick(r Random) mgl64.Vec3 {
	return SampleVelocity(r, k.maxVelChange, k.angleMin, k.angleMax)
}

func (k *Kind) newBody(origin mgl64.Vec3) *rigid.Body {
	return rigid.NewBody(rigid.BodyInfo{
		Mass:         k.mass,
		Motion:       rigid.NewMotionState(origin),
		Shape:        k.shape,
		LocalInertia: k.inertia,
		Friction:     k.friction,
	})
}
