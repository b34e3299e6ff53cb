package rigid

import "github.com/go-gl/mathgl/mgl64"

// Sphere is a collision shape centred on the body origin.
type Sphere struct {
	Radius float64
}

func NewSphere(radius float64) *Sphere {
	return &Sphere{Radius: radius}
}

// CalculateLocalInertia returns the diagonal of the inertia tensor of a solid
// sphere of the given mass.
func (s *Sphere) CalculateLocalInertia(mass float64) mgl64.Vec3 {
	e := 0.4 * mass * s.Radius * s.Radius
	return mgl64.Vec3{e, e, e}
}
