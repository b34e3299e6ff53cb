package bio

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/cellsim/internal/rigid"
)

const (
	Gravity      = 9.8
	FluidDensity = 1.0
)

func Volume(radius float64) float64 {
	return 4.0 / 3.0 * math.Pi * radius * radius * radius
}

func Mass(radius, density float64) float64 {
	return density * Volume(radius)
}

func LocalInertia(mass float64, shape *rigid.Sphere) mgl64.Vec3 {
	return shape.CalculateLocalInertia(mass)
}

// BuoyantAcceleration returns the net vertical acceleration of a body of the
// given mass and volume: g(ρV - m)/(m + ρV). Positive values point up.
func BuoyantAcceleration(mass, volume float64) float64 {
	displaced := FluidDensity * volume
	return Gravity * (displaced - mass) / (mass + displaced)
}

// Random is the only thing the package needs from a random number generator.
// *math/rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// SampleVelocity draws a velocity of magnitude uniform in [0, maxSpeed] along a
// direction given by a horizontal and a vertical angle, each uniform in
// [angleMin, angleMax) degrees. Draw order is magnitude, horizontal, vertical.
func SampleVelocity(r Random, maxSpeed, angleMin, angleMax float64) mgl64.Vec3 {
	magnitude := r.Float64() * maxSpeed
	span := angleMax - angleMin
	horizontal := mgl64.DegToRad(angleMin + r.Float64()*span)
	vertical := mgl64.DegToRad(angleMin + r.Float64()*span)
	return Decompose(magnitude, horizontal, vertical)
}

// Decompose turns a magnitude and two angles in radians into a vector whose
// length equals the magnitude.
func Decompose(magnitude, horizontal, vertical float64) mgl64.Vec3 {
	y := magnitude * math.Sin(vertical)
	h := magnitude * math.Cos(vertical)
	return mgl64.Vec3{h * math.Cos(horizontal), y, h * math.Sin(horizontal)}
}
