package metrics

import (
	"math"

	"github.com/san-kum/cellsim/internal/bio"
)

// KineticEnergy is the total translational kinetic energy of the population.
type KineticEnergy struct {
	name  string
	value float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(objs []bio.Object, t float64) {
	e.value = kinetic(objs)
}

func (e *KineticEnergy) Value() float64 { return e.value }
func (e *KineticEnergy) Reset()         { e.value = 0 }

func kinetic(objs []bio.Object) float64 {
	total := 0.0
	for _, o := range objs {
		b := o.RigidBody()
		v := b.LinearVelocity()
		total += 0.5 * b.Mass() * v.Dot(v)
	}
	return total
}

// EnergyDrift tracks the largest relative change of kinetic energy from the
// first observation. Random kicks make it grow like a random walk.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(objs []bio.Object, t float64) {
	energy := kinetic(objs)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
