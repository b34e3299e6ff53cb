package metrics

import (
	"github.com/san-kum/cellsim/internal/bio"
	"github.com/san-kum/cellsim/internal/sim"
	"gonum.org/v1/gonum/stat"
)

// Default returns the metrics recorded by every run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewMeanHeight(),
		NewHeightSpread(),
		NewMeanSpeed(),
		NewDisplacement(),
		NewKineticEnergy(),
		NewEnergyDrift(),
		NewOverlap(),
	}
}

// sampled keeps the latest value computed from a per-object quantity.
type sampled struct {
	name    string
	value   float64
	scratch []float64
}

func (s *sampled) Name() string   { return s.name }
func (s *sampled) Value() float64 { return s.value }
func (s *sampled) Reset()         { s.value = 0 }

func (s *sampled) collect(objs []bio.Object, f func(bio.Object) float64) []float64 {
	s.scratch = s.scratch[:0]
	for _, o := range objs {
		s.scratch = append(s.scratch, f(o))
	}
	return s.scratch
}

type MeanHeight struct{ sampled }

func NewMeanHeight() *MeanHeight {
	return &MeanHeight{sampled{name: "mean_height"}}
}

func (m *MeanHeight) Observe(objs []bio.Object, t float64) {
	if len(objs) == 0 {
		m.value = 0
		return
	}
	m.value = stat.Mean(m.collect(objs, height), nil)
}

// HeightSpread is the standard deviation of object heights.
type HeightSpread struct{ sampled }

func NewHeightSpread() *HeightSpread {
	return &HeightSpread{sampled{name: "height_spread"}}
}

func (m *HeightSpread) Observe(objs []bio.Object, t float64) {
	if len(objs) < 2 {
		m.value = 0
		return
	}
	m.value = stat.StdDev(m.collect(objs, height), nil)
}

type MeanSpeed struct{ sampled }

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{sampled{name: "mean_speed"}}
}

func (m *MeanSpeed) Observe(objs []bio.Object, t float64) {
	if len(objs) == 0 {
		m.value = 0
		return
	}
	m.value = stat.Mean(m.collect(objs, speed), nil)
}

// Displacement is the mean distance of objects from where they were placed.
type Displacement struct{ sampled }

func NewDisplacement() *Displacement {
	return &Displacement{sampled{name: "displacement"}}
}

func (m *Displacement) Observe(objs []bio.Object, t float64) {
	if len(objs) == 0 {
		m.value = 0
		return
	}
	m.value = stat.Mean(m.collect(objs, displacement), nil)
}

func height(o bio.Object) float64 { return o.RigidBody().Position().Y() }
func speed(o bio.Object) float64  { return o.RigidBody().LinearVelocity().Len() }

func displacement(o bio.Object) float64 {
	return o.RigidBody().Position().Sub(o.Origin()).Len()
}
