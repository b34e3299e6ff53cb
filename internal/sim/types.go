package sim

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/cellsim/internal/bio"
)

var (
	// ErrInvalidConfig indicates a run configuration that cannot be executed.
	ErrInvalidConfig = errors.New("sim: invalid run configuration")
)

type Config struct {
	Dt       float64
	Duration float64
	// SampleEvery records a frame every n ticks; 0 records only the first
	// and last frame.
	SampleEvery int
}

func DefaultConfig() Config {
	return Config{
		Dt:          1.0 / 60.0,
		Duration:    10.0,
		SampleEvery: 6,
	}
}

// Sample is one object's state at a frame.
type Sample struct {
	ID       int
	Kind     string
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Visible  bool
}

type Frame struct {
	Step    int
	Time    float64
	Samples []Sample
}

type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	Series     map[string][]float64
	StepsTaken int
	Contacts   int
}

// Metric summarizes the population at each recorded frame.
type Metric interface {
	Name() string
	Observe(objs []bio.Object, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(step int, t float64, objs []bio.Object)
}
