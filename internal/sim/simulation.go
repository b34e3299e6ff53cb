package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/cellsim/internal/bio"
	"github.com/san-kum/cellsim/internal/rigid"
)

// Simulation is the context objects are built against and the loop that
// advances them. It is not safe for concurrent use apart from NextID.
type Simulation struct {
	seed      int64
	rng       *rand.Rand
	nextID    atomic.Int64
	objects   []bio.Object
	world     *rigid.World
	metrics   []Metric
	observers []Observer
	step      int
	t         float64
	contacts  int
}

func New(seed int64) *Simulation {
	return &Simulation{
		seed:      seed,
		rng:       rand.New(rand.NewSource(seed)),
		objects:   make([]bio.Object, 0),
		world:     rigid.NewWorld(),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulation) Seed() int64           { return s.seed }
func (s *Simulation) World() *rigid.World   { return s.world }
func (s *Simulation) Objects() []bio.Object { return s.objects }
func (s *Simulation) Time() float64         { return s.t }
func (s *Simulation) Steps() int            { return s.step }
func (s *Simulation) Contacts() int         { return s.contacts }

// Float64 draws from the simulation's seeded source.
func (s *Simulation) Float64() float64 { return s.rng.Float64() }

func (s *Simulation) NextID() int {
	return int(s.nextID.Add(1) - 1)
}

// AddBioObject registers o and adds its body to the world. Registration order
// matches world body order.
func (s *Simulation) AddBioObject(o bio.Object) {
	s.objects = append(s.objects, o)
	s.world.Add(o.RigidBody())
}

// Enclose keeps bodies inside the box for the rest of the run.
func (s *Simulation) Enclose(min, max mgl64.Vec3, restitution float64) {
	s.world.SetBounds(min, max, restitution)
}

// Tick perturbs every object, steps the world and dispatches overlaps to both
// partners. It returns the number of overlapping pairs.
func (s *Simulation) Tick(dt float64) int {
	for _, o := range s.objects {
		o.Update(s.rng)
	}
	s.world.Step(dt)

	pairs := s.world.Overlaps()
	for _, p := range pairs {
		a, b := s.objects[p.A], s.objects[p.B]
		a.Collided(b)
		b.Collided(a)
	}

	s.step++
	s.t += dt
	s.contacts += len(pairs)
	for _, obs := range s.observers {
		obs.OnTick(s.step, s.t, s.objects)
	}
	return len(pairs)
}

// Snapshot captures the current state of every object.
func (s *Simulation) Snapshot() Frame {
	f := Frame{Step: s.step, Time: s.t, Samples: make([]Sample, len(s.objects))}
	for i, o := range s.objects {
		b := o.RigidBody()
		f.Samples[i] = Sample{
			ID:       o.ID(),
			Kind:     o.Kind().Name(),
			Position: b.Position(),
			Velocity: b.LinearVelocity(),
			Visible:  o.Visible(),
		}
	}
	return f
}

func (s *Simulation) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Frames:  make([]Frame, 0),
		Metrics: make(map[string]float64),
		Series:  make(map[string][]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.record(result)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		result.Contacts += s.Tick(cfg.Dt)
		result.StepsTaken++

		last := i == steps-1
		if last || (cfg.SampleEvery > 0 && result.StepsTaken%cfg.SampleEvery == 0) {
			s.record(result)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (s *Simulation) record(result *Result) {
	result.Frames = append(result.Frames, s.Snapshot())
	for _, m := range s.metrics {
		m.Observe(s.objects, s.t)
		result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("%w: sample interval must not be negative, got %d", ErrInvalidConfig, cfg.SampleEvery)
	}
	return nil
}
