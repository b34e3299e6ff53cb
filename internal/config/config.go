package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/cellsim/internal/bio"
	"github.com/san-kum/cellsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 1.0 / 60.0
	DefaultDuration    = 10.0
	DefaultCells       = 27
	DefaultSampleEvery = 6
	DefaultBoxSize     = 100.0
)

type Config struct {
	Cell        KindConfig  `yaml:"cell"`
	Molecule    KindConfig  `yaml:"molecule"`
	Box         BoxConfig   `yaml:"box"`
	Cells       int         `yaml:"cells"`
	Molecules   int         `yaml:"molecules"`
	Clamp       bool        `yaml:"clamp"`
	Dt          float64     `yaml:"dt"`
	Duration    float64     `yaml:"duration"`
	SampleEvery int         `yaml:"sample_every"`
	Seed        int64       `yaml:"seed"`
	Walls       WallsConfig `yaml:"walls"`
}

type KindConfig struct {
	Radius       float64    `yaml:"radius"`
	Density      float64    `yaml:"density"`
	MaxVelChange float64    `yaml:"max_vel_change"`
	Friction     float64    `yaml:"friction"`
	Color        [4]float32 `yaml:"color,flow"`
	AngleMin     float64    `yaml:"angle_min"`
	AngleMax     float64    `yaml:"angle_max"`
}

type BoxConfig struct {
	Min [3]float64 `yaml:"min,flow"`
	Max [3]float64 `yaml:"max,flow"`
}

type WallsConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Restitution float64 `yaml:"restitution"`
}

func kindConfig(p bio.KindParams) KindConfig {
	return KindConfig{
		Radius:       p.Radius,
		Density:      p.Density,
		MaxVelChange: p.MaxVelChange,
		Friction:     p.Friction,
		Color:        p.Color,
		AngleMin:     p.AngleMin,
		AngleMax:     p.AngleMax,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Cell:     kindConfig(bio.DefaultCellParams()),
		Molecule: kindConfig(bio.DefaultMoleculeParams()),
		Box: BoxConfig{
			Max: [3]float64{DefaultBoxSize, DefaultBoxSize, DefaultBoxSize},
		},
		Cells:       DefaultCells,
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		SampleEvery: DefaultSampleEvery,
		Walls:       WallsConfig{Enabled: true},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) BoxMin() mgl64.Vec3 { return mgl64.Vec3(c.Box.Min) }
func (c *Config) BoxMax() mgl64.Vec3 { return mgl64.Vec3(c.Box.Max) }

func (c *Config) CellParams() bio.KindParams     { return c.Cell.params("cell") }
func (c *Config) MoleculeParams() bio.KindParams { return c.Molecule.params("molecule") }

func (k KindConfig) params(name string) bio.KindParams {
	return bio.KindParams{
		Name:         name,
		Radius:       k.Radius,
		Density:      k.Density,
		MaxVelChange: k.MaxVelChange,
		Friction:     k.Friction,
		Color:        k.Color,
		AngleMin:     k.AngleMin,
		AngleMax:     k.AngleMax,
	}
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{Dt: c.Dt, Duration: c.Duration, SampleEvery: c.SampleEvery}
}

// Validate checks everything that can be checked without building objects:
// kinds, counts, the box against the cell radius, and timing.
func (c *Config) Validate() error {
	var errs []error

	if _, err := bio.NewKind(c.CellParams()); err != nil {
		errs = append(errs, fmt.Errorf("cell: %w", err))
	} else if _, err := bio.PlanGrid(bio.MustKind(c.CellParams()), 0, c.BoxMin(), c.BoxMax()); err != nil {
		errs = append(errs, fmt.Errorf("box: %w", err))
	}
	if c.Molecules > 0 {
		if _, err := bio.NewKind(c.MoleculeParams()); err != nil {
			errs = append(errs, fmt.Errorf("molecule: %w", err))
		}
	}
	if c.Cells < 0 {
		errs = append(errs, fmt.Errorf("cells: %w", bio.ErrInvalidCount))
	}
	if c.Molecules < 0 {
		errs = append(errs, fmt.Errorf("molecules: %w", bio.ErrInvalidCount))
	}
	if c.Dt <= 0 {
		errs = append(errs, fmt.Errorf("dt must be positive, got %g", c.Dt))
	}
	if c.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration must be positive, got %g", c.Duration))
	}
	if c.SampleEvery < 0 {
		errs = append(errs, fmt.Errorf("sample_every must not be negative, got %d", c.SampleEvery))
	}
	if c.Walls.Restitution < 0 || c.Walls.Restitution > 1 {
		errs = append(errs, fmt.Errorf("walls.restitution must be in [0, 1], got %g", c.Walls.Restitution))
	}
	return errors.Join(errs...)
}
