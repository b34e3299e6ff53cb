package experiment

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/san-kum/cellsim/internal/bio"
	"github.com/san-kum/cellsim/internal/config"
	"github.com/san-kum/cellsim/internal/sim"
)

// Experiment turns a config into a populated simulation and runs it.
type Experiment struct {
	cfg         *config.Config
	metricNames []string
	registry    *Registry
	logger      *log.Logger
	simulation  *sim.Simulation
	placement   *bio.Placement
}

func New(cfg *config.Config, logger *log.Logger, metricNames ...string) *Experiment {
	if logger == nil {
		logger = log.Default()
	}
	return &Experiment{
		cfg:         cfg,
		metricNames: metricNames,
		registry:    NewRegistry(),
		logger:      logger,
	}
}

// Builder returns a sim.Builder that places the configured population into a
// fresh simulation. It is safe to call from several goroutines.
func (e *Experiment) Builder() sim.Builder {
	return func(s *sim.Simulation) error {
		_, err := e.populate(s)
		return err
	}
}

func (e *Experiment) populate(s *sim.Simulation) (*bio.Placement, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	cellKind, err := bio.NewKind(e.cfg.CellParams())
	if err != nil {
		return nil, err
	}

	opts := []bio.PlaceOption{bio.WithLogger(e.logger)}
	if e.cfg.Clamp {
		opts = append(opts, bio.WithClamp())
	}
	placement, err := bio.FillSpace(s, cellKind, e.cfg.Cells, e.cfg.BoxMin(), e.cfg.BoxMax(), opts...)
	if err != nil {
		return nil, fmt.Errorf("placing cells: %w", err)
	}

	if e.cfg.Molecules > 0 {
		molKind, err := bio.NewKind(e.cfg.MoleculeParams())
		if err != nil {
			return nil, err
		}
		if _, err := bio.Scatter(s, molKind, e.cfg.Molecules, e.cfg.BoxMin(), e.cfg.BoxMax()); err != nil {
			return nil, fmt.Errorf("scattering molecules: %w", err)
		}
	}

	if e.cfg.Walls.Enabled {
		s.Enclose(e.cfg.BoxMin(), e.cfg.BoxMax(), e.cfg.Walls.Restitution)
	}

	ms, err := e.registry.Metrics(e.metricNames)
	if err != nil {
		return nil, err
	}
	for _, m := range ms {
		s.AddMetric(m)
	}
	return placement, nil
}

// Setup builds the simulation for cfg.Seed.
func (e *Experiment) Setup() error {
	s := sim.New(e.cfg.Seed)
	placement, err := e.populate(s)
	if err != nil {
		return err
	}
	e.simulation = s
	e.placement = placement
	e.logger.Debug("experiment ready",
		"seed", e.cfg.Seed,
		"cells", len(placement.Cells),
		"rows", placement.Grid.Rows, "cols", placement.Grid.Cols, "pages", placement.Grid.Pages,
		"objects", len(s.Objects()))
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulation == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulation.Run(ctx, e.cfg.SimConfig())
}

// GetSimulation returns the underlying simulation for adding observers.
func (e *Experiment) GetSimulation() *sim.Simulation {
	return e.simulation
}

func (e *Experiment) Placement() *bio.Placement {
	return e.placement
}

func (e *Experiment) Config() *config.Config {
	return e.cfg
}
