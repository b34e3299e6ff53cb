package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/cellsim/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	verbose     bool
	configFile  string
	preset      string
	numCells    int
	numMols     int
	dt          float64
	duration    float64
	sampleEvery int
	seed        int64
	clamp       bool
	noWalls     bool
	metricNames []string
	liveMetrics []string
	svgPath     string
	outPath     string
	numRuns     int
	parallel    int
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
	noSave      bool

	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, TimeFormat: time.Kitchen})
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cellsim",
		Short: "buoyant cell population simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cellsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the result",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to record (default: all)")

	placeCmd := &cobra.Command{
		Use:   "place",
		Short: "place cells and report the grid without running",
		Args:  cobra.NoArgs,
		RunE:  placeCells,
	}
	addConfigFlags(placeCmd)
	placeCmd.Flags().StringVar(&svgPath, "svg", "", "write a snapshot of the placement as SVG")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().StringSliceVar(&liveMetrics, "metrics", []string{"mean_height", "mean_speed", "overlap"}, "metrics to show; the first is charted")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot recorded metric series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "series to plot (default: all)")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "write the first plotted series as SVG")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run the same configuration over consecutive seeds",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addConfigFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")
	ensembleCmd.Flags().IntVar(&parallel, "parallel", 0, "concurrent runs (0: unlimited)")
	ensembleCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to record (default: all)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "drift and frequency analysis of recorded series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "series to analyze (default: all)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a scenario file and store the results",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store step results")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one parameter and compare final metrics",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "cell.density", "parameter to vary")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.9, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to record (default: all)")

	rootCmd.AddCommand(runCmd, placeCmd, liveCmd, listCmd, plotCmd, presetsCmd, ensembleCmd, exportJSONCmd, analyzeCmd, scenarioCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.IntVar(&numCells, "cells", config.DefaultCells, "number of cells")
	f.IntVar(&numMols, "molecules", 0, "number of molecules")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	f.Float64Var(&duration, "time", config.DefaultDuration, "duration")
	f.IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "record a frame every n ticks")
	f.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	f.BoolVar(&clamp, "clamp", false, "reduce the cell count to what fits without overlap")
	f.BoolVar(&noWalls, "no-walls", false, "let objects leave the box")
}

// loadConfig starts from the preset, lets a config file replace it and then
// applies only the flags given on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Seed = seed

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Seed = seed
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if loaded.Seed == 0 || cmd.Flags().Changed("seed") {
			loaded.Seed = seed
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("cells") {
		cfg.Cells = numCells
	}
	if flags.Changed("molecules") {
		cfg.Molecules = numMols
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("clamp") {
		cfg.Clamp = clamp
	}
	if flags.Changed("no-walls") {
		cfg.Walls.Enabled = !noWalls
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
