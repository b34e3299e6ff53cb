package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"slices"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cellsim/internal/analysis"
	"github.com/san-kum/cellsim/internal/bio"
	"github.com/san-kum/cellsim/internal/config"
	"github.com/san-kum/cellsim/internal/experiment"
	"github.com/san-kum/cellsim/internal/export"
	"github.com/san-kum/cellsim/internal/sim"
	"github.com/san-kum/cellsim/internal/storage"
	"github.com/san-kum/cellsim/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

func setup(cmd *cobra.Command, names ...string) (*config.Config, *experiment.Experiment, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	exp := experiment.New(cfg, logger, names...)
	if err := exp.Setup(); err != nil {
		return nil, nil, err
	}
	return cfg, exp, nil
}

func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, exp, err := setup(cmd, metricNames...)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	placement := exp.Placement()
	logger.Info("running simulation",
		"cells", len(placement.Cells), "molecules", cfg.Molecules,
		"seed", cfg.Seed, "duration", cfg.Duration)

	ctx, stop := interruptible()
	defer stop()

	start := time.Now()
	result, err := exp.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Warn("interrupted, saving partial run", "steps", result.StepsTaken)
	} else if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(runMetadata(cfg, placement), cfg, result)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render("run " + runID))
	printRow("completed in", elapsed.Round(time.Millisecond).String())
	printRow("steps", fmt.Sprintf("%d", result.StepsTaken))
	printRow("frames", fmt.Sprintf("%d", len(result.Frames)))
	printRow("contacts", fmt.Sprintf("%d", result.Contacts))
	printMetrics(result.Metrics)

	if hs := result.Series["mean_height"]; len(hs) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(hs, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("mean height")))
	}
	return nil
}

func runMetadata(cfg *config.Config, p *bio.Placement) storage.RunMetadata {
	return storage.RunMetadata{
		Seed:      cfg.Seed,
		Cells:     len(p.Cells),
		Molecules: cfg.Molecules,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Grid:      storage.GridInfo{Rows: p.Grid.Rows, Cols: p.Grid.Cols, Pages: p.Grid.Pages},
		Warnings:  p.Warnings,
	}
}

func printRow(label, value string) {
	fmt.Println(viz.MetricLabel.Render(label) + viz.MetricValue.Render(value))
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	fmt.Println("\n" + viz.Title.Render("metrics"))
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		printRow(name, fmt.Sprintf("%.6f", m[name]))
	}
}

func placeCells(cmd *cobra.Command, args []string) error {
	cfg, exp, err := setup(cmd)
	if err != nil {
		return err
	}

	p := exp.Placement()
	g := p.Grid
	fmt.Println(viz.Title.Render("placement"))
	printRow("requested", fmt.Sprintf("%d", p.Requested))
	printRow("placed", fmt.Sprintf("%d", len(p.Cells)))
	printRow("grid", fmt.Sprintf("%d x %d x %d (rows x cols x pages)", g.Rows, g.Cols, g.Pages))
	printRow("slot", fmt.Sprintf("%.3f x %.3f x %.3f", g.ColWidth, g.RowHeight, g.PageDepth))
	printRow("capacity", fmt.Sprintf("%d", g.Capacity()))

	kind, err := bio.NewKind(cfg.CellParams())
	if err != nil {
		return err
	}
	if fit, err := bio.MaxFit(kind, math.MaxInt32, cfg.BoxMin(), cfg.BoxMax()); err == nil {
		printRow("max fit", fmt.Sprintf("%d", fit))
	}
	for _, w := range p.Warnings {
		fmt.Println(viz.Warning.Render("! " + w))
	}

	if svgPath == "" {
		return nil
	}
	s := exp.GetSimulation()
	scene := viz.NewScene(cfg.BoxMin(), cfg.BoxMax())
	scene.Radii[kind.Name()] = kind.Radius()
	canvas := viz.NewCanvas(80, 40)
	scene.Draw(canvas, s.Snapshot().Samples)

	svg := export.CanvasToSVG(canvas, 4, string(viz.KindColor(kind.Color())))
	if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("wrote snapshot", "path", svgPath)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, exp, err := setup(cmd)
	if err != nil {
		return err
	}

	ms, err := experiment.NewRegistry().Metrics(liveMetrics)
	if err != nil {
		return err
	}

	title := "cellsim"
	if preset != "" {
		title = preset
	}
	return viz.RunLive(exp.GetSimulation(), cfg.BoxMin(), cfg.BoxMax(), viz.LiveOptions{
		Title:    title,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Metrics:  ms,
	})
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSEED\tCELLS\tMOLS\tGRID\tSTEPS\tCONTACTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%dx%dx%d\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Cells,
			run.Molecules,
			run.Grid.Rows, run.Grid.Cols, run.Grid.Pages,
			run.StepsTaken,
			run.Contacts,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, times, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	names := make([]string, 0, len(series))
	for name := range series {
		if len(metricNames) == 0 || slices.Contains(metricNames, name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return fmt.Errorf("no series matching %v (available: %d)", metricNames, len(series))
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d over %.2fs\n\n", len(times), times[len(times)-1])

	for _, name := range names {
		graph := asciigraph.Plot(series[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(strings.ReplaceAll(name, "_", " ")),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgPath != "" {
		svg := export.SeriesToSVG(times, series[names[0]], 800, 300, "#00ff88")
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		logger.Info("wrote plot", "series", names[0], "path", svgPath)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, times, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	names := make([]string, 0, len(series))
	for name := range series {
		if len(metricNames) == 0 || slices.Contains(metricNames, name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tMIN\tMAX\tSLOPE/S\tR2\tPEAK HZ\tPOWER")
	for _, name := range names {
		r, err := analysis.Analyze(name, times, series[name])
		if err != nil {
			logger.Warn("skipping series", "series", name, "err", err)
			continue
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.3f\t%.3f\t%.3f\n",
			r.Name, r.Min, r.Max, r.Trend.Slope, r.Trend.R2, r.Frequency, r.Power)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCELLS\tMOLS\tDENSITY\tBOX\tCLAMP")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%gx%gx%g\t%v\n",
			name, cfg.Cells, cfg.Molecules, cfg.Cell.Density,
			cfg.Box.Max[0]-cfg.Box.Min[0], cfg.Box.Max[1]-cfg.Box.Min[1], cfg.Box.Max[2]-cfg.Box.Min[2],
			cfg.Clamp)
	}
	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	if numRuns < 1 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, logger, metricNames...)
	ens := sim.NewEnsemble(exp.Builder(), numRuns, cfg.Seed)
	if parallel > 0 {
		ens.SetLimit(parallel)
	}

	ctx, stop := interruptible()
	defer stop()

	logger.Info("running ensemble", "runs", numRuns, "first_seed", cfg.Seed, "parallel", parallel)
	start := time.Now()
	results, err := ens.Run(ctx, cfg.SimConfig())
	if err != nil {
		return err
	}
	logger.Info("ensemble finished", "elapsed", time.Since(start).Round(time.Millisecond))

	names := make([]string, 0)
	for name := range results[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SEED\tCONTACTS\t%s\n", strings.ToUpper(strings.Join(names, "\t")))
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d", cfg.Seed+int64(i), r.Contacts)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\n" + viz.Title.Render("across seeds"))
	vals := make([]float64, len(results))
	for _, name := range names {
		for i, r := range results {
			vals[i] = r.Metrics[name]
		}
		mean, std := stat.MeanStdDev(vals, nil)
		printRow(name, fmt.Sprintf("%.4f ± %.4f", mean, std))
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outPath == "" {
		return st.Export(os.Stdout, args[0])
	}
	if err := st.ExportFile(outPath, args[0]); err != nil {
		return err
	}
	logger.Info("exported run", "run", args[0], "path", outPath)
	return nil
}
