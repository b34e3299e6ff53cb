package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/cellsim/internal/automation"
	"github.com/san-kum/cellsim/internal/storage"
	"github.com/san-kum/cellsim/internal/viz"
	"github.com/spf13/cobra"
)

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if scenario.Description != "" {
		logger.Info(scenario.Name, "description", scenario.Description)
	}

	ctx, stop := interruptible()
	defer stop()

	results, runErr := automation.RunScenario(ctx, scenario, logger)

	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tCELLS\tCONTACTS\tMEAN HEIGHT\tRUN")
	for _, r := range results {
		runID := "-"
		if st != nil {
			id, err := st.Save(runMetadata(r.Config, r.Placement), r.Config, r.Result)
			if err != nil {
				return err
			}
			runID = id
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.4f\t%s\n",
			r.Name, len(r.Placement.Cells), r.Result.Contacts, r.Result.Metrics["mean_height"], runID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepSteps < 1 {
		return fmt.Errorf("steps must be positive, got %d", sweepSteps)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Param:    sweepParam,
		ParamMin: sweepMin,
		ParamMax: sweepMax,
		NumSteps: sweepSteps,
	}

	ctx, stop := interruptible()
	defer stop()

	logger.Info("sweeping", "param", sweepParam, "min", sweepMin, "max", sweepMax, "steps", sweepSteps, "seed", cfg.Seed)
	results, err := automation.RunSweep(ctx, cfg, sweep, logger, metricNames...)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(results[0].Metrics))
	for name := range results[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println(viz.Title.Render("sweep " + sweepParam))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tCELLS\tCONTACTS\t%s\n", strings.ToUpper(sweepParam), strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%d\t%d", r.ParamValue, r.Cells, r.Contacts)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
