package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/phys-sim/hamsim/internal/chain"
	"github.com/phys-sim/hamsim/internal/config"
	"github.com/phys-sim/hamsim/internal/export"
	"github.com/phys-sim/hamsim/internal/hamil"
	"github.com/phys-sim/hamsim/internal/integrators"
	"github.com/phys-sim/hamsim/internal/metrics"
	"github.com/phys-sim/hamsim/internal/sim"
	"github.com/phys-sim/hamsim/internal/storage"
	"github.com/phys-sim/hamsim/internal/viz"
)

var (
	dataDir    string
	n          int
	dt         float64
	steps      int
	periods    int
	seed       int64
	schemes    []string
	configFile string
	preset     string
	outFile    string
)

func main() {
	setupLogging()

	rootCmd := &cobra.Command{
		Use:   "hamsim",
		Short: "oscillator-chain integrator comparison lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".hamsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scheme]",
		Short: "run one integration scheme",
		Args:  cobra.ExactArgs(1),
		RunE:  runScheme,
	}
	addRunFlags(runCmd)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run all schemes from a shared initial condition",
		RunE:  compareSchemes,
	}
	addRunFlags(compareCmd)
	compareCmd.Flags().StringSliceVar(&schemes, "schemes", integrators.Schemes(), "schemes to compare")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "live terminal view of the three schemes",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored energy trajectories",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "render stored trajectories to an image",
		Args:  cobra.ExactArgs(1),
		RunE:  exportImage,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "energy.png", "output image (.png/.svg/.pdf)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write stored trajectories as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write run metadata and trajectories as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, compareCmd, liveCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, listCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&n, "n", config.DefaultN, "system size")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step")
	cmd.Flags().IntVar(&steps, "steps", 0, "step count (0 derives from dt and periods)")
	cmd.Flags().IntVar(&periods, "periods", config.DefaultPeriods, "physical horizon in oscillation periods")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed for the initial condition")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset configuration name")
}

// resolveConfig merges preset, config file and flags, flags winning.
func resolveConfig(cmd *cobra.Command) (sim.Config, error) {
	base := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return sim.Config{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		base = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return sim.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		base = loaded
	}

	if !cmd.Flags().Changed("n") {
		n = base.N
	}
	if !cmd.Flags().Changed("dt") {
		dt = base.Dt
	}
	if !cmd.Flags().Changed("steps") {
		steps = base.Steps
	}
	if !cmd.Flags().Changed("periods") {
		periods = base.Periods
	}
	if base.Seed != 0 && !cmd.Flags().Changed("seed") {
		seed = base.Seed
	}
	if !cmd.Flags().Changed("schemes") && len(base.Schemes) > 0 {
		schemes = base.Schemes
	}

	cfg := sim.Config{N: n, Dt: dt, Steps: steps, Periods: periods, Seed: seed}
	return cfg, cfg.Validate()
}

// setup builds the operator, the requested steppers and the shared initial
// condition for one run.
func setup(cfg sim.Config, names []string) (*chain.Chain, []hamil.Stepper, *hamil.State, error) {
	sys, err := chain.New(cfg.N)
	if err != nil {
		return nil, nil, nil, err
	}
	steppers := make([]hamil.Stepper, 0, len(names))
	for _, name := range names {
		st, err := integrators.ForScheme(name, sys, cfg.Dt)
		if err != nil {
			return nil, nil, nil, err
		}
		steppers = append(steppers, st)
	}
	return sys, steppers, sim.NoisyState(cfg.N, cfg.Seed), nil
}

func runScheme(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sys, steppers, s0, err := setup(cfg, args[:1])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New(sys)
	runner.AddMetric(metrics.NewConservation())

	numSteps := cfg.NumSteps()
	log.Info().Str("scheme", args[0]).Int("n", cfg.N).Float64("dt", cfg.Dt).
		Int("steps", numSteps).Int64("seed", cfg.Seed).Msg("starting run")

	start := time.Now()
	result, err := runner.Run(context.Background(), steppers[0], s0, numSteps)
	if err != nil {
		return err
	}

	runID, err := st.Save(cfg, map[string]*sim.Result{result.Scheme: result})
	if err != nil {
		return err
	}
	log.Info().Str("run_id", runID).Dur("elapsed", time.Since(start)).Msg("run complete")

	for name, val := range result.Metrics {
		fmt.Printf("%s: %.6e\n", name, val)
	}
	return nil
}

func compareSchemes(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sys, steppers, s0, err := setup(cfg, schemes)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	numSteps := cfg.NumSteps()
	log.Info().Int("n", cfg.N).Float64("dt", cfg.Dt).Int("steps", numSteps).
		Int64("seed", cfg.Seed).Strs("schemes", schemes).Msg("starting comparison")

	start := time.Now()
	results, err := sim.Compare(context.Background(), sys, steppers, s0, numSteps)
	if err != nil {
		return err
	}

	// conservation metrics computed after the fact so the runs stay lean
	for _, res := range results {
		if ce, err := metrics.ConservationError(res.Energies); err == nil {
			res.Metrics["conservation_error"] = ce
		}
		if drift, err := metrics.Drift(res.Energies); err == nil {
			res.Metrics["drift"] = drift
		}
	}

	runID, err := st.Save(cfg, results)
	if err != nil {
		return err
	}
	log.Info().Str("run_id", runID).Dur("elapsed", time.Since(start)).Msg("comparison complete")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCHEME\tFINAL_E\tCONSERVATION\tDRIFT")
	for _, name := range schemes {
		res, ok := results[name]
		if !ok {
			continue
		}
		finalE := 0.0
		if len(res.Energies) > 0 {
			finalE = res.Energies[len(res.Energies)-1]
		}
		fmt.Fprintf(w, "%s\t%.6f\t%.3e\t%+.3e\n",
			name, finalE, res.Metrics["conservation_error"], res.Metrics["drift"])
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sys, steppers, s0, err := setup(cfg, integrators.Schemes())
	if err != nil {
		return err
	}

	m := viz.NewModel(sys, steppers, s0, cfg.NumSteps())
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trajs, err := st.LoadTrajectories(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s  n=%d dt=%.4g steps=%d\n\n", meta.ID, meta.N, meta.Dt, meta.Steps)

	series := make([][]float64, 0, len(meta.Schemes))
	legends := make([]string, 0, len(meta.Schemes))
	for _, scheme := range meta.Schemes {
		traj, ok := trajs[scheme]
		if !ok || len(traj) == 0 {
			continue
		}
		series = append(series, traj)
		legends = append(legends, scheme)
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	graph := asciigraph.PlotMany(series,
		asciigraph.Height(15),
		asciigraph.Width(90),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red, asciigraph.Blue),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption("total energy per step"),
	)
	fmt.Println(graph)
	return nil
}

func exportImage(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trajs, err := st.LoadTrajectories(args[0])
	if err != nil {
		return err
	}

	title := fmt.Sprintf("oscillator chain n=%d dt=%g", meta.N, meta.Dt)
	if err := export.EnergyPlot(outFile, title, trajs); err != nil {
		return err
	}
	log.Info().Str("run_id", meta.ID).Str("out", outFile).Msg("image written")
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trajs, err := st.LoadTrajectories(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := append([]string{"step"}, meta.Schemes...)
	if err := w.Write(header); err != nil {
		return err
	}
	for k := 0; k < meta.Steps; k++ {
		row := []string{strconv.Itoa(k)}
		for _, scheme := range meta.Schemes {
			traj := trajs[scheme]
			if k < len(traj) {
				row = append(row, strconv.FormatFloat(traj[k], 'g', 17, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trajs, err := st.LoadTrajectories(args[0])
	if err != nil {
		return err
	}

	out := struct {
		*storage.RunMetadata
		Trajectories map[string]hamil.Trajectory `json:"trajectories"`
	}{meta, trajs}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
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
	fmt.Fprintln(w, "ID\tTIME\tN\tDT\tSTEPS\tSCHEMES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4g\t%d\t%v\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.N,
			run.Dt,
			run.Steps,
			run.Schemes,
		)
	}
	return w.Flush()
}
