package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/varsense/internal/config"
	"github.com/san-kum/varsense/internal/distribution"
	"github.com/san-kum/varsense/internal/experiment"
	"github.com/san-kum/varsense/internal/export"
	"github.com/san-kum/varsense/internal/sensitivity"
	"github.com/san-kum/varsense/internal/storage"
	"github.com/san-kum/varsense/internal/sweep"
	"github.com/san-kum/varsense/internal/viz"
)

var (
	dataDir    string
	samples    int
	seed       int64
	targets    []int
	normalize  bool
	cov        float64
	workers    int
	covValues  []float64
	output     string
	svgOutput  string
	configFile string
	preset     string
	verbose    bool

	// config-file-only overrides, no flag equivalents
	cfgMarginals []config.MarginalConfig
	cfgConstants []float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "varsense",
		Short: "variance-based sensitivity analysis lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".varsense", "data directory")

	estimateCmd := &cobra.Command{
		Use:   "estimate [model]",
		Short: "estimate Sobol' indices for a model",
		Args:  cobra.ExactArgs(1),
		RunE:  runEstimate,
	}
	estimateCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "monte carlo iterations")
	estimateCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "sequence seed")
	estimateCmd.Flags().IntSliceVar(&targets, "targets", nil, "1-based target parameter indices")
	estimateCmd.Flags().BoolVar(&normalize, "normalize", false, "divide indices by model variance")
	estimateCmd.Flags().Float64Var(&cov, "cov", config.DefaultCoV, "coefficient of variation factor")
	estimateCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = serial)")
	estimateCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	estimateCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	estimateCmd.Flags().BoolVar(&verbose, "verbose", false, "dump estimator configuration")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "sweep indices over a range of CoV values",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "monte carlo iterations per CoV value")
	sweepCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "sequence seed")
	sweepCmd.Flags().IntSliceVar(&targets, "targets", nil, "1-based target parameter indices")
	sweepCmd.Flags().Float64SliceVar(&covValues, "cov-values", []float64{0.25, 0.5, 0.75, 1.0, 1.25, 1.5}, "CoV values")
	sweepCmd.Flags().StringVar(&output, "output", "sweep.dat", "sweep output file")
	sweepCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list built-in models",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := experiment.NewRegistry()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDIM\tTARGETS\tDESCRIPTION")
			for _, name := range registry.List() {
				def, err := registry.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%v\t%s\n", def.Name, def.Dim(), def.Targets, def.Description)
			}
			return w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a sweep to an SVG chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOutput, "output", "sweep.svg", "svg output file")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export sweep data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "watch an estimate converge",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&samples, "samples", 100000, "monte carlo iterations")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "sequence seed")
	liveCmd.Flags().IntSliceVar(&targets, "targets", nil, "1-based target parameter indices")
	liveCmd.Flags().BoolVar(&normalize, "normalize", false, "divide indices by model variance")

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "benchmark estimation throughput",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
	}

	rootCmd.AddCommand(estimateCmd, sweepCmd, listCmd, modelsCmd, presetsCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, liveCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyConfig folds preset and config-file values into the flag
// variables; explicitly set flags win.
func applyConfig(cmd *cobra.Command, model string) error {
	if preset != "" {
		cfg := config.GetPreset(model, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		samples = cfg.Samples
		normalize = cfg.Normalize
		cov = cfg.CoV
		if len(cfg.Targets) > 0 {
			targets = cfg.Targets
		}
		if len(cfg.Sweep.Values) > 0 {
			covValues = cfg.Sweep.Values
		}
		if cfg.Sweep.Output != "" {
			output = cfg.Sweep.Output
		}
		cfgMarginals = cfg.Marginals
		cfgConstants = cfg.Constants
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("samples") {
			samples = cfg.Samples
		}
		if !cmd.Flags().Changed("targets") && len(cfg.Targets) > 0 {
			targets = cfg.Targets
		}
		if f := cmd.Flags().Lookup("normalize"); f != nil && !f.Changed {
			normalize = cfg.Normalize
		}
		if f := cmd.Flags().Lookup("cov"); f != nil && !f.Changed {
			cov = cfg.CoV
		}
		if f := cmd.Flags().Lookup("workers"); f != nil && !f.Changed {
			workers = cfg.Workers
		}
		if f := cmd.Flags().Lookup("cov-values"); f != nil && !f.Changed && len(cfg.Sweep.Values) > 0 {
			covValues = cfg.Sweep.Values
		}
		if f := cmd.Flags().Lookup("output"); f != nil && !f.Changed && cfg.Sweep.Output != "" {
			output = cfg.Sweep.Output
		}
		if cfg.Seed != 0 && !cmd.Flags().Changed("seed") {
			seed = cfg.Seed
		}
		if len(cfg.Marginals) > 0 {
			cfgMarginals = cfg.Marginals
		}
		if len(cfg.Constants) > 0 {
			cfgConstants = cfg.Constants
		}
	}
	return nil
}

// marginalsFromConfig resolves family names into distribution families.
// An empty family name means normal; unknown names are rejected rather
// than silently defaulted.
func marginalsFromConfig(cfgs []config.MarginalConfig) ([]sensitivity.Marginal, error) {
	out := make([]sensitivity.Marginal, len(cfgs))
	for i, mc := range cfgs {
		fam := distribution.ByName(mc.Family)
		if fam == nil {
			return nil, fmt.Errorf("unknown distribution family: %q", mc.Family)
		}
		out[i] = sensitivity.Marginal{Family: fam, Mean: mc.Mean, Variance: mc.Variance}
	}
	return out, nil
}

func setupExperiment(model string) (*experiment.Experiment, error) {
	registry := experiment.NewRegistry()
	def, err := registry.Get(model)
	if err != nil {
		return nil, err
	}

	marginals, err := marginalsFromConfig(cfgMarginals)
	if err != nil {
		return nil, err
	}

	exp := experiment.New(experiment.Config{
		Model:     model,
		Targets:   targets,
		Samples:   samples,
		Seed:      seed,
		CoV:       cov,
		Normalize: normalize,
		Workers:   workers,
		Marginals: marginals,
		Constants: cfgConstants,
	})
	if err := exp.Setup(def); err != nil {
		return nil, err
	}
	return exp, nil
}

func runEstimate(cmd *cobra.Command, args []string) error {
	model := args[0]
	if err := applyConfig(cmd, model); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := setupExperiment(model)
	if err != nil {
		return err
	}

	fmt.Printf("estimating %s sensitivity (%d iterations)...\n", model, samples)
	start := time.Now()

	result, err := exp.Run()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	est := exp.Estimator()
	runID, err := st.SaveEstimate(model, seed, est.Targets(), normalize, cov, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("\ntargets: %v\n", est.Targets())
	fmt.Printf("model mean:     %.6f\n", result.ModelMean)
	fmt.Printf("model variance: %.6f\n", result.ModelVariance)
	fmt.Printf("lower index:    %.6f\n", result.LowerIndex)
	fmt.Printf("total index:    %.6f\n", result.TotalIndex)

	if verbose {
		fmt.Printf("\n%s", est.Describe())
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	model := args[0]
	if err := applyConfig(cmd, model); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := setupExperiment(model)
	if err != nil {
		return err
	}
	est := exp.Estimator()

	fmt.Printf("sweeping %s over %d CoV values (%d iterations each)...\n", model, len(covValues), samples)
	start := time.Now()

	points, err := sweep.Run(est, covValues)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := sweep.WriteFile(output, points); err != nil {
		// The sweep itself succeeded; report and keep going so the run
		// is still recorded.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	} else {
		fmt.Printf("wrote %s\n", output)
	}

	runID, err := st.SaveSweep(model, seed, est.Targets(), samples, points)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n\n", runID)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COV\tTOTAL\tLOWER(COMPL)\tVARIANCE")
	for _, p := range points {
		fmt.Fprintf(w, "%.4f\t%.6f\t%.6f\t%.6f\n", p.CoV, p.TotalIndex, p.LowerComplement, p.ModelVariance)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tKIND\tMODEL\tTIME\tSAMPLES\tTARGETS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%v\n",
			run.ID,
			run.Kind,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Samples,
			run.Targets,
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
	if meta.Kind != "sweep" {
		return fmt.Errorf("run %s is not a sweep", runID)
	}

	points, err := st.LoadSweep(runID)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("points: %d\n\n", len(points))

	series := []struct {
		caption string
		value   func(sweep.Point) float64
	}{
		{"total index vs CoV", func(p sweep.Point) float64 { return p.TotalIndex }},
		{"complement lower index vs CoV", func(p sweep.Point) float64 { return p.LowerComplement }},
		{"model variance vs CoV", func(p sweep.Point) float64 { return p.ModelVariance }},
	}

	for _, s := range series {
		data := make([]float64, len(points))
		for i, p := range points {
			data[i] = s.value(p)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	var points []sweep.Point
	if meta.Kind == "sweep" {
		points, err = st.LoadSweep(runID)
		if err != nil {
			return err
		}
	}
	return storage.ExportJSONStdout(meta, points)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	if meta.Kind != "sweep" {
		return fmt.Errorf("run %s is not a sweep", runID)
	}

	points, err := st.LoadSweep(runID)
	if err != nil {
		return err
	}
	return storage.ExportCSVStdout(points)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	if meta.Kind != "sweep" {
		return fmt.Errorf("run %s is not a sweep", runID)
	}

	points, err := st.LoadSweep(runID)
	if err != nil {
		return err
	}
	if err := export.WriteSweepSVG(svgOutput, points, 800, 400); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOutput)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	model := args[0]

	exp, err := setupExperiment(model)
	if err != nil {
		return err
	}

	session, err := exp.Estimator().Session(sensitivity.Opts{Normalize: normalize})
	if err != nil {
		return err
	}

	m := viz.NewModel(session, model, samples)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func benchModel(cmd *cobra.Command, args []string) error {
	model := args[0]

	registry := experiment.NewRegistry()
	def, err := registry.Get(model)
	if err != nil {
		return err
	}

	sampleCounts := []int{1000, 10000, 100000}

	fmt.Printf("benchmarking %s\n\n", model)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SAMPLES\tEVALS\tTIME\tITERS/SEC")

	for _, n := range sampleCounts {
		exp := experiment.New(experiment.Config{
			Model:   model,
			Samples: n,
			Seed:    42,
		})
		if err := exp.Setup(def); err != nil {
			return err
		}

		start := time.Now()
		if _, err := exp.Run(); err != nil {
			return err
		}
		elapsed := time.Since(start)

		itersPerSec := float64(n) / elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, 4*n, elapsed, itersPerSec)
	}
	return w.Flush()
}
