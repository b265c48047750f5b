package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/powertrain/internal/automation"
	"github.com/san-kum/powertrain/internal/config"
	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/experiment"
	"github.com/san-kum/powertrain/internal/export"
	"github.com/san-kum/powertrain/internal/logger"
	"github.com/san-kum/powertrain/internal/metrics"
	"github.com/san-kum/powertrain/internal/optim"
	"github.com/san-kum/powertrain/internal/sizing"
	"github.com/san-kum/powertrain/internal/storage"
	"github.com/san-kum/powertrain/internal/viz"
)

var (
	dataDir    string
	configFile string
	theme      string
	logLevel   string
	logFormat  string

	vehicle    string
	motor      string
	mode       string
	gradient   float64
	terrain    string
	dt         float64
	duration   float64
	integrator string
	rolling    string
	reverse    string
	strict     bool
	addWeight  bool

	noSave     bool
	showPlot   bool
	asJSON     bool
	motorList  []string
	trace      string
	cmpTrace   string
	format     string
	outPath    string
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	trials     int
	perturb    float64
	seed       int64
	workers    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "powertrain",
		Short:         "EV and UGV longitudinal powertrain simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", "", "run store directory (default from config)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml or json)")
	pf.StringVar(&theme, "theme", "cyberpunk", "report theme: "+strings.Join(viz.ThemeNames(), ", "))
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "", "log format (json, console)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the fixed-step simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addVehicleFlags(runCmd)
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "draw the speed trace")
	runCmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as json")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "motor and battery sizing report",
		Args:  cobra.NoArgs,
		RunE:  sizingReport,
	}
	addVehicleFlags(reportCmd)
	reportCmd.Flags().StringVar(&mode, "mode", "boost", "motor mode (eco, boost)")
	reportCmd.Flags().BoolVar(&asJSON, "json", false, "print the report as json")

	suitCmd := &cobra.Command{
		Use:   "suitability",
		Short: "check the motor against speed, grade and acceleration targets",
		Args:  cobra.NoArgs,
		RunE:  checkSuitability,
	}
	addVehicleFlags(suitCmd)
	suitCmd.Flags().StringVar(&mode, "mode", "boost", "motor mode (eco, boost)")
	suitCmd.Flags().BoolVar(&asJSON, "json", false, "print the checks as json")

	selectCmd := &cobra.Command{
		Use:   "select",
		Short: "pick the most efficient suitable catalog motor",
		Args:  cobra.NoArgs,
		RunE:  selectMotor,
	}
	addVehicleFlags(selectCmd)
	addRunFlags(selectCmd)
	selectCmd.Flags().StringSliceVar(&motorList, "motors", nil, "catalog motors to consider (default all)")
	selectCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (default cpu count)")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a yaml batch of scenarios",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "ignore save flags in the scenario")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter over a range",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addVehicleFlags(sweepCmd)
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "gradient", "parameter: "+strings.Join(automation.SweepParams, ", "))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 30, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 7, "number of values")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (default cpu count)")

	mcCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "perturb mass, drag and rolling coefficients",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addVehicleFlags(mcCmd)
	addRunFlags(mcCmd)
	mcCmd.Flags().IntVar(&trials, "trials", 50, "number of trials")
	mcCmd.Flags().Float64Var(&perturb, "perturb", 0.1, "relative perturbation")
	mcCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	mcCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (default cpu count)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&trace, "trace", "", "single trace: "+strings.Join(viz.TraceNames(), ", "))

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "", "csv, json, xlsx, svg or png (default from --out)")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file; for png a directory receives every chart")

	compareCmd := &cobra.Command{
		Use:   "compare [run_id] [run_id] ...",
		Short: "overlay stored runs",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareRuns,
	}
	compareCmd.Flags().StringVar(&cmpTrace, "trace", "speed", "trace: "+strings.Join(viz.TraceNames(), ", "))

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list vehicle, motor and terrain presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("vehicles: %s\n", strings.Join(config.ListVehicles(), ", "))
			fmt.Printf("motors:   %s\n", strings.Join(config.ListMotors(), ", "))
			fmt.Printf("terrains: %s\n", strings.Join(config.ListTerrains(), ", "))
			return nil
		},
	}

	motorsCmd := &cobra.Command{
		Use:   "motors",
		Short: "show the motor catalog",
		Args:  cobra.NoArgs,
		RunE:  listMotors,
	}

	rootCmd.AddCommand(runCmd, reportCmd, suitCmd, selectCmd, batchCmd, sweepCmd, mcCmd,
		listCmd, showCmd, plotCmd, exportCmd, compareCmd, presetsCmd, motorsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addVehicleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&vehicle, "vehicle", "", "vehicle preset (ev, ugv)")
	cmd.Flags().StringVar(&motor, "motor", "", "catalog motor")
	cmd.Flags().BoolVar(&addWeight, "add-motor-weight", false, "add catalog motor weight to the vehicle mass")
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&mode, "mode", "boost", "motor mode (eco, boost)")
	cmd.Flags().Float64Var(&gradient, "gradient", 0, "road gradient in degrees")
	cmd.Flags().StringVar(&terrain, "terrain", "", "terrain preset (overrides --gradient)")
	cmd.Flags().Float64Var(&dt, "dt", dynamo.DefaultDt, "timestep in seconds")
	cmd.Flags().Float64Var(&duration, "time", dynamo.DefaultDuration, "duration in seconds")
	cmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator (euler, rk4)")
	cmd.Flags().StringVar(&rolling, "rolling", "flat", "rolling resistance model (flat, cosine)")
	cmd.Flags().StringVar(&reverse, "reverse", "clamp", "reverse motion (clamp, allow)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on a discontinuous torque curve")
}

// loadConfig resolves file, environment and then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("vehicle") {
		v, err := config.GetVehicle(vehicle)
		if err != nil {
			return nil, nil, err
		}
		cfg.Vehicle = v
	}
	if flags.Changed("motor") {
		cfg.Vehicle.Motor = motor
		cfg.Vehicle.MotorSpec = nil
	}
	if flags.Changed("add-motor-weight") {
		cfg.Vehicle.AddMotorWeight = addWeight
	}
	if flags.Changed("mode") {
		cfg.Run.Mode = mode
	}
	if flags.Changed("gradient") {
		cfg.Run.Gradient = gradient
		cfg.Run.Terrain = ""
	}
	if flags.Changed("terrain") {
		cfg.Run.Terrain = terrain
	}
	if flags.Changed("dt") {
		cfg.Run.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Run.Duration = duration
	}
	if flags.Changed("integrator") {
		cfg.Run.Integrator = integrator
	}
	if flags.Changed("rolling") {
		cfg.Run.Rolling = rolling
	}
	if flags.Changed("reverse") {
		cfg.Run.Reverse = reverse
	}
	if flags.Changed("strict") {
		cfg.Run.StrictContinuity = strict
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = logFormat
	}
	if dataDir != "" {
		cfg.Store = dataDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, nil, err
	}
	viz.SetTheme(theme)
	log := logger.NewZerologLogger("cli", os.Stderr, strings.EqualFold(cfg.Logging.Format, "console"))
	return cfg, log, nil
}

func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.Store), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("%s/%s/%s", cfg.Vehicle.Type, cfg.Vehicle.Motor, cfg.Run.Mode)
	exp, err := experiment.New(name, cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	table, err := exp.Execute(log)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	summary := metrics.Summarize(table)

	runID := ""
	if !noSave {
		st := storage.New(cfg.Store)
		if err := st.Init(); err != nil {
			return err
		}
		if runID, err = st.Save(name, exp.IntegratorName(), table); err != nil {
			return err
		}
	}

	if asJSON {
		return printJSON(map[string]any{"run_id": runID, "summary": summary})
	}

	fmt.Printf("completed %d steps in %v\n", table.Len(), elapsed)
	if runID != "" {
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Println(viz.RenderSummary(name, summary))
	if showPlot {
		tr, _ := viz.GetTrace("speed")
		fmt.Println(viz.Chart(table, tr, 80, 12))
	}
	return nil
}

func sizingInput(cmd *cobra.Command) (sizing.Input, error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return sizing.Input{}, err
	}
	return cfg.SizingInput()
}

func sizingReport(cmd *cobra.Command, args []string) error {
	in, err := sizingInput(cmd)
	if err != nil {
		return err
	}
	rep, err := sizing.Compute(in)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(rep)
	}
	fmt.Println(viz.RenderSizing(rep))
	return nil
}

func checkSuitability(cmd *cobra.Command, args []string) error {
	in, err := sizingInput(cmd)
	if err != nil {
		return err
	}
	s, err := sizing.CheckSuitability(in)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(s)
	}
	fmt.Println(viz.RenderSuitability(s))
	return nil
}

func selectMotor(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sel, err := optim.SelectMotor(context.Background(), cfg, motorList, workers, log)
	if sel != nil && len(sel.Candidates) > 0 {
		fmt.Println(viz.RenderSelection(sel))
	}
	return err
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	results, err := automation.RunScenario(context.Background(), sc, cfg, log)
	if err != nil {
		return err
	}

	st := storage.New(cfg.Store)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tGRAD\tMODE\tFINAL KM/H\tWH/KM\tPEAK A\tRUN ID")
	for _, r := range results {
		runID := "-"
		if r.Step.Save && !noSave {
			if err := st.Init(); err != nil {
				return err
			}
			if runID, err = st.Save(r.Experiment.Name, r.Experiment.IntegratorName(), r.Table); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%s\t%.1f\t%s\t%.2f\t%.2f\t%.1f\t%s\n",
			r.Experiment.Name,
			r.Table.Config.Gradient,
			r.Table.Config.Mode,
			r.Summary.FinalSpeedKmh,
			r.Summary.EnergyPerKm,
			r.Summary.PeakCurrent,
			runID,
		)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sweep := &automation.ParameterSweep{
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Workers:   workers,
	}
	results, err := automation.RunSweep(context.Background(), sweep, cfg, log)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL KM/H\tWH/KM\tPEAK A\tCLIMB SHARE\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%.2f\t%.2f\t%.1f\t%.2f\n",
			r.ParamValue, r.Summary.FinalSpeedKmh, r.Summary.EnergyPerKm, r.Summary.PeakCurrent, r.Summary.ClimbShare)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mc := &automation.MonteCarloConfig{Perturbation: perturb, NumTrials: trials, Seed: seed, Workers: workers}
	results, err := automation.RunMonteCarlo(context.Background(), mc, cfg, log)
	if err != nil {
		return err
	}
	st := automation.Stats(results)

	fmt.Printf("trials: %d (±%.0f%%)\n", len(results), perturb*100)
	fmt.Printf("final speed:   %.2f ± %.2f km/h\n", st.FinalSpeedKmh.Mean, st.FinalSpeedKmh.StdDev)
	fmt.Printf("energy per km: %.2f ± %.2f Wh/km\n", st.EnergyPerKm.Mean, st.EnergyPerKm.StdDev)
	fmt.Printf("peak current:  %.1f ± %.1f A\n", st.PeakCurrent.Mean, st.PeakCurrent.StdDev)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tGRAD\tMODE\tFINAL KM/H\tWH/KM\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%s\t%.2f\t%.2f\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Gradient,
			run.Mode,
			run.Summary.FinalSpeedKmh,
			run.Summary.EnergyPerKm,
			run.Integrator,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return printJSON(meta)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	table, err := st.LoadTable(args[0])
	if err != nil {
		return err
	}
	if table.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	fmt.Printf("samples: %d\n\n", table.Len())

	traces := viz.Traces[:4]
	if trace != "" {
		tr, ok := viz.GetTrace(trace)
		if !ok {
			return fmt.Errorf("unknown trace %q (available: %v)", trace, viz.TraceNames())
		}
		traces = []viz.Trace{tr}
	}
	for _, tr := range traces {
		fmt.Println(viz.Chart(table, tr, 80, 10))
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	table, err := st.LoadTable(args[0])
	if err != nil {
		return err
	}

	var f export.Format
	switch {
	case format != "":
		f, err = export.ParseFormat(format)
	case outPath != "":
		f, err = export.FormatFromPath(outPath)
	default:
		f = export.JSON
	}
	if err != nil {
		return err
	}

	if outPath == "" {
		if f == export.XLSX || f == export.PNG {
			return fmt.Errorf("%s export needs --out", f)
		}
		return export.Write(os.Stdout, table, f)
	}
	if f == export.PNG && !strings.HasSuffix(strings.ToLower(outPath), ".png") {
		paths, err := export.WritePNGs(outPath, table)
		for _, p := range paths {
			fmt.Println(p)
		}
		return err
	}
	if err := export.WriteFile(outPath, table, f); err != nil {
		return err
	}
	fmt.Println(outPath)
	return nil
}

func compareRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	tr, ok := viz.GetTrace(cmpTrace)
	if !ok {
		return fmt.Errorf("unknown trace %q (available: %v)", cmpTrace, viz.TraceNames())
	}

	tables := make([]*dynamo.Table, 0, len(args))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tGRAD\tMODE\tFINAL KM/H\tWH/KM")
	for _, id := range args {
		meta, err := st.Load(id)
		if err != nil {
			return err
		}
		table, err := st.LoadTable(id)
		if err != nil {
			return err
		}
		tables = append(tables, table)
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%.2f\t%.2f\n",
			meta.ID, meta.Name, meta.Gradient, meta.Mode, meta.Summary.FinalSpeedKmh, meta.Summary.EnergyPerKm)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(viz.CompareChart(tables, tr, 80, 12))
	return nil
}

func listMotors(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tECO NM\tBOOST NM\tECO W\tBOOST W\tBASE RPM\tMAX RPM\tKG")
	for _, key := range config.ListMotors() {
		m, err := config.GetMotor(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f\t%.0f\t%.0f\t%.0f\t%.0f\t%.1f\n",
			key, m.Name, m.EcoTorque, m.BoostTorque, m.EcoPower, m.BoostPower, m.BaseRPM, m.MaxRPM, m.Weight)
	}
	return w.Flush()
}
