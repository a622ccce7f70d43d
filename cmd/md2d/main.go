package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/md2d/internal/config"
	"github.com/san-kum/md2d/internal/engine"
	"github.com/san-kum/md2d/internal/export"
	"github.com/san-kum/md2d/internal/storage"
	"github.com/san-kum/md2d/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	duration   float64
	target     float64
	interval   int
	metric     string
	frameRate  int
	stepsPerF  int
	svgOut     string
	svgScale   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "md2d",
		Short: "2D molecular dynamics lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".md2d", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset scenario")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario and store observables",
		RunE:  runScenario,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (fs), overrides scenario")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration (fs), overrides scenario")
	runCmd.Flags().IntVar(&interval, "interval", 0, "steps between samples, overrides scenario")

	relaxCmd := &cobra.Command{
		Use:   "relax",
		Short: "relax a scenario to a temperature",
		RunE:  relaxScenario,
	}
	relaxCmd.Flags().Float64Var(&target, "target", 300, "target temperature (K)")

	minimizeCmd := &cobra.Command{
		Use:   "minimize",
		Short: "steepest-descent energy minimization",
		RunE:  minimizeScenario,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a scenario run in the terminal",
		RunE:  liveScenario,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frames per second")
	liveCmd.Flags().IntVar(&stepsPerF, "steps", 20, "integration steps per frame")
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (fs), overrides scenario")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored observable series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&metric, "metric", "temperature", "series to plot (temperature|kinetic|potential)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON, or render its stored frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgOut, "svg", "", "render the run's stored final frame to this SVG file")
	exportCmd.Flags().Float64Var(&svgScale, "scale", 60, "pixels per nm for --svg")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [file.svg]",
		Short: "render a scenario's initial frame to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotScenario,
	}
	snapshotCmd.Flags().Float64Var(&svgScale, "scale", 60, "pixels per nm")

	rootCmd.AddCommand(runCmd, relaxCmd, minimizeCmd, liveCmd, listCmd, plotCmd, exportCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadScenario() (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	if preset != "" {
		p, ok := config.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		return p(), nil
	}
	return config.DefaultConfig(), nil
}

func buildScenario() (*config.Config, *engine.Engine, error) {
	cfg, err := loadScenario()
	if err != nil {
		return nil, nil, err
	}
	if dt > 0 {
		cfg.Dt = dt
	}
	if duration > 0 {
		cfg.Duration = duration
	}
	if interval > 0 {
		cfg.OutputInterval = interval
	}
	if cfg.OutputInterval < 1 {
		cfg.OutputInterval = 1
	}
	eng, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}
	return cfg, eng, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, eng, err := buildScenario()
	if err != nil {
		return err
	}

	steps := int(cfg.Duration / cfg.Dt)
	series := &storage.Series{}
	var out engine.OutputState

	eng.ComputeOutputState(&out)
	series.Append(out.Time, out.KineticEnergy, out.PotentialEnergy, out.Temperature, out.CM.X, out.CM.Y)

	chunk := float64(cfg.OutputInterval) * cfg.Dt
	for s := 0; s < steps; s += cfg.OutputInterval {
		if err := eng.Integrate(chunk, cfg.Dt); err != nil {
			return err
		}
		eng.ComputeOutputState(&out)
		series.Append(out.Time, out.KineticEnergy, out.PotentialEnergy, out.Temperature, out.CM.X, out.CM.Y)
	}

	metrics := map[string]float64{
		"final_temperature": out.Temperature,
		"final_kinetic":     out.KineticEnergy,
		"final_potential":   out.PotentialEnergy,
	}
	for k, v := range out.Pressure {
		metrics["pressure_"+k] = v
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(cfg.Name, cfg.Dt, cfg.Duration, eng.NumberOfAtoms(), metrics, series)
	if err != nil {
		return err
	}
	if err := store.SaveFrame(runID, export.CaptureFrame(eng)); err != nil {
		return err
	}

	fmt.Printf("run %s: %d atoms, %d steps\n\n", runID, eng.NumberOfAtoms(), steps)
	fmt.Println(asciigraph.Plot(series.Temperature,
		asciigraph.Height(10), asciigraph.Width(70),
		asciigraph.Caption("temperature (K)")))
	fmt.Printf("\nfinal: T=%.1f K  KE=%.4f eV  PE=%.4f eV\n",
		out.Temperature, out.KineticEnergy, out.PotentialEnergy)
	return nil
}

func relaxScenario(cmd *cobra.Command, args []string) error {
	_, eng, err := buildScenario()
	if err != nil {
		return err
	}
	if err := eng.RelaxToTemperature(target); err != nil {
		return err
	}
	fmt.Printf("relaxed to %.1f K (target %.1f K) at t=%.0f fs\n", eng.Temperature(), target, eng.Time())
	return nil
}

func minimizeScenario(cmd *cobra.Command, args []string) error {
	_, eng, err := buildScenario()
	if err != nil {
		return err
	}
	iters, err := eng.MinimizeEnergy()
	if err != nil {
		return err
	}
	var out engine.OutputState
	eng.ComputeOutputState(&out)
	fmt.Printf("minimized in %d iterations: PE=%.6f eV\n", iters, out.PotentialEnergy)
	return nil
}

func liveScenario(cmd *cobra.Command, args []string) error {
	cfg, eng, err := buildScenario()
	if err != nil {
		return err
	}
	return viz.RunLive(eng, cfg.Dt, stepsPerF, frameRate)
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tATOMS\tDT\tDURATION\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.0f\t%s\n",
			r.ID, r.Scenario, r.Atoms, r.Dt, r.Duration, r.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	series, err := store.LoadSeries(args[0])
	if err != nil {
		return err
	}
	var vals []float64
	switch metric {
	case "temperature":
		vals = series.Temperature
	case "kinetic":
		vals = series.Kinetic
	case "potential":
		vals = series.Potential
	default:
		return fmt.Errorf("unknown metric %q", metric)
	}
	if len(vals) == 0 {
		return fmt.Errorf("run %s has no samples", args[0])
	}
	fmt.Println(asciigraph.Plot(vals,
		asciigraph.Height(15), asciigraph.Width(70),
		asciigraph.Caption(metric)))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)

	if svgOut != "" {
		frame, err := store.LoadFrame(args[0])
		if err != nil {
			return err
		}
		svg := export.FrameToSVG(frame, svgScale)
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
		return nil
	}

	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func snapshotScenario(cmd *cobra.Command, args []string) error {
	_, eng, err := buildScenario()
	if err != nil {
		return err
	}
	var out engine.OutputState
	eng.ComputeOutputState(&out) // refresh bond endpoints for rendering
	svg := export.FrameToSVG(export.CaptureFrame(eng), svgScale)
	if err := os.WriteFile(args[0], []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
