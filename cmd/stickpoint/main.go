package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/stickpoint/internal/analysis"
	"github.com/san-kum/stickpoint/internal/automation"
	"github.com/san-kum/stickpoint/internal/config"
	"github.com/san-kum/stickpoint/internal/experiment"
	"github.com/san-kum/stickpoint/internal/export"
	"github.com/san-kum/stickpoint/internal/gui"
	"github.com/san-kum/stickpoint/internal/optim"
	"github.com/san-kum/stickpoint/internal/sim"
	"github.com/san-kum/stickpoint/internal/storage"
	"github.com/san-kum/stickpoint/internal/verlet"
	"github.com/san-kum/stickpoint/internal/viz"
	"github.com/spf13/cobra"
)

const defaultPreset = "square"

var (
	dataDir     string
	configFile  string
	ticks       int
	gravity     float64
	friction    float64
	wallBounce  float64
	recordEvery int
	noSave      bool
	pointIdx    int
	outPath     string
	trace       bool
	frameRate   int
	gifPath     string
	theme       string
	seed        int64
	// sweep
	paramName string
	paramMin  float64
	paramMax  float64
	numSteps  int
	// montecarlo
	numTrials int
	amplitude float64
	// tune
	gridSpecs  []string
	metricName string
)

// main registers the stickpoint commands and runs the root command. Without
// a subcommand the default scene opens in the GUI. It exits with status 1
// if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "stickpoint",
		Short:        "verlet stick-and-point soft-body simulator",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".stickpoint", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset|file]",
		Short: "run a scene headless and save the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().IntVar(&recordEvery, "record-every", 1, "keep one frame every N ticks (0 keeps first and last only)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not write the run to the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy and a point's coordinates",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&pointIdx, "point", 0, "point index")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export the final frame of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and frames to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	svgCmd := &cobra.Command{
		Use:   "svg [preset|file]",
		Short: "simulate a scene and draw the last frame as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderSVG,
	}
	addSceneFlags(svgCmd)
	svgCmd.Flags().StringVar(&outPath, "out", "", "output file (default <scene>.svg)")
	svgCmd.Flags().BoolVar(&trace, "trace", false, "overlay the path of every point")

	liveCmd := &cobra.Command{
		Use:   "live [preset|file]",
		Short: "run a scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", viz.DefaultFPS, "frame rate")
	liveCmd.Flags().StringVar(&gifPath, "gif", "", "record the session to a GIF")
	liveCmd.Flags().StringVar(&theme, "theme", viz.ThemePaper.Name,
		fmt.Sprintf("color theme (%s)", strings.Join(viz.ThemeNames(), ", ")))

	guiCmd := &cobra.Command{
		Use:   "gui [preset|file]",
		Short: "run a scene in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addSceneFlags(guiCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenes",
		RunE:  listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset|file]",
		Short: "run a scene once per value of a parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&configFile, "config", "", "scene file path (yaml)")
	sweepCmd.Flags().IntVar(&ticks, "ticks", 0, "ticks per run (default from scene)")
	sweepCmd.Flags().StringVar(&paramName, "param", "gravity",
		fmt.Sprintf("parameter to vary (%s)", strings.Join(config.Params, ", ")))
	sweepCmd.Flags().Float64Var(&paramMin, "min", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&paramMax, "max", 1.0, "last value")
	sweepCmd.Flags().IntVar(&numSteps, "steps", 10, "number of values")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of scenes",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [preset|file]",
		Short: "run a scene repeatedly with perturbed initial velocities",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().StringVar(&configFile, "config", "", "scene file path (yaml)")
	monteCarloCmd.Flags().IntVar(&ticks, "ticks", 0, "ticks per trial (default from scene)")
	monteCarloCmd.Flags().IntVar(&numTrials, "trials", 50, "number of trials")
	monteCarloCmd.Flags().Float64Var(&amplitude, "amplitude", 2.0, "peak initial speed added by noise")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "seed of the first trial")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "oscillation analysis of a point",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&pointIdx, "point", 0, "point index")

	tuneCmd := &cobra.Command{
		Use:   "tune [preset|file]",
		Short: "grid search scene parameters for the smallest metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTune,
	}
	tuneCmd.Flags().StringVar(&configFile, "config", "", "scene file path (yaml)")
	tuneCmd.Flags().IntVar(&ticks, "ticks", 0, "ticks per run (default from scene)")
	tuneCmd.Flags().StringArrayVar(&gridSpecs, "grid", []string{"friction=0.9:0.999:5"}, "parameter range as name=min:max:steps (repeatable)")
	tuneCmd.Flags().StringVar(&metricName, "metric", "settle_tick", "metric to minimize")

	benchCmd := &cobra.Command{
		Use:   "bench [preset|file]",
		Short: "benchmark stepping a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}
	benchCmd.Flags().StringVar(&configFile, "config", "", "scene file path (yaml)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, svgCmd, liveCmd, guiCmd, presetsCmd, sweepCmd, scenarioCmd, monteCarloCmd, tuneCmd, analyzeCmd, benchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scene file path (yaml)")
	cmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks (default from scene)")
	cmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "gravity added to vy each tick")
	cmd.Flags().Float64Var(&friction, "friction", config.DefaultFriction, "velocity multiplier per tick")
	cmd.Flags().Float64Var(&wallBounce, "wall-bounce", config.DefaultWallBounce, "velocity kept when hitting a wall")
}

// loadScene resolves --config, then the positional preset or file, then
// the default preset. Flags given on the command line override the scene.
func loadScene(cmd *cobra.Command, args []string) (*config.Scene, error) {
	var scene *config.Scene
	var err error

	switch {
	case configFile != "":
		scene, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	case len(args) > 0:
		scene, err = experiment.ResolveScene(args[0])
	default:
		scene, err = experiment.ResolveScene(defaultPreset)
	}
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		flag  string
		param string
		value float64
	}{
		{"gravity", "gravity", gravity},
		{"friction", "friction", friction},
		{"wall-bounce", "wall_bounce", wallBounce},
	}
	for _, o := range overrides {
		if !cmd.Flags().Changed(o.flag) {
			continue
		}
		if err := scene.Set(o.param, o.value); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("ticks") {
		if ticks <= 0 {
			return nil, fmt.Errorf("ticks must be positive, got %d", ticks)
		}
		scene.Ticks = ticks
	}

	return scene, nil
}

func buildWorld(cmd *cobra.Command, args []string) (*config.Scene, *verlet.World, error) {
	scene, err := loadScene(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	w, err := scene.Build()
	if err != nil {
		return nil, nil, err
	}
	return scene, w, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	scene, err := loadScene(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{
		Scene:         scene,
		RecordEvery:   recordEvery,
		ValidateState: true,
	})
	if err := exp.Setup(experiment.DefaultMetrics()); err != nil {
		return err
	}

	fmt.Fprintf(out, "running %s simulation...\n", scene.Name)
	start := time.Now()

	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	fmt.Fprintf(out, "completed in %v\n", elapsed)
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(scene, sim.Config{Ticks: result.StepsTaken, RecordEvery: recordEvery}, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run id: %s\n", runID)
	}
	fmt.Fprintf(out, "ticks: %d\n", result.StepsTaken)
	fmt.Fprintf(out, "frames: %d\n", len(result.Frames))
	fmt.Fprintln(out, "\nmetrics:")
	printMetrics(out, result.Metrics)

	return nil
}

func printMetrics(out io.Writer, m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.6f\n", name, m[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tTICKS\tPOINTS\tSTICKS\tGRAVITY\tFRICTION")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.3f\t%.3f\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Points,
			run.Sticks,
			run.World.Gravity,
			run.World.Friction,
		)
	}

	return w.Flush()
}

// loadPointSeries reads a run and splits out the energy and the coordinates
// of one point per stored frame.
func loadPointSeries(runID string, point int) (*storage.RunMetadata, []storage.FrameRecord, [3][]float64, error) {
	var series [3][]float64

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, series, err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, series, err
	}
	if len(frames) == 0 {
		return nil, nil, series, fmt.Errorf("no data in run %s", runID)
	}
	if point < 0 || point >= meta.Points {
		return nil, nil, series, fmt.Errorf("point %d out of range (run has %d points)", point, meta.Points)
	}

	for i := range series {
		series[i] = make([]float64, len(frames))
	}
	for i, f := range frames {
		x, y := f.Point(point)
		series[0][i] = f.Energy
		series[1][i] = x
		series[2][i] = y
	}

	return meta, frames, series, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	meta, frames, series, err := loadPointSeries(args[0], pointIdx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "scene: %s\n", meta.Scene)
	fmt.Fprintf(out, "samples: %d\n\n", len(frames))

	captions := []string{
		"kinetic energy",
		fmt.Sprintf("point %d x", pointIdx),
		fmt.Sprintf("point %d y", pointIdx),
	}
	for i, data := range series {
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(captions[i]),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	scene, err := st.LoadScene(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	frame, err := frames[len(frames)-1].Frame(scene)
	if err != nil {
		return err
	}

	return writeOutput(cmd, outPath, export.FrameToSVG(frame))
}

func writeOutput(cmd *cobra.Command, path, data string) error {
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), data)
		return err
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(cmd.OutOrStdout())
	defer w.Flush()

	header := []string{"tick", "energy"}
	for i := 0; i < len(frames[0].Positions)/2; i++ {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, f := range frames {
		row := []string{strconv.Itoa(f.Tick), strconv.FormatFloat(f.Energy, 'f', 6, 64)}
		for _, val := range f.Positions {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outPath == "" {
		data, err := st.Export(args[0])
		if err != nil {
			return err
		}
		return storage.WriteJSON(cmd.OutOrStdout(), data)
	}
	if err := st.ExportJSON(args[0], outPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	scene, w, err := buildWorld(cmd, args)
	if err != nil {
		return err
	}

	cfg := sim.Config{Ticks: scene.Ticks, ValidateState: true}
	if trace {
		cfg.RecordEvery = 1
	}
	result, err := sim.New(w).Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	final := result.Final()
	svg := export.FrameToSVG(final)
	if trace {
		trails := make([][]verlet.Vec2, len(final.Points))
		for i := range trails {
			trails[i] = make([]verlet.Vec2, len(result.Frames))
			for j, f := range result.Frames {
				trails[i][j] = verlet.Vec2{X: f.Points[i].X, Y: f.Points[i].Y}
			}
		}
		svg = export.FrameWithTrails(final, trails, "#00aaff")
	}

	path := outPath
	if path == "" {
		path = scene.Name + ".svg"
	}
	return writeOutput(cmd, path, svg)
}

func runLive(cmd *cobra.Command, args []string) error {
	scene, w, err := buildWorld(cmd, args)
	if err != nil {
		return err
	}

	m := viz.NewModel(w, viz.Options{
		Name:    scene.Name,
		FPS:     frameRate,
		Theme:   theme,
		GIFPath: gifPath,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	final, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := final.(viz.Model); ok {
		if err := fm.Err(); err != nil {
			return fmt.Errorf("failed to save gif: %w", err)
		}
		if gifPath != "" && fm.Frames() > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d frames)\n", gifPath, fm.Frames())
		}
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	scene, w, err := buildWorld(cmd, args)
	if err != nil {
		return err
	}
	return gui.Run(w, scene.Name)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		fmt.Fprintf(w, "%s\t%s\n", name, config.Describe(name))
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	scene, err := loadScene(cmd, args)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), out, &automation.ParameterSweep{
		Scene:     scene,
		ParamName: paramName,
		ParamMin:  paramMin,
		ParamMax:  paramMax,
		NumSteps:  numSteps,
		Ticks:     scene.Ticks,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMEAN_ENERGY\tFINAL_ENERGY\tSETTLE\tMAX_STRAIN\tCONTAINED\n", strings.ToUpper(paramName))
	for _, r := range results {
		settle := "-"
		if r.SettleTick >= 0 {
			settle = strconv.Itoa(r.SettleTick)
		}
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%s\t%.4f\t%.0f%%\n",
			r.ParamValue, r.MeanEnergy, r.FinalEnergy, settle, r.MaxStrain, 100*r.Containment)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	if scenario.Description != "" {
		fmt.Fprintf(out, "%s: %s\n", scenario.Name, scenario.Description)
	}

	results, err := automation.RunScenario(cmd.Context(), out, scenario, st)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSCENE\tTICKS\tFINAL_ENERGY\tMAX_STRAIN\tRUN")
	for i, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%.4f\t%.4f\t%s\n",
			i+1, r.Scene, r.Result.StepsTaken, r.Result.Metrics["final_energy"], r.Result.Metrics["max_strain"], runID)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	scene, err := loadScene(cmd, args)
	if err != nil {
		return err
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), out, &automation.MonteCarloConfig{
		Scene:     scene,
		Amplitude: amplitude,
		NumTrials: numTrials,
		Ticks:     scene.Ticks,
		Seed:      seed,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tSEED\tFINAL_ENERGY\tMAX_STRAIN\tSTABLE")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.4f\t%.4f\t%v\n", r.TrialID, r.Seed, r.FinalEnergy, r.MaxStrain, r.Stable)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Fprintf(out, "\nstable: %d, unstable: %d\n", stable, unstable)
	return nil
}

// parseGrid reads "name=min:max:steps".
func parseGrid(spec string) (string, []float64, error) {
	name, rng, ok := strings.Cut(spec, "=")
	if !ok {
		return "", nil, fmt.Errorf("invalid grid %q: want name=min:max:steps", spec)
	}
	parts := strings.Split(rng, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("invalid grid %q: want name=min:max:steps", spec)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("invalid grid %q: %w", spec, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("invalid grid %q: %w", spec, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return "", nil, fmt.Errorf("invalid grid %q: steps must be a positive integer", spec)
	}
	return name, optim.Linspace(lo, hi, n), nil
}

func runTune(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	scene, err := loadScene(cmd, args)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(gridSpecs))
	ranges := make([][]float64, 0, len(gridSpecs))
	combos := 1
	for _, spec := range gridSpecs {
		name, values, err := parseGrid(spec)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
		combos *= len(values)
	}

	fmt.Fprintf(out, "searching %d combinations of %s on %s for the smallest %s...\n",
		combos, strings.Join(names, ", "), scene.Name, metricName)
	start := time.Now()

	best, value, err := optim.NewGridSearch(names, ranges).Search(cmd.Context(), scene, scene.Ticks, metricName)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "completed in %v\n\n", time.Since(start))
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.6f\n", name, best[name])
	}
	fmt.Fprintf(out, "  %s: %.6f\n", metricName, value)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	meta, _, series, err := loadPointSeries(args[0], pointIdx)
	if err != nil {
		return err
	}
	y := series[2]
	if len(y) < 4 {
		return fmt.Errorf("run %s has too few frames to analyze", meta.ID)
	}

	// periods come back in samples; one sample is RecordEvery ticks
	perSample := float64(meta.RecordEvery)
	if perSample < 1 {
		perSample = 1
	}

	fmt.Fprintf(out, "oscillation analysis: %s\n", meta.ID)
	fmt.Fprintf(out, "scene: %s, point %d\n\n", meta.Scene, pointIdx)

	n := 1
	for n*2 <= len(y) {
		n *= 2
	}
	ps := analysis.PowerSpectrum(y[len(y)-n:])
	plotData := ps[1:]
	if len(plotData) > 64 {
		plotData = plotData[:len(ps)/4]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (y%d)", pointIdx)),
	)
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out)

	if period, ok := analysis.DominantPeriod(y); ok {
		fmt.Fprintf(out, "dominant period: %.2f ticks\n", period*perSample)
	} else {
		fmt.Fprintln(out, "dominant period: none")
	}
	if period, ok := analysis.CrossingPeriod(y); ok {
		fmt.Fprintf(out, "crossing period: %.2f ticks\n", period*perSample)
	} else {
		fmt.Fprintln(out, "crossing period: none")
	}

	if portrait := analysis.NewPhasePortrait(y); portrait != nil {
		fmt.Fprintf(out, "\nphase portrait (y%d vs dy per sample):\n", pointIdx)
		fmt.Fprintln(out, analysis.PhasePortraitToASCII(portrait, 70, 20))
	}

	return nil
}

func benchScene(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	scene, err := loadScene(cmd, args)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "benchmarking %s (%d points, %d sticks)\n\n", scene.Name, len(scene.Points), len(scene.Sticks))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TICKS\tTIME\tTICKS/SEC\tENERGY")

	for _, n := range []int{100, 1000, 10000} {
		world, err := scene.Build()
		if err != nil {
			return err
		}

		start := time.Now()
		for i := 0; i < n; i++ {
			world.Step()
		}
		elapsed := time.Since(start)

		if !world.IsValid() {
			return &verlet.SimulationError{Tick: world.Tick(), Wrapped: verlet.ErrInvalidState}
		}

		fmt.Fprintf(w, "%d\t%v\t%.0f\t%.4f\n", n, elapsed, float64(n)/elapsed.Seconds(), world.KineticEnergy())
	}

	return w.Flush()
}
