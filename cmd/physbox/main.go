package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/kalver/physbox/internal/config"
	"github.com/kalver/physbox/internal/engine"
	"github.com/kalver/physbox/internal/export"
	"github.com/kalver/physbox/internal/metrics"
	"github.com/kalver/physbox/internal/preset"
	"github.com/kalver/physbox/internal/snapshot"
	"github.com/kalver/physbox/internal/storage"
	"github.com/kalver/physbox/internal/vec"
	"github.com/kalver/physbox/internal/viz"
	"github.com/kalver/physbox/internal/world"
)

var (
	dataDir    string
	configFile string
	duration   float64
	frameRate  int
	saveRun    bool
	sceneName  string
	numBodies  int
	numFrames  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "physbox",
		Short: "2D physics sandbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live sandbox with the box scene.
			return liveScene(cmd, []string{"box"})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  liveScene,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene headless and report diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  runScene,
	}
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated seconds")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "record diagnostics to the data directory")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range preset.List() {
				fmt.Println(name)
			}
			return nil
		},
	}

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list saved scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := storage.New(dataDir).ListScenes()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Println("no saved scenes")
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [scene] [file]",
		Short: "write a scene as snapshot JSON",
		Args:  cobra.ExactArgs(2),
		RunE:  exportScene,
	}

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "validate a snapshot file and save it as a scene",
		Args:  cobra.ExactArgs(1),
		RunE:  importScene,
	}
	importCmd.Flags().StringVar(&sceneName, "as", "", "scene name (defaults to the file name)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [scene] [file]",
		Short: "render a scene to an SVG image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := resolveScene(args[0])
			if err != nil {
				return err
			}
			return os.WriteFile(args[1], []byte(export.WorldToSVG(w)), 0644)
		},
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run's energy history",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure stepping throughput",
		RunE:  benchSteps,
	}
	benchCmd.Flags().IntVar(&numBodies, "bodies", 50, "number of bodies")
	benchCmd.Flags().IntVar(&numFrames, "frames", 2000, "frames to step")

	rootCmd.AddCommand(liveCmd, runCmd, presetsCmd, scenesCmd, exportCmd, importCmd, exportSVGCmd, runsCmd, plotCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveScene builds a world from a built-in preset or a saved scene,
// then overlays the config file's world parameters if one is given.
func resolveScene(name string) (*world.World, error) {
	w := preset.Get(name)
	if w == nil {
		var err error
		w, err = storage.New(dataDir).LoadScene(name)
		if err != nil {
			return nil, fmt.Errorf("unknown scene %q (presets: %v)", name, preset.List())
		}
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg.Apply(w)
	}
	return w, nil
}

func liveScene(cmd *cobra.Command, args []string) error {
	name := "box"
	if len(args) > 0 {
		name = args[0]
	}
	w, err := resolveScene(name)
	if err != nil {
		return err
	}
	return viz.Run(engine.New(w), name, frameRate)
}

func runScene(cmd *cobra.Command, args []string) error {
	name := args[0]
	w, err := resolveScene(name)
	if err != nil {
		return err
	}

	e := engine.New(w)
	rec := &metrics.Recorder{}
	e.AddObserver(rec)

	frames := int(duration / engine.FrameDt)
	fmt.Printf("running %s for %.1fs (%d frames)...\n", name, duration, frames)
	start := time.Now()
	for i := 0; i < frames; i++ {
		e.Step()
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	stats := e.Stats()
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BODIES\tKINETIC\tPOTENTIAL\tTOTAL\tMOMENTUM")
	fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.4f\t(%.3f, %.3f)\n",
		len(w.Bodies), stats.Kinetic, stats.Potential, stats.Total,
		stats.Momentum.X, stats.Momentum.Y)
	if err := tw.Flush(); err != nil {
		return err
	}

	if rec.Len() > 1 {
		fmt.Println()
		graph := asciigraph.Plot(rec.Total,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("total energy"),
		)
		fmt.Println(graph)
	}

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.SaveRun(name, w, rec)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

func exportScene(cmd *cobra.Command, args []string) error {
	w, err := resolveScene(args[0])
	if err != nil {
		return err
	}
	data, err := snapshot.Export(w)
	if err != nil {
		return err
	}
	if args[1] == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(args[1], data, 0644)
}

func importScene(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	w, err := snapshot.Import(data)
	if err != nil {
		return err
	}

	name := sceneName
	if name == "" {
		name = trimExt(args[0])
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	if err := st.SaveScene(name, w); err != nil {
		return err
	}
	fmt.Printf("imported %d bodies, %d constraints, %d fields as %q\n",
		len(w.Bodies), len(w.Constraints), len(w.Fields), name)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSCENE\tTIME\tFRAMES\tBODIES\tTOTAL ENERGY")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%.4f\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Bodies,
			run.Final.Total,
		)
	}
	return tw.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	rec, err := storage.New(dataDir).LoadRun(args[0])
	if err != nil {
		return err
	}
	if rec.Len() < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s (%d samples)\n\n", args[0], rec.Len())
	for _, series := range []struct {
		name string
		data []float64
	}{
		{"kinetic", rec.Kinetic},
		{"potential", rec.Potential},
		{"total", rec.Total},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(series.name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func benchSteps(cmd *cobra.Command, args []string) error {
	w := world.New()
	for i := 0; i < numBodies; i++ {
		b := w.AddCircle(vec.Vec{
			X: float64(i%20)*38 + 20,
			Y: float64(i/20)*38 + 20,
		})
		b.Velocity = vec.Vec{X: float64(i%7) - 3, Y: float64(i%5) - 2}
	}

	e := engine.New(w)
	start := time.Now()
	for i := 0; i < numFrames; i++ {
		e.Step()
	}
	elapsed := time.Since(start)

	fmt.Printf("%d bodies, %d frames in %v (%.0f frames/sec)\n",
		numBodies, numFrames, elapsed, float64(numFrames)/elapsed.Seconds())
	return nil
}

func trimExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
