package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/emfield/internal/config"
)

var (
	dataDir  string
	logLevel string

	configFile string
	preset     string
	cutoff     float64
	samples    int
	dx         float64
	extent     float64
	seed       uint64
	workers    int
	stride     int
	renderer   string
	svgPath    string
	save       bool

	numRuns int

	dumpPreset string
	dumpOut    string
	plotSVG    string
)

// main wires the emfield commands and exits with status 1 when a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "emfield",
		Short:         "stochastic electromagnetic field synthesis",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer = "gui"
			return runField(cmd, args)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".emfield", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "synthesize a field and render it",
		Args:  cobra.NoArgs,
		RunE:  runField,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&renderer, "renderer", "gui", "renderer: gui, tui or none")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "synthesize a field and explore it in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer = "tui"
			return runField(cmd, args)
		},
	}
	addRunFlags(viewCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the energy profile and mode amplitudes of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotSVG, "svg", "", "also write the energy profile to this SVG file")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spatial power spectrum of a run's energy profile",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}

	exportXLSXCmd := &cobra.Command{
		Use:   "export-xlsx [run_id] [out]",
		Short: "export run data to an Excel workbook",
		Args:  cobra.MaximumNArgs(2),
		RunE:  exportXLSX,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets, or dump one as yaml",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}
	presetsCmd.Flags().StringVar(&dumpPreset, "dump", "", "print the named preset as a yaml config")
	presetsCmd.Flags().StringVar(&dumpOut, "out", "", "write the dumped preset to this file instead of stdout")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run independent realizations and compare their energy statistics",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addRunFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 4, "number of realizations")

	rootCmd.AddCommand(runCmd, viewCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportXLSXCmd, presetsCmd, ensembleCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func listPresets(cmd *cobra.Command, args []string) error {
	if dumpPreset != "" {
		p := config.GetPreset(dumpPreset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", dumpPreset, config.ListPresets())
		}
		if dumpOut != "" {
			return config.Save(dumpOut, p)
		}
		return config.Encode(cmd.OutOrStdout(), p)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "presets:")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(out, "  %-8s cutoff=%.2e samples=%d dx=%.1e extent=%.1e stride=%d\n",
			name, p.Cutoff, p.SampleCount, p.Dx, p.Extent, p.Render.Stride)
	}
	return nil
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64Var(&cutoff, "cutoff", config.DefaultCutoff, "upper frequency bound (Hz)")
	f.IntVar(&samples, "samples", config.DefaultSampleCount, "number of modes")
	f.Float64Var(&dx, "dx", config.DefaultDx, "grid spacing (m)")
	f.Float64Var(&extent, "extent", config.DefaultExtent, "grid extent per axis (m)")
	f.Uint64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	f.IntVar(&workers, "workers", 0, "synthesis workers (0 = all CPUs)")
	f.IntVar(&stride, "stride", config.DefaultStride, "wireframe sampling stride")
	f.StringVar(&svgPath, "svg", "", "also write the wireframe to this SVG file")
	f.BoolVar(&save, "save", false, "save the run to the data directory")
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}
