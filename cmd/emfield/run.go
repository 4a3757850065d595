package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/emfield/internal/config"
	"github.com/san-kum/emfield/internal/export"
	"github.com/san-kum/emfield/internal/field"
	"github.com/san-kum/emfield/internal/gui"
	"github.com/san-kum/emfield/internal/metrics"
	"github.com/san-kum/emfield/internal/storage"
	"github.com/san-kum/emfield/internal/viz"
)

const ensembleParallel = 2

// resolveConfig layers defaults, preset, config file and explicitly set flags
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadInto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("cutoff") {
		cfg.Cutoff = cutoff
	}
	if flags.Changed("samples") {
		cfg.SampleCount = samples
	}
	if flags.Changed("dx") {
		cfg.Dx = dx
	}
	if flags.Changed("extent") {
		cfg.Extent = extent
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("stride") {
		cfg.Render.Stride = stride
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveSeed(cfg *config.Config) uint64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return uint64(time.Now().UnixNano())
}

func runField(cmd *cobra.Command, args []string) error {
	switch renderer {
	case "gui", "tui", "none":
	default:
		return fmt.Errorf("unknown renderer: %s (available: gui, tui, none)", renderer)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s := resolveSeed(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("synthesizing field",
		"modes", cfg.SampleCount, "cutoff", cfg.Cutoff, "dx", cfg.Dx, "extent", cfg.Extent, "seed", s)

	res, err := field.Run(ctx, cfg.Params(), field.NewSource(s))
	if err != nil {
		return err
	}

	sum := metrics.Summarize(res.Energy)
	shape := res.Grid.Shape()
	fmt.Printf("completed in %v\n", res.Elapsed.Round(time.Millisecond))
	fmt.Printf("grid: %d x %d x %d\n", shape[0], shape[1], shape[2])
	fmt.Printf("seed: %d\n", s)
	fmt.Printf("energy: min %.4e  max %.4e  mean %.4e  std %.4e\n", sum.Min, sum.Max, sum.Mean, sum.Std)

	if save {
		runID, err := storage.New(dataDir).Save(cfg, s, res)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	scene, err := viz.BuildScene(res.Grid, res.Energy, cfg.Render.Stride, cfg.Render.Levels)
	if err != nil {
		return err
	}

	if svgPath != "" {
		opts := export.DefaultSVGOptions()
		opts.Width, opts.Height = cfg.Render.Width, cfg.Render.Height
		opts.Theme = viz.GetTheme(cfg.Render.Theme)
		if err := os.WriteFile(svgPath, []byte(export.SceneToSVG(scene, opts)), 0o644); err != nil {
			return err
		}
		fmt.Printf("svg: %s\n", svgPath)
	}

	subtitle := fmt.Sprintf("%d modes < %.1e Hz, seed %d", cfg.SampleCount, cfg.Cutoff, s)
	switch renderer {
	case "gui":
		gui.Show(scene, gui.Options{
			Width:    cfg.Render.Width,
			Height:   cfg.Render.Height,
			Theme:    cfg.Render.Theme,
			Subtitle: subtitle,
		})
	case "tui":
		profile, err := metrics.Profile(res.Energy, res.Grid.Y)
		if err != nil {
			return err
		}
		info := viz.Info{Subtitle: subtitle, Summary: sum, Profile: metrics.Means(profile)}
		return viz.RunViewer(viz.NewViewer(scene, info, cfg.Render.Theme))
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	if numRuns <= 0 {
		return fmt.Errorf("--runs must be positive, got %d", numRuns)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	start := resolveSeed(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d realizations from seed %d...\n", numRuns, start)
	stats := metrics.NewEnsembleStats()
	ens := field.NewEnsemble(cfg.Params(), numRuns, start, ensembleParallel)
	err = ens.Run(ctx, func(idx int, s uint64, r *field.Result) error {
		stats.Observe(metrics.Realization{Index: idx, Seed: s, Summary: metrics.Summarize(r.Energy)})
		slog.Debug("realization done", "index", idx, "seed", s, "elapsed", r.Elapsed)
		return nil
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSEED\tMEAN\tSTD\tMAX\tCONTRAST")
	for _, r := range stats.Runs() {
		fmt.Fprintf(w, "%d\t%d\t%.4e\t%.4e\t%.4e\t%.2f\n",
			r.Index, r.Seed, r.Summary.Mean, r.Summary.Std, r.Summary.Max, r.Summary.Contrast())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	mean, std := stats.MeanEnergy()
	fmt.Printf("\nensemble mean energy: %.4e ± %.4e\n", mean, std)
	return nil
}
