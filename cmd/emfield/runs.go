package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/emfield/internal/analysis"
	"github.com/san-kum/emfield/internal/export"
	"github.com/san-kum/emfield/internal/metrics"
	"github.com/san-kum/emfield/internal/storage"
	"github.com/san-kum/emfield/internal/viz"
)

// runArg returns the run named on the command line, or the latest run.
func runArg(st *storage.Store, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return st.Latest()
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
	fmt.Fprintln(w, "ID\tTIME\tSEED\tMODES\tGRID\tMEAN\tMAX\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%dx%dx%d\t%.3e\t%.3e\t%.2fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Modes,
			run.Shape[0], run.Shape[1], run.Shape[2],
			run.Summary.Mean,
			run.Summary.Max,
			run.Elapsed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := runArg(st, args)
	if err != nil {
		return err
	}

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	profile, err := st.LoadProfile(runID)
	if err != nil {
		return err
	}
	modes, err := st.LoadModes(runID)
	if err != nil {
		return err
	}
	if len(profile) == 0 || len(modes) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("seed: %d\n", meta.Seed)
	fmt.Printf("modes: %d\n\n", meta.Modes)

	fmt.Println(asciigraph.Plot(metrics.Means(profile),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("mean energy density along y"),
	))
	fmt.Println()

	e, b := analysis.ModeAmplitudes(storage.Weights(modes))
	fmt.Println(asciigraph.Plot(e,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("|E| weight per mode"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(b,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("|B| weight per mode"),
	))

	if plotSVG != "" {
		opts := export.DefaultSVGOptions()
		if meta.Config != nil {
			opts.Width, opts.Height = meta.Config.Render.Width, meta.Config.Render.Height
			opts.Theme = viz.GetTheme(meta.Config.Render.Theme)
		}
		if err := os.WriteFile(plotSVG, []byte(export.ProfileToSVG(profile, opts)), 0o644); err != nil {
			return err
		}
		fmt.Printf("\nsvg: %s\n", plotSVG)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := runArg(st, args)
	if err != nil {
		return err
	}

	profile, err := st.LoadProfile(runID)
	if err != nil {
		return err
	}
	if len(profile) < 2 {
		return analysis.ErrTooShort
	}

	ps, err := analysis.PowerSpectrum(metrics.Means(profile), profile[1].Position-profile[0].Position)
	if err != nil {
		return err
	}

	freq, power := ps.Dominant()
	fmt.Printf("run: %s\n", runID)
	fmt.Printf("slices: %d\n", len(profile))
	fmt.Printf("dominant spatial frequency: %.4e 1/m (wavelength %s)\n", freq, wavelength(freq))
	fmt.Printf("dominant power: %.4e\n", power)
	fmt.Printf("total power: %.4e\n\n", ps.Total())

	if len(ps.Power) > 1 {
		fmt.Println(asciigraph.Plot(ps.Power[1:],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("profile power spectrum"),
		))
	}
	return nil
}

func wavelength(freq float64) string {
	if freq == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.3e m", 1/freq)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := runArg(st, args)
	if err != nil {
		return err
	}
	return st.ExportJSON(os.Stdout, runID)
}

func exportXLSX(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := runArg(st, args)
	if err != nil {
		return err
	}
	out := runID + ".xlsx"
	if len(args) > 1 {
		out = args[1]
	}
	if err := st.ExportXLSX(runID, out); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", runID, out)
	return nil
}
