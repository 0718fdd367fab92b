package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShapeNest/internal/engine"
	"github.com/piwi3910/ShapeNest/internal/export"
	"github.com/piwi3910/ShapeNest/internal/gcode"
	"github.com/piwi3910/ShapeNest/internal/importer"
	"github.com/piwi3910/ShapeNest/internal/model"
	"github.com/piwi3910/ShapeNest/internal/project"
)

type runOptions struct {
	configPath  string
	seed        int64
	runs        int
	evaluations int
	reportDir   string
	profile     string
	cellSize    float64
}

func newRunCmd(c *cli) *cobra.Command {
	var o runOptions
	cmd := &cobra.Command{
		Use:   "run <problem-file>",
		Short: "Run a batch of searches on a problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.LoadConfig(o.configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("seed") {
				cfg.RNG = model.RNGConfig{Mode: model.RNGSeed, Seed: o.seed}
			}
			if flags.Changed("runs") {
				cfg.Runs = o.runs
			}
			if flags.Changed("evaluations") {
				cfg.Evaluations = o.evaluations
			}
			if flags.Changed("report-dir") {
				cfg.Output.ReportDir = o.reportDir
			}
			return c.run(cmd.Context(), args[0], o, cfg)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "experiment configuration file (required)")
	f.Int64Var(&o.seed, "seed", 0, "fixed base seed, overrides rng settings")
	f.IntVar(&o.runs, "runs", 0, "number of independent runs")
	f.IntVar(&o.evaluations, "evaluations", 0, "fitness evaluations per run")
	f.StringVar(&o.reportDir, "report-dir", "", "directory for PDF, spreadsheet, drawing and chart reports")
	f.StringVar(&o.profile, "profile", "Grbl", "G-code controller profile for reports")
	f.Float64Var(&o.cellSize, "cell-size", gcode.DefaultSettings().CellSize, "millimetres per grid cell in drawings and G-code")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func (c *cli) run(ctx context.Context, problemPath string, o runOptions, cfg model.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", o.configPath, err)
	}
	problem, err := importer.LoadProblem(problemPath)
	if err != nil {
		return err
	}

	var seeds [][]model.Placement
	if cfg.Algorithm == model.AlgorithmEvolutionary && cfg.Seeding.Enabled {
		seeds, err = importer.LoadSeeds(cfg.Seeding.Path, problem.ShapeCount())
		if err != nil {
			return err
		}
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	runner := &engine.Runner{
		Problem: &problem,
		Config:  cfg,
		Seeds:   seeds,
		Logger:  c.logger,
	}
	if c.verbose {
		runner.OnGeneration, runner.OnImprovement = progressPrinter(c.out)
	}

	batch, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if err := writeOutputs(ctx, c, problemPath, o, &problem, cfg, batch); err != nil {
		return err
	}
	printSummary(c.out, batch)
	return nil
}

// progressPrinter returns callbacks printing a banner per run and one line per
// generation or improvement. Runs may report concurrently.
func progressPrinter(w io.Writer) (func(int, engine.GenerationStats), func(int, engine.Improvement)) {
	var mu sync.Mutex
	onGen := func(run int, s engine.GenerationStats) {
		mu.Lock()
		defer mu.Unlock()
		if s.Generation == 0 {
			fmt.Fprintf(w, "=== Run %d ===\n", run)
		}
		fmt.Fprintf(w, "run %d gen %d evals %d length avg %.2f best %d width avg %.2f best %d front %d\n",
			run, s.Generation, s.Evaluations, s.AvgLength, s.BestLength, s.AvgWidth, s.BestWidth, s.FrontSize)
	}
	onImp := func(run int, imp engine.Improvement) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "run %d eval %d length %d\n", run, imp.Evaluation, imp.LengthFitness)
	}
	return onGen, onImp
}

func writeOutputs(ctx context.Context, c *cli, problemPath string, o runOptions, problem *model.Problem, cfg model.Config, batch engine.BatchResult) error {
	out := cfg.Output
	if out.LogPath != "" {
		header := project.LogHeader{ProblemPath: problemPath, ConfigPath: o.configPath, Seed: batch.BaseSeed}
		if err := project.WriteFile(out.LogPath, func(w io.Writer) error {
			return project.WriteRunLog(w, header, batch)
		}); err != nil {
			return err
		}
		c.logger.Info("wrote result log", "path", out.LogPath)
	}
	if out.SolutionPath != "" {
		if err := project.WriteFile(out.SolutionPath, func(w io.Writer) error {
			return project.WriteSolution(w, batch.BestFront)
		}); err != nil {
			return err
		}
		c.logger.Info("wrote solution", "path", out.SolutionPath, "layouts", len(batch.BestFront))
	}
	if out.BundlePath != "" {
		if err := project.ExportBundle(out.BundlePath, problemPath, *problem, cfg, batch); err != nil {
			return err
		}
		c.logger.Info("wrote bundle", "path", out.BundlePath)
	}
	if out.ArchivePath != "" {
		archive, err := project.OpenArchive(ctx, out.ArchivePath)
		if err != nil {
			return err
		}
		id, err := archive.SaveBatch(ctx, problemPath, cfg, batch)
		closeArchive(archive, &err)
		if err != nil {
			return err
		}
		c.logger.Info("archived batch", "path", out.ArchivePath, "batch_id", id)
	}
	if out.ReportDir != "" {
		if err := c.writeReports(out.ReportDir, problem, batch, problemPath, o.profile, o.cellSize); err != nil {
			return err
		}
	}
	return nil
}

func (c *cli) writeReports(dir string, problem *model.Problem, batch engine.BatchResult, title, profile string, cellSize float64) error {
	custom, err := project.LoadCustomProfiles(c.profilesPath)
	if err != nil {
		c.logger.Warn("ignoring custom profiles", "error", err)
		custom = nil
	}
	settings := gcode.DefaultSettings()
	settings.Profile = profile
	if cellSize > 0 {
		settings.CellSize = cellSize
	}
	files, err := export.WriteReports(dir, problem, batch, export.ReportOptions{
		Title:    title,
		GCode:    settings,
		Profiles: custom,
	})
	if err != nil {
		return err
	}
	c.logger.Info("wrote reports", "dir", dir, "files", len(files))
	return nil
}

func printSummary(w io.Writer, batch engine.BatchResult) {
	fmt.Fprintf(w, "Base seed %d, best run %d, %d layout(s) on the best front\n",
		batch.BaseSeed, batch.BestRun, len(batch.BestFront))
	for i, cand := range batch.BestFront {
		fmt.Fprintf(w, "  %d: length fitness %d, width fitness %d\n", i+1, cand.LengthFitness, cand.WidthFitness)
	}
}
