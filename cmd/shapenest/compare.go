package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShapeNest/internal/engine"
	"github.com/piwi3910/ShapeNest/internal/importer"
	"github.com/piwi3910/ShapeNest/internal/model"
	"github.com/piwi3910/ShapeNest/internal/project"
)

func newCompareCmd(c *cli) *cobra.Command {
	var (
		configPath string
		presets    []string
	)
	cmd := &cobra.Command{
		Use:   "compare <problem-file>",
		Short: "Run the configuration and built-in presets on one problem and compare fronts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, err := importer.LoadProblem(args[0])
			if err != nil {
				return err
			}
			cfg, err := project.LoadConfig(configPath)
			if err != nil {
				return err
			}
			scenarios, err := engine.BuildScenarios(cfg, presets)
			if err != nil {
				return err
			}
			if cfg.Algorithm == model.AlgorithmEvolutionary && cfg.Seeding.Enabled {
				seeds, err := importer.LoadSeeds(cfg.Seeding.Path, problem.ShapeCount())
				if err != nil {
					return err
				}
				scenarios[0].Seeds = seeds
			}
			results, err := engine.CompareScenarios(cmd.Context(), &problem, scenarios, c.logger)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCENARIO\tFRONT\tBEST LENGTH\tBEST WIDTH\tDOMINATES BASELINE\tDOMINATED BY BASELINE")
			for _, r := range results {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.2f\t%.2f\n", r.Scenario.Name, r.FrontSize,
					r.BestLength, r.BestWidth, r.DominatesBaseline, r.DominatedByBaseline)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "baseline configuration file (required)")
	cmd.Flags().StringSliceVarP(&presets, "preset", "p", nil, "preset to compare against the baseline (repeatable)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}
