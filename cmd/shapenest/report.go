package main

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/ShapeNest/internal/gcode"
	"github.com/piwi3910/ShapeNest/internal/project"
)

func newReportCmd(c *cli) *cobra.Command {
	var (
		outDir   string
		profile  string
		cellSize float64
	)
	cmd := &cobra.Command{
		Use:   "report <bundle>",
		Short: "Render reports from a saved run bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := project.ImportBundle(args[0])
			if err != nil {
				return err
			}
			title := bundle.ProblemPath
			if title == "" {
				title = args[0]
			}
			if err := c.writeReports(outDir, &bundle.Problem, bundle.Batch, title, profile, cellSize); err != nil {
				return err
			}
			printSummary(c.out, bundle.Batch)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "report", "output directory")
	cmd.Flags().StringVar(&profile, "profile", "Grbl", "G-code controller profile")
	cmd.Flags().Float64Var(&cellSize, "cell-size", gcode.DefaultSettings().CellSize, "millimetres per grid cell")
	return cmd
}
