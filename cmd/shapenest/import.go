package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShapeNest/internal/importer"
	"github.com/piwi3910/ShapeNest/internal/model"
	"github.com/piwi3910/ShapeNest/internal/project"
)

func newImportCmd(c *cli) *cobra.Command {
	var (
		width   int
		outPath string
		dxfUnit float64
	)
	cmd := &cobra.Command{
		Use:   "import <shape-file>",
		Short: "Build a problem file from a CSV, XLSX or DXF shape library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := importer.ImportShapes(args[0], dxfUnit)
			for _, w := range result.Warnings {
				c.logger.Warn(w, "file", args[0])
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("%s: %s", args[0], strings.Join(result.Errors, "; "))
			}
			if len(result.Shapes) == 0 {
				return fmt.Errorf("%s: no shapes found", args[0])
			}

			problem := model.NewProblem(width, result.Shapes)
			if err := problem.Validate(); err != nil {
				return err
			}
			if err := project.WriteFile(outPath, func(w io.Writer) error {
				return project.WriteProblem(w, problem)
			}); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Wrote %d shapes on a width-%d sheet to %s\n", len(problem.Shapes), width, outPath)
			return nil
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 0, "sheet width in cells (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "problem.txt", "problem file to write")
	cmd.Flags().Float64Var(&dxfUnit, "dxf-unit", 1, "drawing units per cell for DXF input")
	_ = cmd.MarkFlagRequired("width")
	return cmd
}
