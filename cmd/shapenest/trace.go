package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShapeNest/internal/gcode"
)

func newTraceCmd(c *cli) *cobra.Command {
	var cellSize float64
	cmd := &cobra.Command{
		Use:   "trace <program.nc>",
		Short: "Read a generated G-code program back into cell paths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cellSize <= 0 {
				return fmt.Errorf("cell size must be positive, got %g", cellSize)
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			paths := gcode.TraceCells(gcode.Parse(string(data)), cellSize)
			if len(paths) == 0 {
				return fmt.Errorf("%s: no cuts found", args[0])
			}
			for i, path := range paths {
				fmt.Fprintf(c.out, "cut %d: anchor %d,%d, %d segment(s):", i+1, path[0].X, path[0].Y, len(path)-1)
				for _, cell := range path[1:] {
					fmt.Fprintf(c.out, " %d,%d", cell.X, cell.Y)
				}
				fmt.Fprintln(c.out)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&cellSize, "cell-size", gcode.DefaultSettings().CellSize, "millimetres per grid cell")
	return cmd
}
