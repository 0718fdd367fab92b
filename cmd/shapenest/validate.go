package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShapeNest/internal/engine"
	"github.com/piwi3910/ShapeNest/internal/importer"
)

func newValidateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <problem-file> <seed-file>",
		Short: "Check seeded layouts against a problem and print their fitness",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, err := importer.LoadProblem(args[0])
			if err != nil {
				return err
			}
			seeds, err := importer.LoadSeeds(args[1], problem.ShapeCount())
			if err != nil {
				return err
			}

			// Validation and evaluation never draw from the stream.
			placer := engine.NewPlacer(&problem, rand.New(rand.NewSource(1)), 0)
			invalid := 0
			for i, genes := range seeds {
				if err := placer.Validate(genes); err != nil {
					invalid++
					fmt.Fprintf(c.out, "layout %d: invalid: %v\n", i+1, err)
					continue
				}
				cand := placer.Evaluate(genes)
				fmt.Fprintf(c.out, "layout %d: length fitness %d, width fitness %d (used %d x %d)\n",
					i+1, cand.LengthFitness, cand.WidthFitness, cand.UsedLength, cand.UsedWidth)
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d layouts are invalid", invalid, len(seeds))
			}
			return nil
		},
	}
}
