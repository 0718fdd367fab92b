package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ShapeNest/internal/project"
)

func newArchiveCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Read batches stored in a SQLite archive",
	}

	listCmd := &cobra.Command{
		Use:   "list <archive.db>",
		Short: "List archived batches, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			archive, err := project.OpenArchive(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer closeArchive(archive, &err)

			batches, err := archive.ListBatches(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tPROBLEM\tALGORITHM\tSEED\tRUNS\tBEST RUN")
			for _, b := range batches {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\n", b.ID, b.CreatedAt.Format("2006-01-02 15:04"),
					b.ProblemPath, b.Algorithm, b.BaseSeed, b.Runs, b.BestRun)
			}
			return tw.Flush()
		},
	}

	var run int
	showCmd := &cobra.Command{
		Use:   "show <archive.db> <batch-id>",
		Short: "Show the runs of a batch, or one run's generations and front",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid batch id %q", args[1])
			}
			archive, err := project.OpenArchive(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer closeArchive(archive, &err)

			ctx := cmd.Context()
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			if run <= 0 {
				runs, err := archive.ListRuns(ctx, id)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					return fmt.Errorf("batch %d not found", id)
				}
				fmt.Fprintln(tw, "RUN\tSEED\tEVALUATIONS\tFRONT\tBEST LENGTH\tBEST WIDTH")
				for _, r := range runs {
					fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\n", r.Run, r.Seed, r.Evaluations,
						r.FrontSize, r.BestLength, r.BestWidth)
				}
				return tw.Flush()
			}

			gens, err := archive.LoadGenerations(ctx, id, run)
			if err != nil {
				return err
			}
			front, err := archive.LoadFront(ctx, id, run)
			if err != nil {
				return err
			}
			if len(gens) == 0 && len(front) == 0 {
				return fmt.Errorf("batch %d has no run %d", id, run)
			}
			fmt.Fprintln(tw, "GENERATION\tEVALUATIONS\tAVG LENGTH\tBEST LENGTH\tAVG WIDTH\tBEST WIDTH\tFRONT")
			for _, g := range gens {
				fmt.Fprintf(tw, "%d\t%d\t%.4f\t%d\t%.4f\t%d\t%d\n", g.Generation, g.Evaluations,
					g.AvgLength, g.BestLength, g.AvgWidth, g.BestWidth, g.FrontSize)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "\nFront (%d layouts)\n", len(front))
			for i, m := range front {
				fmt.Fprintf(c.out, "%d\tlength %d\twidth %d\t%v\n", i+1, m.LengthFitness, m.WidthFitness, m.Placements)
			}
			return nil
		},
	}
	showCmd.Flags().IntVarP(&run, "run", "r", 0, "1-based run to show in detail")

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}

// closeArchive closes a and reports the close error unless one is already set.
func closeArchive(a *project.Archive, err *error) {
	if cerr := a.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close archive: %w", cerr)
	}
}
