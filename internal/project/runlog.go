package project

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/piwi3910/ShapeNest/internal/engine"
	"github.com/piwi3910/ShapeNest/internal/model"
)

// LogHeader identifies the inputs of a batch in its result log.
type LogHeader struct {
	ProblemPath string
	ConfigPath  string
	Seed        int64
}

// WriteRunLog writes the result log: a header naming the inputs and the base
// seed, then per run one tab-separated line per generation with evaluations,
// average and best length fitness, average and best width fitness. Random
// search runs list evaluation and length fitness of every improvement instead.
func WriteRunLog(w io.Writer, header LogHeader, batch engine.BatchResult) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "Result Log")
	fmt.Fprintf(bw, "Problem: %s\n", header.ProblemPath)
	fmt.Fprintf(bw, "Config: %s\n", header.ConfigPath)
	fmt.Fprintf(bw, "Seed: %d\n", header.Seed)

	for _, run := range batch.Runs {
		fmt.Fprintf(bw, "\nRun %d\n", run.Run)
		if run.Best != nil {
			for _, imp := range run.Improvements {
				fmt.Fprintf(bw, "%d\t%d\n", imp.Evaluation, imp.LengthFitness)
			}
			continue
		}
		for _, g := range run.Generations {
			fmt.Fprintf(bw, "%d\t%.4f\t%d\t%.4f\t%d\n",
				g.Evaluations, g.AvgLength, g.BestLength, g.AvgWidth, g.BestWidth)
		}
	}
	return bw.Flush()
}

// WriteSolution writes genotypes in seed-file format: the genotype count, then
// one "x,y,rotation" line per shape, each genotype closed by a blank line.
func WriteSolution(w io.Writer, front model.Front) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, len(front))
	for _, c := range front {
		for _, p := range c.Placements {
			fmt.Fprintln(bw, p.String())
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// WriteProblem writes a problem definition: sheet width and shape count, then
// one move sequence per shape.
func WriteProblem(w io.Writer, problem model.Problem) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", problem.SheetWidth, len(problem.Shapes))
	for _, s := range problem.Shapes {
		fmt.Fprintln(bw, s.String())
	}
	return bw.Flush()
}

// WriteFile creates path and its parent directories and fills it with write.
func WriteFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
