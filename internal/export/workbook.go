package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/ShapeNest/internal/engine"
	"github.com/piwi3910/ShapeNest/internal/model"
)

// ExportWorkbook writes a spreadsheet with a run summary sheet, a sheet
// listing the best front's layouts and one sheet of generation statistics
// (or improvements, for random search) per run.
func ExportWorkbook(path string, problem *model.Problem, batch engine.BatchResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Sheet width", problem.SheetWidth},
		{"Shapes", len(problem.Shapes)},
		{"Max sheet length", problem.MaxSheetLength},
		{"Base seed", batch.BaseSeed},
		{"Best run", batch.BestRun},
		{},
		{"Run", "ID", "Seed", "Evaluations", "Front size", "Best length", "Best width", "Discarded seeds", "Aborted offspring"},
	}
	for _, run := range batch.Runs {
		bestL, bestW := frontBests(run.Front)
		rows = append(rows, []interface{}{
			run.Run, run.ID, run.Seed, run.Evaluations, len(run.Front), bestL, bestW,
			run.DiscardedSeeds, run.AbortedOffspring,
		})
	}
	if err := writeRows(f, "Summary", rows); err != nil {
		return err
	}

	header := []interface{}{"Layout", "Length fitness", "Width fitness"}
	for _, s := range problem.Shapes {
		header = append(header, s.Label)
	}
	rows = [][]interface{}{header}
	for i, c := range batch.BestFront {
		row := []interface{}{i + 1, c.LengthFitness, c.WidthFitness}
		for _, pl := range c.Placements {
			row = append(row, pl.String())
		}
		rows = append(rows, row)
	}
	if err := addSheet(f, "Best Front", rows); err != nil {
		return err
	}

	for _, run := range batch.Runs {
		var rows [][]interface{}
		if run.Best != nil {
			rows = append(rows, []interface{}{"Evaluation", "Length fitness"})
			for _, imp := range run.Improvements {
				rows = append(rows, []interface{}{imp.Evaluation, imp.LengthFitness})
			}
		} else {
			rows = append(rows, []interface{}{"Generation", "Evaluations", "Avg length", "Best length",
				"Avg width", "Best width", "Front size", "Front improved"})
			for _, g := range run.Generations {
				rows = append(rows, []interface{}{g.Generation, g.Evaluations, g.AvgLength, g.BestLength,
					g.AvgWidth, g.BestWidth, g.FrontSize, g.FrontImproved})
			}
		}
		if err := addSheet(f, fmt.Sprintf("Run %d", run.Run), rows); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func addSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", name, err)
	}
	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, ref, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
