package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/ShapeNest/internal/engine"
	"github.com/piwi3910/ShapeNest/internal/gcode"
	"github.com/piwi3910/ShapeNest/internal/model"
)

// ReportOptions controls WriteReports.
type ReportOptions struct {
	Title    string
	GCode    gcode.Settings // CellSize also scales the DXF drawings
	Profiles []gcode.Profile
}

// WriteReports renders every artifact for a batch into dir and returns the
// paths written: the front PDF, labels for the first layout, the statistics
// workbook, the front chart, a DXF drawing and a G-code program per layout,
// and a convergence plot per evolutionary run.
func WriteReports(dir string, problem *model.Problem, batch engine.BatchResult, opts ReportOptions) ([]string, error) {
	if len(batch.BestFront) == 0 {
		return nil, fmt.Errorf("batch has no best front")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	if opts.Title == "" {
		opts.Title = "ShapeNest"
	}

	var written []string
	add := func(name string, write func(path string) error) error {
		path := filepath.Join(dir, name)
		if err := write(path); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		written = append(written, path)
		return nil
	}

	steps := []struct {
		name  string
		write func(string) error
	}{
		{"front.pdf", func(p string) error { return ExportFrontPDF(p, problem, batch, opts.Title) }},
		{"labels.pdf", func(p string) error { return ExportLabels(p, problem, batch.BestFront[0], 1) }},
		{"stats.xlsx", func(p string) error { return ExportWorkbook(p, problem, batch) }},
		{"fronts.html", func(p string) error {
			f, err := os.Create(p)
			if err != nil {
				return err
			}
			if err := RenderFrontChart(f, batch, opts.Title); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		}},
	}
	for _, s := range steps {
		if err := add(s.name, s.write); err != nil {
			return written, err
		}
	}

	gen := gcode.New(opts.GCode, opts.Profiles...)
	for i, c := range batch.BestFront {
		layout := fmt.Sprintf("layout-%d", i+1)
		if err := add(layout+".dxf", func(p string) error {
			return ExportDXF(p, problem, c, opts.GCode.CellSize)
		}); err != nil {
			return written, err
		}
		if err := add(layout+".nc", func(p string) error {
			code := gen.GenerateLayout(problem, c, fmt.Sprintf("%s layout %d", opts.Title, i+1))
			return os.WriteFile(p, []byte(code), 0644)
		}); err != nil {
			return written, err
		}
	}

	for _, run := range batch.Runs {
		if len(run.Generations) == 0 {
			continue
		}
		if err := add(fmt.Sprintf("run-%d.png", run.Run), func(p string) error {
			return PlotConvergence(p, run)
		}); err != nil {
			return written, err
		}
	}
	return written, nil
}
