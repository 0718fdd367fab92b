package export

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/piwi3910/ShapeNest/internal/engine"
)

// Length series are blue, width series red; averages are dashed.
var plotColors = []color.RGBA{
	{R: 33, G: 150, B: 243, A: 255},
	{R: 33, G: 150, B: 243, A: 255},
	{R: 244, G: 67, B: 54, A: 255},
	{R: 244, G: 67, B: 54, A: 255},
}

// PlotConvergence saves a PNG (or any format gonum infers from the extension)
// of best and average length and width fitness against evaluations for one run.
func PlotConvergence(path string, run engine.RunResult) error {
	if len(run.Generations) == 0 {
		return fmt.Errorf("run %d has no generation statistics", run.Run)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Run %d convergence", run.Run)
	p.X.Label.Text = "Evaluations"
	p.Y.Label.Text = "Fitness"

	series := []struct {
		name  string
		value func(engine.GenerationStats) float64
	}{
		{"best length", func(g engine.GenerationStats) float64 { return float64(g.BestLength) }},
		{"avg length", func(g engine.GenerationStats) float64 { return g.AvgLength }},
		{"best width", func(g engine.GenerationStats) float64 { return float64(g.BestWidth) }},
		{"avg width", func(g engine.GenerationStats) float64 { return g.AvgWidth }},
	}
	for i, s := range series {
		pts := make(plotter.XYs, len(run.Generations))
		for j, g := range run.Generations {
			pts[j].X = float64(g.Evaluations)
			pts[j].Y = s.value(g)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = plotColors[i%len(plotColors)]
		if i%2 == 1 {
			line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	p.Legend.Top = true
	p.Legend.Left = true

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
