package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/piwi3910/ShapeNest/internal/engine"
	"github.com/piwi3910/ShapeNest/internal/model"
)

// RenderFrontChart writes an HTML page with a scatter of every run's final
// front in fitness space, plus the selected best front.
func RenderFrontChart(w io.Writer, batch engine.BatchResult, title string) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("base seed %d", batch.BaseSeed)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Length fitness"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Width fitness"}),
	)

	for _, run := range batch.Runs {
		scatter.AddSeries(fmt.Sprintf("Run %d", run.Run), frontPoints(run.Front, 8))
	}
	scatter.AddSeries("Best front", frontPoints(batch.BestFront, 14))
	return scatter.Render(w)
}

func frontPoints(front model.Front, size int) []opts.ScatterData {
	points := make([]opts.ScatterData, 0, len(front))
	for _, c := range front {
		points = append(points, opts.ScatterData{
			Value:      []interface{}{c.LengthFitness, c.WidthFitness},
			SymbolSize: size,
		})
	}
	return points
}
