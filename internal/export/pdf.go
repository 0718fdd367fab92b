// Package export renders search results as printable reports, labels,
// spreadsheets, drawings and charts.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/ShapeNest/internal/engine"
	"github.com/piwi3910/ShapeNest/internal/model"
)

// shapeColor is an RGB fill for one shape.
type shapeColor struct {
	R, G, B int
}

var shapeColors = []shapeColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportFrontPDF renders every layout of the batch's best front on its own
// page, followed by a summary page with per-run statistics.
func ExportFrontPDF(path string, problem *model.Problem, batch engine.BatchResult, title string) error {
	if len(batch.BestFront) == 0 {
		return fmt.Errorf("no layouts to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, c := range batch.BestFront {
		pdf.AddPage()
		renderLayoutPage(pdf, problem, c, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, problem, batch, title)

	return pdf.OutputFileAndClose(path)
}

// layoutExtent is the number of cells the drawn layout spans along the
// length and width axes, at least one in each.
func layoutExtent(problem *model.Problem, c *model.Candidate) (length, width int) {
	length, width = 1, problem.SheetWidth
	for i, pl := range c.Placements {
		for _, cell := range problem.Shapes[i].Cells(pl) {
			length = max(length, cell.X+1)
			width = max(width, cell.Y+1)
		}
	}
	return length, width
}

func renderLayoutPage(pdf *fpdf.Fpdf, problem *model.Problem, c *model.Candidate, n int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Layout %d: length fitness %d, width fitness %d", n, c.LengthFitness, c.WidthFitness)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	length, width := layoutExtent(problem, c)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Shapes: %d | Used: %d x %d cells | Sheet width: %d | Max length: %d",
		len(c.Placements), length, width, problem.SheetWidth, problem.MaxSheetLength)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/float64(length), drawHeight/float64(width))
	canvasW := float64(length) * scale
	canvasH := float64(width) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Sheet background; Y grows upwards on the sheet, downwards on the page.
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	cellRect := func(cell model.Cell) (float64, float64) {
		return offsetX + float64(cell.X)*scale, offsetY + canvasH - float64(cell.Y+1)*scale
	}

	for i, pl := range c.Placements {
		col := shapeColors[i%len(shapeColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		cells := problem.Shapes[i].Cells(pl)
		for _, cell := range cells {
			x, y := cellRect(cell)
			pdf.Rect(x, y, scale, scale, "FD")
		}

		// Path through the cell centres, anchor marked.
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.4)
		for j := 1; j < len(cells); j++ {
			x1, y1 := cellRect(cells[j-1])
			x2, y2 := cellRect(cells[j])
			pdf.Line(x1+scale/2, y1+scale/2, x2+scale/2, y2+scale/2)
		}
		ax, ay := cellRect(cells[0])
		pdf.SetFillColor(0, 0, 0)
		pdf.Circle(ax+scale/2, ay+scale/2, math.Max(scale/8, 0.4), "F")
	}

	drawDimensionAnnotations(pdf, length, width, offsetX, offsetY, canvasW, canvasH)
	drawShapeLegend(pdf, problem, c, offsetY+canvasH+6)
}

func drawDimensionAnnotations(pdf *fpdf.Fpdf, length, width int, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	lengthLabel := fmt.Sprintf("%d cells", length)
	lw := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX+(canvasW-lw)/2, offsetY+canvasH+1)
	pdf.CellFormat(lw, 4, lengthLabel, "", 0, "C", false, 0, "")

	widthLabel := fmt.Sprintf("%d cells", width)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	ww := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX-3-ww/2, offsetY+canvasH/2-2)
	pdf.CellFormat(ww, 4, widthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

func drawShapeLegend(pdf *fpdf.Fpdf, problem *model.Problem, c *model.Candidate, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Shapes:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight
	for i, pl := range c.Placements {
		col := shapeColors[i%len(shapeColors)]
		label := fmt.Sprintf("%s @ %s", problem.Shapes[i].Label, pl)
		labelW := pdf.GetStringWidth(label) + 6
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")
		xPos += labelW + 2
	}
}

func renderSummaryPage(pdf *fpdf.Fpdf, problem *model.Problem, batch engine.BatchResult, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Summary: "+title, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	items := []struct {
		label string
		value string
	}{
		{"Sheet Width", fmt.Sprintf("%d", problem.SheetWidth)},
		{"Shapes", fmt.Sprintf("%d", len(problem.Shapes))},
		{"Max Sheet Length", fmt.Sprintf("%d", problem.MaxSheetLength)},
		{"Base Seed", fmt.Sprintf("%d", batch.BaseSeed)},
		{"Best Run", fmt.Sprintf("%d", batch.BestRun)},
		{"Best Front Size", fmt.Sprintf("%d", len(batch.BestFront))},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Runs", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 30, 45, 35, 35, 40, 40}
	headers := []string{"Run", "ID", "Seed", "Evaluations", "Front Size", "Best Length", "Best Width"}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, h := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, run := range batch.Runs {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		bestL, bestW := frontBests(run.Front)
		row := []string{
			fmt.Sprintf("%d", run.Run),
			run.ID,
			fmt.Sprintf("%d", run.Seed),
			fmt.Sprintf("%d", run.Evaluations),
			fmt.Sprintf("%d", len(run.Front)),
			fmt.Sprintf("%d", bestL),
			fmt.Sprintf("%d", bestW),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by ShapeNest", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// frontBests returns the best length and width fitness found in a front.
func frontBests(front model.Front) (int, int) {
	if len(front) == 0 {
		return 0, 0
	}
	l, w := front[0].LengthFitness, front[0].WidthFitness
	for _, c := range front[1:] {
		l = max(l, c.LengthFitness)
		w = max(w, c.WidthFitness)
	}
	return l, w
}
