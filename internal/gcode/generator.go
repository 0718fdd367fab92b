// Package gcode turns packed layouts into CNC toolpaths that trace every
// shape's path, and reads such toolpaths back.
package gcode

import (
	"fmt"
	"strings"

	"github.com/piwi3910/ShapeNest/internal/model"
)

// Settings controls toolpath scale and machine parameters.
type Settings struct {
	Profile      string  `json:"profile"`
	CellSize     float64 `json:"cell_size"` // mm per grid cell
	FeedRate     float64 `json:"feed_rate"`
	PlungeRate   float64 `json:"plunge_rate"`
	SafeZ        float64 `json:"safe_z"`
	CutDepth     float64 `json:"cut_depth"`
	SpindleSpeed int     `json:"spindle_speed"`
}

// DefaultSettings returns 10 mm cells and conservative feeds.
func DefaultSettings() Settings {
	return Settings{
		Profile:      "Grbl",
		CellSize:     10,
		FeedRate:     1200,
		PlungeRate:   300,
		SafeZ:        5,
		CutDepth:     3,
		SpindleSpeed: 18000,
	}
}

// Generator writes one program per layout.
type Generator struct {
	Settings Settings
	profile  Profile
}

// New creates a generator; custom profiles take precedence over built-ins.
func New(settings Settings, custom ...Profile) *Generator {
	return &Generator{Settings: settings, profile: GetProfile(settings.Profile, custom...)}
}

// GenerateLayout produces a program cutting each shape of a layout along its
// path through the cell centres.
func (g *Generator) GenerateLayout(problem *model.Problem, c *model.Candidate, title string) string {
	var b strings.Builder
	g.writeHeader(&b, problem, c, title)
	for i, pl := range c.Placements {
		g.writeShape(&b, problem.Shapes[i], pl, i+1)
	}
	g.writeFooter(&b)
	return b.String()
}

func (g *Generator) writeHeader(b *strings.Builder, problem *model.Problem, c *model.Candidate, title string) {
	s := g.Settings
	b.WriteString(g.comment(fmt.Sprintf("ShapeNest layout: %s", title)))
	b.WriteString(g.comment(fmt.Sprintf("Sheet: %d x %d cells of %.1f mm", c.UsedLength, problem.SheetWidth, s.CellSize)))
	b.WriteString(g.comment(fmt.Sprintf("Shapes: %d, length fitness %d, width fitness %d",
		len(c.Placements), c.LengthFitness, c.WidthFitness)))
	b.WriteString(g.comment(fmt.Sprintf("Feed %.0f mm/min, plunge %.0f mm/min, depth %.1f mm",
		s.FeedRate, s.PlungeRate, s.CutDepth)))
	b.WriteString(g.comment("Profile: " + g.profile.Name))
	b.WriteString("\n")

	for _, code := range g.profile.StartCode {
		b.WriteString(code + "\n")
	}
	if g.profile.SpindleStart != "" {
		fmt.Fprintf(b, g.profile.SpindleStart+"\n", s.SpindleSpeed)
	}
	fmt.Fprintf(b, "%s Z%s\n", g.profile.RapidMove, g.format(s.SafeZ))
	b.WriteString("\n")
}

func (g *Generator) writeShape(b *strings.Builder, shape model.Shape, pl model.Placement, n int) {
	p := g.profile
	s := g.Settings
	b.WriteString(g.comment(fmt.Sprintf("--- Shape %d: %s [%s] at %s ---", n, shape.Label, shape, pl)))

	x, y := g.centre(pl.X), g.centre(pl.Y)
	fmt.Fprintf(b, "%s X%s Y%s\n", p.RapidMove, g.format(x), g.format(y))
	fmt.Fprintf(b, "%s Z%s F%s\n", p.FeedMove, g.format(-s.CutDepth), g.format(s.PlungeRate))

	cx, cy := pl.X, pl.Y
	for _, m := range shape.Moves {
		dx, dy := m.Dir.Rotate(pl.Rotation).Delta()
		cx += dx * m.Paces
		cy += dy * m.Paces
		fmt.Fprintf(b, "%s X%s Y%s F%s\n", p.FeedMove,
			g.format(g.centre(cx)), g.format(g.centre(cy)), g.format(s.FeedRate))
	}
	fmt.Fprintf(b, "%s Z%s\n", p.RapidMove, g.format(s.SafeZ))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	b.WriteString(g.comment("=== Job complete ==="))
	for _, code := range g.profile.EndCode {
		b.WriteString(strings.ReplaceAll(code, "[SafeZ]", g.format(g.Settings.SafeZ)) + "\n")
	}
	if g.profile.SpindleStop != "" {
		b.WriteString(g.profile.SpindleStop + "\n")
	}
}

// centre maps a cell index to the machine coordinate of the cell centre.
func (g *Generator) centre(cell int) float64 {
	return (float64(cell) + 0.5) * g.Settings.CellSize
}

func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

func (g *Generator) format(v float64) string {
	return fmt.Sprintf("%.*f", g.profile.DecimalPlaces, v)
}
