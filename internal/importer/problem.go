// Package importer reads packing problems, seeded layouts and shape
// libraries from text, spreadsheet and DXF files.
package importer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/piwi3910/ShapeNest/internal/model"
)

// ParseProblem reads a problem definition: a header line with the sheet width
// and shape count, then one move sequence per shape. Blank lines are ignored.
func ParseProblem(r io.Reader) (model.Problem, error) {
	lines, err := readLines(r)
	if err != nil {
		return model.Problem{}, err
	}
	if len(lines) == 0 {
		return model.Problem{}, fmt.Errorf("problem file is empty")
	}

	head, err := headerParser.ParseString("", lines[0].text)
	if err != nil {
		return model.Problem{}, fmt.Errorf("line %d: invalid header: %w", lines[0].num, err)
	}
	if head.SheetWidth <= 0 {
		return model.Problem{}, fmt.Errorf("line %d: sheet width must be positive", lines[0].num)
	}
	if head.ShapeCount <= 0 {
		return model.Problem{}, fmt.Errorf("line %d: shape count must be positive", lines[0].num)
	}

	body := lines[1:]
	if len(body) != head.ShapeCount {
		return model.Problem{}, fmt.Errorf("header declares %d shapes, found %d", head.ShapeCount, len(body))
	}

	shapes := make([]model.Shape, 0, len(body))
	for i, ln := range body {
		moves, err := ParseMoves(ln.text)
		if err != nil {
			return model.Problem{}, fmt.Errorf("line %d: %w", ln.num, err)
		}
		s := model.NewShape(fmt.Sprintf("S%d", i+1), moves)
		if err := s.Validate(); err != nil {
			return model.Problem{}, fmt.Errorf("line %d: %w", ln.num, err)
		}
		shapes = append(shapes, s)
	}
	return model.NewProblem(head.SheetWidth, shapes), nil
}

// LoadProblem reads a problem definition from a file.
func LoadProblem(path string) (model.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Problem{}, fmt.Errorf("failed to open problem file: %w", err)
	}
	defer f.Close()

	p, err := ParseProblem(f)
	if err != nil {
		return model.Problem{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

type numberedLine struct {
	num  int
	text string
}

// readLines returns the non-blank lines of r with their 1-based line numbers.
func readLines(r io.Reader) ([]numberedLine, error) {
	all, err := scanLines(r)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, ln := range all {
		if ln.text != "" {
			out = append(out, ln)
		}
	}
	return out, nil
}

// scanLines returns every line of r, trimmed, blank ones included.
func scanLines(r io.Reader) ([]numberedLine, error) {
	var out []numberedLine
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		out = append(out, numberedLine{num: n, text: strings.TrimSpace(sc.Text())})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return out, nil
}
