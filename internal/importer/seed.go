package importer

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/piwi3910/ShapeNest/internal/model"
)

// ParseSeeds reads seeded genotypes: a count line, then per genotype
// shapeCount "x,y,rotation" lines followed by one separator line. The
// separator is skipped whatever it holds and may be missing at the end of
// the file. Genotypes are returned unvalidated; the search discards the ones
// that do not fit.
func ParseSeeds(r io.Reader, shapeCount int) ([][]model.Placement, error) {
	if shapeCount <= 0 {
		return nil, fmt.Errorf("shape count must be positive, got %d", shapeCount)
	}
	lines, err := scanLines(r)
	if err != nil {
		return nil, err
	}

	pos := 0
	next := func() (numberedLine, bool) {
		for pos < len(lines) && lines[pos].text == "" {
			pos++
		}
		if pos == len(lines) {
			return numberedLine{}, false
		}
		pos++
		return lines[pos-1], true
	}

	head, ok := next()
	if !ok {
		return nil, fmt.Errorf("seed file is empty")
	}
	count, err := strconv.Atoi(head.text)
	if err != nil || count < 0 {
		return nil, fmt.Errorf("line %d: invalid genotype count %q", head.num, head.text)
	}

	seeds := make([][]model.Placement, 0, count)
	for g := 0; g < count; g++ {
		genes := make([]model.Placement, shapeCount)
		for i := range genes {
			ln, ok := next()
			if !ok {
				return nil, fmt.Errorf("expected %d genotypes of %d placements, file ends in genotype %d",
					count, shapeCount, g+1)
			}
			pl, err := ParsePlacement(ln.text)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", ln.num, err)
			}
			genes[i] = pl
		}
		seeds = append(seeds, genes)
		if pos < len(lines) {
			pos++
		}
	}
	return seeds, nil
}

// LoadSeeds reads seeded genotypes from a file.
func LoadSeeds(path string, shapeCount int) ([][]model.Placement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	seeds, err := ParseSeeds(f, shapeCount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seeds, nil
}
