package importer

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/piwi3910/ShapeNest/internal/model"
)

// moveSequence is one line of move tokens, e.g. "R3 U2 L3 D2".
type moveSequence struct {
	Moves []*moveToken `parser:"@@*"`
}

type moveToken struct {
	Dir   string `parser:"@Dir"`
	Paces int    `parser:"@Int"`
}

// problemHeader is the first line of a problem file: sheet width and shape count.
type problemHeader struct {
	SheetWidth int `parser:"@Int"`
	ShapeCount int `parser:"@Int"`
}

// placementLine is one seeded gene, "x,y,rotation".
type placementLine struct {
	X        int `parser:"@Int ','"`
	Y        int `parser:"@Int ','"`
	Rotation int `parser:"@Int"`
}

var (
	shapeLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Dir", Pattern: `[LRUDlrud]`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "whitespace", Pattern: `[ \t\r]+`},
	})
	placementLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Int", Pattern: `-?[0-9]+`},
		{Name: "Punct", Pattern: `,`},
		{Name: "whitespace", Pattern: `[ \t\r]+`},
	})

	movesParser     = participle.MustBuild[moveSequence](participle.Lexer(shapeLexer))
	headerParser    = participle.MustBuild[problemHeader](participle.Lexer(shapeLexer))
	placementParser = participle.MustBuild[placementLine](participle.Lexer(placementLexer))
)

// ParseMoves parses a whitespace-separated move sequence such as "R3 U2".
// Direction letters are case-insensitive. The result is not validated.
func ParseMoves(s string) ([]model.Move, error) {
	seq, err := movesParser.ParseString("", s)
	if err != nil {
		return nil, err
	}
	moves := make([]model.Move, 0, len(seq.Moves))
	for _, tok := range seq.Moves {
		dir, ok := model.ParseDirection(tok.Dir)
		if !ok {
			return nil, fmt.Errorf("unknown direction %q", tok.Dir)
		}
		moves = append(moves, model.Move{Dir: dir, Paces: tok.Paces})
	}
	return moves, nil
}

// ParsePlacement parses one "x,y,rotation" gene.
func ParsePlacement(s string) (model.Placement, error) {
	pl, err := placementParser.ParseString("", strings.TrimSpace(s))
	if err != nil {
		return model.Placement{}, err
	}
	return model.Placement{X: pl.X, Y: pl.Y, Rotation: pl.Rotation}, nil
}
