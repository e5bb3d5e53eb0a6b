package fontatlas

import (
	"sync"

	"github.com/go-text/typesetting/di"
	gotextfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// ShapedGlyph is one positioned glyph produced by Shape. Positions are
// pen-relative pixel offsets; the caller adds the text origin.
type ShapedGlyph struct {
	// Rune is the first rune of the cluster this glyph renders.
	Rune rune
	// Cluster is the byte-independent rune index into the input text.
	Cluster int
	// X and Y are the glyph's offset from the text origin.
	X, Y float64
	// XAdvance is the pen advance after this glyph.
	XAdvance float64
}

// shaperPool pools HarfbuzzShaper instances. The shaper has internal
// mutable state and is not safe for concurrent use.
var shaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// Shape converts text into positioned glyphs using HarfBuzz shaping,
// applying kerning and ligature substitution from the font's OpenType
// tables. Left-to-right only; for bidirectional text, segment into
// directional runs first.
func Shape(face *Face, text string) []ShapedGlyph {
	if face == nil || text == "" {
		return nil
	}

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotextfont.NewFace(face.shaped),
		Size:      floatToFixed(face.size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	shaper := shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := shaper.Shape(input)
	shaperPool.Put(shaper)

	result := make([]ShapedGlyph, len(output.Glyphs))
	var x float64
	for i, g := range output.Glyphs {
		cluster := g.TextIndex()
		r := rune(0)
		if cluster < len(runes) {
			r = runes[cluster]
		}
		result[i] = ShapedGlyph{
			Rune:     r,
			Cluster:  cluster,
			X:        x + fixedToFloat(g.XOffset),
			Y:        -fixedToFloat(g.YOffset),
			XAdvance: fixedToFloat(g.Advance),
		}
		x += fixedToFloat(g.Advance)
	}
	return result
}

// detectScript inspects the runes and returns the script of the first
// non-space character. A simple heuristic; mixed-script text should be
// split into runs by script before shaping.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// floatToFixed converts a float64 pixel value to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
