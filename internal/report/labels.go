package report

import "github.com/phrazzld/bazi-api/internal/domain/bazi"

var elementGlyphs = [bazi.ElementCount]string{"木", "火", "土", "金", "水"}

var positionNames = [4]string{"year", "month", "day", "hour"}

// ElementGlyph returns the written character for e, or "?" for an unknown
// element.
func ElementGlyph(e bazi.Element) string {
	if !e.Valid() {
		return "?"
	}
	return elementGlyphs[e]
}

// ByGlyph re-keys scores by element glyph.
func ByGlyph(s bazi.ElementScores) map[string]float64 {
	m := make(map[string]float64, bazi.ElementCount)
	for _, e := range bazi.Elements {
		m[elementGlyphs[e]] = s[e]
	}
	return m
}
