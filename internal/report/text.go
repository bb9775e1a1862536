package report

import (
	"fmt"
	"strings"

	"github.com/phrazzld/bazi-api/internal/domain/bazi"
	"github.com/phrazzld/bazi-api/internal/domain/wellness"
)

// Text renders a deterministic multi-line summary of chart.
func Text(chart bazi.Chart) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Chart for %s\n", chart.Input)

	b.WriteString("Pillars:")
	for pos, p := range chart.Pillars.InOrder() {
		fmt.Fprintf(&b, "  %s %s (%s)", positionNames[pos], p.Glyphs(), p)
	}
	b.WriteString("\n")

	b.WriteString("Elements:")
	for _, e := range bazi.Elements {
		fmt.Fprintf(&b, "  %s %s %.1f%%", ElementGlyph(e), e, chart.Percentages[e])
	}
	b.WriteString("\n")

	dm := chart.DayMaster
	fmt.Fprintf(&b, "Day master: %s %s (%s %s), born in %s\n",
		dm.Stem.Glyph(), dm.Stem.Name(), dm.Polarity, dm.Element, chart.Season)
	fmt.Fprintf(&b, "Support: %.1f%%, %s\n", chart.Support, chart.Strength)

	c := wellness.Classify(chart.Percentages)
	if c.Balanced {
		fmt.Fprintf(&b, "Constitution: balanced (spread %.1f)\n", c.Spread)
	} else {
		fmt.Fprintf(&b, "Constitution: %s, weakest element %s\n", c.Label, c.Deficient)
	}

	return b.String()
}
