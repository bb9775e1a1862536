package report

import (
	"github.com/phrazzld/bazi-api/internal/domain/bazi"
	"github.com/phrazzld/bazi-api/internal/domain/wellness"
)

// PillarView is one pillar as rendered in API responses.
type PillarView struct {
	Position      string       `json:"position"`
	Stem          string       `json:"stem"`
	Branch        string       `json:"branch"`
	Glyphs        string       `json:"glyphs"`
	StemElement   bazi.Element `json:"stem_element"`
	BranchElement bazi.Element `json:"branch_element"`
	CycleIndex    int          `json:"cycle_index"`
}

// DayMasterView describes the day master.
type DayMasterView struct {
	Stem     string       `json:"stem"`
	Glyph    string       `json:"glyph"`
	Element  bazi.Element `json:"element"`
	Polarity string       `json:"polarity"`
}

// ChartView is the JSON representation of a chart.
type ChartView struct {
	Input              bazi.ChartInput       `json:"input"`
	Pillars            []PillarView          `json:"pillars"`
	Raw                bazi.ElementScores    `json:"raw"`
	Percentages        bazi.ElementScores    `json:"percentages"`
	PercentagesByGlyph map[string]float64    `json:"percentages_by_glyph"`
	DayMaster          DayMasterView         `json:"day_master"`
	Season             bazi.Season           `json:"season"`
	Support            float64               `json:"support"`
	Strength           bazi.Strength         `json:"strength"`
	Constitution       wellness.Constitution `json:"constitution"`
}

// NewChartView builds the view of chart.
func NewChartView(chart bazi.Chart) ChartView {
	ordered := chart.Pillars.InOrder()
	pillars := make([]PillarView, 0, len(ordered))
	for pos, p := range ordered {
		pillars = append(pillars, PillarView{
			Position:      positionNames[pos],
			Stem:          p.Stem.Name(),
			Branch:        p.Branch.Name(),
			Glyphs:        p.Glyphs(),
			StemElement:   p.Stem.Element(),
			BranchElement: p.Branch.Element(),
			CycleIndex:    p.CycleIndex(),
		})
	}

	return ChartView{
		Input:              chart.Input,
		Pillars:            pillars,
		Raw:                chart.Raw,
		Percentages:        chart.Percentages,
		PercentagesByGlyph: ByGlyph(chart.Percentages),
		DayMaster: DayMasterView{
			Stem:     chart.DayMaster.Stem.Name(),
			Glyph:    chart.DayMaster.Stem.Glyph(),
			Element:  chart.DayMaster.Element,
			Polarity: chart.DayMaster.Polarity.String(),
		},
		Season:       chart.Season,
		Support:      chart.Support,
		Strength:     chart.Strength,
		Constitution: wellness.Classify(chart.Percentages),
	}
}
