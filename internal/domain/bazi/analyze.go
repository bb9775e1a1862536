package bazi

import "math"

// Strength classifies how dominant the day master's element is.
type Strength string

// Strength classifications.
const (
	StrengthWeak     Strength = "weak"
	StrengthBalanced Strength = "balanced"
	StrengthStrong   Strength = "strong"
)

// DayMaster is the Day pillar's stem together with its fixed attributes.
type DayMaster struct {
	Stem     HeavenlyStem
	Element  Element
	Polarity Polarity
}

// Analysis holds the secondary attributes derived from a chart.
type Analysis struct {
	DayMaster DayMaster
	Season    Season
	// Support is the day-master element percentage plus the percentage of
	// the element that generates it.
	Support  float64
	Strength Strength
}

// Analyze derives the day master, season and strength classification from
// the pillars and their normalized percentages.
func Analyze(pillars FourPillars, percentages ElementScores, params *Params) Analysis {
	stem := pillars.Day.Stem
	element := stem.Element()
	support := percentages[element] + percentages[element.GeneratedBy()]

	return Analysis{
		DayMaster: DayMaster{
			Stem:     stem,
			Element:  element,
			Polarity: stem.Polarity(),
		},
		Season:   pillars.Month.Branch.Season(),
		Support:  float64(toTenths(support)) / 10,
		Strength: ClassifyStrength(support, params),
	}
}

// ClassifyStrength maps a support percentage onto the threshold band.
// Values exactly on either threshold are balanced. The comparison is done in
// whole tenths so one-decimal inputs land on the boundary exactly.
func ClassifyStrength(support float64, params *Params) Strength {
	s := toTenths(support)
	switch {
	case s < toTenths(params.WeakThreshold):
		return StrengthWeak
	case s > toTenths(params.StrongThreshold):
		return StrengthStrong
	default:
		return StrengthBalanced
	}
}

func toTenths(v float64) int {
	return int(math.Round(v * 10))
}
