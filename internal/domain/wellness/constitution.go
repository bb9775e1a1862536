package wellness

import (
	"math"

	"github.com/phrazzld/bazi-api/internal/domain/bazi"
)

// BalancedSpread is the largest gap, in percentage points, between the
// strongest and weakest element for a chart to count as balanced.
const BalancedSpread = 10.0

// Constitution summarizes the element distribution of one chart.
type Constitution struct {
	Dominant  bazi.Element `json:"dominant"`
	Deficient bazi.Element `json:"deficient"`
	Label     string       `json:"label"`
	Spread    float64      `json:"spread"`
	Balanced  bool         `json:"balanced"`
}

// Classify derives the constitution from normalized percentages. Ties for
// dominant or deficient go to the earlier element in canonical order.
func Classify(percentages bazi.ElementScores) Constitution {
	dominant := percentages.Strongest()
	deficient := percentages.Weakest()
	spread := tenths(percentages[dominant] - percentages[deficient])

	return Constitution{
		Dominant:  dominant,
		Deficient: deficient,
		Label:     dominant.String() + "-dominant",
		Spread:    float64(spread) / 10,
		Balanced:  spread <= tenths(BalancedSpread),
	}
}

func tenths(v float64) int {
	return int(math.Round(v * 10))
}
