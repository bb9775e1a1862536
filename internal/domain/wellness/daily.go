package wellness

import (
	"time"

	"github.com/phrazzld/bazi-api/internal/domain/bazi"
)

// Daily balance labels.
const (
	LabelFavourable  = "favourable"
	LabelNeutral     = "neutral"
	LabelChallenging = "challenging"
)

const (
	baseScore        = 50
	favourableScore  = 65
	challengingScore = 35
)

// Contribution of one day element to the balance score, for the stem and
// branch respectively.
type effect struct{ stem, branch int }

var (
	effectSame     = effect{25, 20}
	effectFeeds    = effect{15, 10}
	effectControls = effect{-25, -20}
	effectExcess   = effect{-10, -5}
)

// Daily is the balance reading for one calendar date.
type Daily struct {
	Date      string       `json:"date"`
	Pillar    bazi.Pillar  `json:"-"`
	DayPillar string       `json:"day_pillar"`
	Focus     bazi.Element `json:"focus"`
	Score     int          `json:"score"`
	Label     string       `json:"label"`
}

// DailyBalance scores how well the day pillar of date supports the deficient
// element of a chart's percentages. The score starts at 50 and is clamped to
// [0, 100]. Only the civil date of date is used.
func DailyBalance(percentages bazi.ElementScores, date time.Time) (Daily, error) {
	pillar, err := bazi.DayPillar(date.Year(), int(date.Month()), date.Day())
	if err != nil {
		return Daily{}, err
	}

	c := Classify(percentages)
	score := baseScore +
		effectOf(pillar.Stem.Element(), c).stem +
		effectOf(pillar.Branch.Element(), c).branch
	score = max(0, min(100, score))

	return Daily{
		Date:      date.Format(time.DateOnly),
		Pillar:    pillar,
		DayPillar: pillar.Glyphs(),
		Focus:     c.Deficient,
		Score:     score,
		Label:     labelFor(score),
	}, nil
}

func effectOf(e bazi.Element, c Constitution) effect {
	switch {
	case e == c.Deficient:
		return effectSame
	case e.Generates() == c.Deficient:
		return effectFeeds
	case e.Controls() == c.Deficient:
		return effectControls
	case e == c.Dominant && !c.Balanced:
		return effectExcess
	default:
		return effect{}
	}
}

func labelFor(score int) string {
	switch {
	case score >= favourableScore:
		return LabelFavourable
	case score <= challengingScore:
		return LabelChallenging
	default:
		return LabelNeutral
	}
}
