package bazi

import "fmt"

// Pillar positions, also the fixed summation order.
const (
	PositionYear = iota
	PositionMonth
	PositionDay
	PositionHour
	pillarCount
)

// Params holds the tunable constants of the element aggregation and the
// strength classification.
type Params struct {
	// Per-contribution weights. Stems carry more weight than branches.
	StemWeight   float64
	BranchWeight float64

	// PillarWeights scales every contribution by pillar position,
	// indexed by PositionYear..PositionHour.
	PillarWeights [pillarCount]float64

	// Strength band, in percentage points of day-master support.
	// Support strictly below WeakThreshold is weak, strictly above
	// StrongThreshold is strong, anything in between (inclusive) balanced.
	WeakThreshold   float64
	StrongThreshold float64
}

// ParamsConfig allows overriding the default parameters. Zero values keep
// the defaults.
type ParamsConfig struct {
	StemWeight   float64
	BranchWeight float64

	YearWeight  float64
	MonthWeight float64
	DayWeight   float64
	HourWeight  float64

	WeakThreshold   float64
	StrongThreshold float64
}

// NewDefaultParams returns the default weight table and strength band.
func NewDefaultParams() *Params {
	return &Params{
		StemWeight:   1.0,
		BranchWeight: 0.75,
		PillarWeights: [pillarCount]float64{
			PositionYear:  1.0,
			PositionMonth: 1.5,
			PositionDay:   1.5,
			PositionHour:  1.0,
		},
		WeakThreshold:   35.0,
		StrongThreshold: 50.0,
	}
}

// NewParams builds Params from the defaults and the non-zero overrides in
// config, then validates the result.
func NewParams(config ParamsConfig) (*Params, error) {
	params := NewDefaultParams()

	if config.StemWeight != 0 {
		params.StemWeight = config.StemWeight
	}
	if config.BranchWeight != 0 {
		params.BranchWeight = config.BranchWeight
	}
	if config.YearWeight != 0 {
		params.PillarWeights[PositionYear] = config.YearWeight
	}
	if config.MonthWeight != 0 {
		params.PillarWeights[PositionMonth] = config.MonthWeight
	}
	if config.DayWeight != 0 {
		params.PillarWeights[PositionDay] = config.DayWeight
	}
	if config.HourWeight != 0 {
		params.PillarWeights[PositionHour] = config.HourWeight
	}
	if config.WeakThreshold != 0 {
		params.WeakThreshold = config.WeakThreshold
	}
	if config.StrongThreshold != 0 {
		params.StrongThreshold = config.StrongThreshold
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// Validate checks that the weights are usable and the strength band is
// well-formed.
func (p *Params) Validate() error {
	if p.StemWeight < 0 || p.BranchWeight < 0 {
		return fmt.Errorf("stem and branch weights must be non-negative, got %v and %v",
			p.StemWeight, p.BranchWeight)
	}
	if p.StemWeight == 0 && p.BranchWeight == 0 {
		return fmt.Errorf("stem and branch weights cannot both be zero")
	}
	for pos, w := range p.PillarWeights {
		if w < 0 {
			return fmt.Errorf("pillar weight at position %d must be non-negative, got %v", pos, w)
		}
	}
	if p.WeakThreshold < 0 || p.StrongThreshold > 100 {
		return fmt.Errorf("strength thresholds must lie within [0, 100], got %v and %v",
			p.WeakThreshold, p.StrongThreshold)
	}
	if p.WeakThreshold > p.StrongThreshold {
		return fmt.Errorf("weak threshold %v exceeds strong threshold %v",
			p.WeakThreshold, p.StrongThreshold)
	}
	return nil
}
