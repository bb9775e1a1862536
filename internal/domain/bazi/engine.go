package bazi

import "fmt"

// ChartInput is the birth data a chart is computed from. It is comparable
// and therefore usable as a memoization key.
type ChartInput struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
	Hour  int `json:"hour"`
}

// String renders the input as an ISO-like timestamp.
func (in ChartInput) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:00", in.Year, in.Month, in.Day, in.Hour)
}

// Chart is the complete computed chart. It is a value: nothing in this
// package modifies a Chart after Calculate returns it.
type Chart struct {
	Input       ChartInput
	Pillars     FourPillars
	Raw         ElementScores
	Percentages ElementScores
	Analysis
}

// Engine computes charts with a fixed parameter set. The zero value is not
// usable; construct with NewEngine or NewDefaultEngine.
type Engine struct {
	params Params
}

// NewDefaultEngine returns an engine using NewDefaultParams.
func NewDefaultEngine() *Engine {
	return &Engine{params: *NewDefaultParams()}
}

// NewEngine returns an engine using a copy of params.
func NewEngine(params *Params) (*Engine, error) {
	if params == nil {
		return nil, fmt.Errorf("params cannot be nil")
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine params: %w", err)
	}
	return &Engine{params: *params}, nil
}

// Params returns a copy of the engine's parameters.
func (e *Engine) Params() Params {
	return e.params
}

// Calculate runs the full pipeline for one input. It fails with a
// *ValidationError for bad calendar input and a *DegenerateInputError if the
// configured weights produce no score at all.
func (e *Engine) Calculate(in ChartInput) (Chart, error) {
	pillars, err := ComputePillars(in.Year, in.Month, in.Day, in.Hour)
	if err != nil {
		return Chart{}, err
	}

	raw, pct, err := AggregateElements(pillars, &e.params)
	if err != nil {
		return Chart{}, err
	}

	return Chart{
		Input:       in,
		Pillars:     pillars,
		Raw:         raw,
		Percentages: pct,
		Analysis:    Analyze(pillars, pct, &e.params),
	}, nil
}
