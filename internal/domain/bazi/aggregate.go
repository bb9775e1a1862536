package bazi

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// PercentTolerance is the allowed deviation of the percentage sum from 100.
const PercentTolerance = 0.1

// ElementScores maps each element to a non-negative weight, indexed by
// Element.
type ElementScores [ElementCount]float64

// Get returns the score of e.
func (s ElementScores) Get(e Element) float64 { return s[e] }

// Sum adds the scores in element order.
func (s ElementScores) Sum() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// Map returns the scores keyed by element key.
func (s ElementScores) Map() map[string]float64 {
	m := make(map[string]float64, ElementCount)
	for _, e := range Elements {
		m[e.String()] = s[e]
	}
	return m
}

// Strongest returns the element with the highest score. Ties go to the
// earlier element in canonical order.
func (s ElementScores) Strongest() Element {
	best := Wood
	for _, e := range Elements[1:] {
		if s[e] > s[best] {
			best = e
		}
	}
	return best
}

// Weakest returns the element with the lowest score. Ties go to the
// earlier element in canonical order.
func (s ElementScores) Weakest() Element {
	worst := Wood
	for _, e := range Elements[1:] {
		if s[e] < s[worst] {
			worst = e
		}
	}
	return worst
}

// String renders the scores with their element keys.
func (s ElementScores) String() string {
	return fmt.Sprintf("wood=%g fire=%g earth=%g metal=%g water=%g",
		s[Wood], s[Fire], s[Earth], s[Metal], s[Water])
}

// MarshalJSON encodes the scores as an object keyed by element key.
func (s ElementScores) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

// UnmarshalJSON decodes an object keyed by element key. Missing keys are
// zero; unknown keys are rejected.
func (s *ElementScores) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out ElementScores
	for key, v := range m {
		e, ok := ParseElement(key)
		if !ok {
			return fmt.Errorf("unknown element %q", key)
		}
		out[e] = v
	}
	*s = out
	return nil
}

// RawScores accumulates the weighted contribution of every stem and branch.
// Stems are summed first in Year, Month, Day, Hour order, then branches in
// the same order, so the floating-point result is independent of caller
// iteration order.
func RawScores(pillars FourPillars, params *Params) ElementScores {
	var raw ElementScores
	ordered := pillars.InOrder()
	for pos, p := range ordered {
		raw[p.Stem.Element()] += params.StemWeight * params.PillarWeights[pos]
	}
	for pos, p := range ordered {
		raw[p.Branch.Element()] += params.BranchWeight * params.PillarWeights[pos]
	}
	return raw
}

// Normalize converts raw scores into one-decimal percentages:
// round(raw/sum*1000)/10. A zero sum cannot be normalized and is reported
// by the caller.
func Normalize(raw ElementScores) (ElementScores, bool) {
	total := raw.Sum()
	if total <= 0 {
		return ElementScores{}, false
	}

	var tenths [ElementCount]int
	var residual [ElementCount]float64
	sum := 0
	for _, e := range Elements {
		exact := raw[e] / total * 1000
		tenths[e] = int(math.Round(exact))
		residual[e] = exact - float64(tenths[e])
		sum += tenths[e]
	}
	reconcile(&tenths, residual, 1000-sum)

	var pct ElementScores
	for _, e := range Elements {
		pct[e] = float64(tenths[e]) / 10
	}
	return pct, true
}

// reconcile pulls the total back within one tenth of 1000 when independent
// rounding has drifted further. Each step moves the element whose rounding
// went furthest in the wrong direction; ties go to element order.
func reconcile(tenths *[ElementCount]int, residual [ElementCount]float64, drift int) {
	maxDrift := int(math.Round(PercentTolerance * 10))
	if drift >= -maxDrift && drift <= maxDrift {
		return
	}

	order := make([]Element, ElementCount)
	copy(order, Elements[:])
	if drift > 0 {
		// Rounded too low overall: bump the values that were rounded down most.
		sort.SliceStable(order, func(i, j int) bool { return residual[order[i]] > residual[order[j]] })
	} else {
		sort.SliceStable(order, func(i, j int) bool { return residual[order[i]] < residual[order[j]] })
	}

	for i := 0; drift > maxDrift || drift < -maxDrift; i++ {
		e := order[i%ElementCount]
		if drift > 0 {
			tenths[e]++
			drift--
		} else if tenths[e] > 0 {
			tenths[e]--
			drift++
		}
	}
}

// AggregateElements converts four pillars into raw weighted scores and
// normalized percentages. An all-zero raw vector fails with a
// *DegenerateInputError.
func AggregateElements(pillars FourPillars, params *Params) (raw, percentages ElementScores, err error) {
	raw = RawScores(pillars, params)
	percentages, ok := Normalize(raw)
	if !ok {
		return raw, ElementScores{}, &DegenerateInputError{Pillars: pillars}
	}
	return raw, percentages, nil
}
