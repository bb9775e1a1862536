package wellness

import "github.com/phrazzld/bazi-api/internal/domain/bazi"

type elementGuide struct {
	foods     []string
	exercises []string
}

var guides = [bazi.ElementCount]elementGuide{
	bazi.Wood: {
		foods:     []string{"leafy greens", "sprouts", "sour fruits"},
		exercises: []string{"stretching", "tai chi"},
	},
	bazi.Fire: {
		foods:     []string{"bitter greens", "tomatoes", "red berries"},
		exercises: []string{"interval cardio", "dancing"},
	},
	bazi.Earth: {
		foods:     []string{"root vegetables", "whole grains", "squash"},
		exercises: []string{"walking", "hiking"},
	},
	bazi.Metal: {
		foods:     []string{"ginger", "white radish", "pears"},
		exercises: []string{"breathing practice", "qigong"},
	},
	bazi.Water: {
		foods:     []string{"seaweed", "black beans", "fish"},
		exercises: []string{"swimming", "restorative yoga"},
	},
}

// Advice is a set of diet and exercise suggestions for one constitution.
type Advice struct {
	Constitution Constitution `json:"constitution"`
	// Nourish is the element the suggestions strengthen.
	Nourish bazi.Element `json:"nourish"`
	// Temper is the element to ease off; unset for balanced charts.
	Temper    *bazi.Element `json:"temper,omitempty"`
	Foods     []string      `json:"foods"`
	Exercises []string      `json:"exercises"`
	Limit     []string      `json:"limit,omitempty"`
}

// Recommend builds advice that feeds the deficient element and, for
// unbalanced charts, limits foods of the dominant one. A balanced chart gets
// one maintenance food from every element.
func Recommend(c Constitution) Advice {
	advice := Advice{
		Constitution: c,
		Nourish:      c.Deficient,
	}

	if c.Balanced {
		for _, e := range bazi.Elements {
			advice.Foods = append(advice.Foods, guides[e].foods[0])
		}
		advice.Exercises = append([]string(nil), guides[c.Deficient].exercises...)
		return advice
	}

	temper := c.Dominant
	advice.Temper = &temper
	advice.Foods = append([]string(nil), guides[c.Deficient].foods...)
	// The generating element indirectly supports the deficient one.
	advice.Foods = append(advice.Foods, guides[c.Deficient.GeneratedBy()].foods[0])
	advice.Exercises = append([]string(nil), guides[c.Deficient].exercises...)
	advice.Limit = append([]string(nil), guides[c.Dominant].foods...)
	return advice
}
