package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/phrazzld/bazi-api/internal/domain/bazi"
	"github.com/phrazzld/bazi-api/internal/domain/wellness"
)

// Reading sources.
const (
	SourceTemplate = "template"
	SourceModel    = "model"
)

// ReadingRequest carries everything a narrator may draw on.
type ReadingRequest struct {
	Chart  bazi.Chart
	Advice wellness.Advice
}

// NewReadingRequest prepares the request for chart.
func NewReadingRequest(chart bazi.Chart) ReadingRequest {
	return ReadingRequest{
		Chart:  chart,
		Advice: wellness.Recommend(wellness.Classify(chart.Percentages)),
	}
}

// Reading is a prose interpretation of a chart.
type Reading struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// Narrator turns a chart into prose. Implementations may call external
// services and should honour ctx cancellation.
type Narrator interface {
	Narrate(ctx context.Context, req ReadingRequest) (string, error)
}

// TemplateNarrator produces a deterministic reading without any external
// call. It is used when no model-backed narrator is configured.
type TemplateNarrator struct{}

var _ Narrator = TemplateNarrator{}

// Narrate implements Narrator.
func (TemplateNarrator) Narrate(_ context.Context, req ReadingRequest) (string, error) {
	var b strings.Builder
	b.WriteString(Text(req.Chart))

	a := req.Advice
	fmt.Fprintf(&b, "To nourish %s: eat %s; try %s.\n",
		a.Nourish, strings.Join(a.Foods, ", "), strings.Join(a.Exercises, ", "))
	if a.Temper != nil {
		fmt.Fprintf(&b, "Go easy on %s foods such as %s.\n", *a.Temper, strings.Join(a.Limit, ", "))
	}
	return b.String(), nil
}
