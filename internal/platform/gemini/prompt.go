package gemini

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/phrazzld/bazi-api/internal/report"
)

//go:embed prompts/reading.tmpl
var readingTemplate string

var promptTemplate = template.Must(template.New("reading").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(readingTemplate))

type promptData struct {
	Chart     string
	Foods     []string
	Exercises []string
	Limit     []string
}

func buildPrompt(req report.ReadingRequest) (string, error) {
	data := promptData{
		Chart:     report.Text(req.Chart),
		Foods:     req.Advice.Foods,
		Exercises: req.Advice.Exercises,
		Limit:     req.Advice.Limit,
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
