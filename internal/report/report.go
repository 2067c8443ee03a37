// Package report turns a score result into the payload handed to the
// report delivery service.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/terra-clan/resilience-scorecard/internal/models"
	"github.com/terra-clan/resilience-scorecard/internal/scoring"
)

// PlaceholderBody is sent when no rendered body is attached
const PlaceholderBody = "<h1>Your Report</h1><p>Details here...</p>"

//go:embed report.html.tmpl
var reportTemplate string

var bodyTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"pct": func(v float64) string { return fmt.Sprintf("%.0f%%", v) },
	"pts": func(v float64) string { return fmt.Sprintf("%g", v) },
}).Parse(reportTemplate))

// Assemble shapes a score result into a ReportPayload. It copies values
// only; the body is the placeholder until Render replaces it.
func Assemble(email, catalogVersion string, result models.ScoreResult) models.ReportPayload {
	recs := make([]models.Recommendation, len(result.Recommendations))
	copy(recs, result.Recommendations)

	return models.ReportPayload{
		SchemaVersion:   models.ReportSchemaVersion,
		CatalogVersion:  catalogVersion,
		Email:           email,
		Score:           result.FinalScore,
		CategoryScore:   result.OrderedCategories(),
		Recommendations: recs,
		ReportBody:      PlaceholderBody,
	}
}

type bodyData struct {
	Payload  models.ReportPayload
	Band     scoring.Band
	Partial  []models.Recommendation
	Missing  []models.Recommendation
	Critical []string
}

// Render produces the HTML body for a payload
func Render(p models.ReportPayload, stats map[string]models.CategoryStats) (string, error) {
	data := bodyData{Payload: p, Band: scoring.BandFor(p.Score)}
	for _, r := range p.Recommendations {
		switch r.Status {
		case models.StatusPartial:
			data.Partial = append(data.Partial, r)
		case models.StatusMissing:
			data.Missing = append(data.Missing, r)
		}
	}
	for _, c := range p.CategoryScore {
		data.Critical = append(data.Critical, stats[c.Name].CriticalGaps...)
	}

	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

// Build assembles a payload and attaches the rendered body
func Build(email, catalogVersion string, result models.ScoreResult) (models.ReportPayload, error) {
	p := Assemble(email, catalogVersion, result)
	body, err := Render(p, result.Stats)
	if err != nil {
		return p, err
	}
	p.ReportBody = body
	return p, nil
}
