package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/errors"
	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/traffic"
)

// Data holds everything the report template needs: the nine average
// probabilities, the absolute path of the probability plot, and the
// generation timestamp shown in the footer
type Data struct {
	EarlyLight    float64
	EarlyHeavy    float64
	EarlyGridlock float64

	RushHourLight    float64
	RushHourHeavy    float64
	RushHourGridlock float64

	LateLight    float64
	LateHeavy    float64
	LateGridlock float64

	PlotPath    string
	GeneratedAt time.Time
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>Traffic Simulation Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        h1 { text-align: center; }
        .section { margin-bottom: 30px; }
        .footer { margin-top: 40px; font-size: 0.8em; color: #666; }
    </style>
</head>
<body>
    <h1>Traffic Simulation Report</h1>

    <div class="section">
        <h2>Average Probabilities</h2>
        <p><strong>Early Period (8 AM - 4 PM):</strong></p>
        <ul>
            <li>Light: {{ .EarlyLight }}</li>
            <li>Heavy: {{ .EarlyHeavy }}</li>
            <li>Gridlock: {{ .EarlyGridlock }}</li>
        </ul>

        <p><strong>Rush Hour Period (4 PM - 6 PM):</strong></p>
        <ul>
            <li>Light: {{ .RushHourLight }}</li>
            <li>Heavy: {{ .RushHourHeavy }}</li>
            <li>Gridlock: {{ .RushHourGridlock }}</li>
        </ul>

        <p><strong>Late Period (6 PM - 8 PM):</strong></p>
        <ul>
            <li>Light: {{ .LateLight }}</li>
            <li>Heavy: {{ .LateHeavy }}</li>
            <li>Gridlock: {{ .LateGridlock }}</li>
        </ul>
    </div>

    <div class="section">
        <h2>Probability Plot</h2>
        <img src="{{ .PlotPath }}" alt="Traffic State Probabilities">
    </div>

    <div class="footer">Generated at {{ .GeneratedAt.Format "2006-01-02 15:04:05 MST" }}</div>
</body>
</html>
`

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

// BuildData fills the report values from an aggregation result. States
// that never appeared in a period contribute their zero default, so a
// sparse or empty result still yields a complete report.
func BuildData(result traffic.AggregateResult, plotPath string, generatedAt time.Time) Data {
	return Data{
		EarlyLight:    result.Mean(traffic.PeriodEarly, traffic.StateLight),
		EarlyHeavy:    result.Mean(traffic.PeriodEarly, traffic.StateHeavy),
		EarlyGridlock: result.Mean(traffic.PeriodEarly, traffic.StateGridlock),

		RushHourLight:    result.Mean(traffic.PeriodRushHour, traffic.StateLight),
		RushHourHeavy:    result.Mean(traffic.PeriodRushHour, traffic.StateHeavy),
		RushHourGridlock: result.Mean(traffic.PeriodRushHour, traffic.StateGridlock),

		LateLight:    result.Mean(traffic.PeriodLate, traffic.StateLight),
		LateHeavy:    result.Mean(traffic.PeriodLate, traffic.StateHeavy),
		LateGridlock: result.Mean(traffic.PeriodLate, traffic.StateGridlock),

		PlotPath:    plotPath,
		GeneratedAt: generatedAt,
	}
}

// Render writes the filled report HTML to w
func Render(w io.Writer, data Data) error {
	if err := tmpl.Execute(w, data); err != nil {
		return errors.NewRenderError("failed to render report template", err)
	}
	return nil
}

// WriteFile renders the report and writes it to path
func WriteFile(path string, data Data) error {
	var buf bytes.Buffer
	if err := Render(&buf, data); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to write report to %s", path), err)
	}

	return nil
}
