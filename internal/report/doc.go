// Package report renders the visual artifacts of a simulation run: the
// probability line chart and the HTML report that embeds it.
//
// The chart draws one line per traffic state across the simulated day
// and is written as a PNG. The report is a single self-contained HTML
// page listing the nine average probabilities (three states across
// three day periods) above the chart image, which is referenced by its
// absolute path so that both browsers and the PDF exporter resolve it
// regardless of working directory.
//
// Typical usage:
//
//	renderer := report.NewChartRenderer(report.DefaultChartConfig(), logger)
//	if err := renderer.RenderPNG(dataset, paths.ChartPNG); err != nil {
//	    return err
//	}
//
//	data := report.BuildData(result, paths.ChartPNG, time.Now())
//	if err := report.WriteFile(paths.ReportHTML, data); err != nil {
//	    return err
//	}
//
// Periods with no matching observations render as 0 rather than being
// omitted, so the report always has the same shape.
package report
