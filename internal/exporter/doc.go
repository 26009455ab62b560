// Package exporter owns the pipeline's file outputs that are not
// rendered by the report package: the PDF document printed from the
// HTML report and the CSV datasets produced by the simulator.
//
// PDF export drives a headless Chrome instance through chromedp,
// navigates to the report over a file:// URL, and captures the printed
// page. Local file access is enabled so the browser can resolve the
// chart image the report references by absolute path. All export
// failures carry the EXPORT error type; the pipeline treats them as
// non-fatal because the HTML report remains usable on its own.
//
// CSV writing mirrors the input format the loader expects, so a
// simulated dataset written here round-trips through the reporting
// pipeline unchanged.
package exporter
