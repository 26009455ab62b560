package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/K2AAM/Modeling-Traffic-with-Markov-Chains/internal/errors"
)

// Options configure how the HTML report is printed to PDF
type Options struct {
	// AllowFileAccess lets the browser load local files referenced by
	// the page, such as the chart image.
	AllowFileAccess bool
	PrintBackground bool
	Timeout         time.Duration
}

// DefaultOptions returns the standard export settings
func DefaultOptions() Options {
	return Options{
		AllowFileAccess: true,
		PrintBackground: true,
		Timeout:         90 * time.Second,
	}
}

// DocumentExporter converts a rendered HTML report into a PDF document
type DocumentExporter interface {
	Export(ctx context.Context, htmlPath, pdfPath string, opts Options) error
}

// ChromeExporter prints reports through a headless Chrome instance
type ChromeExporter struct {
	logger *slog.Logger
}

// NewChromeExporter creates a Chrome-backed exporter
func NewChromeExporter(logger *slog.Logger) *ChromeExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChromeExporter{logger: logger}
}

// Export loads the report at htmlPath in headless Chrome and writes the
// printed document to pdfPath. Every failure is returned as an export
// error so callers can treat the PDF as an optional artifact.
func (e *ChromeExporter) Export(ctx context.Context, htmlPath, pdfPath string, opts Options) error {
	absHTML, err := filepath.Abs(htmlPath)
	if err != nil {
		return errors.NewExportError(fmt.Sprintf("failed to resolve report path %s", htmlPath), err)
	}
	if _, err := os.Stat(absHTML); err != nil {
		return errors.NewExportError(fmt.Sprintf("report not found at %s", absHTML), err)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	allocOpts := chromedp.DefaultExecAllocatorOptions[:]
	allocOpts = append(allocOpts, chromedp.Flag("headless", true))
	if opts.AllowFileAccess {
		allocOpts = append(allocOpts, chromedp.Flag("allow-file-access-from-files", true))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	start := time.Now()
	e.logger.InfoContext(ctx, "starting PDF export",
		"html", absHTML,
		"pdf", pdfPath,
	)

	var pdf []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate(fileURL(absHTML)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(opts.PrintBackground).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	}

	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return errors.NewExportError("failed to print report to PDF", err).
			WithContext("html", absHTML)
	}

	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		return errors.NewExportError(fmt.Sprintf("failed to write PDF to %s", pdfPath), err)
	}

	e.logger.InfoContext(ctx, "PDF export completed",
		"pdf", pdfPath,
		"bytes", len(pdf),
		"duration", time.Since(start).String(),
	)

	return nil
}

// fileURL builds a file:// URL for an absolute local path
func fileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
