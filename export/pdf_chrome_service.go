// Package export converts rendered presentations into downloadable
// artifacts: browser-rasterized PDFs, native PPTX decks and outline
// handouts. Every artifact lands in the managed data directory under a
// sanitized filename.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"slidesmith/renderer"
)

const (
	// hard cap on navigation + capture per export; a timeout is terminal
	defaultExportTimeout = 60 * time.Second

	// network idle: at most this many in-flight requests, sustained
	networkIdleMaxInflight = 2
	networkIdleQuiet       = 500 * time.Millisecond
)

// ChromeExportService rasterizes rendered deck pages to PDF through a
// headless Chrome instance. Each export launches its own isolated browser
// process; nothing is pooled or reused between concurrent exports.
type ChromeExportService struct {
	dataDir string
	logger  func(string)
	timeout time.Duration
}

// NewChromeExportService creates a new ChromeExportService instance
func NewChromeExportService(dataDir string, logger func(string)) *ChromeExportService {
	return &ChromeExportService{
		dataDir: dataDir,
		logger:  logger,
		timeout: defaultExportTimeout,
	}
}

// Name returns the service name
func (s *ChromeExportService) Name() string {
	return "chrome-export"
}

// Initialize ensures the managed data directory exists.
func (s *ChromeExportService) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Shutdown releases nothing: browser processes never outlive an export.
func (s *ChromeExportService) Shutdown() error {
	return nil
}

// SetTimeout overrides the per-export deadline (mainly for tests).
func (s *ChromeExportService) SetTimeout(d time.Duration) {
	s.timeout = d
}

// ExportToPdf navigates a fresh headless browser to url, waits for
// network-idle quiescence, captures a 1280x720 PDF with backgrounds and
// zero margins, and writes it to <dataDir>/<sanitized title>.pdf. The
// returned path points at the written file. Same-titled concurrent
// exports race last-writer-wins on the output file.
//
// Failures are never retried here; each error names the stage it came
// from so the caller can retry manually.
func (s *ChromeExportService) ExportToPdf(ctx context.Context, url, title string) (string, error) {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Headless,
		// containers and CI runners lack the sandbox capability
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}

	// one allocator per export: navigation state is never shared
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	cdpCtx, cancelCdp := chromedp.NewContext(allocCtx)
	defer cancelCdp()

	runCtx, cancelRun := context.WithTimeout(cdpCtx, s.timeout)
	defer cancelRun()

	// starting with an empty task list forces the browser to launch now,
	// so launch failures surface as their own stage
	if err := chromedp.Run(runCtx); err != nil {
		return "", fmt.Errorf("launch: %w", err)
	}

	s.log(fmt.Sprintf("[EXPORT] Navigating to %s", url))
	err := chromedp.Run(runCtx,
		network.Enable(),
		chromedp.Navigate(url),
		waitNetworkIdle(networkIdleMaxInflight, networkIdleQuiet),
	)
	if err != nil {
		return "", fmt.Errorf("navigate: %w", err)
	}

	var html string
	if err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("preflight: %w", err)
	}
	slideCount, err := countSlides(html)
	if err != nil {
		return "", fmt.Errorf("preflight: %w", err)
	}
	if slideCount == 0 {
		return "", fmt.Errorf("preflight: rendered page contains no slides")
	}
	s.log(fmt.Sprintf("[EXPORT] Page ready, %d slides", slideCount))

	var pdfBuf []byte
	err = chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdfBuf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(float64(renderer.PageWidthPx) / 96.0).
			WithPaperHeight(float64(renderer.PageHeightPx) / 96.0).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			Do(ctx)
		return err
	}))
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}

	outPath := filepath.Join(s.dataDir, SanitizeFilename(title)+".pdf")
	if err := os.WriteFile(outPath, pdfBuf, 0644); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}

	s.log(fmt.Sprintf("[EXPORT] PDF written: %s (%d bytes)", outPath, len(pdfBuf)))
	return outPath, nil
}

// waitNetworkIdle blocks until no more than maxInflight requests have been
// in flight for a sustained quiet window, or the context deadline hits.
func waitNetworkIdle(maxInflight int, quiet time.Duration) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var mu sync.Mutex
		inflight := make(map[network.RequestID]struct{})
		activity := make(chan struct{}, 1)

		notify := func() {
			select {
			case activity <- struct{}{}:
			default:
			}
		}

		lctx, cancel := context.WithCancel(ctx)
		defer cancel()
		chromedp.ListenTarget(lctx, func(ev interface{}) {
			switch e := ev.(type) {
			case *network.EventRequestWillBeSent:
				mu.Lock()
				inflight[e.RequestID] = struct{}{}
				mu.Unlock()
				notify()
			case *network.EventLoadingFinished:
				mu.Lock()
				delete(inflight, e.RequestID)
				mu.Unlock()
				notify()
			case *network.EventLoadingFailed:
				mu.Lock()
				delete(inflight, e.RequestID)
				mu.Unlock()
				notify()
			}
		})

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-activity:
				// window restarts below
			case <-time.After(quiet):
				mu.Lock()
				n := len(inflight)
				mu.Unlock()
				if n <= maxInflight {
					return nil
				}
			}
		}
	})
}

// countSlides parses the rendered page and counts slide nodes, so a blank
// deck never exports silently.
func countSlides(html string) (int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, fmt.Errorf("failed to parse rendered page: %w", err)
	}
	return doc.Find(".slide").Length(), nil
}

func (s *ChromeExportService) log(msg string) {
	if s.logger != nil {
		s.logger(msg)
	}
}
