package render

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/alnah/markdown-to-pdf/internal/fileutil"
	"github.com/alnah/markdown-to-pdf/internal/logging"
	"github.com/alnah/markdown-to-pdf/internal/process"
)

// networkIdleLimit caps the wait for Chrome's networkIdle lifecycle event.
// Printing proceeds after it with whatever has loaded.
const networkIdleLimit = 10 * time.Second

// ChromedpEngine launches browsers with chromedp.
type ChromedpEngine struct {
	Logger *zap.Logger
}

// NewChromedpEngine creates a ChromedpEngine.
func NewChromedpEngine(logger *zap.Logger) *ChromedpEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChromedpEngine{Logger: logger}
}

// Name implements Engine.
func (e *ChromedpEngine) Name() string { return "chromedp" }

// Launch starts bin headless without sandbox. The browser lives until Close
// or until ctx is cancelled.
func (e *ChromedpEngine) Launch(ctx context.Context, bin string) (Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(bin),
		chromedp.Headless,
		chromedp.NoSandbox,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logging.Printf(e.Logger.Named("chromedp"))),
	)

	// Run with no actions starts the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	pid := 0
	if c := chromedp.FromContext(browserCtx); c != nil && c.Browser != nil {
		if p := c.Browser.Process(); p != nil {
			pid = p.Pid
		}
	}
	e.Logger.Debug("Browser launched", zap.Int("pid", pid))

	return &chromedpBrowser{
		ctx:           browserCtx,
		cancelBrowser: browserCancel,
		cancelAlloc:   allocCancel,
		pid:           pid,
		log:           e.Logger,
	}, nil
}

type chromedpBrowser struct {
	ctx           context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
	pid           int
	log           *zap.Logger
}

// PrintPDF writes html to a temporary file, opens it in a new tab, waits for
// networkIdle, and prints.
func (c *chromedpBrowser) PrintPDF(ctx context.Context, html string, opts PDFOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	defer cleanup()

	tabCtx, cancelTab := chromedp.NewContext(c.ctx)
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	idle := make(chan struct{}, 1)
	navigating := false
	chromedp.ListenTarget(tabCtx, func(ev any) {
		e, ok := ev.(*page.EventLifecycleEvent)
		if !ok {
			return
		}
		switch e.Name {
		case "init":
			navigating = true
		case "networkIdle":
			if navigating {
				select {
				case idle <- struct{}{}:
				default:
				}
			}
		}
	})

	if err := chromedp.Run(tabCtx,
		page.SetLifecycleEventsEnabled(true),
		chromedp.Navigate(fileURL(path)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	select {
	case <-idle:
	case <-time.After(networkIdleLimit):
		c.log.Debug("Network did not go idle, printing anyway", zap.Duration("waited", networkIdleLimit))
	case <-tabCtx.Done():
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, context.Cause(tabCtx))
	}

	margin := opts.MarginInches()
	var pdf []byte
	err = chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdf, _, err = page.PrintToPDF().
			WithPaperWidth(opts.PaperWidth).
			WithPaperHeight(opts.PaperHeight).
			WithMarginTop(margin).
			WithMarginBottom(margin).
			WithMarginLeft(margin).
			WithMarginRight(margin).
			WithPrintBackground(opts.PrintBackground).
			WithPreferCSSPageSize(false).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return pdf, nil
}

// Close shuts the browser down gracefully, then tears down the allocator,
// which kills the process and removes its profile directory.
func (c *chromedpBrowser) Close() error {
	if c.cancelBrowser == nil {
		return nil
	}
	err := chromedp.Cancel(c.ctx)
	c.cancelBrowser()
	c.cancelAlloc()
	process.TerminateTree(c.pid)
	c.cancelBrowser = nil
	c.log.Debug("Browser released", zap.Int("pid", c.pid))
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// fileURL converts an absolute path to a file:// URL.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
