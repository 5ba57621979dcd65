package render

import (
	"context"
	"fmt"
	"io"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/alnah/markdown-to-pdf/internal/process"
)

// RodEngine launches browsers with go-rod.
type RodEngine struct {
	Logger *zap.Logger
}

// NewRodEngine creates a RodEngine.
func NewRodEngine(logger *zap.Logger) *RodEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RodEngine{Logger: logger}
}

// Name implements Engine.
func (e *RodEngine) Name() string { return "rod" }

// Launch starts bin headless without sandbox and connects to it.
func (e *RodEngine) Launch(ctx context.Context, bin string) (Browser, error) {
	l := launcher.New().
		Context(ctx).
		Bin(bin).
		Headless(true).
		NoSandbox(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage")

	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	e.Logger.Debug("Browser launched", zap.Int("pid", l.PID()))
	return &rodBrowser{browser: b, launcher: l, log: e.Logger}, nil
}

type rodBrowser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	log      *zap.Logger
}

// PrintPDF sets html as the content of a blank page and prints it.
func (r *rodBrowser) PrintPDF(ctx context.Context, html string, opts PDFOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := r.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	defer func() { _ = page.Close() }()

	waitIdle := page.WaitRequestIdle(opts.IdleWindow, nil, nil, nil)
	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	waitIdle()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, err)
	}

	margin := opts.MarginInches()
	stream, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      &opts.PaperWidth,
		PaperHeight:     &opts.PaperHeight,
		MarginTop:       &margin,
		MarginBottom:    &margin,
		MarginLeft:      &margin,
		MarginRight:     &margin,
		PrintBackground: opts.PrintBackground,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrRender, err)
	}
	return pdf, nil
}

// Close closes the browser, then kills the process tree and removes the
// temporary profile.
func (r *rodBrowser) Close() error {
	var err error
	if r.browser != nil {
		err = multierr.Append(err, r.browser.Close())
		r.browser = nil
	}
	if r.launcher != nil {
		pid := r.launcher.PID()
		r.launcher.Kill()
		process.TerminateTree(pid)
		r.launcher.Cleanup()
		r.launcher = nil
		r.log.Debug("Browser released", zap.Int("pid", pid))
	}
	return err
}
