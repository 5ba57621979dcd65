package render

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/alnah/markdown-to-pdf/internal/browser"
	"github.com/alnah/markdown-to-pdf/internal/fileutil"
)

// Orchestrator drives one HTML-to-PDF conversion.
type Orchestrator struct {
	Finder  Locator
	Engine  Engine
	Options PDFOptions
	Logger  *zap.Logger

	// write is replaced in tests.
	write func(path string, data []byte) error
}

// NewOrchestrator returns an Orchestrator using DefaultPDFOptions.
func NewOrchestrator(finder Locator, engine Engine, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		Finder:  finder,
		Engine:  engine,
		Options: DefaultPDFOptions(),
		Logger:  logger,
	}
}

// Render prints html and writes the PDF to outPath.
//
// No browser is launched when discovery fails. Once launched, the browser is
// closed exactly once whatever happens next; a close failure is joined to the
// returned error. Nothing is written to outPath unless the PDF is complete.
func (o *Orchestrator) Render(ctx context.Context, html, outPath string) (err error) {
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}

	bin, err := o.Finder.Find()
	if err != nil {
		if errors.Is(err, browser.ErrBrowserNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", browser.ErrBrowserNotFound, err)
	}
	log.Debug("Browser located", zap.String("path", bin), zap.String("engine", o.Engine.Name()))

	b, err := o.Engine.Launch(ctx, bin)
	if err != nil {
		if errors.Is(err, ErrBrowserLaunch) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}
	defer func() {
		if cerr := b.Close(); cerr != nil {
			log.Warn("Browser did not shut down cleanly", zap.Error(cerr))
			err = multierr.Append(err, fmt.Errorf("closing browser: %w", cerr))
		}
	}()

	pdf, err := b.PrintPDF(ctx, html, o.options())
	if err != nil {
		if errors.Is(err, ErrPageLoad) || errors.Is(err, ErrRender) || ctx.Err() != nil {
			return err
		}
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	log.Debug("PDF rendered", zap.Int("bytes", len(pdf)))

	write := o.write
	if write == nil {
		write = fileutil.WriteFileAtomic
	}
	if err := write(outPath, pdf); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

func (o *Orchestrator) options() PDFOptions {
	if o.Options == (PDFOptions{}) {
		return DefaultPDFOptions()
	}
	return o.Options
}
