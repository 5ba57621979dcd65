package render

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Locator resolves the browser executable path.
type Locator interface {
	Find() (string, error)
}

// Engine starts a browser process from an executable path.
// Implementations must launch headless with the sandbox disabled.
type Engine interface {
	Name() string
	Launch(ctx context.Context, bin string) (Browser, error)
}

// Browser is a running browser owned by a single conversion.
type Browser interface {
	// PrintPDF loads html, waits for the network to go idle, and prints it.
	PrintPDF(ctx context.Context, html string, opts PDFOptions) ([]byte, error)
	// Close shuts the browser down and kills any leftover processes.
	Close() error
}

// NewEngine returns the engine registered under name ("rod" or "chromedp").
// An empty name selects rod.
func NewEngine(name string, logger *zap.Logger) (Engine, error) {
	switch name {
	case "", "rod":
		return NewRodEngine(logger), nil
	case "chromedp":
		return NewChromedpEngine(logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}
