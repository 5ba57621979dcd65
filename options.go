package md2pdf

import (
	"time"

	"go.uber.org/zap"
)

// defaultTimeout bounds one conversion when WithTimeout is not used.
const defaultTimeout = 30 * time.Second

// Option configures a Converter.
type Option func(*converterConfig)

type converterConfig struct {
	timeout    time.Duration
	browserBin string
	engine     string
	style      string
	highlight  string
	logger     *zap.Logger
	reporter   Reporter
}

// WithTimeout bounds each conversion, from reading the file to writing the PDF.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2pdf: WithTimeout duration must be positive")
	}
	return func(c *converterConfig) {
		c.timeout = d
	}
}

// WithBrowserBin uses path as the browser executable and skips discovery.
func WithBrowserBin(path string) Option {
	return func(c *converterConfig) {
		c.browserBin = path
	}
}

// WithEngine selects the automation engine: "rod" (default) or "chromedp".
func WithEngine(name string) Option {
	return func(c *converterConfig) {
		c.engine = name
	}
}

// WithStyle sets the stylesheet: an embedded style name such as "default",
// or a path to a CSS file.
func WithStyle(nameOrPath string) Option {
	return func(c *converterConfig) {
		c.style = nameOrPath
	}
}

// WithHighlight enables syntax highlighting of fenced code with the named
// chroma style.
func WithHighlight(style string) Option {
	return func(c *converterConfig) {
		c.highlight = style
	}
}

// WithLogger sets the logger for debug output. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *converterConfig) {
		c.logger = l
	}
}

// WithReporter receives conversion progress milestones.
func WithReporter(r Reporter) Option {
	return func(c *converterConfig) {
		c.reporter = r
	}
}
