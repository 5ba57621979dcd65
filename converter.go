package md2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/markdown-to-pdf/internal/assets"
	"github.com/alnah/markdown-to-pdf/internal/browser"
	"github.com/alnah/markdown-to-pdf/internal/fileutil"
	"github.com/alnah/markdown-to-pdf/internal/pipeline"
	"github.com/alnah/markdown-to-pdf/internal/render"
)

// MarkdownExt is the only accepted source extension.
const MarkdownExt = ".md"

// PDFExt replaces MarkdownExt in the output path.
const PDFExt = ".pdf"

// printer prints an assembled document to a file.
type printer interface {
	Render(ctx context.Context, html, outPath string) error
}

// Compile-time interface checks.
var (
	_ printer        = (*render.Orchestrator)(nil)
	_ render.Locator = (*browser.Finder)(nil)
)

// Converter runs the Markdown-to-PDF pipeline.
// It holds no browser between calls and is safe for sequential reuse.
type Converter struct {
	cfg       converterConfig
	renderer  *pipeline.MarkupRenderer
	assembler *pipeline.DocumentAssembler
	printer   printer
	readFile  func(string) ([]byte, error)
}

// NewConverter creates a Converter. It fails when the style, highlight style,
// or engine cannot be resolved; no browser is started here.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := converterConfig{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.reporter == nil {
		cfg.reporter = nopReporter{}
	}

	css, err := resolveStyle(cfg.style)
	if err != nil {
		return nil, err
	}

	renderer := pipeline.NewMarkupRenderer(pipeline.WithHighlighting(cfg.highlight))
	highlightCSS, err := renderer.HighlightCSS()
	if err != nil {
		return nil, err
	}
	if highlightCSS != "" {
		css += "\n" + highlightCSS
	}

	engine, err := render.NewEngine(cfg.engine, cfg.logger)
	if err != nil {
		return nil, err
	}

	return &Converter{
		cfg:       cfg,
		renderer:  renderer,
		assembler: pipeline.NewDocumentAssembler(css),
		printer:   render.NewOrchestrator(browser.NewFinder(cfg.browserBin), engine, cfg.logger),
		readFile:  os.ReadFile,
	}, nil
}

// resolveStyle returns CSS for an embedded style name or a CSS file path.
func resolveStyle(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		nameOrPath = assets.DefaultStyle
	}

	if fileutil.IsFilePath(nameOrPath) || strings.HasSuffix(nameOrPath, ".css") {
		content, err := os.ReadFile(nameOrPath) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrStyleRead, err)
		}
		return string(content), nil
	}

	css, err := assets.NewEmbeddedLoader().LoadStyle(nameOrPath)
	if err != nil {
		return "", fmt.Errorf("loading style %q: %w", nameOrPath, err)
	}
	return css, nil
}

// ValidateSource checks that path names a Markdown file. It does not touch
// the filesystem.
func ValidateSource(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrNoInput
	}
	if !strings.HasSuffix(path, MarkdownExt) {
		return fmt.Errorf("%w: %q", ErrInvalidExtension, filepath.Base(path))
	}
	return nil
}

// OutputPath returns the sibling PDF path for a Markdown source.
func OutputPath(src string) string {
	return fileutil.ReplaceExt(src, PDFExt)
}

// ConvertFile converts src to OutputPath(src) and returns the output path.
func (c *Converter) ConvertFile(ctx context.Context, src string) (string, error) {
	if err := ValidateSource(src); err != nil {
		return "", err
	}
	return c.ConvertFileTo(ctx, src, OutputPath(src))
}

// ConvertFileTo converts src and writes the PDF to out.
//
// The source path is validated before anything is read. The PDF is written
// only once it is complete, so a failed conversion leaves no file at out.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) ConvertFileTo(ctx context.Context, src, out string) (_ string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ValidateSource(src); err != nil {
		return "", err
	}
	if out == "" {
		out = OutputPath(src)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	c.cfg.reporter.Report(0, MsgReading)
	content, err := c.readFile(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	c.cfg.reporter.Report(20, MsgConverting)
	doc, err := c.BuildHTML(ctx, content, filepath.Base(src), filepath.Dir(src))
	if err != nil {
		return "", err
	}

	c.cfg.reporter.Report(40, MsgGenerating)
	start := time.Now()
	if err := c.printer.Render(ctx, doc, out); err != nil {
		return "", err
	}
	c.cfg.logger.Debug("PDF written", zap.String("path", out), zap.Duration("elapsed", time.Since(start)))

	c.cfg.reporter.Report(100, MsgDone)
	return out, nil
}

// BuildHTML renders Markdown into the complete HTML document that is printed.
// Relative image and link paths resolve against sourceDir when it is set.
func (c *Converter) BuildHTML(ctx context.Context, markdown []byte, title, sourceDir string) (string, error) {
	fragment, err := c.renderer.Render(ctx, markdown)
	if err != nil {
		return "", err
	}

	if sourceDir != "" {
		fragment, err = pipeline.RewriteRelativePaths(fragment, sourceDir)
		if err != nil {
			return "", fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	return c.assembler.Assemble(fragment, title)
}

func (c *Converter) timeout() time.Duration {
	if c.cfg.timeout <= 0 {
		return defaultTimeout
	}
	return c.cfg.timeout
}
