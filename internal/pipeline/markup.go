package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Sentinel errors for markup rendering.
var (
	ErrHTMLConversion   = errors.New("HTML conversion failed")
	ErrUnknownHighlight = errors.New("unknown highlight style")
)

// MarkupOption configures a MarkupRenderer.
type MarkupOption func(*markupConfig)

type markupConfig struct {
	highlight string
}

// WithHighlighting enables chroma syntax highlighting for fenced code blocks
// using the named chroma style. An empty name leaves highlighting off.
func WithHighlighting(style string) MarkupOption {
	return func(c *markupConfig) {
		c.highlight = style
	}
}

// MarkupRenderer converts Markdown to an HTML fragment.
//
// Raw HTML in the source passes through unchanged, bare URLs become links,
// and typographic punctuation is applied. GFM tables and strikethrough are
// also enabled.
type MarkupRenderer struct {
	md        goldmark.Markdown
	highlight string
}

// NewMarkupRenderer creates a MarkupRenderer.
func NewMarkupRenderer(opts ...MarkupOption) *MarkupRenderer {
	var cfg markupConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	exts := []goldmark.Extender{
		extension.Table,
		extension.Strikethrough,
		extension.Linkify,
		extension.Typographer,
	}
	if cfg.highlight != "" {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(cfg.highlight),
			highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &MarkupRenderer{md: md, highlight: cfg.highlight}
}

// Render converts src to an HTML fragment.
func (r *MarkupRenderer) Render(ctx context.Context, src []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}

// HighlightCSS returns the stylesheet for the renderer's highlight style,
// or "" when highlighting is off.
func (r *MarkupRenderer) HighlightCSS() (string, error) {
	if r.highlight == "" {
		return "", nil
	}
	return HighlightCSS(r.highlight)
}

// HighlightCSS generates the chroma class stylesheet for a style name.
func HighlightCSS(style string) (string, error) {
	s, ok := styles.Registry[strings.ToLower(style)]
	if !ok {
		return "", fmt.Errorf("%w: %q (available: %s)", ErrUnknownHighlight, style, strings.Join(HighlightStyles(), ", "))
	}

	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, s); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}

// HighlightStyles lists the chroma style names accepted by WithHighlighting.
func HighlightStyles() []string {
	return styles.Names()
}
