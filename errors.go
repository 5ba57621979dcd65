package md2pdf

import (
	"errors"

	"github.com/alnah/markdown-to-pdf/internal/assets"
	"github.com/alnah/markdown-to-pdf/internal/browser"
	"github.com/alnah/markdown-to-pdf/internal/pipeline"
	"github.com/alnah/markdown-to-pdf/internal/render"
)

// Sentinel errors for library operations.
var (
	ErrNoInput          = errors.New("no markdown file specified")
	ErrInvalidExtension = errors.New("please select a markdown (.md) file")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrStyleRead        = errors.New("failed to read style file")

	// Re-exported from internal packages so callers can match with errors.Is.
	ErrBrowserNotFound  = browser.ErrBrowserNotFound
	ErrBrowserLaunch    = render.ErrBrowserLaunch
	ErrPageLoad         = render.ErrPageLoad
	ErrPDFGeneration    = render.ErrRender
	ErrWriteOutput      = render.ErrWriteOutput
	ErrUnknownEngine    = render.ErrUnknownEngine
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrInvalidStyleName = assets.ErrInvalidAssetName
	ErrUnknownHighlight = pipeline.ErrUnknownHighlight
	ErrHTMLConversion   = pipeline.ErrHTMLConversion
)
