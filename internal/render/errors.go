package render

import "errors"

// Sentinel errors for rendering.
var (
	ErrBrowserLaunch = errors.New("failed to launch browser")
	ErrPageLoad      = errors.New("failed to load document")
	ErrRender        = errors.New("PDF generation failed")
	ErrWriteOutput   = errors.New("failed to write PDF")
	ErrUnknownEngine = errors.New("unknown browser engine")
)
