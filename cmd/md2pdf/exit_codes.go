package main

import (
	"context"
	"errors"
	"os"

	md2pdf "github.com/alnah/markdown-to-pdf"
	"github.com/alnah/markdown-to-pdf/internal/config"
)

// Exit codes for md2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, md2pdf.ErrBrowserNotFound) ||
		errors.Is(err, md2pdf.ErrBrowserLaunch) ||
		errors.Is(err, md2pdf.ErrPageLoad) ||
		errors.Is(err, md2pdf.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2pdf.ErrReadMarkdown) ||
		errors.Is(err, md2pdf.ErrStyleRead) ||
		errors.Is(err, md2pdf.ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, md2pdf.ErrNoInput) ||
		errors.Is(err, md2pdf.ErrInvalidExtension) ||
		errors.Is(err, md2pdf.ErrStyleNotFound) ||
		errors.Is(err, md2pdf.ErrInvalidStyleName) ||
		errors.Is(err, md2pdf.ErrUnknownHighlight) ||
		errors.Is(err, md2pdf.ErrUnknownEngine) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidEngine) ||
		errors.Is(err, config.ErrInvalidTimeout) ||
		errors.Is(err, config.ErrInvalidLogLevel) {
		return ExitUsage
	}

	return ExitGeneral
}
