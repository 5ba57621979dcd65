package main

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	md2pdf "github.com/alnah/markdown-to-pdf"
	"github.com/alnah/markdown-to-pdf/internal/browser"
	"github.com/alnah/markdown-to-pdf/internal/opener"
)

// Converter is the part of md2pdf.Converter the CLI drives.
type Converter interface {
	ConvertFileTo(ctx context.Context, src, out string) (string, error)
}

// Compile-time interface implementation check.
var _ Converter = (*md2pdf.Converter)(nil)

// FileOpener opens or reveals a finished PDF.
type FileOpener interface {
	Open(path string) error
	Reveal(path string) error
}

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer

	// Getenv and Environ read process environment variables.
	Getenv  func(string) string
	Environ func() []string

	NewConverter func(opts ...md2pdf.Option) (Converter, error)
	Discover     func(override string) (browser.Result, error)
	Opener       FileOpener

	// BrowserVersion runs the browser with --version (doctor only).
	BrowserVersion func(bin string) (string, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewConverter: func(opts ...md2pdf.Option) (Converter, error) {
			return md2pdf.NewConverter(opts...)
		},
		Discover: func(override string) (browser.Result, error) {
			return browser.NewFinder(override).Discover()
		},
		Opener:         opener.New(),
		BrowserVersion: browserVersion,
	}
}

// browserVersion asks the executable for its version string.
func browserVersion(bin string) (string, error) {
	out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- bin comes from discovery
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
