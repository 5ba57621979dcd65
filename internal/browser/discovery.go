// Package browser locates a Chromium-family executable.
//
// Discovery is deterministic and first-match-wins:
//
//  1. an explicit override (flag, env, config), which must exist;
//  2. the well-known install locations for the platform, in order;
//  3. an installation scan (go-rod's launcher.LookPath by default).
//
// Filesystem access and the scan are injected so the ordering can be tested
// without touching the disk.
package browser

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/markdown-to-pdf/internal/fileutil"
)

// ErrBrowserNotFound is returned when no discovery step yields an executable.
var ErrBrowserNotFound = errors.New("no Chrome/Chromium browser found")

// Platform selects a candidate path list.
type Platform string

// Supported platforms.
const (
	Darwin  Platform = "darwin"
	Windows Platform = "windows"
	Linux   Platform = "linux"
)

// CurrentPlatform maps runtime.GOOS onto a Platform.
// Every OS other than macOS and Windows uses the Unix-style list.
func CurrentPlatform() Platform {
	return PlatformFor(runtime.GOOS)
}

// PlatformFor maps a GOOS value onto a Platform.
func PlatformFor(goos string) Platform {
	switch goos {
	case "darwin":
		return Darwin
	case "windows":
		return Windows
	default:
		return Linux
	}
}

// CandidatePaths returns the well-known install locations for p, most
// preferred first. The returned slice is a fresh copy.
func CandidatePaths(p Platform) []string {
	var paths []string
	switch p {
	case Darwin:
		paths = darwinPaths
	case Windows:
		paths = windowsPaths
	default:
		paths = linuxPaths
	}
	return append([]string(nil), paths...)
}

var (
	darwinPaths = []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/Applications/Google Chrome Canary.app/Contents/MacOS/Google Chrome Canary",
		"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
	}
	windowsPaths = []string{
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files\Chromium\Application\chrome.exe`,
		`C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe`,
	}
	linuxPaths = []string{
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
)

// Source tells which discovery step produced a path.
type Source string

// Discovery sources.
const (
	SourceOverride  Source = "override"
	SourceWellKnown Source = "well-known path"
	SourceScan      Source = "installation scan"
)

// Result is a successful discovery.
type Result struct {
	Path   string
	Source Source
}

// Finder resolves the browser executable.
type Finder struct {
	Platform Platform
	// Override is an explicit executable path; it skips every other step.
	Override string
	// Exists reports whether a candidate path is present.
	Exists func(path string) bool
	// Scan enumerates installed browsers and returns the first one.
	Scan func() (string, bool)
}

// NewFinder returns a Finder for the running platform backed by the real
// filesystem and go-rod's installation scan.
func NewFinder(override string) *Finder {
	return &Finder{
		Platform: CurrentPlatform(),
		Override: override,
		Exists:   fileutil.FileExists,
		Scan:     launcher.LookPath,
	}
}

// Find returns the first usable executable path.
func (f *Finder) Find() (string, error) {
	r, err := f.Discover()
	if err != nil {
		return "", err
	}
	return r.Path, nil
}

// Discover is Find with the discovery step reported alongside the path.
func (f *Finder) Discover() (Result, error) {
	exists := f.Exists
	if exists == nil {
		exists = fileutil.FileExists
	}

	if f.Override != "" {
		if exists(f.Override) {
			return Result{Path: f.Override, Source: SourceOverride}, nil
		}
		return Result{}, fmt.Errorf("%w: configured binary %q does not exist", ErrBrowserNotFound, f.Override)
	}

	for _, p := range CandidatePaths(f.Platform) {
		if exists(p) {
			return Result{Path: p, Source: SourceWellKnown}, nil
		}
	}

	if f.Scan != nil {
		if p, ok := f.Scan(); ok && p != "" {
			return Result{Path: p, Source: SourceScan}, nil
		}
	}

	return Result{}, fmt.Errorf("%w: install Chrome or Chromium to convert documents", ErrBrowserNotFound)
}
