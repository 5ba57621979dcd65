// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/markdown-to-pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv") || os.Getenv("container") != ""
}

// ForBrowserNotFound returns hints for a failed browser discovery.
// goos is a runtime.GOOS value.
func ForBrowserNotFound(goos string) string {
	var hints []string

	switch goos {
	case "darwin":
		hints = append(hints, "install Google Chrome or Chromium into /Applications")
	case "windows":
		hints = append(hints, "install Google Chrome or Microsoft Edge")
	default:
		if IsInContainer() {
			hints = append(hints, "add chromium to the image (e.g. apt-get install chromium)")
		} else {
			hints = append(hints, "install google-chrome or chromium")
		}
	}

	if os.Getenv("MD2PDF_BROWSER_BIN") == "" {
		hints = append(hints, "or point MD2PDF_BROWSER_BIN / --browser at an existing binary")
	}

	return formatHints(hints)
}

// ForBrowserLaunch returns hints for a browser that was found but failed to start.
func ForBrowserLaunch(engine string) string {
	hints := []string{"run 'md2pdf doctor' to check the browser"}
	if engine != "chromedp" {
		hints = append(hints, "or retry with --engine chromedp")
	}
	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents or remote images, use --timeout")
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(slashed(p), "markdown-to-pdf/") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForInvalidExtension returns a hint for inputs without the .md extension.
func ForInvalidExtension() string {
	return format("only .md files are converted; rename the file or pass the .md source")
}

// slashed normalizes separators so Windows paths match the same pattern.
func slashed(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
