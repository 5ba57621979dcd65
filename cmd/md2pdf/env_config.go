package main

import (
	"sort"
	"strings"

	"github.com/alnah/markdown-to-pdf/internal/config"
)

// envConfig holds configuration from MD2PDF_* environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2PDF_CONFIG: config file name or path
	BrowserBin string // MD2PDF_BROWSER_BIN: browser executable
	Engine     string // MD2PDF_ENGINE: rod or chromedp
	Timeout    string // MD2PDF_TIMEOUT: Go duration
	Style      string // MD2PDF_STYLE: style name or CSS path
	Highlight  string // MD2PDF_HIGHLIGHT: chroma style
	LogLevel   string // MD2PDF_LOG_LEVEL: quiet, normal, debug
}

// knownEnvVars lists valid MD2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2PDF_CONFIG":      true,
	"MD2PDF_BROWSER_BIN": true,
	"MD2PDF_ENGINE":      true,
	"MD2PDF_TIMEOUT":     true,
	"MD2PDF_STYLE":       true,
	"MD2PDF_HIGHLIGHT":   true,
	"MD2PDF_LOG_LEVEL":   true,
}

// loadEnvConfig reads the recognized MD2PDF_* variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath: getenv("MD2PDF_CONFIG"),
		BrowserBin: getenv("MD2PDF_BROWSER_BIN"),
		Engine:     getenv("MD2PDF_ENGINE"),
		Timeout:    getenv("MD2PDF_TIMEOUT"),
		Style:      getenv("MD2PDF_STYLE"),
		Highlight:  getenv("MD2PDF_HIGHLIGHT"),
		LogLevel:   getenv("MD2PDF_LOG_LEVEL"),
	}
}

// unknownEnvVars returns unrecognized MD2PDF_* variable names, sorted.
// Helps catch typos like MD2PDF_BROWSER instead of MD2PDF_BROWSER_BIN.
func unknownEnvVars(environ []string) []string {
	var unknown []string
	for _, kv := range environ {
		if !strings.HasPrefix(kv, "MD2PDF_") {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// applyEnvConfig overlays set environment variables onto cfg.
// Called after the config file is loaded and before flags are merged, giving:
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.BrowserBin != "" {
		cfg.Browser.Bin = env.BrowserBin
	}
	if env.Engine != "" {
		cfg.Browser.Engine = env.Engine
	}
	if env.Timeout != "" {
		cfg.Timeout = env.Timeout
	}
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.Highlight != "" {
		cfg.Highlight = env.Highlight
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
}
