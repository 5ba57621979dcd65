package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/markdown-to-pdf/internal/fileutil"
	"github.com/alnah/markdown-to-pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidEngine   = errors.New("invalid browser engine")
	ErrInvalidTimeout  = errors.New("invalid timeout")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Browser engines.
const (
	EngineRod      = "rod"
	EngineChromedp = "chromedp"
)

// Log levels.
const (
	LogQuiet   = "quiet"
	LogNormal  = "normal"
	LogVerbose = "debug"
)

// DefaultTimeout bounds page load and print when the config is silent.
const DefaultTimeout = 30 * time.Second

// appDirName is the directory under os.UserConfigDir searched for named configs.
const appDirName = "markdown-to-pdf"

// Config holds everything a conversion can be tuned with.
type Config struct {
	Browser   BrowserConfig `yaml:"browser"`
	Timeout   string        `yaml:"timeout"`   // Go duration, e.g. "45s" (empty = 30s)
	Style     string        `yaml:"style"`     // embedded style name or CSS file path
	Highlight string        `yaml:"highlight"` // chroma style name (empty = no highlighting)
	Log       LogConfig     `yaml:"log"`
	After     AfterConfig   `yaml:"after"`
}

// BrowserConfig selects the browser binary and automation engine.
type BrowserConfig struct {
	Bin    string `yaml:"bin"`    // explicit executable (empty = discover)
	Engine string `yaml:"engine"` // "rod" (default) or "chromedp"
}

// LogConfig controls console verbosity.
type LogConfig struct {
	Level string `yaml:"level"` // "quiet", "normal" (default), "debug"
}

// AfterConfig defines what happens once the PDF is written.
type AfterConfig struct {
	Open   bool `yaml:"open"`   // open with the default viewer
	Reveal bool `yaml:"reveal"` // reveal in the file manager
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{Engine: EngineRod},
		Style:   "default",
		Log:     LogConfig{Level: LogNormal},
	}
}

// Validate checks enumerations and the timeout syntax.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Browser.Engine) {
	case "", EngineRod, EngineChromedp:
	default:
		return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidEngine, c.Browser.Engine, EngineRod, EngineChromedp)
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	switch strings.ToLower(c.Log.Level) {
	case "", LogQuiet, LogNormal, LogVerbose:
	default:
		return fmt.Errorf("%w: %q (must be quiet, normal, or debug)", ErrInvalidLogLevel, c.Log.Level)
	}

	return nil
}

// TimeoutDuration parses Timeout, falling back to DefaultTimeout when empty.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, c.Timeout)
	}
	return d, nil
}

// EngineName returns the normalized engine, defaulting to rod.
func (c *Config) EngineName() string {
	if c.Browser.Engine == "" {
		return EngineRod
	}
	return strings.ToLower(c.Browser.Engine)
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a file; otherwise it is
// searched as NAME.yaml / NAME.yml in the current directory, then in the
// user config directory. Fields absent from the file keep their defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the candidate files for a config name, in lookup order.
func SearchPaths(name string) []string {
	exts := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(exts)*2)

	for _, ext := range exts {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range exts {
			paths = append(paths, filepath.Join(dir, appDirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
