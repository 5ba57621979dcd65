package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	md2pdf "github.com/alnah/markdown-to-pdf"
	"github.com/alnah/markdown-to-pdf/internal/config"
	"github.com/alnah/markdown-to-pdf/internal/hints"
	"github.com/alnah/markdown-to-pdf/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

// looksLikeConvertArgs reports whether args given without a subcommand are
// meant for convert: a flag, or something shaped like a file path.
func looksLikeConvertArgs(first string) bool {
	return strings.HasPrefix(first, "-") ||
		strings.ContainsAny(first, `./\`)
}

// runMain dispatches the command line and returns the process exit code.
// It is the single place errors are reported.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	var err error
	switch {
	case cmd == "version":
		fmt.Fprintf(env.Stdout, "md2pdf %s\n", Version)
	case cmd == "help":
		runHelp(rest, env)
	case cmd == "doctor":
		return runDoctorCmd(rest, env)
	case cmd == "convert":
		err = runConvert(ctx, rest, env)
	case looksLikeConvertArgs(cmd):
		err = runConvert(ctx, args[1:], env)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
		printUsage(env.Stderr)
	}

	if err != nil {
		reportError(env, err)
	}
	return exitCodeFor(err)
}

// engineError records the engine a failed conversion ran with.
type engineError struct {
	engine string
	err    error
}

func (e *engineError) Error() string { return e.err.Error() }
func (e *engineError) Unwrap() error { return e.err }

// reportError logs err with any hints that apply to it.
func reportError(env *Environment, err error) {
	log := logging.New(logging.LevelNormal, env.Stderr)
	defer func() { _ = log.Sync() }()
	log.Error(err.Error() + hintsFor(err))
}

// hintsFor returns actionable hints for well-known failures.
func hintsFor(err error) string {
	switch {
	case errors.Is(err, md2pdf.ErrBrowserNotFound):
		return hints.ForBrowserNotFound(runtime.GOOS)
	case errors.Is(err, md2pdf.ErrBrowserLaunch):
		var ee *engineError
		if errors.As(err, &ee) {
			return hints.ForBrowserLaunch(ee.engine)
		}
		return hints.ForBrowserLaunch("")
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths("md2pdf"))
	case errors.Is(err, md2pdf.ErrInvalidExtension):
		return hints.ForInvalidExtension()
	}
	return ""
}

// runConvert converts the single Markdown file named in args.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printConvertUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	// Validate the source before any other work.
	if len(positional) == 0 {
		return md2pdf.ErrNoInput
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one markdown file, got %d", ErrUsage, len(positional))
	}
	src := positional[0]
	if err := md2pdf.ValidateSource(src); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(cfg.Log.Level, env.Stderr)
	defer func() { _ = log.Sync() }()
	for _, name := range unknownEnvVars(env.Environ()) {
		log.Warn("Unknown environment variable (typo?)", zap.String("name", name))
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return err
	}

	conv, err := env.NewConverter(
		md2pdf.WithTimeout(timeout),
		md2pdf.WithBrowserBin(cfg.Browser.Bin),
		md2pdf.WithEngine(cfg.EngineName()),
		md2pdf.WithStyle(cfg.Style),
		md2pdf.WithHighlight(cfg.Highlight),
		md2pdf.WithLogger(log),
		md2pdf.WithReporter(logging.NewProgressReporter(log)),
	)
	if err != nil {
		return err
	}

	out, err := conv.ConvertFileTo(ctx, src, flags.output)
	if err != nil {
		return &engineError{engine: cfg.EngineName(), err: err}
	}
	log.Debug("Output written", zap.String("path", out))

	if cfg.After.Open {
		if err := env.Opener.Open(out); err != nil {
			log.Warn("Could not open PDF", zap.Error(err))
		}
	}
	if cfg.After.Reveal {
		if err := env.Opener.Reveal(out); err != nil {
			log.Warn("Could not reveal PDF", zap.Error(err))
		}
	}
	return nil
}

// loadConfig loads the config named by flag or MD2PDF_CONFIG, or defaults.
func loadConfig(flagValue string, env *envConfig) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags on top of cfg (CLI wins).
func mergeFlags(f *convertFlags, cfg *config.Config) {
	if f.browser.bin != "" {
		cfg.Browser.Bin = f.browser.bin
	}
	if f.browser.engine != "" {
		cfg.Browser.Engine = f.browser.engine
	}
	if f.browser.timeout != "" {
		cfg.Timeout = f.browser.timeout
	}
	if f.style != "" {
		cfg.Style = f.style
	}
	if f.highlight != "" {
		cfg.Highlight = f.highlight
	}
	if f.after.open {
		cfg.After.Open = true
	}
	if f.after.reveal {
		cfg.After.Reveal = true
	}

	// --verbose beats --quiet when both are given.
	switch {
	case f.common.verbose:
		cfg.Log.Level = config.LogVerbose
	case f.common.quiet:
		cfg.Log.Level = config.LogQuiet
	}
}
