package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// browserFlags select the browser and how it is driven.
type browserFlags struct {
	bin     string
	engine  string
	timeout string
}

// afterFlags control what happens to the finished PDF.
type afterFlags struct {
	open   bool
	reveal bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	output    string
	browser   browserFlags
	style     string
	highlight string
	after     afterFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

// addBrowserFlags adds browser flags to a FlagSet.
func addBrowserFlags(fs *flag.FlagSet, f *browserFlags) {
	fs.StringVar(&f.bin, "browser", "", "browser executable (skips discovery)")
	fs.StringVar(&f.engine, "engine", "", "automation engine: rod, chromedp")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion timeout (e.g., 30s, 2m)")
}

// addAfterFlags adds post-conversion flags to a FlagSet.
func addAfterFlags(fs *flag.FlagSet, f *afterFlags) {
	fs.BoolVar(&f.open, "open", false, "open the PDF when done")
	fs.BoolVar(&f.reveal, "reveal", false, "reveal the PDF in the file manager when done")
}

// parseConvertFlags parses convert command flags and returns positional args.
// Usage is printed by the caller on flag.ErrHelp, so pflag stays silent.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output PDF path (default: source with .pdf)")
	fs.StringVar(&f.style, "style", "", "style name or CSS file path")
	fs.StringVar(&f.highlight, "highlight", "", "chroma style for code highlighting")

	addCommonFlags(fs, &f.common)
	addBrowserFlags(fs, &f.browser)
	addAfterFlags(fs, &f.after)

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json    bool
	browser string
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string) (*doctorFlags, error) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &doctorFlags{}

	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	fs.StringVar(&f.browser, "browser", "", "check this browser executable instead of discovering one")

	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
