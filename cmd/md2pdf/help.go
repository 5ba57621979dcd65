package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2pdf [convert] <file.md> [flags]")
	fmt.Fprintln(w, "       md2pdf <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert a markdown file to PDF (default)")
	fmt.Fprintln(w, "  doctor     Check that a browser is available")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2pdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2pdf convert <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a markdown file to an A4 PDF next to it.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  file.md    Markdown file (must end in .md)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF (default: same name, .pdf)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Embedded style name or CSS file path")
	fmt.Fprintln(w, "      --highlight <s>       Chroma style for code blocks (e.g., github)")
	fmt.Fprintln(w, "                            An unknown name lists the available styles")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "      --browser <path>      Browser executable (skips discovery)")
	fmt.Fprintln(w, "      --engine <s>          Automation engine: rod, chromedp")
	fmt.Fprintln(w, "  -t, --timeout <d>         Timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "After conversion:")
	fmt.Fprintln(w, "      --open                Open the PDF")
	fmt.Fprintln(w, "      --reveal              Reveal the PDF in the file manager")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2PDF_CONFIG, MD2PDF_BROWSER_BIN, MD2PDF_ENGINE, MD2PDF_TIMEOUT,")
	fmt.Fprintln(w, "  MD2PDF_STYLE, MD2PDF_HIGHLIGHT, MD2PDF_LOG_LEVEL")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2pdf doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check browser discovery and the environment.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w, "      --browser <path>      Check this executable instead of discovering one")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
