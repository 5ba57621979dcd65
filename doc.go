// Package md2pdf converts Markdown files to PDF using a headless
// Chromium-family browser.
//
// # Quick Start
//
//	conv, err := md2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := conv.ConvertFile(ctx, "notes.md")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("wrote", out) // notes.pdf
//
// # Conversion Pipeline
//
//  1. Read the source file (the path must end in .md)
//  2. Markdown to HTML via goldmark (raw HTML, linkify, typographer)
//  3. Wrap the fragment in a styled HTML5 document titled after the file
//  4. Locate a browser, launch it headless, print A4 with 20mm margins
//  5. Write the PDF next to the source and release the browser
//
// Each conversion launches its own browser and closes it before returning,
// so a Converter holds no process between calls and may be reused.
//
// # Configuration
//
//	conv, err := md2pdf.NewConverter(
//	    md2pdf.WithTimeout(time.Minute),
//	    md2pdf.WithBrowserBin("/opt/chromium/chrome"),
//	    md2pdf.WithEngine("chromedp"),
//	    md2pdf.WithStyle("./print.css"),
//	    md2pdf.WithHighlight("github"),
//	)
//
// # Browser Discovery
//
// Without WithBrowserBin, well-known install locations for the platform are
// tried in order and the first existing one wins. When none exists, installed
// browsers are scanned. ErrBrowserNotFound is returned when both come up empty.
//
// # Progress
//
// WithReporter receives four milestones per conversion: 0, 20, 40 and 100
// percent, each with a short status message.
package md2pdf
