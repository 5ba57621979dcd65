// Package render prints an assembled HTML document to PDF with a headless
// Chromium-family browser.
//
// An Orchestrator runs one conversion: locate the executable, launch a
// browser through an Engine, print, write the file, and release the browser.
// The browser handle never outlives the Render call.
//
// Two engines are provided. RodEngine (go-rod) is the default and sets the
// document content directly on a blank page. ChromedpEngine (chromedp)
// navigates to a temporary file instead.
package render
