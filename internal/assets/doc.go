// Package assets provides the stylesheets embedded into assembled documents.
//
// Styles live in styles/{name}.css and are compiled in with go:embed.
// The "default" style approximates a typical technical document: GitHub-like
// typography and heading scale, shaded code blocks, zebra-striped tables,
// ruled blockquotes, and reduced body padding under @media print.
//
// Names are validated so a style name can never address a file outside the
// embedded styles directory.
package assets
