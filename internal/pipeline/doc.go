// Package pipeline turns Markdown into a self-contained HTML document.
//
// The stages run in order and only pass data forward:
//   - MarkupRenderer: Markdown to an HTML fragment via goldmark
//   - RewriteRelativePaths: local image and link references to file:// URLs
//   - DocumentAssembler: fragment plus title and stylesheet to a full HTML5 page
//
// Printing is handled by internal/render.
package pipeline
