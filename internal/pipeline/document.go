package pipeline

import (
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

// ErrTemplate indicates the document template failed to execute.
var ErrTemplate = errors.New("document template failed")

// documentTemplate is the fixed page shell. html/template escapes the title;
// CSS and body are trusted values supplied by the caller.
var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
{{.CSS}}
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

type documentData struct {
	Title string
	CSS   template.CSS
	Body  template.HTML
}

// DocumentAssembler wraps HTML fragments in a complete, styled HTML5 page.
type DocumentAssembler struct {
	css template.CSS
}

// NewDocumentAssembler creates an assembler that embeds css in every page.
func NewDocumentAssembler(css string) *DocumentAssembler {
	return &DocumentAssembler{css: template.CSS(sanitizeCSS(css))}
}

// Assemble returns the full document for fragment with the given title.
// The fragment is inserted verbatim.
func (a *DocumentAssembler) Assemble(fragment, title string) (string, error) {
	var sb strings.Builder
	err := documentTemplate.Execute(&sb, documentData{
		Title: title,
		CSS:   a.css,
		Body:  template.HTML(fragment), //nolint:gosec // rendered Markdown with raw HTML passthrough
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return sb.String(), nil
}

// styleCloseTag matches </style with any casing and surrounding whitespace.
var styleCloseTag = regexp.MustCompile(`(?i)<\s*/\s*style`)

// sanitizeCSS neutralizes closing style tags so user CSS cannot end the
// <style> element early.
func sanitizeCSS(css string) string {
	return styleCloseTag.ReplaceAllString(css, `<\/style`)
}
