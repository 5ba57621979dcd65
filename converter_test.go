package md2pdf

// Notes:
// - The real MarkupRenderer and DocumentAssembler run in every test; only the
//   browser side is faked (mockEngine/mockBrowser behind a real Orchestrator,
//   or mockPrinter where the Orchestrator itself is beside the point).
// - Real browser conversions live in converter_integration_test.go.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/alnah/markdown-to-pdf/internal/render"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockLocator struct {
	path string
	err  error
}

func (m *mockLocator) Find() (string, error) { return m.path, m.err }

type mockBrowser struct {
	printErr error
	html     string
	closed   int
}

func (m *mockBrowser) PrintPDF(_ context.Context, html string, _ render.PDFOptions) ([]byte, error) {
	m.html = html
	if m.printErr != nil {
		return nil, m.printErr
	}
	return []byte("%PDF-1.7\n%mock\n%%EOF\n"), nil
}

func (m *mockBrowser) Close() error {
	m.closed++
	return nil
}

type mockEngine struct {
	browser  *mockBrowser
	launches int
}

func (m *mockEngine) Name() string { return "mock" }

func (m *mockEngine) Launch(context.Context, string) (render.Browser, error) {
	m.launches++
	return m.browser, nil
}

type mockPrinter struct {
	render   func(ctx context.Context, html, out string) error
	deadline time.Time
}

func (m *mockPrinter) Render(ctx context.Context, html, out string) error {
	m.deadline, _ = ctx.Deadline()
	return m.render(ctx, html, out)
}

type recordingReporter struct {
	percents []int
	messages []string
}

func (r *recordingReporter) Report(percent int, message string) {
	r.percents = append(r.percents, percent)
	r.messages = append(r.messages, message)
}

// newTestConverter builds a Converter whose browser side is mocked.
func newTestConverter(t *testing.T, loc *mockLocator, eng *mockEngine, opts ...Option) *Converter {
	t.Helper()
	c, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	c.printer = render.NewOrchestrator(loc, eng, nil)
	return c
}

func writeMarkdown(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestConvertFile - End to end with a mocked browser
// ---------------------------------------------------------------------------

func TestConvertFile_EndToEnd(t *testing.T) {
	t.Parallel()

	src := writeMarkdown(t, "doc.md", "# Title\n\nHello **world**.")
	b := &mockBrowser{}
	eng := &mockEngine{browser: b}
	c := newTestConverter(t, &mockLocator{path: "/usr/bin/chromium"}, eng)

	out, err := c.ConvertFile(context.Background(), src)
	if err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}

	wantOut := filepath.Join(filepath.Dir(src), "doc.pdf")
	if out != wantOut {
		t.Errorf("output = %q, want %q", out, wantOut)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output should start with %%PDF-, got %q", data)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>doc.md</title>",
		"<h1>Title</h1>",
		"Hello <strong>world</strong>.",
	} {
		if !strings.Contains(b.html, want) {
			t.Errorf("printed document should contain %q\n%s", want, b.html)
		}
	}
	if eng.launches != 1 || b.closed != 1 {
		t.Errorf("launches=%d closes=%d, want 1 and 1", eng.launches, b.closed)
	}
}

func TestConvertFile_ReportsMilestones(t *testing.T) {
	t.Parallel()

	src := writeMarkdown(t, "a.md", "text")
	rep := &recordingReporter{}
	c := newTestConverter(t, &mockLocator{path: "/bin/chrome"}, &mockEngine{browser: &mockBrowser{}}, WithReporter(rep))

	if _, err := c.ConvertFile(context.Background(), src); err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}

	wantPercents := []int{0, 20, 40, 100}
	wantMessages := []string{MsgReading, MsgConverting, MsgGenerating, MsgDone}
	if !reflect.DeepEqual(rep.percents, wantPercents) {
		t.Errorf("percents = %v, want %v", rep.percents, wantPercents)
	}
	if !reflect.DeepEqual(rep.messages, wantMessages) {
		t.Errorf("messages = %v, want %v", rep.messages, wantMessages)
	}
}

func TestConvertFileTo_CustomOutput(t *testing.T) {
	t.Parallel()

	src := writeMarkdown(t, "a.md", "text")
	dst := filepath.Join(t.TempDir(), "renamed.pdf")
	c := newTestConverter(t, &mockLocator{path: "/bin/chrome"}, &mockEngine{browser: &mockBrowser{}})

	out, err := c.ConvertFileTo(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("ConvertFileTo() error = %v", err)
	}
	if out != dst {
		t.Errorf("output = %q, want %q", out, dst)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(src), "a.pdf")); !os.IsNotExist(err) {
		t.Error("sibling PDF should not be written when an output path is given")
	}
}

// ---------------------------------------------------------------------------
// TestConvertFile - Short circuits and failures
// ---------------------------------------------------------------------------

func TestConvertFile_RejectsNonMarkdownBeforeAnyWork(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "text file", path: "notes.txt", wantErr: ErrInvalidExtension},
		{name: "no extension", path: "README", wantErr: ErrInvalidExtension},
		{name: "markdown lookalike", path: "doc.markdown", wantErr: ErrInvalidExtension},
		{name: "md in directory only", path: "docs.md/file", wantErr: ErrInvalidExtension},
		{name: "empty path", path: "", wantErr: ErrNoInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			eng := &mockEngine{browser: &mockBrowser{}}
			c := newTestConverter(t, &mockLocator{path: "/bin/chrome"}, eng)
			reads := 0
			c.readFile = func(string) ([]byte, error) {
				reads++
				return nil, nil
			}

			_, err := c.ConvertFile(context.Background(), tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if reads != 0 {
				t.Errorf("file read %d times, want 0", reads)
			}
			if eng.launches != 0 {
				t.Errorf("browser launched %d times, want 0", eng.launches)
			}
		})
	}
}

func TestConvertFile_ReadFailure(t *testing.T) {
	t.Parallel()

	eng := &mockEngine{browser: &mockBrowser{}}
	c := newTestConverter(t, &mockLocator{path: "/bin/chrome"}, eng)

	_, err := c.ConvertFile(context.Background(), filepath.Join(t.TempDir(), "missing.md"))
	if !errors.Is(err, ErrReadMarkdown) {
		t.Errorf("error = %v, want ErrReadMarkdown", err)
	}
	if eng.launches != 0 {
		t.Errorf("browser launched %d times, want 0", eng.launches)
	}
}

func TestConvertFile_BrowserNotFound(t *testing.T) {
	t.Parallel()

	src := writeMarkdown(t, "a.md", "# A")
	eng := &mockEngine{browser: &mockBrowser{}}
	c := newTestConverter(t, &mockLocator{err: ErrBrowserNotFound}, eng)

	_, err := c.ConvertFile(context.Background(), src)
	if !errors.Is(err, ErrBrowserNotFound) {
		t.Errorf("error = %v, want ErrBrowserNotFound", err)
	}
	if eng.launches != 0 {
		t.Errorf("browser launched %d times, want 0", eng.launches)
	}
	if _, statErr := os.Stat(OutputPath(src)); !os.IsNotExist(statErr) {
		t.Error("no output expected when no browser was found")
	}
}

func TestConvertFile_PrintFailureReleasesBrowser(t *testing.T) {
	t.Parallel()

	src := writeMarkdown(t, "a.md", "# A")
	b := &mockBrowser{printErr: errors.New("target closed")}
	c := newTestConverter(t, &mockLocator{path: "/bin/chrome"}, &mockEngine{browser: b})

	_, err := c.ConvertFile(context.Background(), src)
	if !errors.Is(err, ErrPDFGeneration) {
		t.Errorf("error = %v, want ErrPDFGeneration", err)
	}
	if b.closed != 1 {
		t.Errorf("Close called %d times, want 1", b.closed)
	}
	if _, statErr := os.Stat(OutputPath(src)); !os.IsNotExist(statErr) {
		t.Error("failed export must not leave a partial PDF")
	}
}

func TestConvertFile_RecoversPanic(t *testing.T) {
	t.Parallel()

	src := writeMarkdown(t, "a.md", "# A")
	c := newTestConverter(t, &mockLocator{}, &mockEngine{})
	c.printer = &mockPrinter{render: func(context.Context, string, string) error {
		panic("boom")
	}}

	_, err := c.ConvertFile(context.Background(), src)
	if err == nil || !strings.Contains(err.Error(), "internal error: boom") {
		t.Errorf("error = %v, want recovered internal error", err)
	}
}

func TestConvertFile_AppliesTimeout(t *testing.T) {
	t.Parallel()

	src := writeMarkdown(t, "a.md", "# A")
	c := newTestConverter(t, &mockLocator{}, &mockEngine{}, WithTimeout(5*time.Second))
	p := &mockPrinter{render: func(context.Context, string, string) error { return nil }}
	c.printer = p

	before := time.Now()
	if _, err := c.ConvertFile(context.Background(), src); err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}
	if p.deadline.IsZero() || p.deadline.After(before.Add(6*time.Second)) {
		t.Errorf("deadline = %v, want about 5s after %v", p.deadline, before)
	}
}

// ---------------------------------------------------------------------------
// TestBuildHTML - Markdown to printed document
// ---------------------------------------------------------------------------

func TestBuildHTML(t *testing.T) {
	t.Parallel()

	c, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	got, err := c.BuildHTML(context.Background(), []byte("```\n<b>x</b>\n```\n"), "T", "")
	if err != nil {
		t.Fatalf("BuildHTML() error = %v", err)
	}
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>T</title>",
		"<pre><code>&lt;b&gt;x&lt;/b&gt;",
		"@media print",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("document should contain %q\n%s", want, got)
		}
	}
}

func TestBuildHTML_ResolvesImagesAgainstSourceDir(t *testing.T) {
	t.Parallel()

	c, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	dir := t.TempDir()
	got, err := c.BuildHTML(context.Background(), []byte("![logo](img/logo.png)"), "T", dir)
	if err != nil {
		t.Fatalf("BuildHTML() error = %v", err)
	}
	if !strings.Contains(got, `src="file://`) || !strings.Contains(got, "img/logo.png") {
		t.Errorf("image should resolve to a file URL\n%s", got)
	}
}

func TestBuildHTML_LocalReferencesResolveToExistingNames(t *testing.T) {
	t.Parallel()

	c, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	md := "![x](<my image.png>)\n\n![ü](bild-ü.png)\n\n[s](other.md#intro)\n"
	got, err := c.BuildHTML(context.Background(), []byte(md), "t.md", t.TempDir())
	if err != nil {
		t.Fatalf("BuildHTML() error = %v", err)
	}

	for _, want := range []string{
		`/my%20image.png"`,
		`/bild-%C3%BC.png"`,
		`/other.md#intro"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("document should contain %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "%25") || strings.Contains(got, "other.md%23") {
		t.Errorf("local references were encoded twice\n%s", got)
	}
}

// ---------------------------------------------------------------------------
// TestNewConverter - Option resolution
// ---------------------------------------------------------------------------

func TestNewConverter_Options(t *testing.T) {
	t.Parallel()

	cssPath := filepath.Join(t.TempDir(), "print.css")
	if err := os.WriteFile(cssPath, []byte("body { color: rebeccapurple; }"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
		wantCSS string
	}{
		{name: "defaults", wantCSS: "@media print"},
		{name: "embedded style by name", opts: []Option{WithStyle("default")}, wantCSS: "blockquote"},
		{name: "style file", opts: []Option{WithStyle(cssPath)}, wantCSS: "rebeccapurple"},
		{name: "highlight", opts: []Option{WithHighlight("monokai")}, wantCSS: ".chroma"},
		{name: "chromedp engine", opts: []Option{WithEngine("chromedp")}, wantCSS: "@media print"},
		{name: "unknown style", opts: []Option{WithStyle("nope")}, wantErr: ErrStyleNotFound},
		{name: "missing style file", opts: []Option{WithStyle(filepath.Join(t.TempDir(), "x.css"))}, wantErr: ErrStyleRead},
		{name: "unknown highlight", opts: []Option{WithHighlight("nope-xyz")}, wantErr: ErrUnknownHighlight},
		{name: "unknown engine", opts: []Option{WithEngine("webkit")}, wantErr: ErrUnknownEngine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := NewConverter(tt.opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewConverter() error = %v", err)
			}

			doc, err := c.BuildHTML(context.Background(), []byte("x"), "T", "")
			if err != nil {
				t.Fatalf("BuildHTML() error = %v", err)
			}
			if !strings.Contains(doc, tt.wantCSS) {
				t.Errorf("stylesheet should contain %q", tt.wantCSS)
			}
		})
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) should panic")
		}
	}()
	WithTimeout(0)
}

// ---------------------------------------------------------------------------
// TestPaths - Validation and output naming
// ---------------------------------------------------------------------------

func TestValidateSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		wantErr error
	}{
		{path: "a.md", wantErr: nil},
		{path: "/docs/My Notes.md", wantErr: nil},
		{path: "a.MD", wantErr: ErrInvalidExtension},
		{path: "a.pdf", wantErr: ErrInvalidExtension},
		{path: "   ", wantErr: ErrNoInput},
	}

	for _, tt := range tests {
		if err := ValidateSource(tt.path); !errors.Is(err, tt.wantErr) {
			t.Errorf("ValidateSource(%q) = %v, want %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"a.md":            "a.pdf",
		"/docs/notes.md":  "/docs/notes.pdf",
		"dir.md/inner.md": "dir.md/inner.pdf",
		"release.v1.2.md": "release.v1.2.pdf",
		"notes":           "notes.pdf",
	}
	for in, want := range tests {
		if got := OutputPath(in); got != want {
			t.Errorf("OutputPath(%q) = %q, want %q", in, got, want)
		}
	}
}
