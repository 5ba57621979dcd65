package md2pdf

// Reporter receives conversion milestones. Implementations are cosmetic:
// nothing in the pipeline depends on what they do.
type Reporter interface {
	Report(percent int, message string)
}

// Progress milestones, in the order they are reported.
const (
	MsgReading    = "Reading markdown file..."
	MsgConverting = "Converting markdown to HTML..."
	MsgGenerating = "Generating PDF..."
	MsgDone       = "PDF generated successfully!"
)

type nopReporter struct{}

func (nopReporter) Report(int, string) {}
