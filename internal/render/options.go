package render

import "time"

const mmPerInch = 25.4

// A4 paper size in inches.
const (
	A4WidthInches  = 8.27
	A4HeightInches = 11.69
)

// PDFOptions controls page layout and load waiting.
type PDFOptions struct {
	PaperWidth      float64 // inches
	PaperHeight     float64 // inches
	MarginMM        float64 // applied to all four sides
	PrintBackground bool

	// IdleWindow is how long the network must stay quiet before printing.
	IdleWindow time.Duration
}

// DefaultPDFOptions returns A4 with 20mm margins, backgrounds on, and a
// 500ms network idle window.
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PaperWidth:      A4WidthInches,
		PaperHeight:     A4HeightInches,
		MarginMM:        20,
		PrintBackground: true,
		IdleWindow:      500 * time.Millisecond,
	}
}

// MarginInches converts MarginMM to inches, the unit Chrome's print API takes.
func (o PDFOptions) MarginInches() float64 {
	return o.MarginMM / mmPerInch
}
