package pdftext

import (
	"strings"

	"github.com/docsift/outliner/model"
)

// TextRun is a contiguous span of text sharing one font and style, as
// reported by the PDF content stream. Runs are immutable once produced.
type TextRun struct {
	// Text is the run's text content.
	Text string

	// BBox is the run's bounding box in PDF coordinates.
	BBox model.BBox

	// FontName is the PostScript font name (e.g. "Helvetica-Bold").
	FontName string

	// FontSize is the rendered font size in points.
	FontSize float64

	// Bold and Italic are derived from the font name.
	Bold   bool
	Italic bool

	// Page is the 1-based page number the run appears on.
	Page int
}

// IsWhitespace returns true if the run contains no printable text.
func (r TextRun) IsWhitespace() bool {
	return strings.TrimSpace(r.Text) == ""
}

// Page holds the extraction result for a single page.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Width and Height are the page dimensions in points.
	Width  float64
	Height float64

	// Runs are the page's text runs in content-stream order, which is
	// not guaranteed to be reading order.
	Runs []TextRun
}

// Document holds the full extraction result for one PDF.
type Document struct {
	// Path is the source file path.
	Path string

	// PageCount is the total number of pages, including pages with no
	// extractable text.
	PageCount int

	// Pages holds one entry per page, in page order.
	Pages []Page
}

// RunCount returns the total number of text runs across all pages.
func (d *Document) RunCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, p := range d.Pages {
		n += len(p.Runs)
	}
	return n
}

// IsBoldFont reports whether a font name indicates a bold face.
func IsBoldFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") ||
		strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy") ||
		strings.Contains(lower, "semibold") ||
		strings.Contains(lower, "demibold")
}

// IsItalicFont reports whether a font name indicates an italic face.
func IsItalicFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "italic") ||
		strings.Contains(lower, "oblique")
}
