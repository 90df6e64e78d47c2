package pdftext

import (
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/docsift/outliner/model"
)

// ErrUnreadable indicates the PDF could not be opened or parsed at all.
// It is distinct from a document that parses but has no extractable text.
var ErrUnreadable = errors.New("unreadable pdf")

// Default page dimensions (US Letter) used when a page carries no MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// ExtractorConfig holds configuration for text run extraction.
type ExtractorConfig struct {
	// CoalesceGapFactor is the maximum horizontal gap between adjacent
	// content-stream texts, as a fraction of font size, for them to be
	// coalesced into one run. Kerning splits inside a word fall well
	// below this; inter-word spaces exceed it.
	CoalesceGapFactor float64

	// BaselineTolerance is the maximum Y difference for two texts to be
	// considered on the same baseline during coalescing, in points.
	BaselineTolerance float64
}

// DefaultExtractorConfig returns sensible default configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		CoalesceGapFactor: 0.2,
		BaselineTolerance: 0.5,
	}
}

// Extractor extracts positioned text runs from PDF files.
type Extractor struct {
	config ExtractorConfig
}

// NewExtractor creates an extractor with default configuration.
func NewExtractor() *Extractor {
	return &Extractor{config: DefaultExtractorConfig()}
}

// NewExtractorWithConfig creates an extractor with custom configuration.
func NewExtractorWithConfig(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractFile reads a PDF and returns its text runs grouped by page.
// A file that cannot be opened or parsed returns ErrUnreadable (wrapped).
// Pages with no extractable text yield entries with zero runs.
func (e *Extractor) ExtractFile(path string) (*Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	doc := &Document{
		Path:      path,
		PageCount: reader.NumPage(),
	}

	for num := 1; num <= doc.PageCount; num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			doc.Pages = append(doc.Pages, Page{
				Number: num,
				Width:  defaultPageWidth,
				Height: defaultPageHeight,
			})
			continue
		}

		width, height := pageDimensions(page)
		runs := e.extractPageRuns(page, num)

		doc.Pages = append(doc.Pages, Page{
			Number: num,
			Width:  width,
			Height: height,
			Runs:   runs,
		})
	}

	return doc, nil
}

// extractPageRuns extracts and coalesces the text runs of one page.
// Content-stream decoding of a damaged page can panic inside the pdf
// library; such a page is treated as having no extractable text.
func (e *Extractor) extractPageRuns(page pdf.Page, pageNum int) (runs []TextRun) {
	defer func() {
		if r := recover(); r != nil {
			runs = nil
		}
	}()

	content := page.Content()
	if len(content.Text) == 0 {
		return nil
	}

	var current *TextRun
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}

		if current != nil && e.sameRun(current, t) {
			current.Text += t.S
			current.BBox = current.BBox.Union(textBBox(t))
			continue
		}

		if current != nil {
			runs = append(runs, *current)
		}
		current = &TextRun{
			Text:     t.S,
			BBox:     textBBox(t),
			FontName: t.Font,
			FontSize: t.FontSize,
			Bold:     IsBoldFont(t.Font),
			Italic:   IsItalicFont(t.Font),
			Page:     pageNum,
		}
	}
	if current != nil {
		runs = append(runs, *current)
	}

	return runs
}

// sameRun reports whether a content-stream text continues the current run:
// same font and size, same baseline, and only a kerning-sized gap.
func (e *Extractor) sameRun(run *TextRun, t pdf.Text) bool {
	if t.Font != run.FontName || t.FontSize != run.FontSize {
		return false
	}
	if abs(t.Y-run.BBox.Y) > e.config.BaselineTolerance {
		return false
	}
	gap := t.X - run.BBox.Right()
	return gap >= -0.1 && gap <= t.FontSize*e.config.CoalesceGapFactor
}

// textBBox converts a content-stream text position into a bounding box.
// The pdf library reports baseline position and advance width; the glyph
// height is approximated by the font size.
func textBBox(t pdf.Text) model.BBox {
	return model.BBox{
		X:      t.X,
		Y:      t.Y,
		Width:  t.W,
		Height: t.FontSize,
	}
}

// pageDimensions reads a page's MediaBox, falling back to US Letter.
func pageDimensions(page pdf.Page) (width, height float64) {
	defer func() {
		if r := recover(); r != nil {
			width, height = defaultPageWidth, defaultPageHeight
		}
	}()

	box := page.V.Key("MediaBox")
	if box.Kind() != pdf.Array || box.Len() != 4 {
		return defaultPageWidth, defaultPageHeight
	}

	llx := box.Index(0).Float64()
	lly := box.Index(1).Float64()
	urx := box.Index(2).Float64()
	ury := box.Index(3).Float64()

	width = urx - llx
	height = ury - lly
	if width <= 0 || height <= 0 {
		return defaultPageWidth, defaultPageHeight
	}
	return width, height
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
