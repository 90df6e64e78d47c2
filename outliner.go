// Package outliner converts a PDF's visual structure (fonts, sizes,
// positions, page layout) into a hierarchical outline of headings, for
// documents that carry no embedded outline of their own.
//
// Basic usage:
//
//	doc, err := outliner.Open("report.pdf").Outline()
//	if err != nil {
//	    // handle error
//	}
//	data, _ := doc.ToJSON(true)
//
// When the PDF carries embedded bookmarks those are used directly; the
// heuristic pipeline only runs for documents without them. Disable the
// fast path with Bookmarks(false):
//
//	doc, err := outliner.Open("report.pdf").Bookmarks(false).Outline()
package outliner

import (
	"fmt"

	"github.com/docsift/outliner/layout"
	"github.com/docsift/outliner/model"
	"github.com/docsift/outliner/pdftext"
)

// Extractor provides a fluent interface for building a document outline.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	filename string
	options  Options
}

// Open prepares an Extractor for the given PDF file. No I/O happens until
// a terminal operation like Outline() is called.
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// clone returns a copy of the Extractor so chained configuration never
// mutates an instance the caller may still hold.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		options:  e.options,
	}
}

// Bookmarks controls the embedded-bookmark fast path (enabled by default).
func (e *Extractor) Bookmarks(enabled bool) *Extractor {
	n := e.clone()
	n.options.useBookmarks = enabled
	return n
}

// Archetype forces a document archetype instead of detecting one.
func (e *Extractor) Archetype(a layout.Archetype) *Extractor {
	n := e.clone()
	n.options.forcedArchetype = &a
	return n
}

// Outline runs the extraction pipeline and returns the outline document.
// Unreadable input fails with an error wrapping pdftext.ErrUnreadable;
// a readable PDF with no extractable text yields an empty outline.
func (e *Extractor) Outline() (model.OutlineDocument, error) {
	if e.options.useBookmarks {
		if bms, err := pdftext.ReadBookmarks(e.filename); err == nil && len(bms) > 0 {
			return FromBookmarks(bms), nil
		}
	}

	doc, err := pdftext.NewExtractor().ExtractFile(e.filename)
	if err != nil {
		return model.NewOutlineDocument(), fmt.Errorf("extract %s: %w", e.filename, err)
	}

	return e.buildOutline(doc), nil
}

// PageCount probes the document and returns its page count without
// running any text extraction. Corrupt files fail with an error wrapping
// pdftext.ErrUnreadable.
func (e *Extractor) PageCount() (int, error) {
	return pdftext.ProbePageCount(e.filename)
}

// FromBookmarks maps a PDF's embedded bookmark tree onto the outline
// format: depth 1..3 becomes H1..H3, deeper entries are dropped.
func FromBookmarks(bookmarks []pdftext.Bookmark) model.OutlineDocument {
	doc := model.NewOutlineDocument()
	flattenBookmarks(bookmarks, 1, &doc)
	return doc
}

func flattenBookmarks(bms []pdftext.Bookmark, depth int, doc *model.OutlineDocument) {
	if depth > 3 {
		return
	}
	for _, bm := range bms {
		page := bm.Page
		if page < 1 {
			page = 1
		}
		doc.Outline = append(doc.Outline, model.OutlineEntry{
			Text:  bm.Title,
			Level: fmt.Sprintf("H%d", depth),
			Page:  page,
		})
		flattenBookmarks(bm.Children, depth+1, doc)
	}
}
