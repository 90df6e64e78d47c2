package pdftext

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
)

// Bookmark is an embedded outline entry carried by the PDF itself.
type Bookmark struct {
	// Title is the bookmark's display text.
	Title string

	// Page is the 1-based destination page.
	Page int

	// Children are nested bookmarks.
	Children []Bookmark
}

// ReadBookmarks returns the PDF's embedded outline, if any. A document
// without bookmarks (or whose outline cannot be decoded) returns an error;
// callers typically fall back to heuristic outline detection.
func ReadBookmarks(path string) ([]Bookmark, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	bms, err := api.Bookmarks(f, nil)
	if err != nil {
		return nil, fmt.Errorf("read bookmarks: %w", err)
	}
	if len(bms) == 0 {
		return nil, fmt.Errorf("read bookmarks: document has none")
	}

	return convertBookmarks(bms), nil
}

func convertBookmarks(bms []pdfcpu.Bookmark) []Bookmark {
	out := make([]Bookmark, 0, len(bms))
	for _, bm := range bms {
		out = append(out, Bookmark{
			Title:    bm.Title,
			Page:     bm.PageFrom,
			Children: convertBookmarks(bm.Kids),
		})
	}
	return out
}

// ProbePageCount opens the PDF with pdfcpu and returns its page count.
// It is a cheap readability check: corrupt files fail here with
// ErrUnreadable before any text extraction is attempted.
func ProbePageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	n, err := api.PageCount(f, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	return n, nil
}
