// Package pdftext is the PDF access layer for the outliner. It turns a PDF
// file into per-page sequences of positioned text runs with font metadata,
// using github.com/ledongthuc/pdf for content-stream text extraction and
// github.com/pdfcpu/pdfcpu for document probing and embedded bookmarks.
//
// The package reports two distinct failure modes: ErrUnreadable means the
// file could not be opened or parsed at all, while a page with no
// extractable text (for example a scanned image) simply yields zero runs.
package pdftext
