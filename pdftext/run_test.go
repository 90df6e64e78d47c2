package pdftext

import (
	"errors"
	"testing"

	"github.com/ledongthuc/pdf"

	"github.com/docsift/outliner/model"
)

func TestIsBoldFont(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Helvetica-Bold", true},
		{"Arial-BoldMT", true},
		{"Roboto-Black", true},
		{"NotoSans-SemiBold", true},
		{"Futura-Heavy", true},
		{"Helvetica", false},
		{"Times-Italic", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsBoldFont(tt.name); got != tt.want {
			t.Errorf("IsBoldFont(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsItalicFont(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Times-Italic", true},
		{"Helvetica-Oblique", true},
		{"Georgia-BoldItalic", true},
		{"Helvetica-Bold", false},
		{"Courier", false},
	}

	for _, tt := range tests {
		if got := IsItalicFont(tt.name); got != tt.want {
			t.Errorf("IsItalicFont(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsWhitespace(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{" x ", false},
	}

	for _, tt := range tests {
		run := TextRun{Text: tt.text}
		if got := run.IsWhitespace(); got != tt.want {
			t.Errorf("IsWhitespace(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestRunCount(t *testing.T) {
	doc := &Document{
		Pages: []Page{
			{Number: 1, Runs: []TextRun{{Text: "a"}, {Text: "b"}}},
			{Number: 2},
			{Number: 3, Runs: []TextRun{{Text: "c"}}},
		},
	}

	if got := doc.RunCount(); got != 3 {
		t.Errorf("RunCount = %d, want 3", got)
	}

	var nilDoc *Document
	if got := nilDoc.RunCount(); got != 0 {
		t.Errorf("nil RunCount = %d, want 0", got)
	}
}

func TestSameRunCoalescing(t *testing.T) {
	e := NewExtractor()
	run := &TextRun{
		Text:     "Intro",
		BBox:     model.NewBBox(100, 700, 40, 14),
		FontName: "Helvetica-Bold",
		FontSize: 14,
	}

	tests := []struct {
		name string
		text pdf.Text
		want bool
	}{
		{
			"kerning-sized gap continues the run",
			pdf.Text{S: "duction", Font: "Helvetica-Bold", FontSize: 14, X: 141, Y: 700, W: 55},
			true,
		},
		{
			"word-sized gap breaks the run",
			pdf.Text{S: "next", Font: "Helvetica-Bold", FontSize: 14, X: 150, Y: 700, W: 30},
			false,
		},
		{
			"different font breaks the run",
			pdf.Text{S: "duction", Font: "Helvetica", FontSize: 14, X: 141, Y: 700, W: 55},
			false,
		},
		{
			"different size breaks the run",
			pdf.Text{S: "duction", Font: "Helvetica-Bold", FontSize: 12, X: 141, Y: 700, W: 55},
			false,
		},
		{
			"different baseline breaks the run",
			pdf.Text{S: "duction", Font: "Helvetica-Bold", FontSize: 14, X: 141, Y: 704, W: 55},
			false,
		},
		{
			"slight overlap continues the run",
			pdf.Text{S: "duction", Font: "Helvetica-Bold", FontSize: 14, X: 139.95, Y: 700, W: 55},
			true,
		},
		{
			"deep overlap breaks the run",
			pdf.Text{S: "duction", Font: "Helvetica-Bold", FontSize: 14, X: 130, Y: 700, W: 55},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.sameRun(run, tt.text); got != tt.want {
				t.Errorf("sameRun = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextBBoxHeightIsFontSize(t *testing.T) {
	b := textBBox(pdf.Text{X: 72, Y: 700, W: 120, FontSize: 18})

	if b.X != 72 || b.Y != 700 || b.Width != 120 || b.Height != 18 {
		t.Errorf("bbox = %+v, want {72 700 120 18}", b)
	}
}

func TestExtractFileMissingPath(t *testing.T) {
	_, err := NewExtractor().ExtractFile("testdata/does-not-exist.pdf")

	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("error = %v, want ErrUnreadable", err)
	}
}
