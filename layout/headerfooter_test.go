package layout

import (
	"fmt"
	"testing"
)

func TestNormalizeRepeat(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Page 3 of 10", "page # of #"},
		{"Page 7 of 10", "page # of #"},
		{"  ACME Corp   Annual Report ", "acme corp annual report"},
		{"Draft v2.1", "draft v#.#"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeRepeat(tt.input); got != tt.expected {
			t.Errorf("normalizeRepeat(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBandOf(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		h    float64
		band string
	}{
		{"top band", 760, 12, "top"},     // Top = 772 >= 712.8
		{"bottom band", 40, 12, "bottom"}, // Bottom = 40 <= 79.2
		{"middle of page", 400, 12, ""},
		{"just below top band", 690, 12, ""}, // Top = 702 < 712.8
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := makeLine("x", 1, 72, tt.y, 100, tt.h, 10, false)
			if got := bandOf(&line, 0.10); got != tt.band {
				t.Errorf("bandOf = %q, want %q", got, tt.band)
			}
		})
	}
}

func TestDetectFooterAcrossPages(t *testing.T) {
	// A page-number footer on every page of a 5-page document, with the
	// number varying per page.
	var lines []Line
	for page := 1; page <= 5; page++ {
		lines = append(lines, makeLine(fmt.Sprintf("Page %d of 5", page), page, 260, 30, 90, 10, 10, false))
		lines = append(lines, makeLine("Chapter content here", page, 72, 400, 300, 12, 12, false))
	}

	set := NewRepeatFilter().Detect(lines, 5)

	footer := makeLine("Page 3 of 5", 3, 260, 30, 90, 10, 10, false)
	if !set.Contains(&footer) {
		t.Errorf("varying page-number footer not detected")
	}
	body := makeLine("Chapter content here", 2, 72, 400, 300, 12, 12, false)
	if set.Contains(&body) {
		t.Errorf("mid-page line wrongly detected as repeating")
	}
}

func TestDetectRequiresMajority(t *testing.T) {
	// Same header on 3 of 10 pages: repeated, but not a strict majority.
	var lines []Line
	for _, page := range []int{1, 2, 3} {
		lines = append(lines, makeLine("Confidential", page, 72, 770, 100, 12, 12, false))
	}

	set := NewRepeatFilter().Detect(lines, 10)

	header := makeLine("Confidential", 2, 72, 770, 100, 12, 12, false)
	if set.Contains(&header) {
		t.Errorf("3-of-10 header must not pass the majority test")
	}
}

func TestDetectMajorityPasses(t *testing.T) {
	var lines []Line
	for page := 1; page <= 6; page++ {
		lines = append(lines, makeLine("ACME Quarterly", page, 72, 770, 120, 12, 12, true))
	}

	set := NewRepeatFilter().Detect(lines, 10)

	header := makeLine("ACME Quarterly", 4, 72, 770, 120, 12, 12, true)
	if !set.Contains(&header) {
		t.Errorf("6-of-10 header should be detected")
	}
}

func TestDetectSinglePageDocument(t *testing.T) {
	lines := []Line{makeLine("Header Text", 1, 72, 770, 100, 12, 12, false)}

	set := NewRepeatFilter().Detect(lines, 1)

	header := makeLine("Header Text", 1, 72, 770, 100, 12, 12, false)
	if set.Contains(&header) {
		t.Errorf("nothing can repeat in a single-page document")
	}
}

func TestDetectBandsAreDistinct(t *testing.T) {
	// Identical text in the top band of some pages and the bottom band of
	// others must not pool into one count.
	var lines []Line
	for _, page := range []int{1, 2} {
		lines = append(lines, makeLine("Acme", page, 72, 770, 60, 12, 12, false))
	}
	for _, page := range []int{3, 4} {
		lines = append(lines, makeLine("Acme", page, 72, 30, 60, 12, 12, false))
	}

	set := NewRepeatFilter().Detect(lines, 6)

	top := makeLine("Acme", 1, 72, 770, 60, 12, 12, false)
	if set.Contains(&top) {
		t.Errorf("2-of-6 top occurrences must not be boosted by bottom-band copies")
	}
}

func TestFilterDropsRepeatingCandidates(t *testing.T) {
	var lines []Line
	for page := 1; page <= 4; page++ {
		lines = append(lines, makeLine("Running Head", page, 72, 770, 120, 14, 14, true))
	}
	set := NewRepeatFilter().Detect(lines, 4)

	candidates := []Candidate{
		{Line: makeLine("Running Head", 2, 72, 770, 120, 14, 14, true), Level: LevelH2, Confidence: 0.5},
		{Line: makeLine("Real Heading", 2, 72, 500, 120, 14, 14, true), Level: LevelH2, Confidence: 0.5},
	}

	kept := NewRepeatFilter().Filter(candidates, set)

	if len(kept) != 1 {
		t.Fatalf("expected 1 kept candidate, got %d", len(kept))
	}
	if kept[0].Line.Text != "Real Heading" {
		t.Errorf("kept %q, want %q", kept[0].Line.Text, "Real Heading")
	}
}

func TestFilterNilSet(t *testing.T) {
	candidates := []Candidate{
		{Line: makeLine("Heading", 1, 72, 500, 100, 14, 14, true), Level: LevelH1},
	}

	kept := NewRepeatFilter().Filter(candidates, nil)

	if len(kept) != 1 {
		t.Errorf("nil set must keep all candidates, got %d", len(kept))
	}
}
