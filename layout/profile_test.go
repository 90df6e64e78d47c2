package layout

import (
	"fmt"
	"testing"

	"github.com/docsift/outliner/model"
)

// makeLine creates a reconstructed line for classifier tests.
func makeLine(text string, page int, x, y, w, h, fontSize float64, bold bool) Line {
	return Line{
		Text:             text,
		BBox:             model.NewBBox(x, y, w, h),
		DominantFontSize: fontSize,
		Bold:             bold,
		Page:             page,
		PageWidth:        612,
		PageHeight:       792,
		SpacingBefore:    -1,
	}
}

func TestArchetypeString(t *testing.T) {
	tests := []struct {
		archetype Archetype
		expected  string
	}{
		{ArchetypeGeneric, "generic"},
		{ArchetypeForm, "form"},
		{ArchetypeRFP, "rfp"},
		{ArchetypeFlyer, "flyer"},
	}

	for _, tt := range tests {
		if got := tt.archetype.String(); got != tt.expected {
			t.Errorf("Archetype(%d).String() = %q, want %q", tt.archetype, got, tt.expected)
		}
	}
}

func TestProfileEmptyDocument(t *testing.T) {
	profile := NewProfiler().Profile(nil, 0)

	if profile.Archetype != ArchetypeGeneric {
		t.Errorf("Archetype = %v, want generic", profile.Archetype)
	}
	if profile.BodyFontSize != 12.0 {
		t.Errorf("BodyFontSize = %v, want default 12.0", profile.BodyFontSize)
	}
}

func TestProfileBodyFontSizeMode(t *testing.T) {
	lines := []Line{
		makeLine("Big Heading Here", 1, 100, 700, 200, 24, 24, true),
		makeLine("plenty of body text running along the page", 1, 100, 650, 300, 10, 10, false),
		makeLine("and another paragraph of ordinary body text", 1, 100, 630, 300, 10, 10, false),
	}

	profile := NewProfiler().Profile(lines, 1)

	if profile.BodyFontSize != 10 {
		t.Errorf("BodyFontSize = %v, want 10", profile.BodyFontSize)
	}
}

func TestProfileDetectsForm(t *testing.T) {
	var lines []Line
	for i := 0; i < 10; i++ {
		y := 700 - float64(i)*30
		lines = append(lines, makeLine(fmt.Sprintf("Field %d:", i), 1, 100, y, 80, 10, 10, false))
	}
	lines = append(lines, makeLine("Application Form for Grant of Leave", 1, 100, 750, 300, 16, 16, true))

	profile := NewProfiler().Profile(lines, 1)

	if profile.Archetype != ArchetypeForm {
		t.Errorf("Archetype = %v, want form", profile.Archetype)
	}
}

func TestProfileDetectsRFP(t *testing.T) {
	lines := []Line{
		makeLine("1. Scope", 1, 100, 700, 80, 12, 12, false),
		makeLine("ordinary paragraph text about the project goes here", 1, 100, 650, 300, 12, 12, false),
		makeLine("1.1 Background", 2, 100, 700, 100, 12, 12, false),
		makeLine("more paragraph text and requirements and detail", 2, 100, 650, 300, 12, 12, false),
		makeLine("2. Requirements", 3, 100, 700, 110, 12, 12, false),
		makeLine("Appendix A: Funding Phases", 4, 100, 700, 180, 12, 12, false),
	}

	profile := NewProfiler().Profile(lines, 4)

	if profile.Archetype != ArchetypeRFP {
		t.Errorf("Archetype = %v, want rfp", profile.Archetype)
	}
}

func TestProfileDetectsFlyer(t *testing.T) {
	lines := []Line{
		makeLine("Welcome", 1, 100, 700, 200, 40, 40, false),
		makeLine("some body text", 1, 100, 600, 100, 10, 10, false),
		makeLine("a little more body text here", 1, 100, 580, 160, 10, 10, false),
	}

	profile := NewProfiler().Profile(lines, 1)

	if profile.Archetype != ArchetypeFlyer {
		t.Errorf("Archetype = %v, want flyer", profile.Archetype)
	}
}

func TestProfileLongDocumentNotFlyer(t *testing.T) {
	lines := []Line{
		makeLine("Huge Display Line", 1, 100, 700, 300, 40, 40, false),
		makeLine("body", 5, 100, 600, 40, 10, 10, false),
	}

	profile := NewProfiler().Profile(lines, 12)

	if profile.Archetype == ArchetypeFlyer {
		t.Errorf("12-page document must not classify as flyer")
	}
}

func TestProfileGenericDefault(t *testing.T) {
	lines := []Line{
		makeLine("An Ordinary Report", 1, 100, 700, 200, 18, 18, true),
		makeLine("with normal paragraph text in it", 1, 100, 650, 250, 12, 12, false),
	}

	profile := NewProfiler().Profile(lines, 5)

	if profile.Archetype != ArchetypeGeneric {
		t.Errorf("Archetype = %v, want generic", profile.Archetype)
	}
	if profile.PageCount != 5 {
		t.Errorf("PageCount = %d, want 5", profile.PageCount)
	}
}
