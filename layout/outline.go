package layout

import (
	"sort"

	"github.com/docsift/outliner/model"
)

// Assembler orders the surviving heading candidates, selects the document
// title, and produces the final OutlineDocument.
type Assembler struct{}

// NewAssembler creates an outline assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Build sorts candidates by (page ascending, vertical position in reading
// order) and assembles the output document.
//
// The title is the single TITLE candidate when present. Otherwise, for all
// archetypes except flyer, the highest-confidence H1 on page 1 lends its
// text as the title while remaining in the outline; flyers never get a
// title. A consumed TITLE candidate is excluded from the outline.
func (a *Assembler) Build(candidates []Candidate, profile DocumentProfile) model.OutlineDocument {
	doc := model.NewOutlineDocument()

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Line.Page != sorted[j].Line.Page {
			return sorted[i].Line.Page < sorted[j].Line.Page
		}
		// Y decreases down the page in PDF coordinates.
		if sorted[i].Line.BBox.Top() != sorted[j].Line.BBox.Top() {
			return sorted[i].Line.BBox.Top() > sorted[j].Line.BBox.Top()
		}
		return sorted[i].Line.BBox.X < sorted[j].Line.BBox.X
	})

	for _, c := range sorted {
		if c.Level == LevelTitle && doc.Title == "" {
			doc.Title = c.Line.Text
		}
	}

	if doc.Title == "" && profile.Archetype != ArchetypeFlyer {
		doc.Title = bestPageOneH1(sorted)
	}

	for _, c := range sorted {
		if c.Level == LevelTitle {
			continue
		}
		doc.Outline = append(doc.Outline, model.OutlineEntry{
			Text:  c.Line.Text,
			Level: c.Level.Label(),
			Page:  c.Line.Page,
		})
	}

	return doc
}

// bestPageOneH1 returns the text of the highest-confidence H1 candidate on
// page 1, or "".
func bestPageOneH1(candidates []Candidate) string {
	best := -1
	for i, c := range candidates {
		if c.Level != LevelH1 || c.Line.Page != 1 {
			continue
		}
		if best == -1 || c.Confidence > candidates[best].Confidence {
			best = i
		}
	}
	if best == -1 {
		return ""
	}
	return candidates[best].Line.Text
}
