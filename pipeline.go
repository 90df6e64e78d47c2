package outliner

import (
	"github.com/docsift/outliner/layout"
	"github.com/docsift/outliner/model"
	"github.com/docsift/outliner/pdftext"
)

// BuildOutline runs the heuristic pipeline over an already-extracted
// document. It is pure and deterministic: identical input always yields
// an identical outline, and no state is shared between invocations, so
// independent documents can be processed concurrently.
func BuildOutline(doc *pdftext.Document) model.OutlineDocument {
	return buildOutlineWithOptions(doc, defaultOptions())
}

func (e *Extractor) buildOutline(doc *pdftext.Document) model.OutlineDocument {
	return buildOutlineWithOptions(doc, e.options)
}

func buildOutlineWithOptions(doc *pdftext.Document, opts Options) model.OutlineDocument {
	if doc == nil || doc.PageCount == 0 {
		return model.NewOutlineDocument()
	}

	lines := layout.NewReconstructor().ReconstructDocument(doc)

	profile := layout.NewProfiler().Profile(lines, doc.PageCount)
	if opts.forcedArchetype != nil {
		profile.Archetype = *opts.forcedArchetype
	}

	candidates := layout.NewClassifier().Classify(lines, profile)

	filter := layout.NewRepeatFilter()
	repeats := filter.Detect(lines, doc.PageCount)
	candidates = filter.Filter(candidates, repeats)

	candidates = layout.NewDeduper().Dedupe(candidates)

	return layout.NewAssembler().Build(candidates, profile)
}
