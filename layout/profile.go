package layout

import (
	"regexp"
	"strings"
)

// Archetype is a document-type category used to select heading-detection
// thresholds.
type Archetype int

const (
	ArchetypeGeneric Archetype = iota
	ArchetypeForm
	ArchetypeRFP
	ArchetypeFlyer
)

// String returns a string representation of the archetype.
func (a Archetype) String() string {
	switch a {
	case ArchetypeForm:
		return "form"
	case ArchetypeRFP:
		return "rfp"
	case ArchetypeFlyer:
		return "flyer"
	default:
		return "generic"
	}
}

// DocumentProfile holds per-document statistics computed once and read by
// the heading classifier. It is immutable after construction.
type DocumentProfile struct {
	// Archetype selects the heading-detection policy.
	Archetype Archetype

	// BodyFontSize is the mode of the font-size histogram across all
	// lines, weighted by character count.
	BodyFontSize float64

	// PageCount is the document's total page count, including pages with
	// no extractable text.
	PageCount int
}

// BodyLineHeight approximates the height of one body text line.
func (p DocumentProfile) BodyLineHeight() float64 {
	return p.BodyFontSize * 1.2
}

// ProfileConfig holds configuration for document-type classification.
type ProfileConfig struct {
	// DefaultBodyFontSize is used when a document has no lines at all.
	DefaultBodyFontSize float64

	// FormLabelMaxChars is the maximum length of a line counted as a
	// short form label.
	FormLabelMaxChars int

	// FormLabelRatio is the minimum fraction of lines that must look
	// like form labels for the form archetype.
	FormLabelRatio float64

	// FormMinLines guards the form ratio against tiny documents.
	FormMinLines int

	// RFPMinPages is the minimum page count for the rfp archetype.
	RFPMinPages int

	// RFPMinNumberedPages is the minimum number of distinct pages that
	// must carry section-numbering patterns.
	RFPMinNumberedPages int

	// FlyerMaxPages is the maximum page count for the flyer archetype.
	FlyerMaxPages int

	// FlyerLargeRatio is the font-size ratio above which a line counts
	// as "very large" for flyer detection.
	FlyerLargeRatio float64

	// FlyerMaxLargeLines caps how many very large lines a flyer may have.
	FlyerMaxLargeLines int

	// FlyerMaxLines caps the total line count of a flyer.
	FlyerMaxLines int
}

// DefaultProfileConfig returns sensible default configuration.
func DefaultProfileConfig() ProfileConfig {
	return ProfileConfig{
		DefaultBodyFontSize: 12.0,
		FormLabelMaxChars:   40,
		FormLabelRatio:      0.35,
		FormMinLines:        8,
		RFPMinPages:         3,
		RFPMinNumberedPages: 3,
		FlyerMaxPages:       2,
		FlyerLargeRatio:     1.8,
		FlyerMaxLargeLines:  8,
		FlyerMaxLines:       80,
	}
}

// Profiler classifies a document into an archetype and computes the
// statistics later stages depend on.
type Profiler struct {
	config ProfileConfig
}

// NewProfiler creates a profiler with default configuration.
func NewProfiler() *Profiler {
	return &Profiler{config: DefaultProfileConfig()}
}

// NewProfilerWithConfig creates a profiler with custom configuration.
func NewProfilerWithConfig(config ProfileConfig) *Profiler {
	return &Profiler{config: config}
}

var (
	// Section numbering at the start of a line: "1.", "2.3", "4.1.2".
	sectionNumberRe = regexp.MustCompile(`^\d+(\.\d+)*[.)]?\s`)

	// Named sections: "Appendix A", "Chapter 3".
	namedSectionRe = regexp.MustCompile(`^(?i)(appendix|chapter|section|part)\s+[A-Za-z0-9]`)

	// Blank fill-in regions on forms.
	underlineRe = regexp.MustCompile(`_{3,}`)
)

// Profile inspects all reconstructed lines plus the page count and selects
// the document archetype. Policies are evaluated in priority order (form,
// rfp, flyer); the first match wins, with generic as the default. A
// document with no lines at all defaults to generic.
func (p *Profiler) Profile(lines []Line, pageCount int) DocumentProfile {
	profile := DocumentProfile{
		Archetype:    ArchetypeGeneric,
		BodyFontSize: p.bodyFontSize(lines),
		PageCount:    pageCount,
	}

	if len(lines) == 0 {
		return profile
	}

	switch {
	case p.looksLikeForm(lines):
		profile.Archetype = ArchetypeForm
	case p.looksLikeRFP(lines, pageCount):
		profile.Archetype = ArchetypeRFP
	case p.looksLikeFlyer(lines, pageCount, profile.BodyFontSize):
		profile.Archetype = ArchetypeFlyer
	}

	return profile
}

// bodyFontSize returns the statistical mode of font sizes across all
// lines, bucketed at half-point precision and weighted by character count
// so dense body text dominates over sparse large headings.
func (p *Profiler) bodyFontSize(lines []Line) float64 {
	if len(lines) == 0 {
		return p.config.DefaultBodyFontSize
	}

	counts := make(map[int]int)
	sizes := make(map[int]float64)
	for _, line := range lines {
		bucket := int(line.DominantFontSize * 2)
		counts[bucket] += line.CharCount()
		sizes[bucket] = line.DominantFontSize
	}

	best, bestCount := 0, -1
	for bucket, count := range counts {
		if count > bestCount || (count == bestCount && bucket < best) {
			best, bestCount = bucket, count
		}
	}

	size := sizes[best]
	if size <= 0 {
		return p.config.DefaultBodyFontSize
	}
	return size
}

// looksLikeForm detects a high density of short label lines: colon
// terminated captions and underscore fill-in regions.
func (p *Profiler) looksLikeForm(lines []Line) bool {
	if len(lines) < p.config.FormMinLines {
		return false
	}

	labels := 0
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if len([]rune(text)) > p.config.FormLabelMaxChars {
			continue
		}
		if strings.HasSuffix(text, ":") || underlineRe.MatchString(text) {
			labels++
		}
	}

	return float64(labels)/float64(len(lines)) >= p.config.FormLabelRatio
}

// looksLikeRFP detects repeated section numbering spread across pages in a
// document long enough to have formal structure.
func (p *Profiler) looksLikeRFP(lines []Line, pageCount int) bool {
	if pageCount < p.config.RFPMinPages {
		return false
	}

	numberedPages := make(map[int]bool)
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if sectionNumberRe.MatchString(text) || namedSectionRe.MatchString(text) {
			numberedPages[line.Page] = true
		}
	}

	return len(numberedPages) >= p.config.RFPMinNumberedPages
}

// looksLikeFlyer detects a very short document dominated by a handful of
// very large display lines.
func (p *Profiler) looksLikeFlyer(lines []Line, pageCount int, bodyFontSize float64) bool {
	if pageCount > p.config.FlyerMaxPages || pageCount < 1 {
		return false
	}
	if len(lines) > p.config.FlyerMaxLines {
		return false
	}
	if bodyFontSize <= 0 {
		return false
	}

	large := 0
	for _, line := range lines {
		if line.DominantFontSize/bodyFontSize >= p.config.FlyerLargeRatio {
			large++
		}
	}

	return large >= 1 && large <= p.config.FlyerMaxLargeLines
}
