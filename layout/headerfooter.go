package layout

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// RepeatFilterConfig holds configuration for running header/footer
// detection.
type RepeatFilterConfig struct {
	// BandFraction is the page-relative vertical band at the top and
	// bottom of each page inspected for repeating text.
	BandFraction float64

	// MinPages is the minimum number of distinct pages a text must
	// repeat on.
	MinPages int
}

// DefaultRepeatFilterConfig returns sensible default configuration.
func DefaultRepeatFilterConfig() RepeatFilterConfig {
	return RepeatFilterConfig{
		BandFraction: 0.10,
		MinPages:     2,
	}
}

// RepeatFilter detects lines that repeat verbatim (after digit
// normalization, tolerating page-number substitution) at the same
// page-relative band across a majority of pages. Running headers are
// often bold or large but are not structural headings.
type RepeatFilter struct {
	config RepeatFilterConfig
}

// NewRepeatFilter creates a filter with default configuration.
func NewRepeatFilter() *RepeatFilter {
	return &RepeatFilter{config: DefaultRepeatFilterConfig()}
}

// NewRepeatFilterWithConfig creates a filter with custom configuration.
func NewRepeatFilterWithConfig(config RepeatFilterConfig) *RepeatFilter {
	return &RepeatFilter{config: config}
}

// RepeatSet is the per-document set of repeating header/footer keys,
// computed once and consulted when filtering candidates.
type RepeatSet struct {
	keys         map[string]bool
	bandFraction float64
}

// Contains reports whether a line matches a detected header/footer.
func (s *RepeatSet) Contains(line *Line) bool {
	if s == nil || len(s.keys) == 0 || line == nil {
		return false
	}
	band := bandOf(line, s.bandFraction)
	if band == "" {
		return false
	}
	return s.keys[band+"|"+normalizeRepeat(line.Text)]
}

// Detect scans all lines of a document and returns the set of repeating
// header/footer keys. A text repeats if its normalized form occurs in the
// same band on a strict majority of pages (at least MinPages).
func (f *RepeatFilter) Detect(lines []Line, pageCount int) *RepeatSet {
	set := &RepeatSet{
		keys:         make(map[string]bool),
		bandFraction: f.config.BandFraction,
	}
	if pageCount < f.config.MinPages {
		return set
	}

	occurrences := make(map[string]map[int]bool)
	for i := range lines {
		line := &lines[i]
		band := bandOf(line, f.config.BandFraction)
		if band == "" {
			continue
		}
		key := band + "|" + normalizeRepeat(line.Text)
		if occurrences[key] == nil {
			occurrences[key] = make(map[int]bool)
		}
		occurrences[key][line.Page] = true
	}

	for key, pages := range occurrences {
		if len(pages) >= f.config.MinPages && len(pages)*2 > pageCount {
			set.keys[key] = true
		}
	}

	return set
}

// Filter drops candidates whose source line matches a repeating header or
// footer.
func (f *RepeatFilter) Filter(candidates []Candidate, set *RepeatSet) []Candidate {
	if set == nil || len(set.keys) == 0 {
		return candidates
	}

	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if set.Contains(&c.Line) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// bandOf returns "top" or "bottom" when the line sits in the page's
// header or footer band, and "" otherwise.
func bandOf(line *Line, fraction float64) string {
	if line.PageHeight <= 0 {
		return ""
	}
	if line.BBox.Top() >= line.PageHeight*(1-fraction) {
		return "top"
	}
	if line.BBox.Bottom() <= line.PageHeight*fraction {
		return "bottom"
	}
	return ""
}

var (
	digitsRe     = regexp.MustCompile(`\d+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// normalizeRepeat normalizes text for repeat comparison: Unicode NFKC,
// case folded, digit runs replaced with a placeholder so "Page 3 of 10"
// and "Page 7 of 10" compare equal.
func normalizeRepeat(text string) string {
	text = norm.NFKC.String(text)
	text = strings.ToLower(strings.TrimSpace(text))
	text = digitsRe.ReplaceAllString(text, "#")
	return whitespaceRe.ReplaceAllString(text, " ")
}
