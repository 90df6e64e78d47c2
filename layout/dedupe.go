package layout

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DeduperConfig holds configuration for duplicate candidate collapsing.
type DeduperConfig struct {
	// AdjacencyGap is the maximum distance in points between two
	// candidate boxes for them to count as adjacent, in addition to
	// direct overlap.
	AdjacencyGap float64
}

// DefaultDeduperConfig returns sensible default configuration.
func DefaultDeduperConfig() DeduperConfig {
	return DeduperConfig{
		AdjacencyGap: 6.0,
	}
}

// Deduper collapses repeated or overlapping heading detections (a heading
// split across two bounding boxes, or redetected at adjacent font sizes)
// into one candidate. Bounding-box adjacency is the primary signal; text
// similarity only confirms it.
type Deduper struct {
	config DeduperConfig
}

// NewDeduper creates a deduper with default configuration.
func NewDeduper() *Deduper {
	return &Deduper{config: DefaultDeduperConfig()}
}

// NewDeduperWithConfig creates a deduper with custom configuration.
func NewDeduperWithConfig(config DeduperConfig) *Deduper {
	return &Deduper{config: config}
}

// Dedupe collapses duplicates in a document-ordered candidate sequence,
// returning one candidate per logical heading, still in document order.
func (d *Deduper) Dedupe(candidates []Candidate) []Candidate {
	if len(candidates) < 2 {
		return candidates
	}

	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		merged := false
		for i := range kept {
			if d.isDuplicate(&kept[i], &c) {
				kept[i] = d.merge(kept[i], c)
				merged = true
				break
			}
		}
		if !merged {
			kept = append(kept, c)
		}
	}
	return kept
}

// isDuplicate reports whether two candidates describe the same logical
// heading: same page, boxes overlapping or adjacent, and normalized text
// equal or one a prefix/suffix of the other.
func (d *Deduper) isDuplicate(a, b *Candidate) bool {
	if a.Line.Page != b.Line.Page {
		return false
	}
	if !a.Line.BBox.Expand(d.config.AdjacencyGap).Intersects(b.Line.BBox) {
		return false
	}

	na := normalizeDedup(a.Line.Text)
	nb := normalizeDedup(b.Line.Text)
	if na == "" || nb == "" {
		return false
	}
	return na == nb ||
		boundaryPrefix(na, nb) || boundaryPrefix(nb, na) ||
		boundarySuffix(na, nb) || boundarySuffix(nb, na)
}

// boundaryPrefix reports whether short is a whole-word prefix of long.
// Requiring a word boundary keeps "chapter 1" from matching "chapter 10".
func boundaryPrefix(long, short string) bool {
	if len(short) >= len(long) || !strings.HasPrefix(long, short) {
		return false
	}
	return long[len(short)] == ' '
}

// boundarySuffix reports whether short is a whole-word suffix of long.
func boundarySuffix(long, short string) bool {
	if len(short) >= len(long) || !strings.HasSuffix(long, short) {
		return false
	}
	return long[len(long)-len(short)-1] == ' '
}

// merge keeps the candidate with higher confidence; ties go to the larger
// bounding box. The survivor absorbs the union box and the longer text,
// which covers fragments rejoined across detections.
func (d *Deduper) merge(a, b Candidate) Candidate {
	keeper, other := a, b
	if b.Confidence > a.Confidence ||
		(b.Confidence == a.Confidence && b.Line.BBox.Area() > a.Line.BBox.Area()) {
		keeper, other = b, a
	}

	if len([]rune(other.Line.Text)) > len([]rune(keeper.Line.Text)) {
		keeper.Line.Text = other.Line.Text
	}
	keeper.Line.BBox = keeper.Line.BBox.Union(other.Line.BBox)

	// The more prominent level survives a disagreement.
	if other.Level != LevelBody && other.Level < keeper.Level {
		keeper.Level = other.Level
	}

	return keeper
}

var dedupPunctRe = regexp.MustCompile(`[^\p{L}\p{N} ]+`)

// normalizeDedup normalizes text for duplicate comparison: Unicode NFKC,
// case folded, punctuation stripped, whitespace collapsed. Digits are
// kept so "Chapter 1" and "Chapter 10" stay distinct.
func normalizeDedup(text string) string {
	text = norm.NFKC.String(text)
	text = strings.ToLower(strings.TrimSpace(text))
	text = dedupPunctRe.ReplaceAllString(text, "")
	return whitespaceRe.ReplaceAllString(text, " ")
}
