package layout

import (
	"sort"
	"strings"

	"github.com/docsift/outliner/model"
	"github.com/docsift/outliner/pdftext"
)

// Line represents a single reconstructed line of text on a page.
// Runs are ordered left to right and form a spatially contiguous unit.
type Line struct {
	// Text is the assembled text content of the line.
	Text string

	// BBox is the union of the constituent run boxes.
	BBox model.BBox

	// DominantFontSize is the font size covering the plurality of the
	// line's character count.
	DominantFontSize float64

	// Bold and Italic reflect the style covering the majority of the
	// line's character count.
	Bold   bool
	Italic bool

	// Page is the 1-based page number.
	Page int

	// PageWidth and PageHeight are the dimensions of the page the line
	// appears on, carried here so later stages can reason about
	// page-relative position.
	PageWidth  float64
	PageHeight float64

	// Runs are the constituent text runs, sorted left to right.
	Runs []pdftext.TextRun

	// SpacingBefore is the vertical gap to the previous line on the same
	// page, in points. It is -1 for the first line of a page.
	SpacingBefore float64
}

// IsEmpty returns true if the line has no printable text.
func (l *Line) IsEmpty() bool {
	if l == nil {
		return true
	}
	return strings.TrimSpace(l.Text) == ""
}

// WordCount returns the number of whitespace-separated words.
func (l *Line) WordCount() int {
	if l == nil {
		return 0
	}
	return len(strings.Fields(l.Text))
}

// CharCount returns the number of runes in the line text.
func (l *Line) CharCount() int {
	if l == nil {
		return 0
	}
	return len([]rune(l.Text))
}

// LineConfig holds configuration for line reconstruction.
type LineConfig struct {
	// BaselineToleranceFactor is the fraction of the run font size within
	// which two runs are treated as sharing a baseline.
	BaselineToleranceFactor float64

	// WordGapFactor is the horizontal gap, as a fraction of font size,
	// above which a space is inserted between merged runs. Smaller gaps
	// rejoin words split across font or style boundaries with no
	// separator.
	WordGapFactor float64

	// MinLineWidth is the minimum width for a valid line, in points.
	MinLineWidth float64
}

// DefaultLineConfig returns sensible default configuration.
func DefaultLineConfig() LineConfig {
	return LineConfig{
		BaselineToleranceFactor: 0.5,
		WordGapFactor:           0.25,
		MinLineWidth:            3.0,
	}
}

// Reconstructor merges positioned text runs into logical lines in reading
// order (top to bottom, left to right).
type Reconstructor struct {
	config LineConfig
}

// NewReconstructor creates a reconstructor with default configuration.
func NewReconstructor() *Reconstructor {
	return &Reconstructor{config: DefaultLineConfig()}
}

// NewReconstructorWithConfig creates a reconstructor with custom configuration.
func NewReconstructorWithConfig(config LineConfig) *Reconstructor {
	return &Reconstructor{config: config}
}

// ReconstructDocument reconstructs lines for every page of a document,
// returned in (page, reading order) sequence.
func (r *Reconstructor) ReconstructDocument(doc *pdftext.Document) []Line {
	if doc == nil {
		return nil
	}

	var lines []Line
	for _, page := range doc.Pages {
		lines = append(lines, r.Reconstruct(page)...)
	}
	return lines
}

// Reconstruct merges one page's runs into lines. Input runs arrive in
// content-stream order, which is not guaranteed to be reading order.
func (r *Reconstructor) Reconstruct(page pdftext.Page) []Line {
	runs := r.prepareRuns(page.Runs)
	if len(runs) == 0 {
		return nil
	}

	groups := r.groupIntoLines(runs)

	lines := make([]Line, 0, len(groups))
	for _, group := range groups {
		line := r.buildLine(group, page)
		if line.BBox.Width < r.config.MinLineWidth || line.IsEmpty() {
			continue
		}
		lines = append(lines, line)
	}

	r.calculateSpacing(lines)

	return lines
}

// prepareRuns drops whitespace-only runs and splits multi-line artifacts
// (runs whose text carries embedded line breaks) into one run per line,
// dividing the vertical extent evenly among the pieces.
func (r *Reconstructor) prepareRuns(runs []pdftext.TextRun) []pdftext.TextRun {
	prepared := make([]pdftext.TextRun, 0, len(runs))

	for _, run := range runs {
		if run.IsWhitespace() {
			continue
		}

		if !strings.Contains(run.Text, "\n") {
			prepared = append(prepared, run)
			continue
		}

		parts := strings.Split(run.Text, "\n")
		kept := make([]string, 0, len(parts))
		for _, p := range parts {
			if strings.TrimSpace(p) != "" {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			continue
		}

		partHeight := run.BBox.Height / float64(len(kept))
		top := run.BBox.Top()
		for i, p := range kept {
			piece := run
			piece.Text = p
			piece.BBox = model.BBox{
				X:      run.BBox.X,
				Y:      top - float64(i+1)*partHeight,
				Width:  run.BBox.Width,
				Height: partHeight,
			}
			prepared = append(prepared, piece)
		}
	}

	return prepared
}

// groupIntoLines sorts runs top to bottom with a baseline tolerance band
// and groups runs within the band into one line, sorted left to right.
func (r *Reconstructor) groupIntoLines(runs []pdftext.TextRun) [][]pdftext.TextRun {
	sorted := make([]pdftext.TextRun, len(runs))
	copy(sorted, runs)

	tolerance := func(run pdftext.TextRun) float64 {
		t := run.FontSize * r.config.BaselineToleranceFactor
		if t <= 0 {
			t = 2.0
		}
		return t
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		yDiff := sorted[i].BBox.Y - sorted[j].BBox.Y
		if absFloat(yDiff) > tolerance(sorted[i]) {
			return yDiff > 0 // higher Y first (top of page)
		}
		return false // same band, preserve stream order for now
	})

	var groups [][]pdftext.TextRun
	var current []pdftext.TextRun

	for _, run := range sorted {
		if len(current) == 0 {
			current = append(current, run)
			continue
		}

		if absFloat(run.BBox.Y-averageBaseline(current)) <= tolerance(run) {
			current = append(current, run)
		} else {
			groups = append(groups, sortByX(current))
			current = []pdftext.TextRun{run}
		}
	}
	if len(current) > 0 {
		groups = append(groups, sortByX(current))
	}

	return groups
}

func sortByX(runs []pdftext.TextRun) []pdftext.TextRun {
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].BBox.X < runs[j].BBox.X
	})
	return runs
}

func averageBaseline(runs []pdftext.TextRun) float64 {
	if len(runs) == 0 {
		return 0
	}
	total := 0.0
	for _, run := range runs {
		total += run.BBox.Y
	}
	return total / float64(len(runs))
}

// buildLine assembles one group of same-baseline runs into a Line.
// Dominant font size and style are determined by character count
// plurality, not by the first run.
func (r *Reconstructor) buildLine(runs []pdftext.TextRun, page pdftext.Page) Line {
	line := Line{
		Page:       page.Number,
		PageWidth:  page.Width,
		PageHeight: page.Height,
		Runs:       runs,
	}

	var sb strings.Builder
	for i, run := range runs {
		if i > 0 {
			prev := runs[i-1]
			gap := run.BBox.X - prev.BBox.Right()
			if gap > run.FontSize*r.config.WordGapFactor {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(run.Text)
		line.BBox = line.BBox.Union(run.BBox)
	}
	line.Text = strings.TrimSpace(sb.String())

	line.DominantFontSize = dominantFontSize(runs)
	line.Bold, line.Italic = dominantStyle(runs)

	return line
}

// dominantFontSize returns the font size covering the plurality of the
// line's character count, bucketed at half-point precision.
func dominantFontSize(runs []pdftext.TextRun) float64 {
	counts := make(map[int]int)
	sizes := make(map[int]float64)

	for _, run := range runs {
		bucket := int(run.FontSize * 2)
		counts[bucket] += len([]rune(run.Text))
		sizes[bucket] = run.FontSize
	}

	best, bestCount := 0, -1
	for bucket, count := range counts {
		if count > bestCount || (count == bestCount && bucket > best) {
			best, bestCount = bucket, count
		}
	}
	return sizes[best]
}

// dominantStyle reports whether bold (and italic) characters form a
// majority of the line.
func dominantStyle(runs []pdftext.TextRun) (bold, italic bool) {
	total, boldChars, italicChars := 0, 0, 0
	for _, run := range runs {
		n := len([]rune(run.Text))
		total += n
		if run.Bold {
			boldChars += n
		}
		if run.Italic {
			italicChars += n
		}
	}
	if total == 0 {
		return false, false
	}
	return boldChars*2 >= total, italicChars*2 >= total
}

// calculateSpacing fills SpacingBefore for consecutive lines on a page.
func (r *Reconstructor) calculateSpacing(lines []Line) {
	for i := range lines {
		if i == 0 {
			lines[i].SpacingBefore = -1
			continue
		}
		gap := lines[i-1].BBox.Bottom() - lines[i].BBox.Top()
		if gap < 0 {
			gap = 0
		}
		lines[i].SpacingBefore = gap
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
