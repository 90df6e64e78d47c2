package layout

import (
	"regexp"
	"sort"
	"strings"
)

// Level is the classification assigned to a line.
type Level int

const (
	LevelBody Level = iota
	LevelTitle
	LevelH1
	LevelH2
	LevelH3
)

// Label returns the output label for the level ("H1".."H3", "TITLE").
// Body lines have no label.
func (l Level) Label() string {
	switch l {
	case LevelTitle:
		return "TITLE"
	case LevelH1:
		return "H1"
	case LevelH2:
		return "H2"
	case LevelH3:
		return "H3"
	default:
		return ""
	}
}

// Candidate is a line classified as a title or heading, before filtering
// and deduplication. Confidence is used only as a tie-break when
// collapsing duplicates; it is never exposed externally.
type Candidate struct {
	Line       Line
	Level      Level
	Confidence float64
}

// Thresholds holds the archetype-specific rule parameters for heading
// classification. Keeping the rule table as data rather than scattered
// branches makes each archetype's policy auditable in isolation.
type Thresholds struct {
	// TitleEnabled allows a TITLE classification at all. Flyers never
	// get a document title.
	TitleEnabled bool

	// TitleRatio is the minimum size ratio for a TITLE line.
	TitleRatio float64

	// TitleTopFraction is how far down page 1 a TITLE line may start,
	// as a fraction of page height from the top.
	TitleTopFraction float64

	// H1Ratio qualifies a line as H1 on size alone.
	H1Ratio float64

	// H1BoldRatio qualifies a bold line as H1. Zero disables the bold
	// path.
	H1BoldRatio float64

	// H1MinWords is a minimum word count for H1 (0 = no minimum). Form
	// documents use it to reject stray large labels.
	H1MinWords int

	// H2Enabled and H2BoldRatio: a bold line with ratio in
	// [H2BoldRatio, H1Ratio) is H2.
	H2Enabled   bool
	H2BoldRatio float64

	// H3Enabled, H3BoldRatio and H3SpacingRatio: a bold line with ratio
	// in [H3BoldRatio, H2BoldRatio) and whitespace above of at least
	// H3SpacingRatio body line heights is H3.
	H3Enabled      bool
	H3BoldRatio    float64
	H3SpacingRatio float64

	// NumberingEnabled turns section-numbering classification on.
	// Forms and flyers rarely carry numbering and disable it.
	NumberingEnabled bool

	// NumberingBaseLevel is the level assigned to numbering depth 1;
	// deeper numbering moves down one level per depth, capped at H3.
	// RFPs map depth 1 to H1, generic documents to H2.
	NumberingBaseLevel Level

	// NumberingWins makes a numbering-derived level override the
	// size-derived one (rfp policy: numbering outweighs size).
	NumberingWins bool

	// Confidence weights per signal group.
	SizeWeight      float64
	BoldWeight      float64
	NumberingWeight float64
}

// ArchetypeThresholds returns the rule table mapping each archetype to its
// classification thresholds.
func ArchetypeThresholds() map[Archetype]Thresholds {
	return map[Archetype]Thresholds{
		ArchetypeGeneric: {
			TitleEnabled:       true,
			TitleRatio:         1.8,
			TitleTopFraction:   0.4,
			H1Ratio:            1.5,
			H1BoldRatio:        1.2,
			H2Enabled:          true,
			H2BoldRatio:        1.15,
			H3Enabled:          true,
			H3BoldRatio:        1.0,
			H3SpacingRatio:     0.8,
			NumberingEnabled:   true,
			NumberingBaseLevel: LevelH2,
			SizeWeight:         1.0,
			BoldWeight:         1.0,
			NumberingWeight:    1.0,
		},
		ArchetypeRFP: {
			TitleEnabled:       true,
			TitleRatio:         1.8,
			TitleTopFraction:   0.4,
			H1Ratio:            1.5,
			H1BoldRatio:        1.2,
			H2Enabled:          true,
			H2BoldRatio:        1.15,
			H3Enabled:          true,
			H3BoldRatio:        1.0,
			H3SpacingRatio:     0.8,
			NumberingEnabled:   true,
			NumberingBaseLevel: LevelH1,
			NumberingWins:      true,
			SizeWeight:         0.8,
			BoldWeight:         1.0,
			NumberingWeight:    1.5,
		},
		ArchetypeForm: {
			TitleEnabled:     true,
			TitleRatio:       1.8,
			TitleTopFraction: 0.5,
			H1Ratio:          1.8,
			H1BoldRatio:      1.5,
			H1MinWords:       3,
			SizeWeight:       1.2,
			BoldWeight:       1.0,
		},
		ArchetypeFlyer: {
			H1Ratio:        1.8,
			H1BoldRatio:    1.4,
			H2Enabled:      true,
			H2BoldRatio:    1.4,
			H3Enabled:      true,
			H3BoldRatio:    1.15,
			H3SpacingRatio: 0.5,
			SizeWeight:     1.3,
			BoldWeight:     1.2,
		},
	}
}

// ClassifierConfig holds configuration for heading classification.
type ClassifierConfig struct {
	// Thresholds maps archetypes to their rule parameters.
	Thresholds map[Archetype]Thresholds

	// MinChars and MaxChars bound the length of a classifiable line.
	MinChars int
	MaxChars int

	// BodyVetoChars is the length above which sentence-like lines are
	// vetoed as body text regardless of size.
	BodyVetoChars int
}

// DefaultClassifierConfig returns sensible default configuration.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		Thresholds:    ArchetypeThresholds(),
		MinChars:      2,
		MaxChars:      300,
		BodyVetoChars: 80,
	}
}

// Classifier assigns a title/heading level to each reconstructed line,
// using archetype-specific thresholds from the document profile.
type Classifier struct {
	config ClassifierConfig
}

// NewClassifier creates a classifier with default configuration.
func NewClassifier() *Classifier {
	return &Classifier{config: DefaultClassifierConfig()}
}

// NewClassifierWithConfig creates a classifier with custom configuration.
func NewClassifierWithConfig(config ClassifierConfig) *Classifier {
	return &Classifier{config: config}
}

// Classify computes heading candidates for the document's lines, in input
// order. Body lines are not emitted. At most one TITLE candidate is
// produced per document.
func (c *Classifier) Classify(lines []Line, profile DocumentProfile) []Candidate {
	if len(lines) == 0 {
		return nil
	}

	th, ok := c.config.Thresholds[profile.Archetype]
	if !ok {
		th = c.config.Thresholds[ArchetypeGeneric]
	}

	body := profile.BodyFontSize
	if body <= 0 {
		body = 12.0
	}

	titleIdx := c.selectTitle(lines, profile, th, body)

	var candidates []Candidate
	for i := range lines {
		line := &lines[i]

		if i == titleIdx {
			candidates = append(candidates, Candidate{
				Line:       *line,
				Level:      LevelTitle,
				Confidence: 1.0,
			})
			continue
		}

		level, confidence := c.classifyLine(line, th, body, profile)
		if level == LevelBody {
			continue
		}
		candidates = append(candidates, Candidate{
			Line:       *line,
			Level:      level,
			Confidence: confidence,
		})
	}

	return candidates
}

// selectTitle returns the index of the single TITLE line, or -1.
// Among qualifying page-1 lines the largest font wins, ties broken by
// topmost position. Form documents fall back to a page-1 line mentioning
// "form" or "application" when nothing qualifies on size.
func (c *Classifier) selectTitle(lines []Line, profile DocumentProfile, th Thresholds, body float64) int {
	if !th.TitleEnabled {
		return -1
	}

	type titleCand struct {
		idx  int
		size float64
		top  float64
	}
	var cands []titleCand

	for i := range lines {
		line := &lines[i]
		if line.Page != 1 || c.basicVeto(line) {
			continue
		}
		if line.DominantFontSize/body < th.TitleRatio {
			continue
		}
		if line.PageHeight > 0 &&
			line.BBox.Top() < line.PageHeight*(1-th.TitleTopFraction) {
			continue
		}
		cands = append(cands, titleCand{
			idx:  i,
			size: line.DominantFontSize,
			top:  line.BBox.Top(),
		})
	}

	if len(cands) > 0 {
		sort.SliceStable(cands, func(i, j int) bool {
			if cands[i].size != cands[j].size {
				return cands[i].size > cands[j].size
			}
			return cands[i].top > cands[j].top
		})
		return cands[0].idx
	}

	if profile.Archetype == ArchetypeForm {
		for i := range lines {
			line := &lines[i]
			if line.Page != 1 {
				continue
			}
			lower := strings.ToLower(line.Text)
			if (strings.Contains(lower, "form") || strings.Contains(lower, "application")) &&
				line.CharCount() > 15 {
				return i
			}
		}
	}

	return -1
}

// classifyLine applies the archetype rule table to one line.
func (c *Classifier) classifyLine(line *Line, th Thresholds, body float64, profile DocumentProfile) (Level, float64) {
	if c.basicVeto(line) || c.bodyTextVeto(line) {
		return LevelBody, 0
	}

	ratio := line.DominantFontSize / body
	spacingOK := c.spacingAbove(line, profile) >= th.H3SpacingRatio

	sizeLevel := LevelBody
	switch {
	case ratio >= th.H1Ratio,
		th.H1BoldRatio > 0 && line.Bold && ratio >= th.H1BoldRatio:
		if th.H1MinWords == 0 || line.WordCount() >= th.H1MinWords {
			sizeLevel = LevelH1
		}
	case th.H2Enabled && line.Bold && ratio >= th.H2BoldRatio:
		sizeLevel = LevelH2
	case th.H3Enabled && line.Bold && ratio >= th.H3BoldRatio && spacingOK:
		sizeLevel = LevelH3
	}

	numLevel := LevelBody
	depth := 0
	if th.NumberingEnabled {
		depth = numberingDepth(line.Text)
		if depth > 0 {
			numLevel = clampLevel(int(th.NumberingBaseLevel) + depth - 1)
		}
	}

	level := combineLevels(sizeLevel, numLevel, th.NumberingWins)
	if level == LevelBody {
		return LevelBody, 0
	}

	return level, c.confidence(line, ratio, depth > 0, th)
}

// basicVeto rejects lines too short or too long to be headings.
func (c *Classifier) basicVeto(line *Line) bool {
	n := line.CharCount()
	return n < c.config.MinChars || n > c.config.MaxChars
}

// bodyTextVeto rejects long sentence-like lines regardless of their size:
// running prose containing common function words is never a heading.
func (c *Classifier) bodyTextVeto(line *Line) bool {
	text := strings.TrimSpace(line.Text)
	if len([]rune(text)) <= c.config.BodyVetoChars {
		return false
	}
	if sectionNumberRe.MatchString(text) || isAllCaps(text) {
		return false
	}

	lower := " " + strings.ToLower(text) + " "
	return strings.Contains(lower, " the ") ||
		strings.Contains(lower, " and ") ||
		strings.Contains(lower, " to ")
}

// spacingAbove is the line's whitespace-above in body line heights.
// The first line of a page has no predecessor and counts as spacious.
func (c *Classifier) spacingAbove(line *Line, profile DocumentProfile) float64 {
	if line.SpacingBefore < 0 {
		return 10.0
	}
	h := profile.BodyLineHeight()
	if h <= 0 {
		return 0
	}
	return line.SpacingBefore / h
}

// confidence is a weighted sum of matched signals, capped at 1.0. It is
// used only as a deduplication tie-break.
func (c *Classifier) confidence(line *Line, ratio float64, numbered bool, th Thresholds) float64 {
	conf := 0.0

	switch {
	case ratio >= 1.5:
		conf += 0.5 * th.SizeWeight
	case ratio >= 1.2:
		conf += 0.35 * th.SizeWeight
	case ratio >= 1.1:
		conf += 0.2 * th.SizeWeight
	case ratio >= 1.05:
		conf += 0.1 * th.SizeWeight
	}

	if line.Bold {
		conf += 0.2 * th.BoldWeight
	}
	if numbered {
		conf += 0.2 * th.NumberingWeight
	}
	if isAllCaps(line.Text) {
		conf += 0.15
	}
	if line.WordCount() <= 10 {
		conf += 0.1
	}

	if conf > 1.0 {
		conf = 1.0
	}
	return conf
}

func combineLevels(sizeLevel, numLevel Level, numberingWins bool) Level {
	if numLevel == LevelBody {
		return sizeLevel
	}
	if sizeLevel == LevelBody || numberingWins {
		return numLevel
	}
	// Both signals fired: the more prominent level wins.
	if sizeLevel < numLevel {
		return sizeLevel
	}
	return numLevel
}

func clampLevel(n int) Level {
	if n < int(LevelH1) {
		return LevelH1
	}
	if n > int(LevelH3) {
		return LevelH3
	}
	return Level(n)
}

var letterNumberRe = regexp.MustCompile(`^([A-Z]|[IVXLCDM]+)[.)]\s`)

// numberingDepth returns the depth of a recognized numbering prefix:
// "1." and "Chapter 3" are depth 1, "1.1" depth 2, "1.2.3" depth 3.
// Zero means no numbering.
func numberingDepth(text string) int {
	text = strings.TrimSpace(text)

	if m := sectionNumberRe.FindString(text); m != "" {
		return 1 + strings.Count(strings.TrimRight(strings.TrimSpace(m), ".)"), ".")
	}
	if namedSectionRe.MatchString(text) {
		return 1
	}
	if letterNumberRe.MatchString(text) {
		return 1
	}
	return 0
}

// isAllCaps reports whether a line's letters are essentially all
// uppercase, a common heading style.
func isAllCaps(text string) bool {
	text = strings.TrimSpace(text)

	upper, lower := 0, 0
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			upper++
		case r >= 'a' && r <= 'z':
			lower++
		}
	}

	if upper+lower < 3 {
		return false
	}
	return lower == 0 || float64(upper)/float64(upper+lower) > 0.9
}
