package classify

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/clausewise/internal/model"
)

// MinClauseRunes is the noise floor: segments must be strictly longer
// than this many characters after trimming to count as clauses.
const MinClauseRunes = 20

// markerPattern matches a numbered heading such as "12. " at the start of
// a line, including any leading whitespace.
var markerPattern = regexp.MustCompile(`(?m)^\s*(\d+)\. `)

// Segment is a raw slice of text between two numbered headings
type Segment struct {
	Marker string // Digits of the preceding heading, empty for leading text
	Text   string // Untrimmed segment text
}

// Split partitions text on numbered headings. Marker text is discarded.
// Every segment is returned, including empty and short ones.
func Split(text string) []Segment {
	matches := markerPattern.FindAllStringSubmatchIndex(text, -1)

	segments := make([]Segment, 0, len(matches)+1)
	prevEnd := 0
	prevMarker := ""
	for _, m := range matches {
		segments = append(segments, Segment{Marker: prevMarker, Text: text[prevEnd:m[0]]})
		prevMarker = text[m[2]:m[3]]
		prevEnd = m[1]
	}
	segments = append(segments, Segment{Marker: prevMarker, Text: text[prevEnd:]})

	return segments
}

// Classifier splits contract text into clauses and tags each clause with
// risk categories
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier over the fixed risk taxonomy
func NewClassifier() *Classifier {
	return &Classifier{rules: taxonomy}
}

// Extract segments text into clauses numbered 1..N in source order and
// classifies each one. Empty input yields no clauses.
func (c *Classifier) Extract(text string) []model.Clause {
	clauses := make([]model.Clause, 0)

	for _, seg := range Split(text) {
		trimmed := strings.TrimSpace(seg.Text)
		if utf8.RuneCountInString(trimmed) <= MinClauseRunes {
			continue
		}

		clauses = append(clauses, model.Clause{
			Index:      len(clauses) + 1,
			Marker:     seg.Marker,
			Text:       trimmed,
			Categories: c.Classify(trimmed),
		})
	}

	return clauses
}

// Classify returns every category with at least one trigger occurring in
// the lowercased text, in taxonomy order. Categories are independent of
// each other. No match returns an empty, non-nil slice.
func (c *Classifier) Classify(text string) []model.Category {
	lower := strings.ToLower(text)

	matched := make([]model.Category, 0, 2)
	for _, rule := range c.rules {
		if trigger := firstTrigger(lower, rule.Triggers); trigger != "" {
			matched = append(matched, rule.Category)
		}
	}

	return matched
}

// Explain reports, per matched category, which triggers fired
func (c *Classifier) Explain(text string) map[model.Category][]string {
	lower := strings.ToLower(text)

	hits := make(map[model.Category][]string)
	for _, rule := range c.rules {
		for _, trigger := range rule.Triggers {
			if strings.Contains(lower, trigger) {
				hits[rule.Category] = append(hits[rule.Category], trigger)
			}
		}
	}

	return hits
}

func firstTrigger(lower string, triggers []string) string {
	for _, trigger := range triggers {
		if strings.Contains(lower, trigger) {
			return trigger
		}
	}
	return ""
}
