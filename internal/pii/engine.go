package pii

import (
	"sort"
	"strings"
)

// DefaultMarker replaces matched spans when no marker is supplied.
const DefaultMarker = "[REDACTED]"

// Match is one detected PII occurrence. Offsets are byte offsets into the
// scanned text, half-open [Start, End). Immutable once produced.
type Match struct {
	Category Category
	Value    string
	Start    int
	End      int
	Warning  string
}

// Result aggregates the findings of one scan. Produced fresh per call;
// never persisted.
type Result struct {
	// Matches is ordered ascending by start offset. Overlapping spans may
	// appear once per category that claims them.
	Matches []Match
	// Warnings holds the distinct warning strings, in catalog order.
	Warnings []string
	HasPII   bool
	Count    int
}

// Engine runs the pattern catalog over message content. It holds no
// mutable state and may be shared across concurrent callers without
// synchronization.
type Engine struct {
	matchers []Matcher
}

// NewEngine creates an engine over the standard catalog.
func NewEngine() *Engine {
	return &Engine{matchers: Catalog()}
}

// NewEngineWith creates an engine over an explicit matcher list.
func NewEngineWith(matchers []Matcher) *Engine {
	return &Engine{matchers: matchers}
}

// Detect runs every matcher over the full text and returns the combined
// findings sorted by start offset. Empty or whitespace-only text returns
// no findings without invoking any matcher.
func (e *Engine) Detect(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}

	var matches []Match
	var warnings []string
	seen := make(map[string]bool)

	for _, m := range e.matchers {
		spans := m.FindAll(text)
		for _, span := range spans {
			matches = append(matches, Match{
				Category: m.Category(),
				Value:    text[span.Start:span.End],
				Start:    span.Start,
				End:      span.End,
				Warning:  m.Warning(),
			})
		}
		if len(spans) > 0 && !seen[m.Warning()] {
			seen[m.Warning()] = true
			warnings = append(warnings, m.Warning())
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Start < matches[j].Start
	})

	return Result{
		Matches:  matches,
		Warnings: warnings,
		HasPII:   len(matches) > 0,
		Count:    len(matches),
	}
}

// Sanitize replaces every matched span with marker. Replacement folds
// right to left over the spans of a single Detect pass, so every offset
// refers to the original text and earlier replacements never invalidate
// later ones. A span that overlaps an already-replaced region is clamped
// to the unreplaced prefix, so two categories claiming the same text
// cannot corrupt the output.
func (e *Engine) Sanitize(text, marker string) string {
	if marker == "" {
		marker = DefaultMarker
	}
	result := e.Detect(text)
	if !result.HasPII {
		return text
	}

	ordered := make([]Match, len(result.Matches))
	copy(ordered, result.Matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start > ordered[j].Start
	})

	out := text
	boundary := len(text)
	for _, m := range ordered {
		if m.Start >= boundary {
			continue
		}
		end := m.End
		if end > boundary {
			end = boundary
		}
		out = out[:m.Start] + marker + out[end:]
		boundary = m.Start
	}
	return out
}

// Classify returns the distinct categories present in the text, ordered
// by first occurrence. No positions.
func (e *Engine) Classify(text string) []Category {
	result := e.Detect(text)
	var categories []Category
	seen := make(map[Category]bool)
	for _, m := range result.Matches {
		if !seen[m.Category] {
			seen[m.Category] = true
			categories = append(categories, m.Category)
		}
	}
	return categories
}

// ContainsCategory reports whether the text contains the given category.
func (e *Engine) ContainsCategory(text string, category Category) bool {
	for _, c := range e.Classify(text) {
		if c == category {
			return true
		}
	}
	return false
}
