// Package redact masks sensitive spans found by the detector with
// category-labeled placeholders. Redaction is idempotent: placeholders are
// chosen so that no catalog pattern can match them, which makes it safe to
// run the full detect-then-redact pass over text that was already redacted.
package redact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/promptsec/promptval/internal/detect"
)

// ErrInvariant marks a violated precondition on the match list. Reaching it
// signals a bug in the caller, not bad user input.
var ErrInvariant = errors.New("redact: invariant violation")

// Placeholder returns the marker substituted for a match of category c,
// e.g. [REDACTED:EMAIL]. The label tells reviewers what kind of data was
// removed without exposing the value.
func Placeholder(c detect.Category) string {
	return "[REDACTED:" + strings.ToUpper(string(c)) + "]"
}

// Redactor produces masked copies of text.
type Redactor struct {
	detector *detect.Detector
}

// New returns a Redactor backed by the given detector.
func New(d *detect.Detector) *Redactor {
	return &Redactor{detector: d}
}

// Redact replaces each matched span in text with its category placeholder.
// Matches must be sorted by start offset, pairwise non-overlapping, and in
// range for text, which is what detect.Detector.Detect guarantees. A match
// list violating that returns an ErrInvariant-wrapped error.
func (r *Redactor) Redact(text string, matches []detect.Match) (string, error) {
	runes := []rune(text)
	prevEnd := 0
	for i, m := range matches {
		if m.Span.Start < 0 || m.Span.End <= m.Span.Start || m.Span.End > len(runes) {
			return "", fmt.Errorf("%w: span [%d, %d) out of range for %d runes",
				ErrInvariant, m.Span.Start, m.Span.End, len(runes))
		}
		if m.Span.Start < prevEnd {
			return "", fmt.Errorf("%w: match %d overlaps or precedes match %d", ErrInvariant, i, i-1)
		}
		prevEnd = m.Span.End
	}
	return splice(runes, matches), nil
}

// All detects and redacts in one pass. It is the form used on both sides of
// the trust boundary: before text is sent to an external evaluator and
// again on whatever comes back.
func (r *Redactor) All(text string) string {
	return splice([]rune(text), r.detector.Detect(text))
}

// splice copies text between consecutive match boundaries, substituting
// each matched span with its placeholder. Assumes validated matches.
func splice(runes []rune, matches []detect.Match) string {
	if len(matches) == 0 {
		return string(runes)
	}
	var b strings.Builder
	cursor := 0
	for _, m := range matches {
		b.WriteString(string(runes[cursor:m.Span.Start]))
		b.WriteString(Placeholder(m.Category))
		cursor = m.Span.End
	}
	b.WriteString(string(runes[cursor:]))
	return b.String()
}
