// Package validate holds the prompt validation data model and the pipeline
// that assembles detection, redaction, external evaluation, and scoring
// into one result.
package validate

import (
	"context"

	"github.com/promptsec/promptval/internal/detect"
)

// Severity classifies how serious an issue is and drives its score penalty.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// KnownSeverity reports whether s is one of the three severity levels.
func KnownSeverity(s Severity) bool {
	return s == SeverityInfo || s == SeverityWarning || s == SeverityError
}

// IssueKind is the closed set of problem families a prompt can have.
type IssueKind string

const (
	KindRedundancy   IssueKind = "redundancy"
	KindConflict     IssueKind = "conflict"
	KindCompleteness IssueKind = "completeness"
	KindPII          IssueKind = "pii"
)

// KnownKind reports whether k is a valid issue kind.
func KnownKind(k IssueKind) bool {
	switch k {
	case KindRedundancy, KindConflict, KindCompleteness, KindPII:
		return true
	}
	return false
}

// Issue is one classified problem found in a prompt. PII issues always
// carry a span; other kinds may omit it.
type Issue struct {
	Kind       IssueKind    `json:"kind"`
	Severity   Severity     `json:"severity"`
	Message    string       `json:"message"`
	Suggestion string       `json:"suggestion,omitempty"`
	Span       *detect.Span `json:"span,omitempty"`
}

// ValidationResult is the immutable outcome of one pipeline run. Build it
// with NewResult so Score always derives from Issues.
type ValidationResult struct {
	Score          int     `json:"score"`
	Issues         []Issue `json:"issues"`
	FixedText      string  `json:"fixed_text"`
	Degraded       bool    `json:"degraded"`
	DegradedReason string  `json:"degraded_reason,omitempty"`
}

// NewResult builds a result, computing the score from the issue list.
func NewResult(issues []Issue, fixedText string, degradedReason string) *ValidationResult {
	return &ValidationResult{
		Score:          Score(issues),
		Issues:         issues,
		FixedText:      fixedText,
		Degraded:       degradedReason != "",
		DegradedReason: degradedReason,
	}
}

// HasErrors reports whether any issue is error severity.
func (r *ValidationResult) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-severity issues.
func (r *ValidationResult) ErrorCount() int { return r.countSeverity(SeverityError) }

// WarningCount returns the number of warning-severity issues.
func (r *ValidationResult) WarningCount() int { return r.countSeverity(SeverityWarning) }

func (r *ValidationResult) countSeverity(s Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == s {
			n++
		}
	}
	return n
}

// Evaluation is what an external evaluator returns: its own issues plus a
// candidate corrected prompt. Issue spans refer to the redacted text the
// evaluator was shown, never the original.
type Evaluation struct {
	Issues    []Issue
	FixedText string
}

// Evaluator is the capability interface for the external rule/LLM
// collaborator. Implementations must honor ctx cancellation and deadlines;
// any error (timeout, auth, malformed response) makes the pipeline fall
// back to local-only results rather than fail.
type Evaluator interface {
	// Name identifies the provider, e.g. "openai_compatible".
	Name() string

	// Evaluate reviews already-redacted prompt text.
	Evaluate(ctx context.Context, text string) (Evaluation, error)
}
