package evaluator

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/promptsec/promptval/internal/detect"
	"github.com/promptsec/promptval/internal/structure"
	"github.com/promptsec/promptval/internal/validate"
)

// rawIssue accepts the field spellings models actually produce.
type rawIssue struct {
	Type       string `json:"type"`
	IssueType  string `json:"issue_type"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
	Span       []int  `json:"span"`
	Range      []int  `json:"range"`
}

type rawPayload struct {
	Issues          []rawIssue `json:"issues"`
	FixedText       string     `json:"fixed_text"`
	Fixed           string     `json:"fixed"`
	CorrectedPrompt string     `json:"corrected_prompt"`
	Output          string     `json:"output"`
}

// parseEvaluation turns a model's text answer into an Evaluation. Parsing
// is tolerant: code fences are stripped, text around the outermost JSON
// object is discarded, issues with an unknown kind are dropped, unknown
// severities downgrade to warning, and malformed spans become nil. reviewed
// is the text the model was shown; spans are bounds-checked against it.
func parseEvaluation(content, reviewed string) (validate.Evaluation, error) {
	var payload rawPayload
	if err := json.Unmarshal([]byte(extractJSON(content)), &payload); err != nil {
		return validate.Evaluation{}, fmt.Errorf("evaluator: malformed response: %w", err)
	}

	reviewedLen := utf8.RuneCountInString(reviewed)
	issues := make([]validate.Issue, 0, len(payload.Issues))
	for _, raw := range payload.Issues {
		kind := validate.IssueKind(strings.ToLower(strings.TrimSpace(firstNonEmpty(raw.Type, raw.IssueType))))
		if !validate.KnownKind(kind) {
			continue
		}
		severity := validate.Severity(strings.ToLower(strings.TrimSpace(raw.Severity)))
		if !validate.KnownSeverity(severity) {
			severity = validate.SeverityWarning
		}
		message := strings.TrimSpace(raw.Message)
		if message == "" {
			message = capitalize(string(kind)) + " detected"
		}
		span := parseSpan(firstSpan(raw.Span, raw.Range), reviewedLen)
		// pii issues always carry a span; one the model could not place
		// is unusable, and local detection covers the text anyway.
		if kind == validate.KindPII && span == nil {
			continue
		}
		issues = append(issues, validate.Issue{
			Kind:       kind,
			Severity:   severity,
			Message:    message,
			Suggestion: strings.TrimSpace(raw.Suggestion),
			Span:       span,
		})
	}

	fixed := firstNonBlank(payload.FixedText, payload.Fixed, payload.CorrectedPrompt, payload.Output)
	if fixed != "" {
		fixed = structure.Compliance(fixed)
	}
	return validate.Evaluation{Issues: issues, FixedText: fixed}, nil
}

// extractJSON strips markdown code fences and anything outside the
// outermost braces.
func extractJSON(content string) string {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```") && strings.HasSuffix(s, "```") {
		if nl := strings.IndexByte(s, '\n'); nl != -1 {
			s = strings.TrimSpace(s[nl+1 : len(s)-3])
		}
	}
	l := strings.IndexByte(s, '{')
	r := strings.LastIndexByte(s, '}')
	if l != -1 && r > l {
		s = s[l : r+1]
	}
	return s
}

func parseSpan(pair []int, reviewedLen int) *detect.Span {
	if len(pair) != 2 {
		return nil
	}
	start, end := pair[0], pair[1]
	if start < 0 || end <= start || end > reviewedLen {
		return nil
	}
	return &detect.Span{Start: start, End: end}
}

func firstSpan(spans ...[]int) []int {
	for _, s := range spans {
		if len(s) > 0 {
			return s
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
