// Package structure provides the local prompt-formatting capability: a
// minimal structured rewrite used when external evaluation is unavailable,
// and a compliance pass that tidies any corrected prompt (section spacing,
// reasoning hint, newline normalization). It operates on already-redacted
// text and never inspects meaning.
package structure

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	noLongerThanRe = regexp.MustCompile(`(?i)no\s+longer\s+than\s+(\d+)\s+words`)
	exactlyRe      = regexp.MustCompile(`(?i)exactly\s+(\d+)\s+words`)

	mathSignalRe = regexp.MustCompile(`[0-9]\s*[*×/+\-]\s*[0-9]`)
	cotPresentRe = regexp.MustCompile(`(?i)think\s+step\s+by\s+step`)

	// Section headers that need a blank line before them. Each pattern
	// fires only when exactly one newline separates the header from the
	// preceding content.
	headerSpacingRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)([^\n])\n([ \t]*task[ \t]*:)`),
		regexp.MustCompile(`(?i)([^\n])\n([ \t]*success[ \t]*criteria[ \t]*:)`),
		regexp.MustCompile(`(?i)([^\n])\n([ \t]*examples?(?:[ \t]*with[ \t]*edge[ \t]*cases)?[ \t]*:)`),
		regexp.MustCompile(`(?i)([^\n])\n([ \t]*(?:cot|chain[ \t]*of[ \t]*thought|tot|tree[ \t]*of[ \t]*thought)[ \t]*:)`),
		regexp.MustCompile(`(?i)([^\n])\n([ \t]*no[ \t]*secrets[ \t]*/[ \t]*no[ \t]*pii[ \t]*:)`),
	}

	reasoningKeywords = []string{
		"^", "sqrt", "log", "ln", "sum(", "product(",
		"step by step", "chain of thought", "tree of thought", "plan the steps", "outline steps",
	}
)

// Normalize converts CRLF and bare CR line endings to LF.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Compliance tidies a corrected prompt: normalizes line endings, prepends
// a chain-of-thought hint when the text shows math or reasoning signals,
// ensures blank-line separation before common section headers, and ends
// with exactly one trailing newline.
func Compliance(text string) string {
	clean := strings.TrimSpace(Normalize(text))

	if needsReasoningHint(clean) && !cotPresentRe.MatchString(clean) {
		clean = "Think step by step\n" + clean
	}

	for _, re := range headerSpacingRes {
		clean = re.ReplaceAllString(clean, "$1\n\n$2")
	}

	if !strings.HasSuffix(clean, "\n") {
		clean += "\n"
	}
	return clean
}

// Fix builds a minimal structured prompt from raw body text without any
// external help. Length constraints stated in the body are lifted into the
// success criteria so they survive the rewrite.
func Fix(text string) string {
	body := strings.TrimSpace(Normalize(text))

	var lengthRules []string
	for _, m := range noLongerThanRe.FindAllStringSubmatch(body, -1) {
		lengthRules = append(lengthRules, fmt.Sprintf("Response must be no more than %s words", m[1]))
	}
	for _, m := range exactlyRe.FindAllStringSubmatch(body, -1) {
		lengthRules = append(lengthRules, fmt.Sprintf("Response must be exactly %s words", m[1]))
	}

	lines := []string{
		"Task:",
		"  " + body,
		"",
		"Success Criteria:",
		"  - Follow the instructions in Task",
	}
	for _, rule := range lengthRules {
		lines = append(lines, "  - "+rule)
	}
	lines = append(lines,
		"  - Do not include secrets or PII",
		"",
		"Examples:",
		"  - Normal Example: Provide a clear, concise answer",
		"  - Edge Case: Handle minimal or ambiguous input gracefully",
		"",
		"No Secrets / No PII:",
		"  Do not include personal information, credentials, or confidential data.",
	)

	return Compliance(strings.Join(lines, "\n"))
}

func needsReasoningHint(text string) bool {
	if mathSignalRe.MatchString(text) {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range reasoningKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
