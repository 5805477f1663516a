package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/promptsec/promptval/internal/detect"
	"github.com/promptsec/promptval/internal/redact"
)

// ErrInvalidInput is the only error that crosses the pipeline boundary.
// It marks input that is not decodable text; everything else degrades into
// a valid, scored, redacted result.
var ErrInvalidInput = errors.New("validate: input is not valid UTF-8 text")

// stage enumerates the pipeline state machine. Transitions run strictly
// forward; stage 2 failures branch to stageEvaluationSkipped, never out.
type stage int

const (
	stageStart stage = iota
	stageDetected
	stageEvaluated
	stageEvaluationSkipped
	stageRedactedResult
	stageDone
)

// run carries the intermediate state of one pipeline invocation.
type run struct {
	raw            string
	redactedInput  string
	localIssues    []Issue
	externalIssues []Issue
	fixedText      string
	degradedReason string
}

// Pipeline wires the detector, redactor, severity policy, and optional
// external evaluator into the four-stage validation flow. Pipelines hold
// no per-call state, so one instance serves concurrent invocations.
type Pipeline struct {
	detector   *detect.Detector
	redactor   *redact.Redactor
	evaluator  Evaluator                    // nil disables stage 2
	severities map[detect.Category]Severity // category → severity policy
	fallback   func(string) string          // local compliance pass for degraded runs
}

// NewPipeline builds a pipeline. evaluator may be nil (evaluation
// disabled); severities maps each detector category to the severity its
// pii issues get; fallback formats the degraded fixed text and must accept
// already-redacted input.
func NewPipeline(d *detect.Detector, r *redact.Redactor, evaluator Evaluator, severities map[detect.Category]Severity, fallback func(string) string) *Pipeline {
	if fallback == nil {
		fallback = func(s string) string { return s }
	}
	return &Pipeline{
		detector:   d,
		redactor:   r,
		evaluator:  evaluator,
		severities: severities,
		fallback:   fallback,
	}
}

// Validate runs the full validation flow over text. For any well-formed
// input it returns a complete result: fully redacted fixed text, merged
// issue list with local pii issues first, and a score derived from the
// issues. Evaluator failures are recorded in the result, never returned.
func (p *Pipeline) Validate(ctx context.Context, text string) (*ValidationResult, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidInput
	}

	st := stageStart
	r := &run{raw: text}
	for st != stageDone {
		var err error
		st, err = p.step(ctx, st, r)
		if err != nil {
			return nil, err
		}
	}

	issues := make([]Issue, 0, len(r.localIssues)+len(r.externalIssues))
	issues = append(issues, r.localIssues...)
	issues = append(issues, r.externalIssues...)
	return NewResult(issues, r.fixedText, r.degradedReason), nil
}

// Outcome pairs a result with the input-validation error, for the
// non-blocking calling convention.
type Outcome struct {
	Result *ValidationResult
	Err    error
}

// Go is the asynchronous variant of Validate. It returns immediately; the
// channel yields exactly one Outcome when the run finishes or ctx is
// canceled. Each call is fully independent, so batch callers can keep many
// runs in flight at once.
func (p *Pipeline) Go(ctx context.Context, text string) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		res, err := p.Validate(ctx, text)
		ch <- Outcome{Result: res, Err: err}
	}()
	return ch
}

// step is the single transition function of the state machine.
func (p *Pipeline) step(ctx context.Context, st stage, r *run) (stage, error) {
	switch st {
	case stageStart:
		matches := p.detector.Detect(r.raw)
		r.localIssues = p.matchesToIssues(matches)
		r.redactedInput = p.redactor.All(r.raw)
		return stageDetected, nil

	case stageDetected:
		if p.evaluator == nil {
			r.degradedReason = "evaluation disabled"
			return stageEvaluationSkipped, nil
		}
		if err := ctx.Err(); err != nil {
			r.degradedReason = fmt.Sprintf("evaluation aborted: %v", err)
			return stageEvaluationSkipped, nil
		}
		eval, err := p.evaluator.Evaluate(ctx, r.redactedInput)
		if err != nil {
			r.degradedReason = fmt.Sprintf("evaluator %s unavailable: %v", p.evaluator.Name(), err)
			return stageEvaluationSkipped, nil
		}
		r.externalIssues = eval.Issues
		r.fixedText = eval.FixedText
		if r.fixedText == "" {
			r.fixedText = r.redactedInput
		} else if len(eval.Issues) == 0 && isEcho(r.fixedText, r.redactedInput) {
			// A clean verdict that merely echoes the input back is no
			// fix; substitute the structural rewrite instead.
			r.fixedText = p.fallback(r.redactedInput)
		}
		return stageEvaluated, nil

	case stageEvaluationSkipped:
		r.fixedText = p.fallback(r.redactedInput)
		return stageRedactedResult, nil

	case stageEvaluated:
		return stageRedactedResult, nil

	case stageRedactedResult:
		// Post-return masking is mandatory regardless of what stage 1
		// found: evaluator output is untrusted and may echo or introduce
		// sensitive content absent from the original.
		r.fixedText = p.redactor.All(r.fixedText)
		for i := range r.externalIssues {
			r.externalIssues[i].Message = p.redactor.All(r.externalIssues[i].Message)
			r.externalIssues[i].Suggestion = p.redactor.All(r.externalIssues[i].Suggestion)
		}
		return stageDone, nil

	default:
		return stageDone, fmt.Errorf("validate: unknown pipeline stage %d", st)
	}
}

// isEcho reports whether fixed is the reviewed input returned unchanged,
// ignoring surrounding whitespace. Empty input never counts as an echo.
func isEcho(fixed, reviewed string) bool {
	reviewed = strings.TrimSpace(reviewed)
	return reviewed != "" && strings.TrimSpace(fixed) == reviewed
}

// matchesToIssues converts detector matches into pii issues using the
// severity policy table. Matches arrive in detection order and keep it.
func (p *Pipeline) matchesToIssues(matches []detect.Match) []Issue {
	issues := make([]Issue, 0, len(matches))
	for _, m := range matches {
		sev, ok := p.severities[m.Category]
		if !ok {
			sev = SeverityError
		}
		span := m.Span
		issues = append(issues, Issue{
			Kind:       KindPII,
			Severity:   sev,
			Message:    fmt.Sprintf("Prohibited content detected: %s", m.Category),
			Suggestion: "Remove or redact the sensitive content.",
			Span:       &span,
		})
	}
	return issues
}
