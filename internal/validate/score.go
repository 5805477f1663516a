package validate

// Severity penalties. Applied once per issue and summed; there is no
// category weighting beyond severity. That is deliberate policy: the score
// is a coarse triage signal, and the issue list carries the detail.
const (
	penaltyError   = 30
	penaltyWarning = 10
	penaltyInfo    = 5
)

// Score folds issues into a single bounded score. A clean prompt is
// exactly 100; a prompt with many errors bottoms out at 0. The sum is
// commutative, so issue ordering never affects the score.
func Score(issues []Issue) int {
	score := 100
	for _, i := range issues {
		switch i.Severity {
		case SeverityError:
			score -= penaltyError
		case SeverityWarning:
			score -= penaltyWarning
		case SeverityInfo:
			score -= penaltyInfo
		}
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
