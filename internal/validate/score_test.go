package validate

import (
	"math/rand"
	"testing"
)

func issueWith(sev Severity) Issue {
	return Issue{Kind: KindCompleteness, Severity: sev, Message: "test"}
}

func TestScore_Penalties(t *testing.T) {
	tests := []struct {
		name   string
		issues []Issue
		want   int
	}{
		{"no issues", nil, 100},
		{"empty slice", []Issue{}, 100},
		{"one error", []Issue{issueWith(SeverityError)}, 70},
		{"one warning", []Issue{issueWith(SeverityWarning)}, 90},
		{"one info", []Issue{issueWith(SeverityInfo)}, 95},
		{
			"mixed",
			[]Issue{
				issueWith(SeverityError), issueWith(SeverityError),
				issueWith(SeverityWarning), issueWith(SeverityInfo),
			},
			25,
		},
		{
			"clamped at zero",
			[]Issue{
				issueWith(SeverityError), issueWith(SeverityError),
				issueWith(SeverityError), issueWith(SeverityError),
			},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.issues); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScore_OrderIndependent(t *testing.T) {
	issues := []Issue{
		issueWith(SeverityError),
		issueWith(SeverityWarning),
		issueWith(SeverityInfo),
		issueWith(SeverityWarning),
	}
	want := Score(issues)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]Issue, len(issues))
		copy(shuffled, issues)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := Score(shuffled); got != want {
			t.Fatalf("Score changed under permutation: %d != %d", got, want)
		}
	}
}

func TestScore_Monotonic(t *testing.T) {
	var issues []Issue
	prev := Score(issues)
	for _, sev := range []Severity{SeverityInfo, SeverityWarning, SeverityError, SeverityError, SeverityError, SeverityError} {
		issues = append(issues, issueWith(sev))
		got := Score(issues)
		if got > prev {
			t.Fatalf("adding an issue increased the score: %d -> %d", prev, got)
		}
		prev = got
	}
}

func TestScore_Bounds(t *testing.T) {
	issues := make([]Issue, 50)
	for i := range issues {
		issues[i] = issueWith(SeverityError)
	}
	if got := Score(issues); got != 0 {
		t.Errorf("Score(50 errors) = %d, want 0", got)
	}
}
