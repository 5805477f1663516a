// Package report turns validation results into the persisted report
// format: one record per input with the score, severity counts, full issue
// detail, and the redacted corrected text.
package report

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/promptsec/promptval/internal/validate"
)

// Record is the report entry for one validated input.
type Record struct {
	Identifier     string           `json:"identifier"`
	Score          int              `json:"score"`
	IssueCount     int              `json:"issue_count"`
	ErrorCount     int              `json:"error_count"`
	WarningCount   int              `json:"warning_count"`
	Issues         []validate.Issue `json:"issues"`
	FixedText      string           `json:"fixed_text"`
	Degraded       bool             `json:"degraded,omitempty"`
	DegradedReason string           `json:"degraded_reason,omitempty"`
}

// FromResult builds the record for one result. identifier is typically the
// input file path.
func FromResult(identifier string, res *validate.ValidationResult) Record {
	issues := res.Issues
	if issues == nil {
		issues = []validate.Issue{}
	}
	return Record{
		Identifier:     identifier,
		Score:          res.Score,
		IssueCount:     len(res.Issues),
		ErrorCount:     res.ErrorCount(),
		WarningCount:   res.WarningCount(),
		Issues:         issues,
		FixedText:      res.FixedText,
		Degraded:       res.Degraded,
		DegradedReason: res.DegradedReason,
	}
}

// WriteJSON writes the records as indented JSON.
func WriteJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteFile writes the JSON report to path, creating parent directories.
func WriteFile(path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, records)
}
