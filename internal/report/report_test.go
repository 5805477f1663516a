package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promptsec/promptval/internal/validate"
)

func sampleResult() *validate.ValidationResult {
	return validate.NewResult([]validate.Issue{
		{Kind: validate.KindPII, Severity: validate.SeverityError, Message: "Prohibited content detected: openai_key"},
		{Kind: validate.KindCompleteness, Severity: validate.SeverityWarning, Message: "no examples"},
	}, "Task: cleaned\n", "")
}

func TestFromResult(t *testing.T) {
	rec := FromResult("prompts/a.txt", sampleResult())

	if rec.Identifier != "prompts/a.txt" {
		t.Errorf("identifier = %q", rec.Identifier)
	}
	if rec.Score != 60 {
		t.Errorf("score = %d, want 60", rec.Score)
	}
	if rec.IssueCount != 2 || rec.ErrorCount != 1 || rec.WarningCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", rec.IssueCount, rec.ErrorCount, rec.WarningCount)
	}
	if rec.FixedText != "Task: cleaned\n" {
		t.Errorf("fixed text = %q", rec.FixedText)
	}
	if rec.Degraded {
		t.Error("result was not degraded")
	}
}

func TestFromResult_NilIssuesMarshalAsEmptyArray(t *testing.T) {
	rec := FromResult("x", validate.NewResult(nil, "", ""))

	var buf bytes.Buffer
	if err := WriteJSON(&buf, []Record{rec}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if strings.Contains(buf.String(), `"issues": null`) {
		t.Errorf("issues serialized as null:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), `"issues": []`) {
		t.Errorf("issues not an empty array:\n%s", buf.String())
	}
}

func TestWriteFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "nested", "out.json")
	recs := []Record{FromResult("a.txt", sampleResult())}

	if err := WriteFile(path, recs); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var parsed []Record
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if len(parsed) != 1 || parsed[0].Score != 60 {
		t.Errorf("round-tripped records = %+v", parsed)
	}
}
