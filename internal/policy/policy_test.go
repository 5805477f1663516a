package policy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promptsec/promptval/internal/detect"
	"github.com/promptsec/promptval/internal/validate"
)

func writePolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault_CoversEveryCategory(t *testing.T) {
	pol := Default()
	for _, cat := range detect.Categories() {
		sev, ok := pol.Severities[string(cat)]
		if !ok {
			t.Errorf("category %s missing from default policy", cat)
			continue
		}
		if !validate.KnownSeverity(sev) {
			t.Errorf("category %s has invalid severity %q", cat, sev)
		}
	}
	if len(pol.Severities) != len(detect.Categories()) {
		t.Errorf("policy has %d entries, catalog has %d", len(pol.Severities), len(detect.Categories()))
	}
}

func TestDefault_CredentialsAreErrors(t *testing.T) {
	pol := Default()
	tests := []struct {
		category detect.Category
		want     validate.Severity
	}{
		{detect.CategoryOpenAIKey, validate.SeverityError},
		{detect.CategoryAWSSecretKey, validate.SeverityError},
		{detect.CategoryPrivateKey, validate.SeverityError},
		{detect.CategorySSN, validate.SeverityError},
		{detect.CategoryCreditCard, validate.SeverityError},
		{detect.CategoryEmail, validate.SeverityWarning},
		{detect.CategoryPhone, validate.SeverityWarning},
		{detect.CategoryIPv4, validate.SeverityWarning},
	}
	for _, tt := range tests {
		if got := pol.Severities[string(tt.category)]; got != tt.want {
			t.Errorf("default severity for %s = %s, want %s", tt.category, got, tt.want)
		}
	}
}

func TestLoad_MissingFileYieldsDefault(t *testing.T) {
	pol, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(pol.Severities) != len(Default().Severities) {
		t.Error("missing file should yield the full default policy")
	}
}

func TestLoad_PartialFileOverlaysDefault(t *testing.T) {
	path := writePolicy(t, "version: \"0.2\"\nseverities:\n  email: error\n")

	pol, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pol.Version != "0.2" {
		t.Errorf("version = %q, want 0.2", pol.Version)
	}
	if got := pol.Severities["email"]; got != validate.SeverityError {
		t.Errorf("email severity = %s, want error (overridden)", got)
	}
	// Untouched entries keep their defaults.
	if got := pol.Severities[string(detect.CategoryPhone)]; got != validate.SeverityWarning {
		t.Errorf("phone severity = %s, want warning (default)", got)
	}
	if len(pol.Severities) != len(detect.Categories()) {
		t.Errorf("overlay shrank the table to %d entries", len(pol.Severities))
	}
}

func TestLoad_RejectsUnknownCategory(t *testing.T) {
	path := writePolicy(t, "severities:\n  passport: error\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "unknown category") {
		t.Errorf("err = %v, want unknown category error", err)
	}
}

func TestLoad_RejectsUnknownSeverity(t *testing.T) {
	path := writePolicy(t, "severities:\n  email: critical\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "unknown severity") {
		t.Errorf("err = %v, want unknown severity error", err)
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := writePolicy(t, "severities: [not, a, map\n")
	if _, err := Load(path); err == nil {
		t.Error("malformed YAML should fail to load")
	}
}

func TestSeverityTable(t *testing.T) {
	table := Default().SeverityTable()
	if got := table[detect.CategoryEmail]; got != validate.SeverityWarning {
		t.Errorf("table[email] = %s, want warning", got)
	}
	if len(table) != len(detect.Categories()) {
		t.Errorf("table has %d entries, want %d", len(table), len(detect.Categories()))
	}
}
