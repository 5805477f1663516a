// Package policy holds the category → severity table that decides how
// hard each sensitive-data finding hits the score. The split is policy,
// not law: the compiled-in default treats credential-bearing categories
// and high-harm identity numbers as errors and mere locators as warnings,
// and a YAML policy file can override any entry.
package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/promptsec/promptval/internal/detect"
	"github.com/promptsec/promptval/internal/validate"
)

// Policy maps detector categories to issue severities.
type Policy struct {
	Version    string                       `yaml:"version"`
	Severities map[string]validate.Severity `yaml:"severities"`
}

// Default returns the built-in severity table covering every catalog
// category.
func Default() *Policy {
	return &Policy{
		Version: "0.1",
		Severities: map[string]validate.Severity{
			string(detect.CategoryEmail):        validate.SeverityWarning,
			string(detect.CategoryPhone):        validate.SeverityWarning,
			string(detect.CategoryCreditCard):   validate.SeverityError,
			string(detect.CategorySSN):          validate.SeverityError,
			string(detect.CategoryOpenAIKey):    validate.SeverityError,
			string(detect.CategoryAWSAccessKey): validate.SeverityError,
			string(detect.CategoryAWSSecretKey): validate.SeverityError,
			string(detect.CategoryPasswordHint): validate.SeverityError,
			string(detect.CategoryTokenHint):    validate.SeverityError,
			string(detect.CategoryPrivateKey):   validate.SeverityError,
			string(detect.CategoryJWT):          validate.SeverityError,
			string(detect.CategoryGitHubPAT):    validate.SeverityError,
			string(detect.CategorySlackToken):   validate.SeverityError,
			string(detect.CategoryStripeKey):    validate.SeverityError,
			string(detect.CategoryGoogleAPIKey): validate.SeverityError,
			string(detect.CategoryBearerToken):  validate.SeverityError,
			string(detect.CategoryIBAN):         validate.SeverityWarning,
			string(detect.CategoryIPv4):         validate.SeverityWarning,
			string(detect.CategoryIPv6):         validate.SeverityWarning,
		},
	}
}

// Load reads a severity policy from path. A missing file yields the
// default policy; a present file overlays the default, so partial files
// only need the entries they change. Unknown categories or severities are
// load errors rather than silent no-ops.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var file Policy
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("policy: parse %s: %w", path, err)
	}

	pol := Default()
	if file.Version != "" {
		pol.Version = file.Version
	}
	for cat, sev := range file.Severities {
		if !detect.KnownCategory(detect.Category(cat)) {
			return nil, fmt.Errorf("policy: unknown category %q in %s", cat, path)
		}
		if !validate.KnownSeverity(sev) {
			return nil, fmt.Errorf("policy: unknown severity %q for category %q in %s", sev, cat, path)
		}
		pol.Severities[cat] = sev
	}
	return pol, nil
}

// SeverityTable converts the policy into the lookup the pipeline consumes.
func (p *Policy) SeverityTable() map[detect.Category]validate.Severity {
	table := make(map[detect.Category]validate.Severity, len(p.Severities))
	for cat, sev := range p.Severities {
		table[detect.Category(cat)] = sev
	}
	return table
}
