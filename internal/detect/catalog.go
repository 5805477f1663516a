package detect

import "regexp"

// Category identifies one kind of sensitive data the detector can find.
type Category string

const (
	CategoryEmail        Category = "email"
	CategoryPhone        Category = "phone"
	CategoryCreditCard   Category = "credit_card"
	CategorySSN          Category = "ssn"
	CategoryOpenAIKey    Category = "openai_key"
	CategoryAWSAccessKey Category = "aws_access_key"
	CategoryAWSSecretKey Category = "aws_secret_key"
	CategoryPasswordHint Category = "password_hint"
	CategoryTokenHint    Category = "token_hint"
	CategoryPrivateKey   Category = "private_key"
	CategoryJWT          Category = "jwt"
	CategoryGitHubPAT    Category = "github_pat"
	CategorySlackToken   Category = "slack_token"
	CategoryStripeKey    Category = "stripe_key"
	CategoryGoogleAPIKey Category = "google_api_key"
	CategoryBearerToken  Category = "bearer_token"
	CategoryIBAN         Category = "iban"
	CategoryIPv4         Category = "ipv4"
	CategoryIPv6         Category = "ipv6"
)

// Rule binds a category to the pattern that detects it.
type Rule struct {
	Category Category
	Pattern  *regexp.Regexp
}

// catalog is the ordered pattern table. Order matters twice: it is the
// tie-break when two categories claim a match starting at the same offset
// and the same length, and it keeps broad patterns (generic 40-char
// secrets, bearer tokens) from stealing matches that a more specific
// earlier category already claimed. Adding a category is a table addition,
// not a code change.
var catalog = []Rule{
	{CategoryEmail, regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)},
	{CategoryPhone, regexp.MustCompile(`(?:\+\d{1,3}[ -]?)?(?:\(\d{1,4}\)[ -]?)?\d{3,4}[ -]?\d{3,4}[ -]?\d{3,4}`)},
	{CategoryCreditCard, regexp.MustCompile(`\b(?:\d[ -]*?){13,19}\b`)},
	{CategorySSN, regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{CategoryOpenAIKey, regexp.MustCompile(`\bsk-[A-Za-z0-9]{20,}\b`)},
	{CategoryAWSAccessKey, regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`)},
	{CategoryAWSSecretKey, regexp.MustCompile(`\b[0-9A-Za-z/+]{40}\b`)},
	{CategoryPasswordHint, regexp.MustCompile(`(?i)password\s*[:=]`)},
	{CategoryTokenHint, regexp.MustCompile(`(?i)(?:api|access|secret|bearer)\s*token`)},
	{CategoryPrivateKey, regexp.MustCompile(`(?i)-----BEGIN (?:RSA|EC|OPENSSH|PGP) PRIVATE KEY-----[\s\S]*?-----END .*? PRIVATE KEY-----`)},
	{CategoryJWT, regexp.MustCompile(`\b[A-Za-z0-9-_]+\.[A-Za-z0-9-_]+\.[A-Za-z0-9-_]+\b`)},
	{CategoryGitHubPAT, regexp.MustCompile(`\b(?:ghp_[A-Za-z0-9]{36}|github_pat_[A-Za-z0-9_]{82})\b`)},
	{CategorySlackToken, regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9-]+\b`)},
	{CategoryStripeKey, regexp.MustCompile(`\bsk_(?:live|test)_[A-Za-z0-9]{24,}\b`)},
	{CategoryGoogleAPIKey, regexp.MustCompile(`\bAIza[0-9A-Za-z\-_]{35}\b`)},
	{CategoryBearerToken, regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9\-._~+/]+=*\b`)},
	{CategoryIBAN, regexp.MustCompile(`\b[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}\b`)},
	{CategoryIPv4, regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4]\d|[01]?\d\d?)\.){3}(?:25[0-5]|2[0-4]\d|[01]?\d\d?)\b`)},
	{CategoryIPv6, regexp.MustCompile(`(?i)\b(?:[0-9a-f]{1,4}:){7}[0-9a-f]{1,4}\b`)},
}

// Categories returns every category in catalog order.
func Categories() []Category {
	out := make([]Category, len(catalog))
	for i, r := range catalog {
		out[i] = r.Category
	}
	return out
}

// KnownCategory reports whether c is part of the catalog.
func KnownCategory(c Category) bool {
	for _, r := range catalog {
		if r.Category == c {
			return true
		}
	}
	return false
}
