// Package safety gates what may be forwarded to the web-search provider.
package safety

import "strings"

// sensitiveTerms mark questions that must never leave the service: they
// usually contain credentials or personally identifying financial data.
var sensitiveTerms = []string{
	"password",
	"card number",
	"credit card",
	"cvv",
	"cvc",
	"ssn",
	"social security",
	"pin",
	"account number",
	"routing number",
	"iban",
	"secret",
	"private key",
	"seed phrase",
}

// searchTriggers are heuristic signals that a question needs current or
// external information. False positives and negatives are acceptable.
var searchTriggers = []string{
	"news",
	"latest",
	"today",
	"current",
	"now",
	"price",
	"rate",
	"rates",
	"inflation",
	"market",
	"stock",
	"crypto",
	"bitcoin",
	"ethereum",
	"interest",
	"fed",
	"economy",
	"exchange",
	"what is",
	"how much is",
	"worth",
}

// IsSafeToSearch reports whether question may be sent to a third-party
// search provider. Matching is case-insensitive substring against a fixed
// blocklist.
func IsSafeToSearch(question string) bool {
	q := strings.ToLower(question)
	for _, term := range sensitiveTerms {
		if strings.Contains(q, term) {
			return false
		}
	}
	return true
}

// ShouldSearch reports whether question warrants a web search at all.
// Blank input never does.
func ShouldSearch(question string) bool {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return false
	}
	for _, term := range searchTriggers {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}
