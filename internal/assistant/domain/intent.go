// Package domain holds the pure answer-shaping logic of the assistant:
// intent classification, query enrichment, and answer composition.
package domain

import "strings"

// Intent classifies what the user is asking for.
type Intent string

const (
	// IntentPermission marks questions about whether an activity is
	// allowed or forbidden.
	IntentPermission Intent = "permission"
	// IntentInformational is the default for everything else.
	IntentInformational Intent = "informational"
)

// permissionPhrases are the phrases, Arabic and English, that mark a
// permission-style question. Matching is substring-based on the lowercased
// query.
var permissionPhrases = []string{
	"هل مسموح",
	"هل ممنوع",
	"هل يجوز",
	"هل يمكنني",
	"هل يحق لي",
	"يجوز",
	"مسموح",
	"ممنوع",
	"is it allowed",
	"is it forbidden",
	"am i allowed",
	"may i",
	"can i",
}

// DetectIntent classifies a query. Every input maps to exactly one intent;
// queries without a permission phrase are informational.
func DetectIntent(query string) Intent {
	lowered := strings.ToLower(query)
	for _, phrase := range permissionPhrases {
		if strings.Contains(lowered, phrase) {
			return IntentPermission
		}
	}
	return IntentInformational
}
