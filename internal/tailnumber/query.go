package tailnumber

import (
	"regexp"
	"strings"
)

// Intent is the classification of a free-text search.
type Intent string

const (
	IntentForensic      Intent = "forensic"
	IntentSafetyTrends  Intent = "safety_trends"
	IntentClarification Intent = "clarification"
)

// QueryResult is the outcome of ParseQuery.
type QueryResult struct {
	Intent  Intent
	Target  string // canonical mark for IntentForensic
	Message string
}

// US marks in prose must start with a non-zero digit after the N, otherwise
// ordinary words ("NEED") would match. Canadian marks need their hyphen.
var embeddedMark = regexp.MustCompile(`(?i)\b(N[1-9][A-Z0-9]{0,4}|C-[A-Z]{4})\b`)

var trendKeywords = []string{"incident", "damage", "accident"}

// ParseQuery classifies a natural language query.
func ParseQuery(text string) QueryResult {
	if m := embeddedMark.FindString(text); m != "" {
		if tail, err := Normalize(m); err == nil {
			return QueryResult{
				Intent:  IntentForensic,
				Target:  tail,
				Message: "Analyzing forensic safety records for " + tail + "...",
			}
		}
	}

	lower := strings.ToLower(text)
	for _, kw := range trendKeywords {
		if strings.Contains(lower, kw) {
			return QueryResult{
				Intent:  IntentSafetyTrends,
				Message: "Analyzing global safety trends and recent accident filings...",
			}
		}
	}

	return QueryResult{
		Intent:  IntentClarification,
		Message: "Provide a tail number (e.g. N123AB or C-GABC) for a forensic scan, or ask about safety trends.",
	}
}
