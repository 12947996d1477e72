package extract

import "strings"

// challengePhrases are the known title openings of bot-mitigation
// interstitial pages. Matching is case-insensitive on the title prefix, so
// "Just a moment... | Example Site" is still detected.
var challengePhrases = []string{
	"just a moment",
	"attention required",
	"checking your browser",
	"please wait",
	"one more step",
}

// IsChallengeTitle reports whether a resolved page title belongs to a
// bot-mitigation challenge page rather than the requested content.
func IsChallengeTitle(title string) bool {
	lower := strings.ToLower(strings.TrimSpace(title))
	for _, phrase := range challengePhrases {
		if strings.HasPrefix(lower, phrase) {
			return true
		}
	}
	return false
}
