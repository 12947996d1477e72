package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minLeadLen is the minimum length for a lead-paragraph candidate. Anything
// shorter is assumed to be a label or navigation fragment, not prose.
const minLeadLen = 50

// leadSelectors is scanned in order; earlier entries are higher-confidence
// lead/intro markers, later ones are broader article-body fallbacks. The
// order encodes priority and must be preserved.
var leadSelectors = []string{
	".lead",
	".article-lead",
	".post-lead",
	".entry-summary",
	".article-summary",
	".article-intro",
	".post-intro",
	".intro",
	".excerpt",
	".post-excerpt",
	".standfirst",
	".entradilla",
	".chapeau",
	".chapo",
	".teaser",
	`[itemprop="description"]`,
	".article-body > p:first-of-type",
	".entry-content > p:first-of-type",
	".post-content > p:first-of-type",
	"article p",
}

// leadParagraph scans leadSelectors for a human-authored summary that is a
// strict improvement over the already-resolved meta description: longer
// than minLeadLen and longer than current. Returns "" when no candidate
// qualifies — the existing description is never replaced by a shorter or
// equal match.
func leadParagraph(doc *goquery.Document, current string) string {
	currentLen := len([]rune(current))
	for _, sel := range leadSelectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text == "" {
			continue
		}
		n := len([]rune(text))
		if n > minLeadLen && n > currentLen {
			return text
		}
	}
	return ""
}
