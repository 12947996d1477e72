package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/unfurl-go/unfurl"
)

// Ensure PacktExtractor implements unfurl.Extractor at compile time.
var _ unfurl.Extractor = (*PacktExtractor)(nil)

// PacktExtractor extracts the Packt free-ebook-of-the-day page. The page's
// og:image is intentionally empty (the cover loads client-side), so the
// image must be read from the rendered product element instead, and the
// visible labels carry fixed prefixes that need stripping.
type PacktExtractor struct{}

// NewPacktExtractor creates a new PacktExtractor.
func NewPacktExtractor() *PacktExtractor {
	return &PacktExtractor{}
}

const (
	packtTitlePrefix  = "Free eBook - "
	packtAuthorPrefix = "By "
	packtDateLabel    = "Publication date:"
	packtPagesLabel   = "Pages:"
)

// Extract parses a Packt free-learning page and returns its record.
func (e *PacktExtractor) Extract(html string, pageURL string) (*unfurl.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, unfurl.Errorf(unfurl.EINVALID, "parse HTML for %s: %v", pageURL, err)
	}

	rec := &unfurl.Record{
		Title:           trimPrefixFold(text(doc, ".product-info__title"), packtTitlePrefix),
		Author:          strings.TrimPrefix(text(doc, ".product-info__author"), packtAuthorPrefix),
		Description:     unfurl.Truncate(e.description(doc), unfurl.MaxDescriptionLen),
		PublicationDate: trimLabel(text(doc, ".product-info__publication-date"), packtDateLabel),
		Pages:           trimLabel(text(doc, ".product-info__pages"), packtPagesLabel),
		Image:           resolveRef(pageURL, strings.TrimSpace(doc.Find("img.product-image").First().AttrOr("src", ""))),
		URL:             pageURL,
	}
	return rec, nil
}

func (e *PacktExtractor) description(doc *goquery.Document) string {
	if v := text(doc, ".free-learning__product-description"); v != "" {
		return v
	}
	if v := text(doc, ".product-info__description"); v != "" {
		return v
	}
	return metaContent(doc, `meta[name="description"]`)
}

func text(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

// trimPrefixFold strips prefix case-insensitively.
func trimPrefixFold(s, prefix string) string {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return strings.TrimSpace(s[len(prefix):])
	}
	return s
}

// trimLabel strips a "Label:" prefix and surrounding whitespace.
func trimLabel(s, label string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, label))
}
