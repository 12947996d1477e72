// Package goquery provides HTML-based extractor implementations built on
// github.com/PuerkitoBio/goquery: the generic metadata reader, the
// lead-paragraph heuristic, and the Amazon and Packt specializations.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/unfurl-go/unfurl"
)

// Ensure Reader implements unfurl.Extractor at compile time.
var _ unfurl.Extractor = (*Reader)(nil)

// Reader is the widest-compatibility metadata extractor. Each field is
// resolved through a strictly ordered precedence chain (Open Graph, Twitter
// Card, standard meta tags, DOM heuristics) that short-circuits on the
// first match; partial signals are never merged across sources.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Extract parses html and returns a best-effort record for pageURL.
func (r *Reader) Extract(html string, pageURL string) (*unfurl.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, unfurl.Errorf(unfurl.EINVALID, "parse HTML for %s: %v", pageURL, err)
	}

	rec := &unfurl.Record{
		Title:       r.title(doc),
		Description: r.description(doc),
		Image:       resolveRef(pageURL, r.image(doc)),
		URL:         r.canonical(doc, pageURL),
		Author:      r.author(doc),
	}

	// The declared meta description is often missing or a stub; prefer a
	// longer lead paragraph when one exists.
	if lead := leadParagraph(doc, rec.Description); lead != "" {
		rec.Description = lead
	}
	rec.Description = unfurl.Truncate(rec.Description, unfurl.MaxDescriptionLen)

	return rec, nil
}

func (r *Reader) title(doc *goquery.Document) string {
	if v := metaContent(doc, `meta[property="og:title"]`); v != "" {
		return v
	}
	if v := metaContent(doc, `meta[name="twitter:title"]`); v != "" {
		return v
	}
	if v := strings.TrimSpace(doc.Find("title").First().Text()); v != "" {
		return v
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

func (r *Reader) description(doc *goquery.Document) string {
	if v := metaContent(doc, `meta[property="og:description"]`); v != "" {
		return v
	}
	if v := metaContent(doc, `meta[name="twitter:description"]`); v != "" {
		return v
	}
	return metaContent(doc, `meta[name="description"]`)
}

func (r *Reader) image(doc *goquery.Document) string {
	if v := metaContent(doc, `meta[property="og:image"]`); v != "" {
		return v
	}
	if v := metaContent(doc, `meta[name="twitter:image"]`); v != "" {
		return v
	}
	if v, ok := doc.Find("article img").First().Attr("src"); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// bylineSelectors are the common byline class names tried as the last
// author fallback, in priority order.
var bylineSelectors = []string{
	".author",
	".byline",
	".post-author",
	".article-author",
}

func (r *Reader) author(doc *goquery.Document) string {
	if v := metaContent(doc, `meta[property="article:author"]`); v != "" {
		return v
	}
	if v := metaContent(doc, `meta[name="author"]`); v != "" {
		return v
	}
	if v := strings.TrimSpace(doc.Find(`[itemprop="author"]`).First().Text()); v != "" {
		return v
	}
	for _, sel := range bylineSelectors {
		if v := strings.TrimSpace(doc.Find(sel).First().Text()); v != "" {
			return v
		}
	}
	return ""
}

func (r *Reader) canonical(doc *goquery.Document, pageURL string) string {
	if v, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if v := metaContent(doc, `meta[property="og:url"]`); v != "" {
		return v
	}
	return pageURL
}

// metaContent returns the trimmed content attribute of the first element
// matching selector, or "".
func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}

// resolveRef makes ref absolute against base. Already-absolute references
// and unparsable inputs are returned unchanged.
func resolveRef(base, ref string) string {
	if ref == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
