package goquery

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/unfurl-go/unfurl"
)

// Ensure AmazonExtractor implements unfurl.Extractor at compile time.
var _ unfurl.Extractor = (*AmazonExtractor)(nil)

// AmazonExtractor extracts product and book metadata from Amazon detail
// pages across all recognized country domains. Amazon's markup varies by
// category and locale, so every field runs through a fallback chain.
type AmazonExtractor struct{}

// NewAmazonExtractor creates a new AmazonExtractor.
func NewAmazonExtractor() *AmazonExtractor {
	return &AmazonExtractor{}
}

// brandPatterns extract a brand name from the "visit the store" byline
// boilerplate. Each language is a separate rule, tried in order; the
// patterns are deliberately distinct per language rather than unified.
var brandPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)visit the (.+?) store`),                 // EN
	regexp.MustCompile(`(?i)visita la tienda de (.+)`),              // ES
	regexp.MustCompile(`(?i)visiter la boutique (.+)`),              // FR
	regexp.MustCompile(`(?i)besuche(?:n sie)? den (.+?)[\s-]store`), // DE
}

// bylinePrefixes and bylineSuffixes are stripped from the raw byline link
// text as the last-resort author cleanup, covering the same four locales.
var bylinePrefixes = []string{
	"Visit the ",
	"Visita la tienda de ",
	"Visiter la boutique ",
	"Besuchen Sie den ",
	"Besuche den ",
	"Brand: ",
	"Marca: ",
	"Marque : ",
	"Marke: ",
}

var bylineSuffixes = []string{
	" Store",
	" store",
	"-Store",
	" Tienda",
	" tienda",
	" boutique",
}

// Extract parses an Amazon product page and returns its record.
func (e *AmazonExtractor) Extract(html string, pageURL string) (*unfurl.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, unfurl.Errorf(unfurl.EINVALID, "parse HTML for %s: %v", pageURL, err)
	}

	rec := &unfurl.Record{
		Title:       e.title(doc),
		Author:      e.author(doc),
		Description: unfurl.Truncate(e.description(doc), unfurl.MaxDescriptionLen),
		Image:       e.image(doc),
		URL:         pageURL,
	}
	if v, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok && strings.TrimSpace(v) != "" {
		rec.URL = strings.TrimSpace(v)
	}
	return rec, nil
}

func (e *AmazonExtractor) title(doc *goquery.Document) string {
	if v := strings.TrimSpace(doc.Find("#productTitle").First().Text()); v != "" {
		return v
	}
	if v := strings.TrimSpace(doc.Find("#ebooksProductTitle").First().Text()); v != "" {
		return v
	}
	// The title meta is "Product Name: Subtitle ... : Amazon.de: Books";
	// only the segment before the first colon is the product name.
	if v := metaContent(doc, `meta[name="title"]`); v != "" {
		if i := strings.Index(v, ":"); i >= 0 {
			v = v[:i]
		}
		return strings.TrimSpace(v)
	}
	return ""
}

func (e *AmazonExtractor) author(doc *goquery.Document) string {
	if v := strings.TrimSpace(doc.Find("#bylineInfo .author a").First().Text()); v != "" {
		return v
	}
	if v := strings.TrimSpace(doc.Find(`a[id^="contributorNameID"]`).First().Text()); v != "" {
		return v
	}
	if v := strings.TrimSpace(doc.Find("span.author a").First().Text()); v != "" {
		return v
	}

	byline := strings.TrimSpace(doc.Find("#bylineInfo a").First().Text())
	if byline == "" {
		return ""
	}
	for _, re := range brandPatterns {
		if m := re.FindStringSubmatch(byline); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return cleanByline(byline)
}

// cleanByline strips known locale boilerplate from a byline link text.
func cleanByline(s string) string {
	for _, p := range bylinePrefixes {
		if strings.HasPrefix(s, p) {
			s = s[len(p):]
			break
		}
	}
	for _, suf := range bylineSuffixes {
		if strings.HasSuffix(s, suf) {
			s = s[:len(s)-len(suf)]
			break
		}
	}
	return strings.TrimSpace(s)
}

// bookDescriptionContainers are tried in order; within each, concatenated
// paragraph texts are preferred over the raw container text.
var bookDescriptionContainers = []string{
	"#bookDescription_feature_div .a-expander-content",
	"#bookDescription_feature_div",
}

func (e *AmazonExtractor) description(doc *goquery.Document) string {
	for _, sel := range bookDescriptionContainers {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}
		var parts []string
		container.Find("p").Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); t != "" {
				parts = append(parts, t)
			}
		})
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
		if t := strings.TrimSpace(container.Text()); t != "" {
			return t
		}
	}

	if v := strings.TrimSpace(doc.Find("#productDescription p").First().Text()); v != "" {
		return v
	}

	if v := e.featureBullets(doc); v != "" {
		return v
	}

	// Meta description is the least trustworthy source: Amazon repeats
	// site-name boilerplate there on many locales.
	if v := metaContent(doc, `meta[name="description"]`); len([]rune(v)) > 50 &&
		!strings.HasPrefix(strings.ToLower(v), "amazon") {
		return v
	}
	return ""
}

// featureBullets joins the first three feature bullets, skipping the
// hidden legal-disclaimer bullet Amazon injects into the same list.
func (e *AmazonExtractor) featureBullets(doc *goquery.Document) string {
	var bullets []string
	doc.Find("#feature-bullets li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		if li.AttrOr("id", "") == "replacementPartsFitmentBullet" || li.HasClass("aok-hidden") {
			return true
		}
		text := strings.TrimSpace(li.Find(".a-list-item").First().Text())
		if text == "" {
			text = strings.TrimSpace(li.Text())
		}
		if text != "" {
			bullets = append(bullets, text)
		}
		return len(bullets) < 3
	})
	return strings.Join(bullets, " ")
}

// imageElements carry the data-a-dynamic-image candidate map on product,
// book, and e-book pages respectively.
var imageElements = []string{"#landingImage", "#imgBlkFront", "#ebooksImgBlkFront"}

func (e *AmazonExtractor) image(doc *goquery.Document) string {
	for _, sel := range imageElements {
		img := doc.Find(sel).First()
		if img.Length() == 0 {
			continue
		}
		if raw, ok := img.Attr("data-a-dynamic-image"); ok {
			if best := largestDynamicImage(raw); best != "" {
				return best
			}
		}
		if src := strings.TrimSpace(img.AttrOr("src", "")); src != "" {
			return src
		}
	}
	return metaContent(doc, `meta[property="og:image"]`)
}

// largestDynamicImage parses the data-a-dynamic-image JSON attribute, a map
// of candidate URL to [width, height], and returns the URL with the largest
// area. Returns "" when the attribute does not parse.
func largestDynamicImage(raw string) string {
	var candidates map[string][]float64
	if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
		return ""
	}
	var best string
	var bestArea float64
	for u, dims := range candidates {
		if len(dims) < 2 {
			continue
		}
		if area := dims[0] * dims[1]; area > bestArea {
			best, bestArea = u, area
		}
	}
	return best
}
