package unfurl

import "encoding/json"

// MaxDescriptionLen caps description length to bound downstream display
// cost. Longer descriptions are cut to MaxDescriptionLen-3 characters plus
// an ellipsis marker.
const MaxDescriptionLen = 500

// Record is the normalized output shape of every extraction path.
//
// All fields except URL are optional; the zero value "" means absent and is
// serialized as an explicit JSON null. URL is guaranteed non-empty: it holds
// a discovered canonical URL or falls back to the originally requested URL,
// so a caller can always recover what it asked for.
//
// A Record is constructed once per extraction call and never mutated
// afterwards.
type Record struct {
	Title           string
	Description     string
	Image           string
	URL             string
	Author          string
	PublicationDate string
	Pages           string
}

// HasSignal reports whether the record carries any extracted field beyond
// the URL fallback. The orchestrator uses it to decide whether a degraded
// response still yielded something worth returning.
func (r *Record) HasSignal() bool {
	return r.Title != "" || r.Description != "" || r.Image != "" ||
		r.Author != "" || r.PublicationDate != "" || r.Pages != ""
}

// MarshalJSON serializes absent optional fields as explicit nulls rather
// than omitting the keys.
func (r *Record) MarshalJSON() ([]byte, error) {
	type jsonRecord struct {
		Title           *string `json:"title"`
		Description     *string `json:"description"`
		Image           *string `json:"image"`
		URL             string  `json:"url"`
		Author          *string `json:"author"`
		PublicationDate *string `json:"publicationDate"`
		Pages           *string `json:"pages"`
	}
	return json.Marshal(jsonRecord{
		Title:           nullable(r.Title),
		Description:     nullable(r.Description),
		Image:           nullable(r.Image),
		URL:             r.URL,
		Author:          nullable(r.Author),
		PublicationDate: nullable(r.PublicationDate),
		Pages:           nullable(r.Pages),
	})
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Truncate cuts s to at most max characters. When s is longer, the result
// is exactly max-3 characters plus "...", for a total length of max.
// Lengths are measured in runes so multibyte text is never split.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
