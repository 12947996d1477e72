package unfurl

import (
	"net/url"
	"strings"
)

// Kind identifies which extraction strategy applies to a URL.
// It is a transient routing decision, never persisted.
type Kind string

// Supported site kinds. KindGeneric is the fallback for everything
// unrecognized, including unparsable URLs.
const (
	KindGeneric   Kind = "generic"
	KindProduct   Kind = "product"
	KindShortPost Kind = "shortpost"
	KindVideo     Kind = "video"
	KindPublisher Kind = "publisher"
)

// amazonHosts lists the recognized Amazon country domains. Matching is by
// suffix so subdomains (www, smile) are covered.
var amazonHosts = []string{
	"amazon.com",
	"amazon.co.uk",
	"amazon.de",
	"amazon.fr",
	"amazon.es",
	"amazon.it",
	"amazon.ca",
	"amazon.com.mx",
	"amazon.com.br",
	"amazon.co.jp",
	"amazon.in",
	"amazon.com.au",
}

// twitterHosts lists the hosts that serve short-post status pages.
var twitterHosts = []string{
	"twitter.com",
	"x.com",
	"mobile.twitter.com",
	"mobile.x.com",
}

// youtubeHosts lists the hosts that serve video watch pages.
var youtubeHosts = []string{
	"youtube.com",
	"youtu.be",
}

const packtHost = "packtpub.com"

// packtFreeSegment is the promotional path that marks the free-ebook-of-the-day
// page; the rest of packtpub.com goes through the generic path.
const packtFreeSegment = "/free-learning"

// Classify inspects a URL's host and path and returns the extraction
// strategy that applies. It performs no I/O and never fails: a malformed
// URL classifies as KindGeneric.
func Classify(rawURL string) Kind {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return KindGeneric
	}
	host := strings.ToLower(u.Hostname())

	switch {
	case matchesHost(host, youtubeHosts):
		return KindVideo
	case matchesHost(host, twitterHosts):
		return KindShortPost
	case matchesHost(host, amazonHosts):
		return KindProduct
	case matchesHost(host, []string{packtHost}) && strings.Contains(u.Path, packtFreeSegment):
		return KindPublisher
	}
	return KindGeneric
}

// matchesHost reports whether host equals any candidate or is a subdomain
// of one (e.g. "www.amazon.es" matches "amazon.es").
func matchesHost(host string, candidates []string) bool {
	for _, c := range candidates {
		if host == c || strings.HasSuffix(host, "."+c) {
			return true
		}
	}
	return false
}

// ParseStatusPath extracts the author handle and post ID from a short-post
// status URL of the form /<handle>/status/<id>. The reported ok is false
// when the URL does not match that shape.
func ParseStatusPath(rawURL string) (handle, id string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 3 || parts[1] != "status" {
		return "", "", false
	}
	handle, id = parts[0], parts[2]
	if handle == "" || id == "" || !isDigits(id) {
		return "", "", false
	}
	return handle, id, true
}

// YouTubeVideoID extracts the video identifier from the long-form
// (youtube.com/watch?v=ID), short-link (youtu.be/ID), shorts, and embed URL
// shapes. The reported ok is false when no identifier can be derived.
func YouTubeVideoID(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	path := strings.Trim(u.Path, "/")

	if host == "youtu.be" {
		if id := firstSegment(path); id != "" {
			return id, true
		}
		return "", false
	}
	if !matchesHost(host, []string{"youtube.com"}) {
		return "", false
	}
	if firstSegment(path) == "watch" {
		if id := u.Query().Get("v"); id != "" {
			return id, true
		}
		return "", false
	}
	for _, prefix := range []string{"shorts/", "embed/", "live/"} {
		if strings.HasPrefix(path, prefix) {
			if id := firstSegment(strings.TrimPrefix(path, prefix)); id != "" {
				return id, true
			}
		}
	}
	return "", false
}

func firstSegment(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
