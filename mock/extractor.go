package mock

import "github.com/unfurl-go/unfurl"

var _ unfurl.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of unfurl.Extractor.
type Extractor struct {
	ExtractFn func(html string, url string) (*unfurl.Record, error)
}

func (e *Extractor) Extract(html string, url string) (*unfurl.Record, error) {
	return e.ExtractFn(html, url)
}
