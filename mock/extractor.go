package mock

import "github.com/fwojciec/pagedigest"

var _ pagedigest.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagedigest.Extractor.
type Extractor struct {
	ExtractFn func(html, sourceURL string) (*pagedigest.ExtractResult, error)
}

func (e *Extractor) Extract(html, sourceURL string) (*pagedigest.ExtractResult, error) {
	return e.ExtractFn(html, sourceURL)
}
