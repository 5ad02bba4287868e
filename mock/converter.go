package mock

import "github.com/fwojciec/pagedigest"

var _ pagedigest.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagedigest.Converter.
type Converter struct {
	ConvertFn func(html, sourceURL string) (string, error)
}

func (c *Converter) Convert(html, sourceURL string) (string, error) {
	return c.ConvertFn(html, sourceURL)
}
