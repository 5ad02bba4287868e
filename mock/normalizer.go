package mock

import "github.com/fwojciec/pagedigest"

var _ pagedigest.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of pagedigest.Normalizer.
type Normalizer struct {
	NormalizeFn func(html string) *pagedigest.NormalizedDocument
}

func (n *Normalizer) Normalize(html string) *pagedigest.NormalizedDocument {
	return n.NormalizeFn(html)
}
