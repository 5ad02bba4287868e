// Package readability reduces a page to its main article with
// go-readability before analysis.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/pagedigest"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements pagedigest.Extractor at compile time.
var _ pagedigest.Extractor = (*Extractor)(nil)

// Extractor narrows a page to the article go-readability scores highest,
// so digests summarize the article body rather than site chrome.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main article. Relative links
// in the article are resolved against sourceURL when it is absolute.
func (e *Extractor) Extract(rawHTML, sourceURL string) (*pagedigest.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagedigest.Errorf(pagedigest.EINVALID, "empty HTML input")
	}

	var pageURL *url.URL
	if u, err := url.Parse(sourceURL); err == nil && u.IsAbs() {
		pageURL = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(article.TextContent) == "" {
		return nil, pagedigest.Errorf(pagedigest.EEMPTY, "no article found")
	}

	return &pagedigest.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
