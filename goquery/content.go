package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagedigest"
)

// Ensure ContentExtractor implements pagedigest.Extractor at compile time.
var _ pagedigest.Extractor = (*ContentExtractor)(nil)

// ContentExtractor narrows a page to the main content container of the
// platform that published it, falling back to the whole body when no
// container is found. It keeps the page markup intact, unlike readability
// or trafilatura, so headings and lists retain their structure.
type ContentExtractor struct {
	detector *Detector
}

// NewContentExtractor creates a new ContentExtractor.
func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{detector: NewDetector()}
}

// Extract returns the page title and the HTML of its main content.
func (e *ContentExtractor) Extract(html, sourceURL string) (*pagedigest.ExtractResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, pagedigest.Errorf(pagedigest.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pagedigest.Errorf(pagedigest.EINVALID, "failed to parse HTML: %v", err)
	}

	title := pageTitle(doc)
	platform := e.detector.DetectDocument(doc)

	for _, sel := range ContentSelectors(platform) {
		node := doc.Find(sel).First()
		if node.Length() == 0 || strings.TrimSpace(node.Text()) == "" {
			continue
		}
		content, err := goquery.OuterHtml(node)
		if err != nil {
			return nil, err
		}
		return &pagedigest.ExtractResult{Title: title, ContentHTML: content}, nil
	}

	body, err := doc.Find("body").Html()
	if err != nil {
		return nil, err
	}
	return &pagedigest.ExtractResult{Title: title, ContentHTML: body}, nil
}

// pageTitle prefers og:title over the title element.
func pageTitle(doc *goquery.Document) string {
	if og, ok := doc.Find("meta[property='og:title']").Attr("content"); ok {
		if og = collapse(og); og != "" {
			return og
		}
	}
	return collapse(doc.Find("title").First().Text())
}
