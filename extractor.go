package pagedigest

// ExtractResult holds the main content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title found in metadata.
	Title string

	// ContentHTML is the main content with boilerplate removed.
	ContentHTML string
}

// Extractor reduces a page to its main content before normalization.
type Extractor interface {
	// Extract processes raw HTML and returns the main content. sourceURL
	// may be empty.
	Extract(html string, sourceURL string) (*ExtractResult, error)
}
