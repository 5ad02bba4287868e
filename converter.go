package pagedigest

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown. Relative links are
	// made absolute against sourceURL when it is non-empty.
	Convert(html string, sourceURL string) (string, error)
}
