// Package analyze implements the content analysis engine. It turns raw
// markup into an AnalysisResult: title, extractive summary, key points,
// candidate tasks and page metadata.
//
// The engine performs no I/O and holds no mutable state, so one Engine may
// serve any number of concurrent Analyze calls.
package analyze

import (
	"strings"
	"time"

	"github.com/fwojciec/pagedigest"
)

// Ensure Engine implements pagedigest.Analyzer at compile time.
var _ pagedigest.Analyzer = (*Engine)(nil)

// Engine runs the analysis pipeline: normalize, then collect metadata,
// resolve the title and segment the text, then summarize and detect tasks.
type Engine struct {
	// Extractor optionally narrows the document to its main content before
	// normalization. Extraction failures fall back to the whole document.
	Extractor pagedigest.Extractor

	// Now returns the extraction timestamp. Defaults to time.Now.
	Now func() time.Time

	normalizer pagedigest.Normalizer
	config     pagedigest.Config
	lexicon    *lexicon
}

// NewEngine returns an engine using the given normalizer, lexicon and
// configuration. A nil lexicon selects pagedigest.DefaultLexicon.
func NewEngine(normalizer pagedigest.Normalizer, lex *pagedigest.Lexicon, cfg pagedigest.Config) *Engine {
	if lex == nil {
		lex = pagedigest.DefaultLexicon()
	}
	return &Engine{
		Now:        time.Now,
		normalizer: normalizer,
		config:     cfg,
		lexicon:    compileLexicon(lex),
	}
}

// Analyze returns the digest of document. It fails only with EEMPTY.
func (e *Engine) Analyze(document string, sourceURL string) (*pagedigest.AnalysisResult, error) {
	if strings.TrimSpace(document) == "" {
		return nil, pagedigest.Errorf(pagedigest.EEMPTY, "document is empty")
	}
	if limit := e.config.MaxDocumentBytes; limit > 0 && len(document) > limit {
		document = strings.ToValidUTF8(document[:limit], "")
	}

	doc := e.normalize(document, sourceURL)

	wordCount := len(strings.Fields(doc.Text))
	headings, links := collectMetadata(doc, sourceURL)
	title := resolveTitle(doc, e.config)

	units := segment(doc, e.config)
	summary, keyPoints := summarize(units, termFrequencies(doc.Text, e.lexicon), e.config, e.lexicon)
	tasks := detectTasks(units, e.lexicon, e.config)

	var srcURL *string
	if sourceURL != "" {
		s := sourceURL
		srcURL = &s
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	return &pagedigest.AnalysisResult{
		Title:     title,
		Summary:   summary,
		KeyPoints: keyPoints,
		Tasks:     tasks,
		Metadata: pagedigest.Metadata{
			URL:         srcURL,
			Headings:    headings,
			Links:       links,
			ExtractedAt: now().UTC(),
			WordCount:   wordCount,
			Degraded:    doc.Degraded,
		},
	}, nil
}

// normalize runs the optional extractor and the normalizer. The extracted
// content is used only when it still contains text.
func (e *Engine) normalize(document, sourceURL string) *pagedigest.NormalizedDocument {
	if e.Extractor != nil {
		res, err := e.Extractor.Extract(document, sourceURL)
		if err == nil && res != nil && strings.TrimSpace(res.ContentHTML) != "" {
			doc := e.normalizer.Normalize(res.ContentHTML)
			if strings.TrimSpace(doc.Text) != "" {
				if doc.Title == "" {
					doc.Title = strings.TrimSpace(res.Title)
				}
				return doc
			}
		}
	}
	return e.normalizer.Normalize(document)
}
