package mock

import "github.com/fwojciec/pagedigest"

var _ pagedigest.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of pagedigest.Analyzer.
type Analyzer struct {
	AnalyzeFn func(document, sourceURL string) (*pagedigest.AnalysisResult, error)
}

func (a *Analyzer) Analyze(document, sourceURL string) (*pagedigest.AnalysisResult, error) {
	return a.AnalyzeFn(document, sourceURL)
}
