package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagedigest"
)

// Ensure LoggingAnalyzer implements pagedigest.Analyzer.
var _ pagedigest.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps an Analyzer with logging.
type LoggingAnalyzer struct {
	next   pagedigest.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next pagedigest.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the digest shape.
func (a *LoggingAnalyzer) Analyze(document, sourceURL string) (result *pagedigest.AnalysisResult, err error) {
	defer func(begin time.Time) {
		args := []any{
			"url", sourceURL,
			"bytes", len(document),
			"duration", time.Since(begin),
		}
		if result != nil {
			args = append(args,
				"words", result.Metadata.WordCount,
				"key_points", len(result.KeyPoints),
				"tasks", len(result.Tasks),
				"degraded", result.Metadata.Degraded,
			)
		}
		log(a.logger, "analyze", err, args...)
	}(time.Now())
	return a.next.Analyze(document, sourceURL)
}
