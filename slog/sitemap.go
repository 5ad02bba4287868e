package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagedigest"
)

// Ensure LoggingSitemapService implements pagedigest.SitemapService.
var _ pagedigest.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs the URL discovery that feeds batch ingest.
type LoggingSitemapService struct {
	next   pagedigest.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next pagedigest.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *pagedigest.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		log(s.logger, "ingest url discovery", err,
			"site", baseURL,
			"filtered", filter != nil,
			"urls", len(urls),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
