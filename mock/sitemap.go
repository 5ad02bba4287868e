package mock

import (
	"context"

	"github.com/fwojciec/pagedigest"
)

var _ pagedigest.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of pagedigest.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *pagedigest.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *pagedigest.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
