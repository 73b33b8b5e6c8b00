package mock

import (
	"context"

	"github.com/fwojciec/linkctx"
)

var _ linkctx.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of linkctx.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *linkctx.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *linkctx.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
