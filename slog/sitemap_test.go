package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/linkctx"
	"github.com/fwojciec/linkctx/mock"
	lcslog "github.com/fwojciec/linkctx/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("logs count and passes filter through", func(t *testing.T) {
		t.Parallel()

		filter, err := linkctx.NewURLFilter([]string{`/docs/`}, nil)
		require.NoError(t, err)

		var buf bytes.Buffer
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, got *linkctx.URLFilter) ([]string, error) {
				assert.Same(t, filter, got)
				return []string{"https://example.com/docs/a", "https://example.com/docs/b"}, nil
			},
		}

		svc := lcslog.NewLoggingSitemapService(inner, newLogger(&buf))
		urls, err := svc.DiscoverURLs(context.Background(), "https://example.com", filter)

		require.NoError(t, err)
		assert.Len(t, urls, 2)
		output := buf.String()
		assert.Contains(t, output, "msg=sitemap")
		assert.Contains(t, output, "url=https://example.com")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(context.Context, string, *linkctx.URLFilter) ([]string, error) {
				return nil, errors.New("connection failed")
			},
		}

		svc := lcslog.NewLoggingSitemapService(inner, newLogger(&buf))
		_, err := svc.DiscoverURLs(context.Background(), "https://example.com", nil)

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="connection failed"`)
	})
}
