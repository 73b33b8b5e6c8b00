package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/linkctx"
	lchttp "github.com/fwojciec/linkctx/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ linkctx.Fetcher = (*lchttp.Fetcher)(nil)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns page HTML", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := lchttp.NewFetcher(lchttp.WithPrivateNetworks())
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("sends user agent", func(t *testing.T) {
		t.Parallel()

		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := lchttp.NewFetcher(lchttp.WithPrivateNetworks(), lchttp.WithUserAgent("test-agent"))
		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "test-agent", got)
	})

	t.Run("truncates body at max size", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", 100)))
		}))
		defer server.Close()

		fetcher := lchttp.NewFetcher(lchttp.WithPrivateNetworks(), lchttp.WithMaxBodySize(10))
		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Len(t, html, 10)
	})

	t.Run("times out slow servers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := lchttp.NewFetcher(lchttp.WithPrivateNetworks(), lchttp.WithTimeout(10 * time.Millisecond))
		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := lchttp.NewFetcher(lchttp.WithPrivateNetworks()).Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("maps 404 to not found", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		_, err := lchttp.NewFetcher(lchttp.WithPrivateNetworks()).Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, linkctx.ENOTFOUND, linkctx.ErrorCode(err))
	})

	t.Run("returns status for other failures", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := lchttp.NewFetcher(lchttp.WithPrivateNetworks()).Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("refuses loopback addresses by default", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte("INTERNAL-ADMIN-SECRET"))
		}))
		defer server.Close()

		html, err := lchttp.NewFetcher().Fetch(context.Background(), server.URL+"/admin")

		require.Error(t, err)
		assert.Equal(t, linkctx.EINVALID, linkctx.ErrorCode(err))
		assert.Empty(t, html)
		assert.Zero(t, hits.Load())
	})

	t.Run("refuses the cloud metadata address", func(t *testing.T) {
		t.Parallel()

		_, err := lchttp.NewFetcher().Fetch(context.Background(), "http://169.254.169.254/latest/meta-data/")

		require.Error(t, err)
		assert.Equal(t, linkctx.EINVALID, linkctx.ErrorCode(err))
	})
}
