package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkctx"
	"github.com/fwojciec/linkctx/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ linkctx.Extractor = (*goquery.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("prefers main element and strips boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Pricing</title></head><body>
<nav>Top Nav</nav>
<main><h1>Plans</h1><p>The team plan includes unlimited links.</p><script>track()</script></main>
<footer>Legal footer</footer>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Pricing", result.Title)
		assert.Contains(t, result.ContentHTML, "unlimited links")
		assert.NotContains(t, result.ContentHTML, "Top Nav")
		assert.NotContains(t, result.ContentHTML, "Legal footer")
		assert.NotContains(t, result.ContentHTML, "track()")
	})

	t.Run("falls back to body", func(t *testing.T) {
		t.Parallel()

		result, err := goquery.NewExtractor().Extract(`<html><body><p>Just a paragraph.</p></body></html>`)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Just a paragraph.")
	})

	t.Run("sanitizes event handlers", func(t *testing.T) {
		t.Parallel()

		result, err := goquery.NewExtractor().Extract(`<html><body><article><p onclick="evil()">Text</p></article></body></html>`)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Text")
		assert.NotContains(t, result.ContentHTML, "onclick")
	})

	t.Run("uses the framework content root", func(t *testing.T) {
		t.Parallel()

		html := `<html><body data-md-color-scheme="default">
<div class="md-banner">Version 2 is out</div>
<div class="md-content"><div class="md-content__inner"><h1>Install</h1><p>Install with pip.</p></div></div>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Install with pip.")
		assert.NotContains(t, result.ContentHTML, "Version 2 is out")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().Extract("")

		assert.Equal(t, linkctx.EINVALID, linkctx.ErrorCode(err))
	})
}

func TestTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{"og title wins", `<html><head><title>T</title><meta property="og:title" content=" OG "></head></html>`, "OG"},
		{"title element", `<html><head><title> Page </title></head></html>`, "Page"},
		{"first heading", `<html><body><h1>Heading</h1><h1>Other</h1></body></html>`, "Heading"},
		{"nothing", `<html><body><p>x</p></body></html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := gq.NewDocumentFromReader(strings.NewReader(tt.html))
			require.NoError(t, err)

			assert.Equal(t, tt.want, goquery.Title(doc))
		})
	}
}
