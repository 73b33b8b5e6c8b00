package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkctx/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want goquery.Framework
	}{
		{
			name: "Docusaurus skip link",
			html: `<html><body><a id="__docusaurus_skipToContent_fallback" href="#x">Skip</a></body></html>`,
			want: goquery.FrameworkDocusaurus,
		},
		{
			name: "Docusaurus head attributes",
			html: `<html data-theme="light" data-rh="lang,dir"><body></body></html>`,
			want: goquery.FrameworkDocusaurus,
		},
		{
			name: "MkDocs Material color scheme",
			html: `<html><body data-md-color-scheme="default"></body></html>`,
			want: goquery.FrameworkMkDocs,
		},
		{
			name: "Sphinx Read the Docs sidebar",
			html: `<html><body><nav class="wy-nav-side"></nav></body></html>`,
			want: goquery.FrameworkSphinx,
		},
		{
			name: "VitePress content",
			html: `<html><body><div id="VPContent"><div class="theme-default-content"></div></div></body></html>`,
			want: goquery.FrameworkVitePress,
		},
		{
			name: "VuePress content",
			html: `<html><body><div class="theme-default-content"></div></body></html>`,
			want: goquery.FrameworkVuePress,
		},
		{
			name: "GitBook sidebar",
			html: `<html><body><aside data-testid="space.sidebar"></aside></body></html>`,
			want: goquery.FrameworkGitBook,
		},
		{
			name: "GitBook html classes",
			html: `<html class="circular-corners theme-clean"><body></body></html>`,
			want: goquery.FrameworkGitBook,
		},
		{
			name: "single GitBook class is not enough",
			html: `<html class="tint"><body></body></html>`,
			want: goquery.FrameworkUnknown,
		},
		{
			name: "Nextra navbar",
			html: `<html><body><div class="nextra-navbar"></div></body></html>`,
			want: goquery.FrameworkNextra,
		},
		{
			name: "generator tag wins over markers",
			html: `<html><head><meta name="generator" content="Sphinx 7.2.6"></head><body data-md-color-scheme="default"></body></html>`,
			want: goquery.FrameworkSphinx,
		},
		{
			name: "VitePress generator",
			html: `<html><head><meta name="generator" content="VitePress v1.0.0"></head></html>`,
			want: goquery.FrameworkVitePress,
		},
		{
			name: "plain page",
			html: `<html><head><title>Blog</title></head><body><main><p>Post</p></main></body></html>`,
			want: goquery.FrameworkUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := gq.NewDocumentFromReader(strings.NewReader(tt.html))
			require.NoError(t, err)

			assert.Equal(t, tt.want, goquery.Detect(doc))
		})
	}
}

func TestContentSelectors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".md-content__inner", ".md-content"}, goquery.ContentSelectors(goquery.FrameworkMkDocs))
	assert.Empty(t, goquery.ContentSelectors(goquery.FrameworkUnknown))
}
