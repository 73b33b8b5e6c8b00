// Package readability extracts article content with go-readability, the
// Firefox Reader View algorithm.
package readability

import (
	"fmt"
	"strings"

	"github.com/fwojciec/linkctx"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements linkctx.Extractor at compile time.
var _ linkctx.Extractor = (*Extractor)(nil)

// Extractor runs go-readability over a page. It suits long-form articles;
// pages without a clear article body come back with empty content.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article title and its cleaned HTML body.
func (e *Extractor) Extract(rawHTML string) (*linkctx.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, linkctx.Errorf(linkctx.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = strings.TrimSpace(article.SiteName)
	}
	return &linkctx.ExtractResult{
		Title:       title,
		ContentHTML: strings.TrimSpace(article.Content),
	}, nil
}
