// Package trafilatura extracts article content with go-trafilatura.
// It is the default extractor: its fallback chain copes well with news and
// blog layouts, the pages most often shared as links.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/linkctx"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements linkctx.Extractor at compile time.
var _ linkctx.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title and main content. Comment sections are
// dropped so the model quotes the article, not its readers.
func (e *Extractor) Extract(rawHTML string) (*linkctx.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, linkctx.Errorf(linkctx.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	})
	if err != nil {
		return nil, err
	}

	out := &linkctx.ExtractResult{Title: result.Metadata.Title}
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		out.ContentHTML = buf.String()
	}
	return out, nil
}
