// Package goquery implements page helpers on top of goquery: a lightweight
// content extractor that knows common documentation generators, and the
// text-fragment phrase matcher.
package goquery

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkctx"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Extractor implements linkctx.Extractor at compile time.
var _ linkctx.Extractor = (*Extractor)(nil)

// boilerplate matches elements that never carry article content.
const boilerplate = "script, style, noscript, template, iframe, svg, form, nav, header, footer, aside, [role=navigation], [aria-hidden=true]"

// contentRoots are tried in order after any framework-specific selectors;
// the first match is the content root.
var contentRoots = []string{"main", "article", "[role=main]", "#content", ".content", "body"}

// Extractor picks the main element of a page and sanitizes it.
// It is less clever than trafilatura or readability but never discards a
// short page entirely, which suits landing pages and product pages.
type Extractor struct {
	policy *bluemonday.Policy
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{policy: bluemonday.UGCPolicy()}
}

// Extract returns the page title and sanitized main content.
func (e *Extractor) Extract(rawHTML string) (*linkctx.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, linkctx.Errorf(linkctx.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, linkctx.Errorf(linkctx.EINVALID, "failed to parse HTML: %v", err)
	}

	title := Title(doc)
	framework := Detect(doc)
	doc.Find(boilerplate).Remove()

	root := doc.Selection
	for _, sel := range slices.Concat(ContentSelectors(framework), contentRoots) {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			root = s
			break
		}
	}

	inner, err := root.Html()
	if err != nil {
		return nil, err
	}

	return &linkctx.ExtractResult{
		Title:       title,
		ContentHTML: strings.TrimSpace(e.policy.Sanitize(inner)),
	}, nil
}

// Title returns the best available page title: og:title, then the title
// element, then the first h1.
func Title(doc *goquery.Document) string {
	if v, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(doc.Find("title").First().Text()); v != "" {
		return v
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}
