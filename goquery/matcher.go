package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkctx"
)

// Ensure PhraseMatcher implements linkctx.PhraseMatcher at compile time.
var _ linkctx.PhraseMatcher = (*PhraseMatcher)(nil)

// blockElements get a trailing space before text extraction so that
// adjacent blocks do not run together.
const blockElements = "p, div, li, dt, dd, h1, h2, h3, h4, h5, h6, td, th, pre, blockquote, section, article, br, tr"

// PhraseMatcher checks a highlight phrase against the visible text of a
// page the way browsers match text fragments: case-insensitively, with any
// run of whitespace matching any other.
type PhraseMatcher struct{}

// NewPhraseMatcher creates a new PhraseMatcher.
func NewPhraseMatcher() *PhraseMatcher {
	return &PhraseMatcher{}
}

// Contains reports whether phrase occurs in the visible text of html.
// An empty phrase or unparsable HTML never matches.
func (m *PhraseMatcher) Contains(html, phrase string) bool {
	needle := normalizeText(phrase)
	if needle == "" {
		return false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}

	return strings.Contains(normalizeText(VisibleText(doc)), needle)
}

// VisibleText returns the text a reader would see, with block boundaries
// separated by whitespace. The document is modified.
func VisibleText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, template, head").Remove()
	doc.Find(blockElements).AppendHtml(" ")
	return doc.Text()
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
