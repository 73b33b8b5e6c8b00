// Package contextualize runs the link contextualization pipeline: validate
// configuration, optionally read the page locally, ask the generator and
// parse its answer.
package contextualize

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/fwojciec/linkctx"
)

// Ensure Contextualizer implements linkctx.Contextualizer at compile time.
var _ linkctx.Contextualizer = (*Contextualizer)(nil)

// PromptFunc builds the generator prompt for a URL and an optional locally
// read page.
type PromptFunc func(url string, page *linkctx.Page) string

// Contextualizer implements linkctx.Contextualizer.
//
// Generator and Prompt are required. Fetcher, Extractor and Converter
// together enable local page reading; TokenCounter bounds the page content
// and Matcher verifies the highlight phrase against the fetched page.
type Contextualizer struct {
	Generator linkctx.Generator
	Prompt    PromptFunc

	Fetcher      linkctx.Fetcher
	Extractor    linkctx.Extractor
	Converter    linkctx.Converter
	TokenCounter linkctx.TokenCounter
	Matcher      linkctx.PhraseMatcher

	// Logger receives page read failures, which are not fatal.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// Contextualize analyzes rawURL and returns the parsed result.
func (c *Contextualizer) Contextualize(ctx context.Context, cfg linkctx.Config, rawURL string) (*linkctx.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	url := linkctx.NormalizeURL(rawURL)
	if url == "" {
		return nil, linkctx.Errorf(linkctx.EINVALID, "URL required")
	}

	var page *linkctx.Page
	if c.Fetcher != nil {
		p, err := c.readPage(ctx, url, cfg.MaxPageTokensOrDefault())
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger().Warn("page read failed, continuing without local content", "url", url, "err", err)
		} else {
			page = p
		}
	}

	gen, err := c.Generator.Generate(ctx, &linkctx.GenerateRequest{
		APIKey:      cfg.APIKey,
		Model:       cfg.ModelOrDefault(),
		Temperature: cfg.TemperatureOrDefault(),
		Search:      cfg.Search,
		Prompt:      c.Prompt(url, page),
	})
	if err != nil {
		return nil, err
	}
	if gen == nil || gen.Text == "" {
		return nil, linkctx.Errorf(linkctx.ENOCONTENT, "No content generated.")
	}

	result := linkctx.ParseResponse(url, gen.Text)
	result.Sources = linkctx.ParseSources(gen.Chunks)

	if page != nil && c.Matcher != nil && result.HighlightPhrase != "" {
		found := c.Matcher.Contains(page.HTML, result.HighlightPhrase)
		result.HighlightVerified = &found
	}

	return result, nil
}

// readPage fetches url, extracts its main content and converts it to
// Markdown bounded by maxTokens.
func (c *Contextualizer) readPage(ctx context.Context, url string, maxTokens int) (*linkctx.Page, error) {
	if c.Extractor == nil || c.Converter == nil {
		return nil, linkctx.Errorf(linkctx.EINTERNAL, "page reading requires an extractor and a converter")
	}

	html, err := c.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	extracted, err := c.Extractor.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("extracting content: %w", err)
	}

	content, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return nil, fmt.Errorf("converting content: %w", err)
	}

	if c.TokenCounter != nil {
		content, err = truncateToTokens(ctx, c.TokenCounter, content, maxTokens)
		if err != nil {
			return nil, fmt.Errorf("counting tokens: %w", err)
		}
	}

	return &linkctx.Page{
		URL:     url,
		Title:   extracted.Title,
		HTML:    html,
		Content: content,
	}, nil
}

func (c *Contextualizer) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// truncateToTokens shortens text until it fits in maxTokens. Each pass
// cuts proportionally to the overshoot, so it converges in a few calls.
func truncateToTokens(ctx context.Context, tc linkctx.TokenCounter, text string, maxTokens int) (string, error) {
	const maxPasses = 4

	for range maxPasses {
		n, err := tc.CountTokens(ctx, text)
		if err != nil {
			return "", err
		}
		if n <= maxTokens {
			return text, nil
		}

		runes := utf8.RuneCountInString(text)
		keep := runes * maxTokens / n * 9 / 10
		text = truncateRunes(text, keep)
	}
	return text, nil
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
