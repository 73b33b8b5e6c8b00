package mock

import (
	"context"

	"github.com/fwojciec/linkctx"
)

// Compile-time interface verification.
var (
	_ linkctx.Fetcher      = (*Fetcher)(nil)
	_ linkctx.Extractor    = (*Extractor)(nil)
	_ linkctx.Converter    = (*Converter)(nil)
	_ linkctx.TokenCounter = (*TokenCounter)(nil)
)

// Fetcher is a mock implementation of linkctx.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

// Close calls CloseFn, or returns nil when it is unset.
func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

// Extractor is a mock implementation of linkctx.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*linkctx.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*linkctx.ExtractResult, error) {
	return e.ExtractFn(html)
}

// Converter is a mock implementation of linkctx.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// TokenCounter is a mock implementation of linkctx.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
