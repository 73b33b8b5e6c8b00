package mock

import (
	"context"

	"github.com/fwojciec/linkctx"
)

var _ linkctx.Contextualizer = (*Contextualizer)(nil)

// Contextualizer is a mock implementation of linkctx.Contextualizer.
type Contextualizer struct {
	ContextualizeFn func(ctx context.Context, cfg linkctx.Config, rawURL string) (*linkctx.Result, error)
}

func (c *Contextualizer) Contextualize(ctx context.Context, cfg linkctx.Config, rawURL string) (*linkctx.Result, error) {
	return c.ContextualizeFn(ctx, cfg, rawURL)
}

var _ linkctx.PhraseMatcher = (*PhraseMatcher)(nil)

// PhraseMatcher is a mock implementation of linkctx.PhraseMatcher.
type PhraseMatcher struct {
	ContainsFn func(html, phrase string) bool
}

func (m *PhraseMatcher) Contains(html, phrase string) bool {
	return m.ContainsFn(html, phrase)
}
