package linkctx

import "context"

// Contextualizer runs the link contextualization pipeline for one URL.
type Contextualizer interface {
	// Contextualize normalizes rawURL, asks the generative API about it and
	// parses the answer into a Result.
	// Returns ECONFIG if cfg is unusable (before any network call),
	// EINVALID if rawURL is blank and ENOCONTENT if the API returned no text.
	Contextualize(ctx context.Context, cfg Config, rawURL string) (*Result, error)
}

// PhraseMatcher reports whether a phrase occurs in a page the way a browser
// would match a text fragment.
type PhraseMatcher interface {
	Contains(html, phrase string) bool
}
