package gemini

import (
	"context"

	"github.com/fwojciec/linkctx"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// TokenizerModel is the newest model the local tokenizer knows about.
// Its vocabulary is shared by the flash models used for contextualization.
const TokenizerModel = "gemini-2.5-flash"

var _ linkctx.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts prompt tokens locally, without an API call, so page
// content can be trimmed before it is sent.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer for model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens returns the number of tokens text occupies as a user turn.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
