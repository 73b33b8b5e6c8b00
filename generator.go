package linkctx

import "context"

// GenerateRequest is a single call to the generative API.
type GenerateRequest struct {
	APIKey      string
	Model       string
	Temperature float32
	Search      bool
	Prompt      string
}

// Generation is the raw output of a generative API call.
type Generation struct {
	// Text is the sectioned response text. Empty when the model produced
	// nothing.
	Text string

	// Chunks is the grounding metadata, in the order the API returned it.
	Chunks []GroundingChunk
}

// Generator calls a generative language API.
type Generator interface {
	// Generate sends the prompt and returns the generated text together
	// with any grounding metadata. Transport and API errors are returned
	// as-is.
	Generate(ctx context.Context, req *GenerateRequest) (*Generation, error)
}
