// Package gemini implements linkctx.Generator and linkctx.TokenCounter with
// the Google Gen AI SDK.
package gemini

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fwojciec/linkctx"
	"google.golang.org/genai"
)

// Ensure Generator implements linkctx.Generator at compile time.
var _ linkctx.Generator = (*Generator)(nil)

// Generator implements linkctx.Generator using Google Gemini.
// A client is built per call from the request's API key, so one Generator
// serves any number of credentials.
type Generator struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Generator.
type Option func(*Generator)

// WithHTTPClient sets the HTTP client used to reach the API.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Generator) {
		g.httpClient = c
	}
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(g *Generator) {
		g.baseURL = u
	}
}

// NewGenerator creates a new Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends the prompt to Gemini and returns the text of the first
// candidate together with its grounding chunks.
func (g *Generator) Generate(ctx context.Context, req *linkctx.GenerateRequest) (*linkctx.Generation, error) {
	if req.APIKey == "" {
		return nil, linkctx.Errorf(linkctx.ECONFIG, "API key is missing")
	}
	if req.Prompt == "" {
		return nil, linkctx.Errorf(linkctx.EINVALID, "prompt required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      req.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  g.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := req.Model
	if model == "" {
		model = linkctx.DefaultModel
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), BuildConfig(req))
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, linkctx.Errorf(linkctx.EINTERNAL, "gemini returned nil result")
	}

	return ToGeneration(resp), nil
}

// BuildConfig returns the GenerateContentConfig for a request.
// Google Search grounding is attached when the request asks for it.
func BuildConfig(req *linkctx.GenerateRequest) *genai.GenerateContentConfig {
	temp := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if req.Search {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return config
}

// ToGeneration maps a Gemini response to a linkctx.Generation.
// Grounding chunks are taken from the first candidate only.
func ToGeneration(resp *genai.GenerateContentResponse) *linkctx.Generation {
	gen := &linkctx.Generation{Text: resp.Text()}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return gen
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return gen
	}

	for _, chunk := range meta.GroundingChunks {
		if chunk == nil {
			continue
		}
		var c linkctx.GroundingChunk
		if chunk.Web != nil {
			c.Web = &linkctx.WebReference{Title: chunk.Web.Title, URI: chunk.Web.URI}
		}
		gen.Chunks = append(gen.Chunks, c)
	}
	return gen
}
