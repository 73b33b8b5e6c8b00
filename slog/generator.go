package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linkctx"
)

var _ linkctx.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging. The API key is never
// logged.
type LoggingGenerator struct {
	next   linkctx.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next linkctx.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate logs the model, prompt and response sizes and the number of
// grounding chunks.
func (g *LoggingGenerator) Generate(ctx context.Context, req *linkctx.GenerateRequest) (gen *linkctx.Generation, err error) {
	defer func(begin time.Time) {
		var text, chunks int
		if gen != nil {
			text, chunks = len(gen.Text), len(gen.Chunks)
		}
		g.logger.Debug("generate",
			"model", req.Model,
			"search", req.Search,
			"prompt_bytes", len(req.Prompt),
			"text_bytes", text,
			"chunks", chunks,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, req)
}
