package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linkctx"
)

var _ linkctx.Contextualizer = (*LoggingContextualizer)(nil)

// LoggingContextualizer wraps a Contextualizer with logging. Failures are
// logged at warn level with their error code.
type LoggingContextualizer struct {
	next   linkctx.Contextualizer
	logger *slog.Logger
}

// NewLoggingContextualizer creates a new LoggingContextualizer.
func NewLoggingContextualizer(next linkctx.Contextualizer, logger *slog.Logger) *LoggingContextualizer {
	return &LoggingContextualizer{next: next, logger: logger}
}

// Contextualize logs the analyzed URL and the shape of the result.
func (c *LoggingContextualizer) Contextualize(ctx context.Context, cfg linkctx.Config, rawURL string) (result *linkctx.Result, err error) {
	defer func(begin time.Time) {
		if err != nil {
			c.logger.Warn("contextualize",
				"url", rawURL,
				"code", linkctx.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		c.logger.Info("contextualize",
			"url", result.OriginalURL,
			"model", cfg.ModelOrDefault(),
			"title", result.Title,
			"tags", len(result.SuggestedTags),
			"sources", len(result.Sources),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return c.next.Contextualize(ctx, cfg, rawURL)
}
