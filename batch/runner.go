// Package batch contextualizes many URLs with bounded concurrency and
// per-domain rate limiting.
package batch

import (
	"context"
	"log/slog"
	"net/url"
	"sync/atomic"

	"github.com/fwojciec/linkctx"
	"github.com/fwojciec/linkctx/bloom"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs processed at once.
const DefaultConcurrency = 4

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress. Calls are
// serialized.
type ProgressFunc func(event ProgressEvent)

// Runner contextualizes a list of URLs. Contextualizer is required;
// Limiter and Logger are optional.
type Runner struct {
	Contextualizer linkctx.Contextualizer
	Limiter        linkctx.DomainLimiter
	Concurrency    int
	Logger         *slog.Logger
}

// Plan normalizes urls and drops blanks and repeats, keeping the first
// occurrence of each URL in input order.
func Plan(urls []string) []string {
	seen := bloom.NewDeduper(uint(len(urls)))
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		u := linkctx.NormalizeURL(raw)
		if u == "" || !seen.First(u) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Run contextualizes every planned URL and returns one item per URL in
// planned order. A failing URL is recorded in its item and never stops the
// others. cfg is validated once up front; an unusable cfg fails the whole
// run before any call is made.
func (r *Runner) Run(ctx context.Context, cfg linkctx.Config, urls []string, progress ProgressFunc) ([]linkctx.BatchItem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	planned := Plan(urls)
	total := len(planned)
	logger := r.logger().With("run", uuid.NewString())
	logger.Info("batch started", "input", len(urls), "planned", total)

	events := make(chan ProgressEvent)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			if progress != nil {
				progress(ev)
			}
		}
	}()
	events <- ProgressEvent{Type: ProgressStarted, Total: total}

	items := make([]linkctx.BatchItem, total)
	var completed, failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(r.concurrency())
	for i, u := range planned {
		g.Go(func() error {
			item, err := r.process(ctx, cfg, u)
			items[i] = item

			n := int(completed.Add(1))
			ev := ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: u}
			if err != nil {
				failed.Add(1)
				ev.Type = ProgressFailed
				ev.Error = err
				logger.Warn("batch item failed", "url", u, "code", linkctx.ErrorCode(err), "err", err)
			}
			events <- ev
			return nil
		})
	}
	_ = g.Wait()

	events <- ProgressEvent{Type: ProgressFinished, Completed: total, Total: total}
	close(events)
	<-done

	logger.Info("batch finished", "completed", total, "failed", failed.Load())
	return items, ctx.Err()
}

// process runs the pipeline for one URL. A failure is stored in the item as
// its display message and also returned.
func (r *Runner) process(ctx context.Context, cfg linkctx.Config, u string) (linkctx.BatchItem, error) {
	item := linkctx.BatchItem{URL: u}

	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx, domain(u)); err != nil {
			item.Error = linkctx.DisplayMessage(err)
			return item, err
		}
	}

	result, err := r.Contextualizer.Contextualize(ctx, cfg, u)
	if err != nil {
		item.Error = linkctx.DisplayMessage(err)
		return item, err
	}
	item.Result = result
	return item, nil
}

func (r *Runner) concurrency() int {
	if r.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return r.Concurrency
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// domain returns the host of u, or u itself when it does not parse.
func domain(u string) string {
	parsed, err := url.Parse(u)
	if err != nil || parsed.Host == "" {
		return u
	}
	return parsed.Hostname()
}
