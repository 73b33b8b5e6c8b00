package mock

import (
	"context"

	"github.com/fwojciec/linkctx"
)

var _ linkctx.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of linkctx.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
