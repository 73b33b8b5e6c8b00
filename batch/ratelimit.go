package batch

import (
	"context"
	"sync"

	"github.com/fwojciec/linkctx"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond is the per-domain rate used when none is given.
const DefaultRequestsPerSecond = 1.0

var _ linkctx.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter rate limits requests per domain with one token bucket per
// domain, so different domains proceed concurrently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewDomainLimiter returns a DomainLimiter allowing rps requests per second
// per domain with no bursting. A non-positive rps uses
// DefaultRequestsPerSecond.
func NewDomainLimiter(rps float64) *DomainLimiter {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    1,
	}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.limiter(domain).Wait(ctx)
}

func (d *DomainLimiter) limiter(domain string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.limiters[domain]
	if !ok {
		l = rate.NewLimiter(rate.Limit(d.rps), d.burst)
		d.limiters[domain] = l
	}
	return l
}
