package batch_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/linkctx"
	"github.com/fwojciec/linkctx/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ linkctx.DomainLimiter = (*batch.DomainLimiter)(nil)

// timedWait returns how long a single Wait on domain took.
func timedWait(t *testing.T, l *batch.DomainLimiter, domain string) time.Duration {
	t.Helper()
	start := time.Now()
	require.NoError(t, l.Wait(context.Background(), domain))
	return time.Since(start)
}

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("spaces requests to one host", func(t *testing.T) {
		t.Parallel()

		l := batch.NewDomainLimiter(10)

		assert.Less(t, timedWait(t, l, "go.dev"), 50*time.Millisecond)
		assert.GreaterOrEqual(t, timedWait(t, l, "go.dev"), 80*time.Millisecond)
	})

	t.Run("hosts do not share a bucket", func(t *testing.T) {
		t.Parallel()

		l := batch.NewDomainLimiter(10)
		timedWait(t, l, "go.dev")

		assert.Less(t, timedWait(t, l, "pkg.go.dev"), 50*time.Millisecond)
	})

	t.Run("gives up when the context ends", func(t *testing.T) {
		t.Parallel()

		l := batch.NewDomainLimiter(1)
		timedWait(t, l, "go.dev")

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, l.Wait(ctx, "go.dev"))
	})

	t.Run("is safe for concurrent callers", func(t *testing.T) {
		t.Parallel()

		l := batch.NewDomainLimiter(200)

		var wg sync.WaitGroup
		errs := make(chan error, 6)
		for _, host := range []string{"a.dev", "a.dev", "a.dev", "b.dev", "b.dev", "b.dev"} {
			wg.Go(func() {
				errs <- l.Wait(context.Background(), host)
			})
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}
	})

	t.Run("non-positive rate falls back to the default", func(t *testing.T) {
		t.Parallel()

		l := batch.NewDomainLimiter(-3)
		timedWait(t, l, "go.dev")

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, l.Wait(ctx, "go.dev"), "one request per second allows no second request yet")
	})
}
