package main_test

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/linkctx"
	main "github.com/fwojciec/linkctx/cmd/linkctx"
	"github.com/fwojciec/linkctx/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a strings.Builder safe for one writer and one reader.
type syncBuffer struct {
	mu sync.Mutex
	sb strings.Builder
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.String()
}

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	stdout := &syncBuffer{}
	deps, _, _ := newDeps(&mock.Contextualizer{
		ContextualizeFn: func(_ context.Context, _ linkctx.Config, rawURL string) (*linkctx.Result, error) {
			return sampleResult(rawURL), nil
		},
	})
	ctx, cancel := context.WithCancel(context.Background())
	deps.Ctx = ctx
	deps.Stdout = stdout

	done := make(chan error, 1)
	go func() {
		done <- (&main.ServeCmd{Addr: "127.0.0.1:0"}).Run(deps)
	}()

	var base string
	require.Eventually(t, func() bool {
		out := stdout.String()
		if !strings.HasPrefix(out, "Listening on ") {
			return false
		}
		base = strings.TrimSpace(strings.TrimPrefix(out, "Listening on "))
		return true
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get(base + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}
