package main_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/linkctx"
	main "github.com/fwojciec/linkctx/cmd/linkctx"
	"github.com/fwojciec/linkctx/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractiveCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("analyzes, copies and lists links", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.Contextualizer{
			ContextualizeFn: func(_ context.Context, _ linkctx.Config, rawURL string) (*linkctx.Result, error) {
				return sampleResult(rawURL), nil
			},
		})
		cb := &mock.Clipboard{}
		deps.Clipboard = cb
		deps.Stdin = strings.NewReader("go.dev\ncopy readable\nlinks\nstate\nquit\nnever-read.dev\n")

		err := (&main.InteractiveCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://go.dev#go-home"}, cb.Writes())
		out := stdout.String()
		assert.Contains(t, out, "The Go Programming Language")
		assert.Contains(t, out, "Copied! https://go.dev#go-home")
		assert.Contains(t, out, "(copied)")
		assert.Contains(t, out, "result: https://go.dev")
		assert.NotContains(t, out, "never-read")
	})

	t.Run("shows error and clears result", func(t *testing.T) {
		t.Parallel()

		calls := 0
		deps, stdout, _ := newDeps(&mock.Contextualizer{
			ContextualizeFn: func(_ context.Context, _ linkctx.Config, rawURL string) (*linkctx.Result, error) {
				calls++
				if calls == 2 {
					return nil, linkctx.Errorf(linkctx.ENOCONTENT, "No content generated.")
				}
				return sampleResult(rawURL), nil
			},
		})
		deps.Stdin = strings.NewReader("go.dev\nexample.com\nstate\ncopy readable\n")

		err := (&main.InteractiveCmd{}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "error: No content generated.")
		assert.Contains(t, out, "Nothing to copy yet.")
	})

	t.Run("rejects unknown link form", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.Contextualizer{
			ContextualizeFn: func(_ context.Context, _ linkctx.Config, rawURL string) (*linkctx.Result, error) {
				return sampleResult(rawURL), nil
			},
		})
		deps.Stdin = strings.NewReader("go.dev\ncopy pdf\n")

		require.NoError(t, (&main.InteractiveCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), `unknown artifact "pdf"`)
	})

	t.Run("reports clipboard failure", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.Contextualizer{
			ContextualizeFn: func(_ context.Context, _ linkctx.Config, rawURL string) (*linkctx.Result, error) {
				return sampleResult(rawURL), nil
			},
		})
		deps.Clipboard = &mock.Clipboard{WriteTextFn: func(string) error {
			return linkctx.Errorf(linkctx.ECONFIG, "No clipboard utility available.")
		}}
		deps.Stdin = strings.NewReader("go.dev\ncopy deep\nlinks\n")

		require.NoError(t, (&main.InteractiveCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "error: No clipboard utility available.")
		assert.NotContains(t, stdout.String(), "(copied)")
	})

	t.Run("warns up front when the clipboard is missing", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(&mock.Contextualizer{})
		deps.Clipboard = &mock.Clipboard{Unavailable: true}
		deps.Stdin = strings.NewReader("quit\n")

		require.NoError(t, (&main.InteractiveCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "Clipboard unavailable")
	})
}
