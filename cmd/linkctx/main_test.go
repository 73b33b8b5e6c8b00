package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/linkctx"
	main "github.com/fwojciec/linkctx/cmd/linkctx"
	"github.com/fwojciec/linkctx/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(url string) *linkctx.Result {
	return &linkctx.Result{
		OriginalURL:      url,
		Title:            "The Go Programming Language",
		HighlightPhrase:  "Build simple, secure, scalable systems",
		DescriptiveLabel: "Go Home",
		Summary:          "Official site of the Go language.",
		SuggestedTags:    []string{"Go", "Programming Languages"},
		Sources:          []linkctx.Source{{Title: "go.dev", URI: "https://go.dev"}},
	}
}

func newDeps(c linkctx.Contextualizer) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:            context.Background(),
		Stdin:          strings.NewReader(""),
		Stdout:         stdout,
		Stderr:         stderr,
		Config:         linkctx.NewConfig("test-key"),
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Contextualizer: c,
		Clipboard:      &mock.Clipboard{},
	}, stdout, stderr
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	parser, err := kong.New(cli,
		kong.Writers(stdout, &bytes.Buffer{}),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range []string{"analyze", "interactive", "serve", "batch"} {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
	for _, flag := range []string{"--api-key", "--model", "--temperature", "--no-search", "--verbose", "--private-networks"} {
		assert.Contains(t, stdout.String(), flag)
	}
}

func TestCLI_Config(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{APIKey: "k", Model: "gemini-2.5-pro", Temperature: 0.7, NoSearch: true, MaxPageTokens: 100}
	cfg := cli.Config()

	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.7, *cfg.Temperature, 1e-6)
	assert.False(t, cfg.Search)
	assert.Equal(t, 100, cfg.MaxPageTokens)
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help shows kong output", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"--help"}, strings.NewReader(""), stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Usage:")
		assert.Contains(t, stdout.String(), "analyze")
	})

	t.Run("no command is an error", func(t *testing.T) {
		t.Parallel()

		err := main.NewMain().Run(context.Background(), nil, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Equal(t, linkctx.EINVALID, linkctx.ErrorCode(err))
	})

	t.Run("analyze passes global flags to the pipeline", func(t *testing.T) {
		t.Parallel()

		var got linkctx.Config
		m := main.NewMain()
		m.Clipboard = &mock.Clipboard{}
		m.Contextualizer = &mock.Contextualizer{
			ContextualizeFn: func(_ context.Context, cfg linkctx.Config, rawURL string) (*linkctx.Result, error) {
				got = cfg
				return sampleResult("https://" + rawURL), nil
			},
		}

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(),
			[]string{"--api-key", "flag-key", "--no-search", "analyze", "go.dev", "--format", "readable"},
			strings.NewReader(""), stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "flag-key", got.APIKey)
		assert.False(t, got.Search)
		assert.Equal(t, "https://go.dev#go-home\n", stdout.String())
	})
}
