package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/linkctx"
	"github.com/fwojciec/linkctx/clipboard"
	"github.com/fwojciec/linkctx/contextualize"
	"github.com/fwojciec/linkctx/gemini"
	"github.com/fwojciec/linkctx/goquery"
	"github.com/fwojciec/linkctx/htmltomarkdown"
	lchttp "github.com/fwojciec/linkctx/http"
	"github.com/fwojciec/linkctx/readability"
	"github.com/fwojciec/linkctx/rod"
	lcslog "github.com/fwojciec/linkctx/slog"
	"github.com/fwojciec/linkctx/trafilatura"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. When nil, Run wires the real ones.
	Contextualizer linkctx.Contextualizer
	Clipboard      linkctx.Clipboard
	Sitemaps       linkctx.SitemapService

	closers []io.Closer
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases resources opened by Run.
func (m *Main) Close() error {
	var errs []error
	for _, c := range m.closers {
		errs = append(errs, c.Close())
	}
	m.closers = nil
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("linkctx"),
		kong.Description("Summarize, tag and deep-link any URL with Gemini."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return linkctx.Errorf(linkctx.EINVALID, "no command specified. Run 'linkctx --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:            ctx,
		Stdin:          stdin,
		Stdout:         stdout,
		Stderr:         stderr,
		Config:         cli.Config(),
		Logger:         logger,
		Contextualizer: m.Contextualizer,
		Clipboard:      m.Clipboard,
		Sitemaps:       m.Sitemaps,
	}
	defer m.Close()

	if deps.Contextualizer == nil {
		c, err := m.wireContextualizer(cli, logger)
		if err != nil {
			return err
		}
		deps.Contextualizer = c
	}
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.NewClipboard()
	}
	if deps.Sitemaps == nil {
		deps.Sitemaps = lcslog.NewLoggingSitemapService(lchttp.NewSitemapService(nil), logger)
	}

	return kongCtx.Run(deps)
}

// wireContextualizer builds the production pipeline selected by the global
// flags. Optional pieces that fail to initialize are logged and left out.
func (m *Main) wireContextualizer(cli *CLI, logger *slog.Logger) (linkctx.Contextualizer, error) {
	c := &contextualize.Contextualizer{
		Generator: lcslog.NewLoggingGenerator(gemini.NewGenerator(), logger),
		Prompt:    gemini.BuildPrompt,
		Logger:    logger,
	}

	var fetcher linkctx.Fetcher
	switch cli.Fetch {
	case "http":
		var opts []lchttp.Option
		if cli.PrivateNets {
			opts = append(opts, lchttp.WithPrivateNetworks())
		}
		fetcher = lchttp.NewFetcher(opts...)
	case "browser":
		var opts []rod.Option
		if cli.PrivateNets {
			opts = append(opts, rod.WithPrivateNetworks())
		}
		f, err := rod.NewFetcher(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		fetcher = f
	}

	if fetcher != nil {
		if cli.PrivateNets {
			logger.Warn("page fetcher may reach loopback and private addresses")
		}
		m.closers = append(m.closers, fetcher)
		c.Fetcher = lcslog.NewLoggingFetcher(fetcher, logger)
		c.Extractor = newExtractor(cli.Extractor)
		c.Converter = htmltomarkdown.NewConverter()
		c.Matcher = goquery.NewPhraseMatcher()

		tc, err := gemini.NewTokenCounter(gemini.TokenizerModel)
		if err != nil {
			logger.Warn("token counter unavailable, page content will not be truncated", "err", err)
		} else {
			c.TokenCounter = tc
		}
	}

	return lcslog.NewLoggingContextualizer(c, logger), nil
}

func newExtractor(name string) linkctx.Extractor {
	switch name {
	case "readability":
		return readability.NewExtractor()
	case "goquery":
		return goquery.NewExtractor()
	}
	return trafilatura.NewExtractor()
}
