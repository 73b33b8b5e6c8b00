package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/linkctx"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx            context.Context
	Stdin          io.Reader
	Stdout         io.Writer
	Stderr         io.Writer
	Config         linkctx.Config
	Logger         *slog.Logger
	Contextualizer linkctx.Contextualizer
	Clipboard      linkctx.Clipboard
	Sitemaps       linkctx.SitemapService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	APIKey        string  `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	Model         string  `env:"LINKCTX_MODEL" default:"gemini-2.5-flash" help:"Generative model"`
	Temperature   float32 `default:"0.3" help:"Sampling temperature (0-2)"`
	NoSearch      bool    `help:"Disable the Google Search tool"`
	Fetch         string  `enum:"none,http,browser" default:"http" help:"How to read the page locally (none, http, browser)"`
	Extractor     string  `enum:"trafilatura,readability,goquery" default:"trafilatura" help:"Main content extractor"`
	MaxPageTokens int     `default:"20000" help:"Token budget for page content in the prompt"`
	PrivateNets   bool    `name:"private-networks" help:"Let the page fetcher reach loopback and private addresses (local use only)"`
	Verbose       bool    `short:"v" help:"Log debug output to stderr"`

	Analyze     AnalyzeCmd     `cmd:"" help:"Analyze a single URL"`
	Interactive InteractiveCmd `cmd:"" help:"Analyze URLs in an interactive session"`
	Serve       ServeCmd       `cmd:"" help:"Serve the analyzer over HTTP"`
	Batch       BatchCmd       `cmd:"" help:"Analyze many URLs"`
}

// Config builds the pipeline configuration from the global flags.
func (c *CLI) Config() linkctx.Config {
	temperature := c.Temperature
	return linkctx.Config{
		APIKey:        c.APIKey,
		Model:         c.Model,
		Temperature:   &temperature,
		Search:        !c.NoSearch,
		MaxPageTokens: c.MaxPageTokens,
	}
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL    string `arg:"" help:"URL to analyze"`
	Format string `short:"f" enum:"text,json,markdown,html,readable,deep" default:"text" help:"Output format (text, json, markdown, html, readable, deep)"`
	Copy   string `short:"c" placeholder:"FORM" help:"Also copy a link form (readable, markdown, html, deep) to the clipboard"`
}

// InteractiveCmd is the "interactive" subcommand.
type InteractiveCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr    string   `default:":8080" help:"Listen address"`
	Origins []string `name:"origin" help:"Allowed CORS origin (repeatable)"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs        []string `arg:"" optional:"" help:"URLs to analyze"`
	File        string   `short:"i" help:"Read URLs from a file, one per line (- for stdin)"`
	Sitemap     string   `help:"Discover URLs from this site's sitemap"`
	Include     []string `help:"Keep sitemap URLs matching regex (repeatable)"`
	Exclude     []string `help:"Drop sitemap URLs matching regex (repeatable)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent analyses"`
	RPS         float64  `name:"rps" default:"1" help:"Requests per second per domain"`
	JSON        bool     `help:"Print results as JSON"`
}
