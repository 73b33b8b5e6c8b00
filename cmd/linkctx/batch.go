package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/linkctx"
	"github.com/fwojciec/linkctx/batch"
)

// progressURLWidth caps how much of a URL a progress line shows.
const progressURLWidth = 72

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	urls, err := c.collect(deps)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return linkctx.Errorf(linkctx.EINVALID, "no URLs given. Pass URLs, --file or --sitemap")
	}

	runner := &batch.Runner{
		Contextualizer: deps.Contextualizer,
		Limiter:        batch.NewDomainLimiter(c.RPS),
		Concurrency:    c.Concurrency,
		Logger:         deps.Logger,
	}

	items, err := runner.Run(deps.Ctx, deps.Config, urls, func(ev batch.ProgressEvent) {
		switch ev.Type {
		case batch.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s %s\n", ev.Completed, ev.Total, okColor.Sprint("ok"), linkctx.TruncateURL(ev.URL, progressURLWidth))
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s %s: %s\n", ev.Completed, ev.Total, errorColor.Sprint("failed"), linkctx.TruncateURL(ev.URL, progressURLWidth), linkctx.DisplayMessage(ev.Error))
		}
	})
	if err != nil && items == nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			return err
		}
	} else {
		for _, item := range items {
			if item.Result == nil {
				continue
			}
			fmt.Fprint(deps.Stdout, linkctx.FormatMarkdown(item.Result))
			fmt.Fprintln(deps.Stdout)
		}
	}
	if err != nil {
		return err
	}

	var failed int
	for _, item := range items {
		if item.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return linkctx.Errorf(linkctx.EINTERNAL, "%d of %d URLs failed", failed, len(items))
	}
	return nil
}

// collect gathers input URLs from arguments, the input file and the sitemap,
// in that order.
func (c *BatchCmd) collect(deps *Dependencies) ([]string, error) {
	urls := append([]string{}, c.URLs...)

	if c.File != "" {
		lines, err := c.readFile(deps.Stdin)
		if err != nil {
			return nil, err
		}
		urls = append(urls, lines...)
	}

	if c.Sitemap != "" {
		filter, err := linkctx.NewURLFilter(c.Include, c.Exclude)
		if err != nil {
			return nil, err
		}
		found, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, linkctx.NormalizeURL(c.Sitemap), filter)
		if err != nil {
			return nil, fmt.Errorf("discovering sitemap URLs: %w", err)
		}
		urls = append(urls, found...)
	}

	return urls, nil
}

func (c *BatchCmd) readFile(stdin io.Reader) ([]string, error) {
	r := stdin
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
