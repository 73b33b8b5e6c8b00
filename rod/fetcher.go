// Package rod implements linkctx.Fetcher with headless Chrome for pages that
// only render their content with JavaScript.
package rod

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/linkctx"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxPages is the number of pages rendered before Chrome is restarted.
// Chrome's memory baseline grows under load and never fully recovers.
const DefaultMaxPages = 75

var _ linkctx.Fetcher = (*Fetcher)(nil)

// Fetcher renders pages in headless Chrome and returns the resulting HTML.
// Fetcher is safe for concurrent use.
//
// Unless WithPrivateNetworks is given, every request the page makes,
// including redirects and subresources, must resolve to public addresses.
type Fetcher struct {
	timeout      time.Duration
	maxPages     int64
	allowPrivate bool

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    atomic.Int64
	closed   atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page render timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets how many pages are rendered before Chrome is restarted.
func WithMaxPages(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// WithPrivateNetworks lets pages load from loopback and private addresses.
// Only for local use; never enable it behind a public server.
func WithPrivateNetworks() Option {
	return func(f *Fetcher) {
		f.allowPrivate = true
	}
}

// NewFetcher launches headless Chrome. Close must be called when the Fetcher
// is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	b, l, err := launch()
	if err != nil {
		return nil, err
	}
	f.browser, f.launcher = b, l
	return f, nil
}

// Fetch navigates to url, waits for the load event and returns the rendered
// HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !f.allowPrivate {
		if err := checkPublic(ctx, url); err != nil {
			return "", err
		}
	}

	browser, err := f.acquire()
	if err != nil {
		return "", err
	}
	defer f.pages.Add(1)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)
	if !f.allowPrivate {
		router := page.HijackRequests()
		router.MustAdd("*", func(h *rod.Hijack) {
			if checkPublic(ctx, h.Request.URL().String()) != nil {
				h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
				return
			}
			h.ContinueRequest(&proto.FetchContinueRequest{})
		})
		go router.Run()
		defer func() { _ = router.Stop() }()
	}

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("waiting for %s: %w", url, err)
	}

	return page.HTML()
}

// acquire returns the current browser, restarting it first once it has
// rendered maxPages pages. If the restart fails the old browser is kept.
func (f *Fetcher) acquire() (*rod.Browser, error) {
	if f.closed.Load() {
		return nil, linkctx.Errorf(linkctx.EINVALID, "fetcher is closed")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.maxPages > 0 && f.pages.Load() >= f.maxPages {
		if b, l, err := launch(); err == nil {
			_ = f.browser.Close()
			f.launcher.Kill()
			f.browser, f.launcher = b, l
			f.pages.Store(0)
		}
	}
	return f.browser, nil
}

// Close shuts Chrome down. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	err := f.browser.Close()
	f.launcher.Kill()
	return err
}

// LauncherPID returns the Chrome process ID.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.launcher.PID()
}

// checkPublic resolves the host of rawURL and fails unless every address
// is public.
func checkPublic(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return linkctx.Errorf(linkctx.EINVALID, "Invalid URL: %s", rawURL)
	}
	switch u.Scheme {
	case "data", "blob", "about":
		return nil
	}

	host := u.Hostname()
	addrs := []netip.Addr{}
	if a, err := netip.ParseAddr(host); err == nil {
		addrs = append(addrs, a)
	} else {
		addrs, err = net.DefaultResolver.LookupNetIP(ctx, "ip", host)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", host, err)
		}
	}
	for _, a := range addrs {
		if !linkctx.IsPublicAddr(a) {
			return linkctx.Errorf(linkctx.EINVALID, "Refusing to fetch non-public address %s.", a)
		}
	}
	return nil
}

func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return b, l, nil
}
