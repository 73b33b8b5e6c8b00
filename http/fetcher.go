// Package http provides the HTTP-facing pieces of linkctx: a plain page
// fetcher, sitemap discovery and the web server for the analyzer.
package http

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"syscall"
	"time"

	"github.com/fwojciec/linkctx"
)

// DefaultFetchTimeout is the default timeout for page requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize caps how much of a page is read into memory.
const DefaultMaxBodySize = 5 << 20

// DefaultUserAgent identifies page requests made by the fetcher.
const DefaultUserAgent = "linkctx/1.0 (+https://github.com/fwojciec/linkctx)"

var _ linkctx.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page HTML with a plain GET request. It does not run
// JavaScript; use rod.Fetcher for pages rendered client-side.
//
// By default Fetcher only connects to public addresses. The check runs on
// every dialed IP, so redirects and DNS answers that point inward are
// refused too.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxBodySize  int64
	userAgent    string
	allowPrivate bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the request timeout. Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBodySize limits the number of bytes read from a response.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithPrivateNetworks lets the fetcher connect to loopback and private
// addresses. Only for local use; never enable it behind a public server.
func WithPrivateNetworks() Option {
	return func(f *Fetcher) {
		f.allowPrivate = true
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		maxBodySize: DefaultMaxBodySize,
		userAgent:   DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	dialer := &net.Dialer{Timeout: f.timeout}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !f.allowPrivate {
		dialer.Control = publicOnly
		// A proxy would be dialed instead of the page's host.
		transport.Proxy = nil
	}
	transport.DialContext = dialer.DialContext

	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
	}

	return f
}

// publicOnly is a net.Dialer Control hook that refuses non-public
// destinations. address is always a resolved IP and port.
func publicOnly(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return err
	}
	if !linkctx.IsPublicAddr(addr) {
		return linkctx.Errorf(linkctx.EINVALID, "Refusing to fetch non-public address %s.", addr)
	}
	return nil
}

// Fetch retrieves the HTML of the page at url.
// A 404 response is reported as ENOTFOUND; other non-200 responses are
// returned as plain errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", linkctx.Errorf(linkctx.ENOTFOUND, "Page not found: %s", url)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}

	return string(body), nil
}

// Close is a no-op; http.Client holds nothing that needs releasing.
func (f *Fetcher) Close() error {
	return nil
}
