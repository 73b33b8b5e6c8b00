package linkctx

import (
	"context"
	"net/netip"
)

// Page is a locally read web page.
type Page struct {
	URL     string
	Title   string
	HTML    string // Raw HTML as fetched
	Content string // Main content as Markdown
}

// Fetcher downloads a page. Implementations range from a plain HTTP GET to
// a headless browser for pages rendered by JavaScript.
type Fetcher interface {
	// Fetch returns the HTML of url. ctx bounds the whole request.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases whatever the fetcher holds open.
	Close() error
}

// ExtractResult holds the main content found in an HTML page.
type ExtractResult struct {
	// Title comes from page metadata (title element, og:title, JSON+LD).
	Title string

	// ContentHTML is the article body with navigation, footers and ads
	// removed.
	ContentHTML string
}

// Extractor isolates the readable body of an HTML page so that only the
// content a reader would see is sent to the model.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter turns extracted HTML into Markdown for the prompt.
type Converter interface {
	Convert(html string) (string, error)
}

// TokenCounter measures text in model tokens so page content can be kept
// within the prompt budget.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// sharedAddressSpace is the carrier-grade NAT range, RFC 6598.
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// IsPublicAddr reports whether a page fetch may connect to a. Loopback,
// private, link-local (which includes cloud metadata at 169.254.169.254),
// multicast, carrier-grade NAT and unspecified addresses are not public.
func IsPublicAddr(a netip.Addr) bool {
	a = a.Unmap()
	switch {
	case !a.IsValid(),
		a.IsUnspecified(),
		a.IsLoopback(),
		a.IsPrivate(),
		a.IsLinkLocalUnicast(),
		a.IsLinkLocalMulticast(),
		a.IsInterfaceLocalMulticast(),
		a.IsMulticast(),
		sharedAddressSpace.Contains(a):
		return false
	}
	return true
}
