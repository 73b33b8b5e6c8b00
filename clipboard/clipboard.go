// Package clipboard implements linkctx.Clipboard with the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
	"github.com/fwojciec/linkctx"
)

var _ linkctx.Clipboard = (*Clipboard)(nil)

// Clipboard writes to the operating system clipboard. On Linux it needs
// xclip, xsel or wl-copy on PATH.
type Clipboard struct{}

// NewClipboard returns a Clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Available reports whether the system clipboard can be used.
func (c *Clipboard) Available() bool {
	return !clipboard.Unsupported
}

// WriteText replaces the clipboard contents with text.
func (c *Clipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return linkctx.Errorf(linkctx.ECONFIG, "No clipboard utility available.")
	}
	return clipboard.WriteAll(text)
}
