package mock

import (
	"sync"

	"github.com/fwojciec/linkctx"
)

var _ linkctx.Clipboard = (*Clipboard)(nil)

// Clipboard is an in-memory linkctx.Clipboard that records writes.
// If WriteTextFn is set it is called instead. Set Unavailable to simulate a
// machine without a clipboard.
type Clipboard struct {
	WriteTextFn func(text string) error
	Unavailable bool

	mu     sync.Mutex
	writes []string
}

func (c *Clipboard) Available() bool {
	return !c.Unavailable
}

func (c *Clipboard) WriteText(text string) error {
	if c.WriteTextFn != nil {
		return c.WriteTextFn(text)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = append(c.writes, text)
	return nil
}

// Writes returns every text written so far.
func (c *Clipboard) Writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.writes...)
}
