package linkctx

import (
	"sync"
	"time"
)

// DefaultCopyResetDelay is how long a copy indicator stays in the copied
// state.
const DefaultCopyResetDelay = 2 * time.Second

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	// Available reports whether WriteText can work at all, so callers can
	// refuse a copy before doing any expensive work.
	Available() bool

	WriteText(text string) error
}

// CopyIndicator copies text to a clipboard and remembers that it did so for
// a short time. Each indicator owns its own reset timer; copying again
// before the reset fires cancels the pending reset and starts a new one.
type CopyIndicator struct {
	clipboard Clipboard
	delay     time.Duration

	mu     sync.Mutex
	copied bool
	timer  *time.Timer
}

// NewCopyIndicator returns a CopyIndicator that resets after delay.
// A non-positive delay means DefaultCopyResetDelay.
func NewCopyIndicator(cb Clipboard, delay time.Duration) *CopyIndicator {
	if delay <= 0 {
		delay = DefaultCopyResetDelay
	}
	return &CopyIndicator{clipboard: cb, delay: delay}
}

// Copy writes text to the clipboard and sets the copied state.
// The clipboard write error, if any, is returned and the state is left as is.
func (c *CopyIndicator) Copy(text string) error {
	if err := c.clipboard.WriteText(text); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.copied = true

	var t *time.Timer
	t = time.AfterFunc(c.delay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// A newer copy owns the state now.
		if c.timer != t {
			return
		}
		c.copied = false
		c.timer = nil
	})
	c.timer = t
	return nil
}

// Copied reports whether text was copied within the reset delay.
func (c *CopyIndicator) Copied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copied
}

// Stop cancels a pending reset and clears the copied state.
func (c *CopyIndicator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.copied = false
}
