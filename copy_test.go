package linkctx_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/linkctx"
	"github.com/fwojciec/linkctx/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyIndicator(t *testing.T) {
	t.Parallel()

	t.Run("copies text and resets after delay", func(t *testing.T) {
		t.Parallel()

		cb := &mock.Clipboard{}
		ind := linkctx.NewCopyIndicator(cb, 20*time.Millisecond)

		require.NoError(t, ind.Copy("https://example.com#x"))

		assert.True(t, ind.Copied())
		assert.Equal(t, []string{"https://example.com#x"}, cb.Writes())
		assert.Eventually(t, func() bool { return !ind.Copied() }, time.Second, 5*time.Millisecond)
	})

	t.Run("repeated copy re-arms the reset", func(t *testing.T) {
		t.Parallel()

		ind := linkctx.NewCopyIndicator(&mock.Clipboard{}, 100*time.Millisecond)

		require.NoError(t, ind.Copy("a"))
		time.Sleep(60 * time.Millisecond)
		require.NoError(t, ind.Copy("b"))
		time.Sleep(60 * time.Millisecond)

		// 120ms after the first copy but only 60ms after the second.
		assert.True(t, ind.Copied())
		assert.Eventually(t, func() bool { return !ind.Copied() }, time.Second, 5*time.Millisecond)
	})

	t.Run("indicators are independent", func(t *testing.T) {
		t.Parallel()

		cb := &mock.Clipboard{}
		first := linkctx.NewCopyIndicator(cb, time.Hour)
		second := linkctx.NewCopyIndicator(cb, time.Hour)
		t.Cleanup(first.Stop)

		require.NoError(t, first.Copy("a"))

		assert.True(t, first.Copied())
		assert.False(t, second.Copied())
	})

	t.Run("clipboard failure leaves state untouched", func(t *testing.T) {
		t.Parallel()

		cb := &mock.Clipboard{WriteTextFn: func(string) error { return errors.New("no clipboard") }}
		ind := linkctx.NewCopyIndicator(cb, time.Hour)

		err := ind.Copy("a")

		require.Error(t, err)
		assert.False(t, ind.Copied())
	})

	t.Run("stop clears state", func(t *testing.T) {
		t.Parallel()

		ind := linkctx.NewCopyIndicator(&mock.Clipboard{}, time.Hour)
		require.NoError(t, ind.Copy("a"))

		ind.Stop()

		assert.False(t, ind.Copied())
	})
}
