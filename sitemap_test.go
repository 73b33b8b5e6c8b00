package linkctx_test

import (
	"testing"

	"github.com/fwojciec/linkctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	f, err := linkctx.NewURLFilter([]string{`/docs/`}, []string{`/docs/legacy/`})
	require.NoError(t, err)

	assert.True(t, f.Match("https://example.com/docs/intro"))
	assert.False(t, f.Match("https://example.com/blog/post"))
	assert.False(t, f.Match("https://example.com/docs/legacy/v1"))
}

func TestURLFilter_NilMatchesEverything(t *testing.T) {
	t.Parallel()

	f, err := linkctx.NewURLFilter(nil, nil)
	require.NoError(t, err)

	assert.Nil(t, f)
	assert.True(t, f.Match("https://anything"))
}

func TestNewURLFilter_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := linkctx.NewURLFilter([]string{"("}, nil)

	assert.Equal(t, linkctx.EINVALID, linkctx.ErrorCode(err))
}
