package static

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssets(t *testing.T) {
	assert.True(t, bytes.HasPrefix(Favicon(), []byte("\x89PNG")))
	assert.Contains(t, string(Index()), `<div id="root">`)

	_, err := fs.Stat(FS(), IndexFile)
	require.NoError(t, err)
}
