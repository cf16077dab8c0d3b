package web

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssets_Embedded(t *testing.T) {
	assets := Assets("")
	for _, name := range []string{"index.html", "style.css"} {
		b, err := fs.ReadFile(assets, name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, b, name)
	}
}

func TestAssets_Dir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("custom"), 0o644))

	b, err := fs.ReadFile(Assets(dir), "index.html")
	require.NoError(t, err)
	assert.Equal(t, "custom", string(b))

	_, err = fs.ReadFile(Assets(dir), "style.css")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
