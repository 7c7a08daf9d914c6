package migrate

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource(t *testing.T) {
	t.Run("embedded", func(t *testing.T) {
		fsys, err := Source("")
		require.NoError(t, err)
		names, err := fs.Glob(fsys, "*.sql")
		require.NoError(t, err)
		assert.Contains(t, names, "00001_init.sql")
	})

	t.Run("dir", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "00001_x.sql"), []byte("-- +goose Up\n"), 0o600))
		fsys, err := Source(dir)
		require.NoError(t, err)
		_, err = fs.Stat(fsys, "00001_x.sql")
		assert.NoError(t, err)
	})

	t.Run("missing dir", func(t *testing.T) {
		_, err := Source(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}
