package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func providers(t *testing.T) map[string]struct {
	fs   *FS
	root string
} {
	t.Helper()
	return map[string]struct {
		fs   *FS
		root string
	}{
		"memory": {NewMemory(), "/work"},
		"os":     {NewOS(), t.TempDir()},
	}
}

func TestFS_WriteReadList(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(p.root, "a", "b", "1234.xml")
			require.NoError(t, p.fs.WriteFile(path, []byte("<mets/>")))

			ok, err := p.fs.Exists(path)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.True(t, p.fs.IsDir(filepath.Dir(path)))

			data, err := p.fs.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "<mets/>", string(data))

			require.NoError(t, p.fs.WriteFile(filepath.Join(p.root, "a", "b", "0001.xml"), nil))
			require.NoError(t, p.fs.MkdirAll(filepath.Join(p.root, "a", "b", "sub")))
			names, err := p.fs.List(filepath.Join(p.root, "a", "b"))
			require.NoError(t, err)
			assert.Equal(t, []string{"0001.xml", "1234.xml"}, names)
		})
	}
}

func TestFS_MoveAndCopy(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			src := filepath.Join(p.root, "staging", "x.xml")
			require.NoError(t, p.fs.WriteFile(src, []byte("x")))

			copied := filepath.Join(p.root, "copy", "x.xml")
			require.NoError(t, p.fs.Copy(src, copied))

			moved := filepath.Join(p.root, "final", "x.xml")
			require.NoError(t, p.fs.Move(src, moved))

			ok, err := p.fs.Exists(src)
			require.NoError(t, err)
			assert.False(t, ok)

			for _, path := range []string{copied, moved} {
				data, err := p.fs.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, "x", string(data))
			}
		})
	}
}

func TestFS_RemoveAll(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join(p.root, "mets_export-1")
			require.NoError(t, p.fs.MkdirAll(dir))
			assert.True(t, p.fs.IsDir(dir))

			require.NoError(t, p.fs.WriteFile(filepath.Join(dir, "nested", "f"), []byte("1")))
			require.NoError(t, p.fs.RemoveAll(dir))
			assert.False(t, p.fs.IsDir(dir))
		})
	}
}
