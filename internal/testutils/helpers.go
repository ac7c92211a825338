// Package testutils holds fixture helpers shared by the package tests.
package testutils

import (
	"path"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// WriteTree writes files into fs under root, creating parent directories.
// Keys are slash-separated paths relative to root; an empty root leaves
// them as given.
func WriteTree(t testing.TB, fs afero.Fs, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		full := path.Join(root, name)
		require.NoError(t, fs.MkdirAll(path.Dir(full), 0o755))
		require.NoError(t, afero.WriteFile(fs, full, []byte(content), 0o644))
	}
}

// MemTree returns an in-memory file system holding files under root.
func MemTree(t testing.TB, root string, files map[string]string) afero.Fs {
	t.Helper()
	mem := afero.NewMemMapFs()
	WriteTree(t, mem, root, files)
	return mem
}
