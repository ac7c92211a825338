package fsys

import (
	"testing"

	"github.com/conneroisu/compgen/internal/testutils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFS(t *testing.T, files map[string]string) *AferoFS {
	t.Helper()
	return New(testutils.MemTree(t, "", files))
}

func TestListFiles_SortedAndFilesOnly(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"/app/blog/models/user.rb":    "",
		"/app/blog/models/post.rb":    "",
		"/app/blog/models/readme.txt": "",
		"/app/blog/models/sub/x.rb":   "",
	})

	files, err := fs.ListFiles("/app/blog/models/*.rb")
	require.NoError(t, err)
	assert.Equal(t, []string{"/app/blog/models/post.rb", "/app/blog/models/user.rb"}, files)
}

func TestListFiles_DoubleStarAndAlternation(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"/c/views/main/index.html":      "",
		"/c/views/main/show/body.email": "",
		"/c/views/main/notes.txt":       "",
		"/c/views/top.html":             "",
	})

	files, err := fs.ListFiles("/c/views/*/**/*.{email,html}")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/c/views/main/index.html",
		"/c/views/main/show/body.email",
	}, files)
}

func TestListFiles_MissingBase(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/c/models/a.rb": ""})

	files, err := fs.ListFiles("/c/controllers/*_controller.rb")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestReadFileAndExists(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/c/config/routes.rb": "get '/'"})

	content, err := fs.ReadFile("/c/config/routes.rb")
	require.NoError(t, err)
	assert.Equal(t, "get '/'", content)

	_, err = fs.ReadFile("/c/config/missing.rb")
	assert.Error(t, err)

	assert.True(t, fs.Exists("/c/config/routes.rb"))
	assert.False(t, fs.Exists("/c/config"))
	assert.False(t, fs.Exists("/c/config/missing.rb"))
}

func TestOSFileSystem(t *testing.T) {
	dir := t.TempDir()
	osfs := afero.NewOsFs()
	require.NoError(t, osfs.MkdirAll(dir+"/models", 0o755))
	require.NoError(t, afero.WriteFile(osfs, dir+"/models/a.rb", []byte("A"), 0o644))

	fs := NewOS()
	files, err := fs.ListFiles(dir + "/models/*.rb")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, fs.Exists(files[0]))
}
