// Package fsys is the file-system collaborator of the assembler: glob
// listing, whole-file reads and existence checks over an afero.Fs.
package fsys

import (
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// FileSystem is the narrow view of storage the assembler depends on.
type FileSystem interface {
	// ListFiles returns the regular files matching a glob pattern, sorted.
	// Patterns support *, **, ? and {a,b} alternation. A pattern whose
	// static prefix does not exist matches nothing.
	ListFiles(pattern string) ([]string, error)
	// ReadFile returns the whole content of path.
	ReadFile(path string) (string, error)
	// Exists reports whether path names a regular file.
	Exists(path string) bool
}

// AferoFS implements FileSystem on top of an afero.Fs.
type AferoFS struct {
	fs afero.Fs
}

// New wraps fs.
func New(fs afero.Fs) *AferoFS {
	return &AferoFS{fs: fs}
}

// NewOS returns a FileSystem backed by the operating system.
func NewOS() *AferoFS {
	return New(afero.NewOsFs())
}

// ListFiles implements FileSystem.
func (a *AferoFS) ListFiles(pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	base, rel := doublestar.SplitPattern(pattern)

	ok, err := afero.DirExists(a.fs, base)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	iofs := afero.NewIOFS(afero.NewBasePathFs(a.fs, base))
	matches, err := doublestar.Glob(iofs, rel, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		files = append(files, path.Join(base, m))
	}
	sort.Strings(files)
	return files, nil
}

// ReadFile implements FileSystem.
func (a *AferoFS) ReadFile(name string) (string, error) {
	data, err := afero.ReadFile(a.fs, name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Exists implements FileSystem.
func (a *AferoFS) Exists(name string) bool {
	info, err := a.fs.Stat(name)
	return err == nil && !info.IsDir()
}
