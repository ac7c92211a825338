// Package registry holds the set of components a build assembles.
package registry

import (
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/conneroisu/compgen/internal/errors"
	"github.com/spf13/afero"
)

// Source records how a component entered the registry.
type Source int

const (
	SourceConfig Source = iota
	SourceDiscovered
)

func (s Source) String() string {
	if s == SourceDiscovered {
		return "discovered"
	}
	return "config"
}

// ComponentInfo describes one component directory.
type ComponentInfo struct {
	Name   string `json:"name" yaml:"name"`
	Root   string `json:"root" yaml:"root"`
	Source Source `json:"-" yaml:"-"`
}

// ComponentRegistry manages the components known to a build.
type ComponentRegistry struct {
	components map[string]*ComponentInfo
	mutex      sync.RWMutex
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		components: make(map[string]*ComponentInfo),
	}
}

// Register adds or updates a component. It reports whether an existing
// entry was replaced.
func (r *ComponentRegistry) Register(component *ComponentInfo) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, exists := r.components[component.Name]
	r.components[component.Name] = component
	return exists
}

// Get retrieves a component by name.
func (r *ComponentRegistry) Get(name string) (*ComponentInfo, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	component, exists := r.components[name]
	return component, exists
}

// All returns every registered component sorted by name.
func (r *ComponentRegistry) All() []*ComponentInfo {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*ComponentInfo, 0, len(r.components))
	for _, component := range r.components {
		result = append(result, component)
	}
	slices.SortFunc(result, func(a, b *ComponentInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result
}

// Count returns the number of registered components.
func (r *ComponentRegistry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.components)
}

// Discover registers every non-hidden sub-directory of appRoot as a
// component named after the directory. Components already registered keep
// their entry. A missing appRoot registers nothing. It returns the number of
// components added.
func (r *ComponentRegistry) Discover(fs afero.Fs, appRoot string) (int, error) {
	exists, err := afero.DirExists(fs, appRoot)
	if err != nil {
		return 0, errors.WrapIO(err, errors.ErrCodeListFailed, "failed to stat application root", appRoot)
	}
	if !exists {
		return 0, nil
	}

	entries, err := afero.ReadDir(fs, appRoot)
	if err != nil {
		return 0, errors.WrapIO(err, errors.ErrCodeListFailed, "failed to list application root", appRoot)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	added := 0
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if _, ok := r.components[entry.Name()]; ok {
			continue
		}
		r.components[entry.Name()] = &ComponentInfo{
			Name:   entry.Name(),
			Root:   path.Join(filepath.ToSlash(appRoot), entry.Name()),
			Source: SourceDiscovered,
		}
		added++
	}
	return added, nil
}
