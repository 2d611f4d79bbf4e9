// Package theme is the extension point of the site theme: an explicit
// registry of globally addressable components and the bootstrap hook that
// adds the Oak Chain component on top of the default theme.
package theme

import (
	"slices"
	"strings"
	"sync"

	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
)

// Component is a renderable component content pages may reference by name.
type Component struct {
	Name   string `json:"name" yaml:"name"`
	Source string `json:"source" yaml:"source"` // module path of the implementation, relative to the theme dir
}

// Registry holds the set of component names recognised by the renderer.
// Registration is idempotent.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Component
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]Component)}
}

// Register adds c. Registering a name that already exists is a no-op and
// reports added=false; the first registration wins.
func (r *Registry) Register(c Component) (added bool, err error) {
	if strings.TrimSpace(c.Name) == "" {
		return false, foundation.ValidationError("component name is required").Build()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.components[c.Name]; exists {
		return false, nil
	}
	r.components[c.Name] = c
	return true, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.components[name]
	return ok
}

// Get returns the component registered as name.
func (r *Registry) Get(name string) (Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.components[name]
	return c, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.components))
	for name := range r.components {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Components returns the registered components sorted by name.
func (r *Registry) Components() []Component {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Component, 0, len(names))
	for _, n := range names {
		out = append(out, r.components[n])
	}
	return out
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.components)
}
