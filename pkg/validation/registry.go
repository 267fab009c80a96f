package validation

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formengine/pkg/schema"
)

// Registry maps names to custom validators so schemas loaded from documents
// can reference Go functions through ValidationSpec.CustomRef. A nil Registry
// resolves nothing.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]schema.CustomFunc
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]schema.CustomFunc)}
}

// Register adds fn under name. Blank names and nil functions are ignored; a
// repeated name replaces the earlier registration.
func (r *Registry) Register(name string, fn schema.CustomFunc) {
	if r == nil || fn == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.funcs == nil {
		r.funcs = make(map[string]schema.CustomFunc)
	}
	r.funcs[trimmed] = fn
}

// Lookup returns the validator registered under name.
func (r *Registry) Lookup(name string) (schema.CustomFunc, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[strings.TrimSpace(name)]
	return fn, ok
}

// Names lists registered validator names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
