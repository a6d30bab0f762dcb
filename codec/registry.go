package codec

import (
	"fmt"
	"path/filepath"
	"sync"
)

// Registry maps filename extensions and codec names to codec instances.
//
// A registry is populated once at startup and read-only afterwards; the
// mutex exists so that init-time registration from multiple packages and
// later lookups compose safely.
type Registry struct {
	mu     sync.RWMutex
	byExt  map[string]Codec
	byName map[string]Codec
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byExt:  map[string]Codec{},
		byName: map[string]Codec{},
	}
}

// Register inserts c under its name and under every extension it declares.
// Extension collisions are resolved by registration order: the
// most-recently-registered codec wins.
func (r *Registry) Register(c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[c.Name()] = c
	for _, ext := range c.Extensions() {
		r.byExt[ext] = c
	}
}

// ByExtension resolves the codec responsible for filename by its extension
// (case-sensitive, leading dot included).
func (r *Registry) ByExtension(filename string) (Codec, error) {
	ext := filepath.Ext(filename)
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: no codec registered for extension %q", ErrUnsupportedFormat, ext)
	}
	return c, nil
}

// ByName resolves a codec by its stable name.
func (r *Registry) ByName(name string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: no codec registered under name %q", ErrUnsupportedFormat, name)
	}
	return c, nil
}

// Names returns the names of all registered codecs.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	return names
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry. Format packages register their
// codec instances here from init().
func Default() *Registry { return defaultRegistry }

// Register adds c to the process-wide registry.
func Register(c Codec) { defaultRegistry.Register(c) }
