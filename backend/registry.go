package backend

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/rpplayground/QClassify/types/quantum"
)

// Registry maps backend names to execution engines so configuration can
// select one by identifier.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]quantum.Backend
}

func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]quantum.Backend),
	}
}

func (r *Registry) Register(backend quantum.Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backends[backend.Name()] = backend
}

func (r *Registry) Get(name string) (quantum.Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	backend, ok := r.backends[name]
	if !ok {
		return nil, errors.Wrapf(
			errors.New("backend not registered"),
			"get %q",
			name,
		)
	}
	return backend, nil
}

func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	return names
}
