// Package optimize adapts gonum's derivative-free minimizers to the
// engine's optimizer contract and keeps a name-keyed registry so training
// options can select an algorithm by identifier.
package optimize

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	typesOptimize "github.com/rpplayground/QClassify/types/optimize"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func() typesOptimize.Method)
)

// Register makes a method constructor available under the given name.
// Later registrations replace earlier ones.
func Register(name string, constructor func() typesOptimize.Method) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry[name] = constructor
}

// New resolves a method identifier against the registry.
func New(name string) (typesOptimize.Method, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	constructor, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(
			errors.New("optimizer not registered"),
			"new %q",
			name,
		)
	}
	return constructor(), nil
}

// Methods lists the registered identifiers in sorted order.
func Methods() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(MethodNelderMead, func() typesOptimize.Method {
		return &NelderMead{}
	})
	Register(MethodCMAES, func() typesOptimize.Method {
		return &CMAES{}
	})
}
