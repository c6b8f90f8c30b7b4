package engine

import (
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/agbru/fiblike/internal/sequence"
)

// Factory keeps a thread-safe registry of engine creators and caches the
// instrumented engines it hands out.
type Factory struct {
	mu       sync.RWMutex
	creators map[string]func() Engine
	engines  map[string]Engine
}

// NewDefaultFactory returns a factory with the portable backends registered:
//   - "big": math/big, unbounded
//   - "int64": signed 64-bit, wraps on overflow
//   - "uint64": unsigned 64-bit, wraps on overflow
func NewDefaultFactory() *Factory {
	f := &Factory{
		creators: make(map[string]func() Engine),
		engines:  make(map[string]Engine),
	}
	f.Register("big", func() Engine { return New[*big.Int](sequence.Big{}, "Arbitrary precision (math/big)") })
	f.Register("int64", func() Engine { return New[int64](sequence.Int64{}, "Signed 64-bit, wraps on overflow") })
	f.Register("uint64", func() Engine { return New[uint64](sequence.Uint64{}, "Unsigned 64-bit, wraps on overflow") })
	return f
}

// Register adds or replaces a backend. The creator is called lazily on first
// use.
func (f *Factory) Register(name string, creator func() Engine) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creators[name] = creator
	delete(f.engines, name)
}

// Get returns the instrumented engine registered under name. Instances are
// cached.
func (f *Factory) Get(name string) (Engine, error) {
	f.mu.RLock()
	if e, ok := f.engines[name]; ok {
		f.mu.RUnlock()
		return e, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	if e, ok := f.engines[name]; ok {
		return e, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown numeric backend: %s", name)
	}
	e := Instrument(creator())
	f.engines[name] = e
	return e, nil
}

// MustGet is like Get but panics when name is not registered.
func (f *Factory) MustGet(name string) Engine {
	e, err := f.Get(name)
	if err != nil {
		panic(fmt.Sprintf("engine: required backend not found: %s", name))
	}
	return e
}

// Has reports whether name is registered.
func (f *Factory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.creators[name]
	return ok
}

// List returns the registered names in alphabetical order.
func (f *Factory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve maps a --numeric value to engines: "all" selects every registered
// backend in List order, anything else a single one.
func (f *Factory) Resolve(name string) ([]Engine, error) {
	if name != "all" {
		e, err := f.Get(name)
		if err != nil {
			return nil, err
		}
		return []Engine{e}, nil
	}
	names := f.List()
	engines := make([]Engine, 0, len(names))
	for _, n := range names {
		e, err := f.Get(n)
		if err != nil {
			return nil, err
		}
		engines = append(engines, e)
	}
	return engines, nil
}

var globalFactory = NewDefaultFactory()

// GlobalFactory returns the process-wide factory. Build-tagged backends
// register themselves into it from init.
func GlobalFactory() *Factory {
	return globalFactory
}

// RegisterEngine registers a backend in the global factory.
func RegisterEngine(name string, creator func() Engine) {
	globalFactory.Register(name, creator)
}
