package chronograph

import (
	"sort"
	"sync"
)

// Registry is a name-to-Chronograph lookup table with get-or-create
// semantics. The check-then-insert is guarded so concurrent first calls for
// the same name resolve to exactly one instance.
type Registry struct {
	mu     sync.Mutex
	byName map[string]*Chronograph
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Chronograph),
	}
}

// GetOrCreate returns the Chronograph registered under name, constructing
// it from opts on first use. Options are only applied when the entry is
// created; later callers get the existing instance unchanged.
func (r *Registry) GetOrCreate(name string, opts Options) *Chronograph {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.byName[name]; ok {
		return c
	}
	opts.Name = name
	c := New(opts)
	r.byName[name] = c
	return c
}

// Get returns the Chronograph registered under name, if any.
func (r *Registry) Get(name string) (*Chronograph, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byName[name]
	return c, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Each calls fn for every registered Chronograph in name order. The
// registry lock is not held during the calls.
func (r *Registry) Each(fn func(*Chronograph)) {
	r.mu.Lock()
	snapshot := make([]*Chronograph, 0, len(r.byName))
	for _, c := range r.byName {
		snapshot = append(snapshot, c)
	}
	r.mu.Unlock()

	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].Name() < snapshot[j].Name() })
	for _, c := range snapshot {
		fn(c)
	}
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// Default returns the process-wide registry, initializing it on first use.
func Default() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// GetChronograph returns the named Chronograph from the process-wide
// registry, creating it with default options on first use.
func GetChronograph(name string) *Chronograph {
	return Default().GetOrCreate(name, Options{})
}

// GetChronographWith is GetChronograph with explicit construction options.
// The options only take effect if the name has not been seen before.
func GetChronographWith(name string, opts Options) *Chronograph {
	return Default().GetOrCreate(name, opts)
}
