// Package registry provides an ordered, copy-on-write converter registry.
//
// Select probes converters in order of descending priority, converters with
// equal priority are probed in registration order; the first converter which
// supports the source and destination type pair wins. Registration order is
// therefore part of the observable contract. Each Supports predicate is
// evaluated at most once per Select call.
//
// Readers never lock: every registration publishes a new immutable snapshot.
package registry

import (
	"errors"
	"github.com/viant/mapology/spi"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"
)

const (
	// PriorityDefault is used by built-in converters
	PriorityDefault = 0
	// PriorityUser is used by converters registered by users, they precede built-ins
	PriorityUser = 100
)

var (
	// ErrNilConverter is returned when a nil converter is registered
	ErrNilConverter = errors.New("registry: nil converter")
	// ErrEmptyName is returned when a converter name is empty
	ErrEmptyName = errors.New("registry: empty converter name")
	// ErrDuplicateConverter is returned when a converter name is already registered
	ErrDuplicateConverter = errors.New("registry: duplicate converter")
)

type (
	// Entry represents registered converter
	Entry struct {
		Name      string
		Converter spi.Converter
		Priority  int
		sequence  uint64
	}

	// Registry represents ordered converter registry
	Registry struct {
		mux      sync.Mutex
		sequence uint64
		entries  atomic.Pointer[[]*Entry]
	}

	// Option represents registration option
	Option func(e *Entry)
)

// WithPriority sets converter priority
func WithPriority(priority int) Option {
	return func(e *Entry) {
		e.Priority = priority
	}
}

// Register registers converter
func (r *Registry) Register(name string, converter spi.Converter, opts ...Option) error {
	if converter == nil {
		return ErrNilConverter
	}
	if name == "" {
		return ErrEmptyName
	}
	entry := &Entry{Name: name, Converter: converter, Priority: PriorityDefault}
	for _, opt := range opts {
		opt(entry)
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	current := r.snapshot()
	for _, candidate := range current {
		if candidate.Name == name {
			return ErrDuplicateConverter
		}
	}
	r.sequence++
	entry.sequence = r.sequence
	next := make([]*Entry, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, entry)
	sort.SliceStable(next, func(i, j int) bool {
		if next[i].Priority != next[j].Priority {
			return next[i].Priority > next[j].Priority
		}
		return next[i].sequence < next[j].sequence
	})
	r.entries.Store(&next)
	return nil
}

// Unregister removes converter, it returns false if converter was not registered
func (r *Registry) Unregister(name string) bool {
	r.mux.Lock()
	defer r.mux.Unlock()
	current := r.snapshot()
	next := make([]*Entry, 0, len(current))
	for _, candidate := range current {
		if candidate.Name != name {
			next = append(next, candidate)
		}
	}
	if len(next) == len(current) {
		return false
	}
	r.entries.Store(&next)
	return true
}

// Select returns the first converter supporting source and destination types or nil
func (r *Registry) Select(source, destination reflect.Type) spi.Converter {
	for _, entry := range r.snapshot() {
		if entry.Converter.Supports(source, destination) {
			return entry.Converter
		}
	}
	return nil
}

// Entries returns registered entries in probing order
func (r *Registry) Entries() []Entry {
	current := r.snapshot()
	ret := make([]Entry, len(current))
	for i, entry := range current {
		ret[i] = *entry
	}
	return ret
}

// Len returns registered converter count
func (r *Registry) Len() int {
	return len(r.snapshot())
}

func (r *Registry) snapshot() []*Entry {
	if entries := r.entries.Load(); entries != nil {
		return *entries
	}
	return nil
}

// New creates a registry
func New() *Registry {
	return &Registry{}
}
