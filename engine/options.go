package engine

import (
	"github.com/viant/mapology/property"
	"github.com/viant/mapology/typ"
	"reflect"
)

// DefaultMaxDepth is the default limit of source nesting levels, a level is a property, element, key or value.
// Pointer hops and re-dispatches of the same value do not add a level.
const DefaultMaxDepth = 10000

type (
	// Provider creates an instance for a destination type
	Provider func() interface{}

	options struct {
		resolver   *typ.Resolver
		discoverer *property.Discoverer
		maxDepth   int
		providers  map[reflect.Type]Provider
	}

	// Option represents engine option
	Option func(o *options)
)

// WithResolver sets element type resolver
func WithResolver(resolver *typ.Resolver) Option {
	return func(o *options) {
		o.resolver = resolver
	}
}

// WithDiscoverer sets property discoverer
func WithDiscoverer(discoverer *property.Discoverer) Option {
	return func(o *options) {
		o.discoverer = discoverer
	}
}

// WithMaxDepth sets the limit of source nesting levels
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithProvider registers destination provider for a type
func WithProvider(t reflect.Type, provider Provider) Option {
	return func(o *options) {
		if o.providers == nil {
			o.providers = map[reflect.Type]Provider{}
		}
		o.providers[t] = provider
	}
}
