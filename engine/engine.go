// Package engine orchestrates conversion: it guards nil sources, cycles and depth,
// dispatches to the first supporting converter and falls back to structural mapping.
package engine

import (
	"fmt"
	"github.com/viant/mapology/property"
	"github.com/viant/mapology/registry"
	"github.com/viant/mapology/spi"
	"github.com/viant/mapology/typ"
	"reflect"
	"sync"
)

// Engine represents mapping engine
type Engine struct {
	options
	registry  *registry.Registry
	providers sync.Map // map[reflect.Type]Provider
}

// Map maps context source into context destination type
func (e *Engine) Map(ctx *spi.Context) (interface{}, error) {
	if ctx.Depth() > e.maxDepth {
		return nil, fmt.Errorf("%w: %d", spi.ErrRecursionLimit, e.maxDepth)
	}
	destType := ctx.DestinationType()
	if typ.IsNil(ctx.Source()) {
		return typ.Zero(destType), nil
	}
	if pending, ok := ctx.Pending(); ok {
		return pending, nil
	}
	if converter := e.registry.Select(ctx.SourceType(), destType); converter != nil {
		return converter.Convert(ctx)
	}
	return e.mapStructure(ctx)
}

// CreateDestination creates an instance of context destination type.
// Maps and slices are created empty, struct and scalar types are returned as a pointer to a new value.
func (e *Engine) CreateDestination(ctx *spi.Context) (interface{}, error) {
	destType := ctx.DestinationType()
	if provider, ok := e.provider(destType); ok {
		ret := provider()
		if ret == nil {
			return nil, &spi.InstantiationError{Type: destType, Reason: "provider returned nil"}
		}
		return ret, nil
	}
	switch destType.Kind() {
	case reflect.Interface:
		return nil, &spi.InstantiationError{Type: destType, Reason: "no provider registered"}
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Invalid:
		return nil, &spi.InstantiationError{Type: destType, Reason: "unsupported kind " + destType.Kind().String()}
	case reflect.Map:
		return reflect.MakeMap(destType).Interface(), nil
	case reflect.Slice:
		return reflect.MakeSlice(destType, 0, 0).Interface(), nil
	case reflect.Ptr:
		return reflect.New(destType.Elem()).Interface(), nil
	}
	return reflect.New(destType).Interface(), nil
}

// RegisterProvider registers destination provider for a type
func (e *Engine) RegisterProvider(t reflect.Type, provider Provider) error {
	if t == nil || provider == nil {
		return fmt.Errorf("engine: type and provider are required")
	}
	e.providers.Store(t, provider)
	return nil
}

func (e *Engine) provider(t reflect.Type) (Provider, bool) {
	value, ok := e.providers.Load(t)
	if !ok {
		return nil, false
	}
	return value.(Provider), true
}

// Resolver returns element type resolver
func (e *Engine) Resolver() *typ.Resolver {
	return e.resolver
}

// Properties returns discovered struct properties
func (e *Engine) Properties(t reflect.Type) (*property.Properties, error) {
	return e.discoverer.Properties(t)
}

// Registry returns converter registry
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Discoverer returns property discoverer
func (e *Engine) Discoverer() *property.Discoverer {
	return e.discoverer
}

// New creates an engine
func New(registry *registry.Registry, opts ...Option) (*Engine, error) {
	if registry == nil {
		return nil, fmt.Errorf("engine: registry was nil")
	}
	ret := &Engine{registry: registry, options: options{maxDepth: DefaultMaxDepth}}
	for _, opt := range opts {
		opt(&ret.options)
	}
	if ret.resolver == nil {
		ret.resolver = typ.NewResolver()
	}
	if ret.discoverer == nil {
		discoverer, err := property.New()
		if err != nil {
			return nil, err
		}
		ret.discoverer = discoverer
	}
	if ret.maxDepth <= 0 {
		ret.maxDepth = DefaultMaxDepth
	}
	for t, provider := range ret.options.providers {
		if err := ret.RegisterProvider(t, provider); err != nil {
			return nil, err
		}
	}
	return ret, nil
}
