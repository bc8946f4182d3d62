// Package mapology provides a type directed, recursive object mapper.
//
// A Mapper converts a source value into a destination type by dispatching every
// conversion step to the first registered converter supporting the source and
// destination type pair. Container converters map nested values back through the
// engine, so maps, slices, pointers and structs of any depth are converted with the
// same rules. When no converter applies, struct destinations are populated
// property by property from struct, map or ordered entries sources.
package mapology

import (
	"errors"
	"fmt"
	"github.com/viant/mapology/conv"
	"github.com/viant/mapology/engine"
	"github.com/viant/mapology/property"
	"github.com/viant/mapology/registry"
	"github.com/viant/mapology/spi"
	"github.com/viant/mapology/typ"
	"reflect"
)

type (
	// Mapper represents object mapper
	Mapper struct {
		engine   *engine.Engine
		registry *registry.Registry
		resolver *typ.Resolver
	}

	// ConversionFunc converts source into destination pointer
	ConversionFunc func(src interface{}, dest interface{}) error
)

// Map maps source into destination pointer, existing non zero destination maps, slices and structs are populated further.
// Nil source leaves destination unchanged.
func (m *Mapper) Map(src interface{}, dest interface{}) error {
	if dest == nil {
		return errors.New("destination cannot be nil")
	}
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr {
		return errors.New("destination must be a pointer")
	}
	if destValue.IsNil() {
		return errors.New("destination pointer cannot be nil")
	}
	if src == nil {
		return nil
	}
	elem := destValue.Elem()
	var existing interface{}
	if elem.Kind() == reflect.Struct {
		existing = dest
	} else {
		existing = typ.Reusable(elem)
	}
	result, err := m.MapTo(src, existing, elem.Type())
	if err != nil {
		return err
	}
	value, err := typ.ValueOf(result, elem.Type())
	if err != nil {
		return err
	}
	elem.Set(value)
	return nil
}

// MapTo maps source into destination type, dest is an optional existing destination
func (m *Mapper) MapTo(src interface{}, dest interface{}, destType reflect.Type) (interface{}, error) {
	if destType == nil {
		return nil, errors.New("destination type cannot be nil")
	}
	return m.engine.Map(spi.NewContext(m.engine, src, dest, destType))
}

// Register registers converter, converters registered by users precede built-in ones unless a priority is supplied
func (m *Mapper) Register(name string, converter spi.Converter, opts ...registry.Option) error {
	opts = append([]registry.Option{registry.WithPriority(registry.PriorityUser)}, opts...)
	return m.registry.Register(name, converter, opts...)
}

// RegisterConversion registers conversion function for exact source and destination types, it replaces previous registration
func (m *Mapper) RegisterConversion(srcType, destType reflect.Type, fn ConversionFunc) error {
	if srcType == nil || destType == nil || fn == nil {
		return errors.New("source type, destination type and conversion function are required")
	}
	name := fmt.Sprintf("conversion:%v->%v", srcType, destType)
	converter := spi.NewConverter(spi.PairOf(srcType, destType), func(ctx *spi.Context) (interface{}, error) {
		dest := reflect.New(destType)
		if existing := ctx.Destination(); existing != nil && reflect.TypeOf(existing) == destType {
			dest.Elem().Set(reflect.ValueOf(existing))
		}
		if err := fn(ctx.Source(), dest.Interface()); err != nil {
			return nil, err
		}
		return dest.Elem().Interface(), nil
	})
	m.registry.Unregister(name)
	return m.Register(name, converter)
}

// RegisterType registers type arguments of a named container type
func (m *Mapper) RegisterType(t reflect.Type, desc *typ.Descriptor) error {
	return m.resolver.RegisterType(t, desc)
}

// RegisterMember registers type arguments of a struct field, i.e. element type of an interface{} field
func (m *Mapper) RegisterMember(owner reflect.Type, name string, desc *typ.Descriptor) error {
	return m.resolver.Register(owner, name, desc)
}

// RegisterProvider registers destination provider, required for interface destinations
func (m *Mapper) RegisterProvider(t reflect.Type, provider engine.Provider) error {
	return m.engine.RegisterProvider(t, provider)
}

// Engine returns mapping engine
func (m *Mapper) Engine() *engine.Engine {
	return m.engine
}

// As maps source into a new value of type T
func As[T any](m *Mapper, src interface{}) (T, error) {
	var ret T
	err := m.Map(src, &ret)
	return ret, err
}

// New creates a mapper
func New(opts ...Option) (*Mapper, error) {
	options := newOptions(opts)
	converters := registry.New()
	for _, named := range conv.Defaults(conv.Options{DateLayout: options.dateLayout, MapType: options.mapType}) {
		if err := converters.Register(named.Name, named.Converter, registry.WithPriority(registry.PriorityDefault)); err != nil {
			return nil, err
		}
	}
	discoverer, err := property.New(
		property.WithFallbackTags(options.fallbackTags...),
		property.WithCaseSensitive(options.caseSensitive),
		property.WithUnexported(options.unexported),
		property.WithIgnore(options.ignore...),
	)
	if err != nil {
		return nil, err
	}
	resolver := typ.NewResolver()
	anEngine, err := engine.New(converters,
		engine.WithResolver(resolver),
		engine.WithDiscoverer(discoverer),
		engine.WithMaxDepth(options.maxDepth),
	)
	if err != nil {
		return nil, err
	}
	return &Mapper{engine: anEngine, registry: converters, resolver: resolver}, nil
}
