package spi

import (
	"github.com/viant/mapology/typ"
	"reflect"
)

type (
	// Context represents a single conversion step.
	// A context is created right before a converter runs and is not retained afterwards.
	Context struct {
		source          interface{}
		destination     interface{}
		destinationType reflect.Type
		mapping         Mapping
		engine          Engine
		session         *session
		depth           int
	}

	identity struct {
		ptr         uintptr
		length      int
		source      reflect.Type
		destination reflect.Type
	}

	//session holds state shared by all contexts of a top level call
	session struct {
		pending map[identity]interface{}
	}
)

// Source returns source value
func (c *Context) Source() interface{} {
	return c.source
}

// SourceType returns source type or nil for nil source
func (c *Context) SourceType() reflect.Type {
	if c.source == nil {
		return nil
	}
	return reflect.TypeOf(c.source)
}

// Destination returns existing destination, nil when destination has to be created
func (c *Context) Destination() interface{} {
	return c.destination
}

// DestinationType returns destination type
func (c *Context) DestinationType() reflect.Type {
	return c.destinationType
}

// Mapping returns mapping metadata, nil for root and element contexts
func (c *Context) Mapping() Mapping {
	return c.mapping
}

// PropertyMapping returns mapping as property mapping if possible
func (c *Context) PropertyMapping() (*PropertyMapping, bool) {
	ret, ok := c.mapping.(*PropertyMapping)
	return ret, ok && ret != nil
}

// Engine returns orchestrating engine
func (c *Context) Engine() Engine {
	return c.engine
}

// Depth returns nesting level of the mapped value within the root source
func (c *Context) Depth() int {
	return c.depth
}

// Create creates an element context for supplied source and destination type
func (c *Context) Create(source interface{}, destinationType reflect.Type) *Context {
	return c.child(source, nil, destinationType, nil, 1)
}

// CreateFor creates an element context populating existing destination
func (c *Context) CreateFor(source, destination interface{}, destinationType reflect.Type) *Context {
	return c.child(source, destination, destinationType, nil, 1)
}

// CreateProperty creates a context for a destination property
func (c *Context) CreateProperty(source, destination interface{}, destinationType reflect.Type, mapping Mapping) *Context {
	return c.child(source, destination, destinationType, mapping, 1)
}

// WithSource creates a context at the same level with the same destination and mapping for a derived source
func (c *Context) WithSource(source interface{}) *Context {
	return c.child(source, c.destination, c.destinationType, c.mapping, 0)
}

// WithDestination creates a context at the same level with the same source and mapping for a concrete destination
func (c *Context) WithDestination(destination interface{}, destinationType reflect.Type) *Context {
	return c.child(c.source, destination, destinationType, c.mapping, 0)
}

// Redirect creates a context at the same level with the same mapping, i.e. for a pointer target
func (c *Context) Redirect(source, destination interface{}, destinationType reflect.Type) *Context {
	return c.child(source, destination, destinationType, c.mapping, 0)
}

func (c *Context) child(source, destination interface{}, destinationType reflect.Type, mapping Mapping, levels int) *Context {
	if destinationType == nil {
		destinationType = typ.Any
	}
	return &Context{
		source:          source,
		destination:     destination,
		destinationType: destinationType,
		mapping:         mapping,
		engine:          c.engine,
		session:         c.session,
		depth:           c.depth + levels,
	}
}

// Remember registers destination as pending result for context source identity,
// so that re-entering the same source and destination types resolves to it.
func (c *Context) Remember(destination interface{}) {
	key, ok := c.identity()
	if !ok {
		return
	}
	c.session.pending[key] = destination
}

// Pending returns destination registered for context source identity
func (c *Context) Pending() (interface{}, bool) {
	key, ok := c.identity()
	if !ok {
		return nil, false
	}
	ret, ok := c.session.pending[key]
	return ret, ok
}

func (c *Context) identity() (identity, bool) {
	if c.source == nil || c.session == nil {
		return identity{}, false
	}
	value := reflect.ValueOf(c.source)
	switch value.Kind() {
	case reflect.Ptr, reflect.Map:
		if value.IsNil() {
			return identity{}, false
		}
		return identity{ptr: value.Pointer(), source: value.Type(), destination: c.destinationType}, true
	case reflect.Slice:
		if value.Len() == 0 {
			return identity{}, false
		}
		return identity{ptr: value.Pointer(), length: value.Len(), source: value.Type(), destination: c.destinationType}, true
	}
	return identity{}, false
}

// NewContext creates a root context
func NewContext(engine Engine, source, destination interface{}, destinationType reflect.Type) *Context {
	if destinationType == nil {
		destinationType = typ.Any
	}
	return &Context{
		source:          source,
		destination:     destination,
		destinationType: destinationType,
		engine:          engine,
		session:         &session{pending: make(map[identity]interface{})},
	}
}
