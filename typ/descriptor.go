package typ

import (
	"reflect"
	"strings"
)

// Any represents universal (top) type
var Any = reflect.TypeOf((*interface{})(nil)).Elem()

// Descriptor describes a type with optional type arguments.
// Missing arguments, nil descriptor or nil type all degrade to Any.
type Descriptor struct {
	Type reflect.Type
	Args []*Descriptor
}

// New creates a descriptor
func New(t reflect.Type, args ...*Descriptor) *Descriptor {
	return &Descriptor{Type: t, Args: args}
}

// MapOf creates a map descriptor
func MapOf(key, value reflect.Type) *Descriptor {
	return New(reflect.MapOf(orAny(key), orAny(value)), New(key), New(value))
}

// SliceOf creates a slice descriptor
func SliceOf(elem reflect.Type) *Descriptor {
	return New(reflect.SliceOf(orAny(elem)), New(elem))
}

// Of derives descriptor from Go container type
func Of(t reflect.Type) *Descriptor {
	if t == nil {
		return New(Any)
	}
	switch t.Kind() {
	case reflect.Map:
		return New(t, Of(t.Key()), Of(t.Elem()))
	case reflect.Slice, reflect.Array, reflect.Ptr:
		return New(t, Of(t.Elem()))
	}
	return New(t)
}

// RType returns descriptor reflect type or Any
func (d *Descriptor) RType() reflect.Type {
	if d == nil || d.Type == nil {
		return Any
	}
	return d.Type
}

// IsAny returns true if descriptor does not narrow a type
func (d *Descriptor) IsAny() bool {
	return d.RType() == Any
}

// Arg returns argument descriptor at index, nil if missing
func (d *Descriptor) Arg(i int) *Descriptor {
	if d == nil || i < 0 || i >= len(d.Args) {
		return nil
	}
	return d.Args[i]
}

// ArgTypes returns argument types, nil if descriptor is not parameterized
func (d *Descriptor) ArgTypes() []reflect.Type {
	if d == nil || len(d.Args) == 0 {
		return nil
	}
	result := make([]reflect.Type, len(d.Args))
	for i, arg := range d.Args {
		result[i] = arg.RType()
	}
	return result
}

func (d *Descriptor) String() string {
	if len(d.ArgTypes()) == 0 {
		return d.RType().String()
	}
	builder := strings.Builder{}
	builder.WriteString(d.RType().String())
	builder.WriteByte('<')
	for i, arg := range d.Args {
		if i > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(arg.String())
	}
	builder.WriteByte('>')
	return builder.String()
}

func orAny(t reflect.Type) reflect.Type {
	if t == nil {
		return Any
	}
	return t
}
