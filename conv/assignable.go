package conv

import (
	"github.com/viant/mapology/spi"
	"reflect"
	"sync"
)

var opaqueTypes sync.Map // map[reflect.Type]bool

// isOpaque returns true for structs with unexported state, they can not be rebuilt from properties and are copied as values
func isOpaque(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return true
	}
	if cached, ok := opaqueTypes.Load(t); ok {
		return cached.(bool)
	}
	opaque := false
	for i := 0; i < t.NumField(); i++ {
		if !t.Field(i).IsExported() {
			opaque = true
			break
		}
	}
	opaqueTypes.Store(t, opaque)
	return opaque
}

// AssignableConverter returns source unchanged when it is assignable to destination.
// Structs with exported fields only are left to structural mapping, so that nested pointers are mapped too.
type AssignableConverter struct{}

func (c *AssignableConverter) Supports(source, destination reflect.Type) bool {
	return source.AssignableTo(destination) && isOpaque(destination)
}

func (c *AssignableConverter) Convert(ctx *spi.Context) (interface{}, error) {
	return ctx.Source(), nil
}

// ConvertibleConverter converts values of the same kind with Go conversion, i.e. named scalars or structs with identical layout
type ConvertibleConverter struct{}

func (c *ConvertibleConverter) Supports(source, destination reflect.Type) bool {
	if source.Kind() != destination.Kind() {
		return false
	}
	switch source.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return false
	case reflect.Struct:
		if !isOpaque(source) {
			return false
		}
	}
	return source.ConvertibleTo(destination)
}

func (c *ConvertibleConverter) Convert(ctx *spi.Context) (interface{}, error) {
	return reflect.ValueOf(ctx.Source()).Convert(ctx.DestinationType()).Interface(), nil
}
