package conv

import (
	"fmt"
	"github.com/viant/mapology/spi"
	"github.com/viant/mapology/typ"
	"reflect"
)

// PointerConverter allocates pointer destinations and dereferences pointer sources
type PointerConverter struct{}

// Supports returns true for pointer destination or pointer source with concrete destination
func (c *PointerConverter) Supports(source, destination reflect.Type) bool {
	if destination.Kind() == reflect.Ptr {
		return true
	}
	return source.Kind() == reflect.Ptr && destination.Kind() != reflect.Interface
}

// Convert maps pointer target value, the pointer destination is remembered before its value is mapped
func (c *PointerConverter) Convert(ctx *spi.Context) (interface{}, error) {
	destType := ctx.DestinationType()
	source := reflect.ValueOf(ctx.Source())
	if destType.Kind() != reflect.Ptr {
		value, err := dereference(source)
		if err != nil {
			return nil, spi.NewUnsupportedSourceError(source.Type(), destType, err.Error())
		}
		return ctx.Engine().Map(ctx.WithSource(value))
	}
	dest, err := c.destination(ctx)
	if err != nil {
		return nil, err
	}
	ctx.Remember(dest.Interface())
	value := source
	if source.Kind() == reflect.Ptr {
		value = source.Elem()
	}
	elemType := destType.Elem()
	var current interface{}
	if elemType.Kind() == reflect.Struct {
		current = dest.Interface() //struct is populated in place
	} else {
		current = typ.Reusable(dest.Elem())
	}
	mapped, err := ctx.Engine().Map(ctx.Redirect(value.Interface(), current, elemType))
	if err != nil {
		return nil, err
	}
	if err = setValue(dest.Elem(), mapped); err != nil {
		return nil, fmt.Errorf("failed to set %v: %w", destType, err)
	}
	return dest.Interface(), nil
}

func (c *PointerConverter) destination(ctx *spi.Context) (reflect.Value, error) {
	destType := ctx.DestinationType()
	if existing := ctx.Destination(); existing != nil {
		if dest := reflect.ValueOf(existing); dest.Type() == destType && !dest.IsNil() {
			return dest, nil
		}
	}
	created, err := ctx.Engine().CreateDestination(ctx)
	if err != nil {
		return reflect.Value{}, err
	}
	dest := reflect.ValueOf(created)
	if dest.Type() != destType {
		return reflect.Value{}, &spi.InstantiationError{Type: destType, Reason: fmt.Sprintf("created %T", created)}
	}
	return dest, nil
}

// dereference unwraps pointers and interfaces down to a value, nil pointers yield nil
func dereference(value reflect.Value) (interface{}, error) {
	seen := map[uintptr]bool{}
	for value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return nil, nil
		}
		if value.Kind() == reflect.Ptr {
			if seen[value.Pointer()] {
				return nil, fmt.Errorf("pointer %v references itself", value.Type())
			}
			seen[value.Pointer()] = true
		}
		value = value.Elem()
	}
	return value.Interface(), nil
}
