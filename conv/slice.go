package conv

import (
	"fmt"
	"github.com/viant/mapology/spi"
	"github.com/viant/mapology/typ"
	"github.com/viant/mapology/visitor"
	"reflect"
)

// SliceConverter converts slices and arrays into slices, arrays or an empty interface.
// Existing destination elements are merged: element i of the destination is populated from source element i,
// surplus destination elements are kept. A single scalar or struct value is mapped into a one element slice.
type SliceConverter struct{}

// Supports returns true for slice or array source and slice, array or empty interface destination, ordered entries are left to MapConverter
func (c *SliceConverter) Supports(source, destination reflect.Type) bool {
	if source == spi.EntriesType {
		return false
	}
	switch source.Kind() {
	case reflect.Slice, reflect.Array:
		switch destination.Kind() {
		case reflect.Slice, reflect.Array:
			return true
		}
		return isEmptyInterface(destination)
	case reflect.Map, reflect.Ptr, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return false
	}
	return destination.Kind() == reflect.Slice
}

// Convert maps every source element with a child context, the result slice is remembered before its elements are mapped
func (c *SliceConverter) Convert(ctx *spi.Context) (interface{}, error) {
	source := reflect.ValueOf(ctx.Source())
	switch source.Kind() {
	case reflect.Slice, reflect.Array:
	case reflect.String:
		if ctx.DestinationType().Elem().Kind() == reflect.Uint8 {
			return reflect.ValueOf([]byte(source.String())).Convert(ctx.DestinationType()).Interface(), nil
		}
		fallthrough
	default:
		single := reflect.MakeSlice(reflect.SliceOf(source.Type()), 1, 1)
		single.Index(0).Set(source)
		source = single
	}
	var existing reflect.Value
	if dest := ctx.Destination(); dest != nil {
		if value := reflect.ValueOf(dest); value.Kind() == reflect.Slice || value.Kind() == reflect.Array {
			existing = value
		}
	}
	destType := c.destinationType(ctx, source, existing)
	elemType := refine(destType.Elem(), typeArguments(ctx, 1)[0])
	if destType.Kind() == reflect.Array {
		return c.convertArray(ctx, source, existing, destType, elemType)
	}
	var concrete *spi.Context
	if ctx.DestinationType() != destType {
		concrete = ctx.WithDestination(ctx.Destination(), destType)
		if pending, ok := concrete.Pending(); ok {
			return pending, nil
		}
	}
	length := source.Len()
	capacity := length
	if existing.IsValid() && existing.Len() > length {
		capacity = existing.Len()
	}
	result := reflect.MakeSlice(destType, capacity, capacity)
	ctx.Remember(result.Interface())
	if concrete != nil {
		concrete.Remember(result.Interface())
	}
	if err := c.convertElements(ctx, source, existing, result, length, elemType); err != nil {
		return nil, err
	}
	for i := length; i < capacity; i++ {
		result.Index(i).Set(existing.Index(i))
	}
	return result.Interface(), nil
}

func (c *SliceConverter) convertArray(ctx *spi.Context, source, existing reflect.Value, destType, elemType reflect.Type) (interface{}, error) {
	result := reflect.New(destType).Elem()
	if existing.IsValid() && existing.Type() == destType {
		result.Set(existing)
	}
	length := source.Len()
	if length > destType.Len() {
		length = destType.Len()
	}
	if err := c.convertElements(ctx, source, existing, result, length, elemType); err != nil {
		return nil, err
	}
	return result.Interface(), nil
}

func (c *SliceConverter) convertElements(ctx *spi.Context, source, existing, result reflect.Value, length int, elemType reflect.Type) error {
	visit, err := visitor.AnySliceVisitorOf(source.Interface())
	if err != nil {
		return spi.NewUnsupportedSourceError(source.Type(), ctx.DestinationType(), err.Error())
	}
	return visit(func(index int, item interface{}) (bool, error) {
		if index >= length {
			return false, nil
		}
		return true, c.convertElement(ctx, item, existing, index, result.Index(index), elemType)
	})
}

func (c *SliceConverter) convertElement(ctx *spi.Context, item interface{}, existing reflect.Value, index int, dest reflect.Value, elemType reflect.Type) error {
	var current interface{}
	if existing.IsValid() && index < existing.Len() {
		current = typ.Reusable(existing.Index(index))
	}
	mapped, err := ctx.Engine().Map(ctx.CreateFor(item, current, elemType))
	if err != nil {
		return fmt.Errorf("failed to map element %d: %w", index, err)
	}
	return setValue(dest, mapped)
}

func (c *SliceConverter) destinationType(ctx *spi.Context, source, existing reflect.Value) reflect.Type {
	destType := ctx.DestinationType()
	if destType.Kind() != reflect.Interface {
		return destType
	}
	if existing.IsValid() {
		return existing.Type()
	}
	if elem := typeArguments(ctx, 1)[0]; elem != typ.Any {
		return reflect.SliceOf(elem)
	}
	if source.Kind() == reflect.Array {
		return reflect.SliceOf(source.Type().Elem())
	}
	return source.Type()
}
