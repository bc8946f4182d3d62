package conv

import (
	"github.com/viant/mapology/property"
	"github.com/viant/mapology/spi"
	"reflect"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// StructMapConverter converts struct into a map with string keys.
// Keys are property names, mapping tag name and case format are applied.
type StructMapConverter struct{}

// Supports returns true for struct source and map destination with string or interface keys
func (c *StructMapConverter) Supports(source, destination reflect.Type) bool {
	if source.Kind() != reflect.Struct || source == timeType || destination.Kind() != reflect.Map {
		return false
	}
	switch destination.Key().Kind() {
	case reflect.String:
		return true
	case reflect.Interface:
		return destination.Key().NumMethod() == 0
	}
	return false
}

// Convert maps every discovered property into a map entry
func (c *StructMapConverter) Convert(ctx *spi.Context) (interface{}, error) {
	var dest reflect.Value
	if existing := ctx.Destination(); existing != nil {
		if value := reflect.ValueOf(existing); value.Kind() == reflect.Map && !value.IsNil() {
			dest = value
		}
	}
	if !dest.IsValid() {
		created, err := ctx.Engine().CreateDestination(ctx)
		if err != nil {
			return nil, err
		}
		dest = reflect.ValueOf(created)
	}
	mapType := dest.Type()
	valueType := refine(mapType.Elem(), typeArguments(ctx, 2)[1])
	props, err := ctx.Engine().Properties(ctx.SourceType())
	if err != nil {
		return nil, err
	}
	_, ptr := property.Addressable(ctx.Source())
	for _, prop := range props.Items {
		value := prop.Value(ptr)
		if prop.Tag.Omitempty && (value == nil || reflect.ValueOf(value).IsZero()) {
			continue
		}
		mapping := spi.MappingOf(ctx, prop, nil)
		mapped, err := ctx.Engine().Map(ctx.CreateProperty(value, nil, valueType, mapping))
		if err != nil {
			return nil, spi.NewMappingError(mapping, prop.Type, valueType, err)
		}
		keyValue := reflect.New(mapType.Key()).Elem()
		if err = setValue(keyValue, prop.Tag.FormatName(prop.Name)); err != nil {
			return nil, err
		}
		elemValue := reflect.New(mapType.Elem()).Elem()
		if err = setValue(elemValue, mapped); err != nil {
			return nil, spi.NewMappingError(mapping, prop.Type, valueType, err)
		}
		dest.SetMapIndex(keyValue, elemValue)
	}
	return dest.Interface(), nil
}
