package engine

import (
	"fmt"
	"github.com/viant/mapology/property"
	"github.com/viant/mapology/spi"
	"github.com/viant/mapology/typ"
	"github.com/viant/mapology/visitor"
	"github.com/viant/xunsafe"
	"reflect"
)

type (
	// lookup returns source value and source property (nil for map sources) matching destination property
	lookup func(dest *property.Property) (interface{}, *property.Property, bool)
)

// mapStructure maps struct, map or entries source into struct destination by matching property keys
func (e *Engine) mapStructure(ctx *spi.Context) (interface{}, error) {
	destType := ctx.DestinationType()
	switch destType.Kind() {
	case reflect.Interface:
		return e.mapInterface(ctx)
	case reflect.Struct:
	default:
		return nil, spi.NewUnsupportedSourceError(ctx.SourceType(), destType, "no applicable converter")
	}
	destProps, err := e.Properties(destType)
	if err != nil {
		return nil, err
	}
	match, err := e.sourceLookup(ctx, destProps)
	if err != nil {
		return nil, err
	}
	dest, err := e.structDestination(ctx)
	if err != nil {
		return nil, err
	}
	ptr := xunsafe.AsPointer(dest)
	for _, prop := range destProps.Items {
		value, sourceProp, ok := match(prop)
		if !ok {
			continue
		}
		if prop.Tag.Omitempty && isZero(value) {
			continue
		}
		current := typ.Reusable(reflect.NewAt(prop.Type, prop.Pointer(ptr)).Elem())
		mapping := spi.MappingOf(ctx, sourceProp, prop)
		mapped, err := e.Map(ctx.CreateProperty(value, current, prop.Type, mapping))
		if err != nil {
			return nil, spi.NewMappingError(mapping, reflect.TypeOf(value), prop.Type, err)
		}
		fieldValue, err := typ.ValueOf(mapped, prop.Type)
		if err != nil {
			return nil, spi.NewMappingError(mapping, reflect.TypeOf(value), prop.Type, err)
		}
		prop.Set(ptr, fieldValue)
	}
	return reflect.ValueOf(dest).Elem().Interface(), nil
}

// structDestination returns pointer to destination struct, existing destination is reused
func (e *Engine) structDestination(ctx *spi.Context) (interface{}, error) {
	destType := ctx.DestinationType()
	if existing := ctx.Destination(); existing != nil {
		existingType := reflect.TypeOf(existing)
		if existingType == destType {
			dest, _ := property.Addressable(existing)
			return dest, nil
		}
		if existingType.Kind() == reflect.Ptr && existingType.Elem() == destType && !reflect.ValueOf(existing).IsNil() {
			return existing, nil
		}
	}
	created, err := e.CreateDestination(ctx)
	if err != nil {
		return nil, err
	}
	if reflect.TypeOf(created) != reflect.PtrTo(destType) {
		return nil, &spi.InstantiationError{Type: destType, Reason: fmt.Sprintf("created %T", created)}
	}
	return created, nil
}

// mapInterface creates a concrete destination with a registered provider and maps source into it
func (e *Engine) mapInterface(ctx *spi.Context) (interface{}, error) {
	destType := ctx.DestinationType()
	created, err := e.CreateDestination(ctx)
	if err != nil {
		return nil, err
	}
	concreteType := reflect.TypeOf(created)
	if concreteType.Kind() == reflect.Interface || !concreteType.AssignableTo(destType) {
		return nil, &spi.InstantiationError{Type: destType, Reason: fmt.Sprintf("created %T does not implement it", created)}
	}
	return e.Map(ctx.WithDestination(created, concreteType))
}

func (e *Engine) sourceLookup(ctx *spi.Context, destProps *property.Properties) (lookup, error) {
	source := ctx.Source()
	sourceType := ctx.SourceType()
	switch sourceType.Kind() {
	case reflect.Struct:
		props, err := e.Properties(sourceType)
		if err != nil {
			return nil, err
		}
		_, ptr := property.Addressable(source)
		return func(dest *property.Property) (interface{}, *property.Property, bool) {
			prop := props.Lookup(dest.Key)
			if prop == nil {
				return nil, nil, false
			}
			return prop.Value(ptr), prop, true
		}, nil
	case reflect.Map, reflect.Slice:
		visit, err := visitor.AnyMapVisitorOf(source)
		if err != nil {
			return nil, spi.NewUnsupportedSourceError(sourceType, ctx.DestinationType(), err.Error())
		}
		values := make(map[string]interface{}, destProps.Len())
		err = visit(func(key, value interface{}) (bool, error) {
			name, ok := keyName(key)
			if ok {
				values[e.discoverer.Key(name)] = value
			}
			return true, nil
		})
		if err != nil {
			return nil, err
		}
		return func(dest *property.Property) (interface{}, *property.Property, bool) {
			value, ok := values[dest.Key]
			return value, nil, ok
		}, nil
	}
	return nil, spi.NewUnsupportedSourceError(sourceType, ctx.DestinationType(), "source is neither struct nor map")
}

func keyName(key interface{}) (string, bool) {
	if key == nil {
		return "", false
	}
	if name, ok := key.(string); ok {
		return name, true
	}
	if value := reflect.ValueOf(key); value.Kind() == reflect.String {
		return value.String(), true
	}
	return "", false
}

func isZero(value interface{}) bool {
	return value == nil || reflect.ValueOf(value).IsZero()
}
