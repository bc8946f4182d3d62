package conv

import (
	"fmt"
	"github.com/viant/mapology/spi"
	"github.com/viant/mapology/visitor"
	"reflect"
)

// MapConverter converts maps and ordered entries into maps.
// Element types come from the destination map type, refined by resolved type arguments
// where the destination declares interface keys or values.
type MapConverter struct {
	//MapType is created for entries mapped into an interface destination
	MapType reflect.Type
}

// Supports returns true for map or entries source and map or empty interface destination
func (c *MapConverter) Supports(source, destination reflect.Type) bool {
	if source.Kind() != reflect.Map && source != spi.EntriesType {
		return false
	}
	return destination.Kind() == reflect.Map || isEmptyInterface(destination)
}

// Convert maps every source entry into destination map, colliding keys keep the last written value
func (c *MapConverter) Convert(ctx *spi.Context) (interface{}, error) {
	args := typeArguments(ctx, 2)
	dest, pending, err := c.destination(ctx, args)
	if err != nil {
		return nil, err
	}
	if pending {
		return dest.Interface(), nil
	}
	mapType := dest.Type()
	keyType := refine(mapType.Key(), args[0])
	valueType := refine(mapType.Elem(), args[1])
	engine := ctx.Engine()
	visit, err := visitor.AnyMapVisitorOf(ctx.Source())
	if err != nil {
		return nil, spi.NewUnsupportedSourceError(ctx.SourceType(), ctx.DestinationType(), err.Error())
	}
	err = visit(func(key, value interface{}) (bool, error) {
		mappedKey, err := engine.Map(ctx.Create(key, keyType))
		if err != nil {
			return false, fmt.Errorf("failed to map key %v: %w", key, err)
		}
		mappedValue, err := engine.Map(ctx.Create(value, valueType))
		if err != nil {
			return false, fmt.Errorf("failed to map value of %v: %w", key, err)
		}
		keyValue := reflect.New(mapType.Key()).Elem()
		if err = setValue(keyValue, mappedKey); err != nil {
			return false, err
		}
		elemValue := reflect.New(mapType.Elem()).Elem()
		if err = setValue(elemValue, mappedValue); err != nil {
			return false, err
		}
		dest.SetMapIndex(keyValue, elemValue)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return dest.Interface(), nil
}

// destination returns destination map remembered for context source, pending is true when the map is already being populated
func (c *MapConverter) destination(ctx *spi.Context, args []reflect.Type) (dest reflect.Value, pending bool, err error) {
	if existing := ctx.Destination(); existing != nil {
		if dest = reflect.ValueOf(existing); dest.Kind() == reflect.Map && !dest.IsNil() {
			ctx.Remember(existing)
			return dest, false, nil
		}
	}
	destType := ctx.DestinationType()
	if destType.Kind() == reflect.Interface {
		concrete := ctx.WithDestination(nil, c.canonicalType(ctx, args))
		if current, ok := concrete.Pending(); ok {
			return reflect.ValueOf(current), true, nil
		}
		dest = reflect.MakeMap(concrete.DestinationType())
		concrete.Remember(dest.Interface())
	} else {
		var created interface{}
		if created, err = ctx.Engine().CreateDestination(ctx); err != nil {
			return reflect.Value{}, false, err
		}
		dest = reflect.ValueOf(created)
		if dest.Kind() != reflect.Map {
			return reflect.Value{}, false, &spi.InstantiationError{Type: destType, Reason: fmt.Sprintf("created %T is not a map", created)}
		}
	}
	ctx.Remember(dest.Interface())
	return dest, false, nil
}

// canonicalType returns map type created for interface destination
func (c *MapConverter) canonicalType(ctx *spi.Context, args []reflect.Type) reflect.Type {
	if args[0] != nil && args[1] != nil && (!isEmptyInterface(args[0]) || !isEmptyInterface(args[1])) {
		if args[0].Comparable() {
			return reflect.MapOf(args[0], args[1])
		}
	}
	if sourceType := ctx.SourceType(); sourceType.Kind() == reflect.Map {
		return sourceType
	}
	if c.MapType != nil {
		return c.MapType
	}
	return reflect.TypeOf(map[string]interface{}{})
}
