package conv

import (
	"github.com/viant/mapology/format"
	"github.com/viant/mapology/spi"
	"github.com/viant/mapology/typ"
	"reflect"
)

// typeArguments returns count resolved type arguments for context destination, missing arguments are typ.Any
func typeArguments(ctx *spi.Context, count int) []reflect.Type {
	resolver := ctx.Engine().Resolver()
	var desc *typ.Descriptor
	if mapping, ok := ctx.PropertyMapping(); ok {
		if prop := mapping.LastDestinationProperty(); prop != nil {
			desc = resolver.Descriptor(prop.Type, prop.Owner, prop.Name)
		}
	}
	if desc == nil {
		desc = resolver.Descriptor(ctx.DestinationType(), nil, "")
	}
	//pointer converter passes the mapping of a pointer property to its element
	for desc != nil && desc.RType().Kind() == reflect.Ptr && ctx.DestinationType().Kind() != reflect.Ptr {
		if elem := desc.Arg(0); elem != nil {
			desc = elem
			continue
		}
		desc = typ.Of(desc.RType().Elem())
	}
	if desc != nil && len(desc.Args) == 0 && desc.Type != nil {
		desc = typ.Of(desc.Type)
	}
	ret := make([]reflect.Type, count)
	for i := range ret {
		ret[i] = typ.Any
		if arg := desc.Arg(i); !arg.IsAny() {
			ret[i] = arg.RType()
		}
	}
	return ret
}

// refine narrows interface slot with resolved type
func refine(slot, resolved reflect.Type) reflect.Type {
	if slot.Kind() != reflect.Interface || resolved == nil || resolved == typ.Any {
		return slot
	}
	if resolved.AssignableTo(slot) {
		return resolved
	}
	return slot
}

// formatTag returns formatting tag of mapped property, destination property first
func formatTag(ctx *spi.Context) *format.Tag {
	mapping, ok := ctx.PropertyMapping()
	if !ok {
		return nil
	}
	if prop := mapping.LastDestinationProperty(); prop != nil && prop.Tag != nil {
		return prop.Tag
	}
	if prop := mapping.LastSourceProperty(); prop != nil {
		return prop.Tag
	}
	return nil
}

func isEmptyInterface(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.NumMethod() == 0
}

// setValue converts mapped value into t and stores it in dest
func setValue(dest reflect.Value, value interface{}) error {
	converted, err := typ.ValueOf(value, dest.Type())
	if err != nil {
		return err
	}
	dest.Set(converted)
	return nil
}
