package conv

import "reflect"

// DefaultDateLayout is the default layout used for time parsing when no layout is specified
const DefaultDateLayout = "2006-01-02 15:04:05.000"

// Options contains configuration for the built-in converters
type Options struct {
	// DateLayout specifies the layout for time parsing
	DateLayout string
	// MapType is the canonical map type created for ordered entries mapped into an interface
	MapType reflect.Type
}

// DefaultOptions returns default conversion options
func DefaultOptions() Options {
	return Options{
		DateLayout: DefaultDateLayout,
		MapType:    reflect.TypeOf(map[string]interface{}{}),
	}
}

func (o *Options) init() {
	if o.DateLayout == "" {
		o.DateLayout = DefaultDateLayout
	}
	if o.MapType == nil || o.MapType.Kind() != reflect.Map {
		o.MapType = reflect.TypeOf(map[string]interface{}{})
	}
}
