package mapology

import (
	"github.com/viant/mapology/conv"
	"reflect"
)

type (
	//Option mapper option
	Option func(o *options)

	options struct {
		dateLayout    string
		fallbackTags  []string
		caseSensitive bool
		unexported    bool
		ignore        []string
		maxDepth      int
		mapType       reflect.Type
	}
)

func newOptions(opts []Option) *options {
	ret := &options{
		dateLayout:   conv.DefaultDateLayout,
		fallbackTags: []string{"json"},
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

//WithDateLayout sets default time parsing layout
func WithDateLayout(layout string) Option {
	return func(o *options) {
		o.dateLayout = layout
	}
}

//WithFallbackTags sets struct tags used for property names when mapping tag does not define a name
func WithFallbackTags(tags ...string) Option {
	return func(o *options) {
		o.fallbackTags = tags
	}
}

//WithCaseSensitive controls whether property matching is case sensitive
func WithCaseSensitive(flag bool) Option {
	return func(o *options) {
		o.caseSensitive = flag
	}
}

//WithUnexported allows mapping unexported fields
func WithUnexported(flag bool) Option {
	return func(o *options) {
		o.unexported = flag
	}
}

//WithIgnore skips fields which name matches any of supplied regular expressions
func WithIgnore(patterns ...string) Option {
	return func(o *options) {
		o.ignore = append(o.ignore, patterns...)
	}
}

//WithMaxDepth sets the limit of source nesting levels, defaults to engine.DefaultMaxDepth
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

//WithMapType sets map type created for ordered entries mapped into an interface
func WithMapType(t reflect.Type) Option {
	return func(o *options) {
		o.mapType = t
	}
}
