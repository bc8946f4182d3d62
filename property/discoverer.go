package property

import (
	"fmt"
	"github.com/dlclark/regexp2"
	"github.com/viant/mapology/format"
	"github.com/viant/tagly/format/text"
	"github.com/viant/xunsafe"
	"golang.org/x/text/cases"
	"reflect"
	"sync"
)

type (
	// Discoverer discovers and caches struct properties
	Discoverer struct {
		options
		ignore []*regexp2.Regexp
		cache  sync.Map // map[reflect.Type]*Properties
	}

	options struct {
		fallbackTags  []string
		caseSensitive bool
		unexported    bool
		patterns      []string
	}

	// Option represents discoverer option
	Option func(o *options)
)

// WithFallbackTags sets tags used for property names when mapping tag does not define one
func WithFallbackTags(tags ...string) Option {
	return func(o *options) {
		o.fallbackTags = tags
	}
}

// WithCaseSensitive disables name normalization
func WithCaseSensitive(flag bool) Option {
	return func(o *options) {
		o.caseSensitive = flag
	}
}

// WithUnexported includes unexported fields
func WithUnexported(flag bool) Option {
	return func(o *options) {
		o.unexported = flag
	}
}

// WithIgnore skips fields which name matches any of supplied patterns
func WithIgnore(patterns ...string) Option {
	return func(o *options) {
		o.patterns = append(o.patterns, patterns...)
	}
}

// Key returns normalized matching key for a name
func (d *Discoverer) Key(name string) string {
	if d.caseSensitive || name == "" {
		return name
	}
	from := text.DetectCaseFormat(name)
	if from.IsDefined() {
		name = from.Format(name, text.CaseFormatUpperCamel)
	}
	return cases.Fold().String(name)
}

// Properties returns properties of a struct type, nil for non struct types.
// A malformed mapping tag on any field fails discovery of the whole type.
func (d *Discoverer) Properties(t reflect.Type) (*Properties, error) {
	if t == nil {
		return nil, nil
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, nil
	}
	if cached, ok := d.cache.Load(t); ok {
		props := cached.(*Properties)
		return props, props.err
	}
	ret := &Properties{Type: t, byKey: map[string]int{}}
	d.discover(ret, t, nil, map[reflect.Type]bool{}, map[string]bool{})
	actual, _ := d.cache.LoadOrStore(t, ret)
	props := actual.(*Properties)
	return props, props.err
}

// discover adds owner fields first, then fields of embedded structs; fields shadowed by a shallower field name are skipped
func (d *Discoverer) discover(props *Properties, owner reflect.Type, path []*xunsafe.Field, visited map[reflect.Type]bool, shadowed map[string]bool) {
	visited[owner] = true
	var embedded []reflect.StructField
	names := make(map[string]bool, len(shadowed)+owner.NumField())
	for name := range shadowed {
		names[name] = true
	}
	for i := 0; i < owner.NumField(); i++ {
		field := owner.Field(i)
		if shadowed[field.Name] {
			continue
		}
		names[field.Name] = true
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded = append(embedded, field)
			continue
		}
		if !field.IsExported() && !d.unexported {
			continue
		}
		if d.isIgnored(field.Name) {
			continue
		}
		tag, err := format.Parse(field.Tag, d.fallbackTags...)
		if err != nil {
			if props.err == nil {
				props.err = fmt.Errorf("property: invalid tag on %v.%v: %w", owner.String(), field.Name, err)
			}
			continue
		}
		if tag.Ignore {
			continue
		}
		name := field.Name
		if tag.Name != "" {
			name = tag.Name
		}
		key := d.Key(name)
		if _, ok := props.byKey[key]; ok {
			continue //shallower field wins
		}
		prop := &Property{
			Name:  field.Name,
			Key:   key,
			Tag:   tag,
			Type:  field.Type,
			Owner: owner,
			path:  path,
			field: xunsafe.NewField(field),
		}
		props.byKey[key] = len(props.Items)
		props.Items = append(props.Items, prop)
	}
	for _, field := range embedded {
		if visited[field.Type] {
			continue
		}
		fieldPath := append(append([]*xunsafe.Field{}, path...), xunsafe.NewField(field))
		d.discover(props, field.Type, fieldPath, visited, names)
	}
	delete(visited, owner)
}

func (d *Discoverer) isIgnored(name string) bool {
	for _, expr := range d.ignore {
		if matched, _ := expr.MatchString(name); matched {
			return true
		}
	}
	return false
}

// New creates a discoverer
func New(opts ...Option) (*Discoverer, error) {
	ret := &Discoverer{}
	for _, opt := range opts {
		opt(&ret.options)
	}
	for _, pattern := range ret.patterns {
		expr, err := regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("property: invalid ignore pattern %v: %w", pattern, err)
		}
		ret.ignore = append(ret.ignore, expr)
	}
	return ret, nil
}
