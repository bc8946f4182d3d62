package spi

import (
	"errors"
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mapology/property"
	"github.com/viant/mapology/typ"
	"reflect"
	"testing"
)

func TestContext_Create(t *testing.T) {
	root := NewContext(nil, map[string]int{"a": 1}, nil, nil)
	assert.Equal(t, typ.Any, root.DestinationType())
	assert.Equal(t, 0, root.Depth())

	child := root.Create(1, reflect.TypeOf(""))
	assert.Equal(t, 1, child.Depth())
	assert.Nil(t, child.Mapping())
	assert.Equal(t, reflect.TypeOf(0), child.SourceType())

	mapping := &PropertyMapping{Destination: []*property.Property{{Name: "Items"}}}
	prop := root.CreateProperty("x", nil, reflect.TypeOf(""), mapping)
	derived := prop.WithSource(2)
	assert.Equal(t, 1, derived.Depth(), "derived source stays at the same level")
	redirected := derived.Redirect(3, nil, reflect.TypeOf(0))
	assert.Equal(t, 1, redirected.Depth())
	assert.Equal(t, "Items", redirected.Mapping().Path())
	assert.Equal(t, 1, derived.WithDestination(nil, reflect.TypeOf("")).Depth())
	assert.Equal(t, 2, derived.CreateFor(4, nil, nil).Depth())
	assert.Equal(t, "Items", derived.Mapping().Path())
	pm, ok := derived.PropertyMapping()
	require.True(t, ok)
	assert.Equal(t, "Items", pm.LastDestinationProperty().Name)
	assert.Nil(t, pm.LastSourceProperty())

	assert.Nil(t, NewContext(nil, nil, nil, nil).SourceType())
}

func TestContext_Pending(t *testing.T) {
	source := &struct{ Name string }{}
	destType := reflect.TypeOf(source)
	root := NewContext(nil, source, nil, destType)
	_, ok := root.Pending()
	assert.False(t, ok)

	dest := &struct{ Name string }{}
	root.Remember(dest)
	pending, ok := root.Create(source, destType).Pending()
	require.True(t, ok)
	assert.Same(t, dest, pending)

	_, ok = root.Create(source, typ.Any).Pending()
	assert.False(t, ok, "destination type is part of identity")

	scalar := root.Create(10, reflect.TypeOf(0))
	scalar.Remember(10)
	_, ok = scalar.Pending()
	assert.False(t, ok, "values without identity are never pending")

	items := []interface{}{1, 2}
	sliceType := reflect.TypeOf(items)
	root.Create(items, sliceType).Remember("mapped")
	pending, ok = root.Create(items, sliceType).Pending()
	require.True(t, ok)
	assert.Equal(t, "mapped", pending)
	_, ok = root.Create(items[:1], sliceType).Pending()
	assert.False(t, ok, "slice length is part of identity")
	empty := []interface{}{}
	root.Create(empty, sliceType).Remember("empty")
	_, ok = root.Create(empty, sliceType).Pending()
	assert.False(t, ok, "empty slices have no identity")

	other := NewContext(nil, source, nil, destType)
	_, ok = other.Pending()
	assert.False(t, ok, "pending destinations are scoped to a call")
}

func TestPropertyMapping(t *testing.T) {
	var mapping *PropertyMapping
	assert.Equal(t, "", mapping.Path())

	first := mapping.Append(&property.Property{Name: "src"}, &property.Property{Name: "Address"})
	second := first.Append(nil, &property.Property{Name: "City"})
	assert.Equal(t, "Address.City", second.Path())
	assert.Equal(t, "Address", first.Path())
	assert.Equal(t, "src", second.LastSourceProperty().Name)

	toMap := mapping.Append(&property.Property{Name: "Created"}, nil)
	assert.Equal(t, "Created", toMap.Path())
	assert.Nil(t, toMap.LastDestinationProperty())
}

func TestEntries(t *testing.T) {
	entries := Entries{}
	entries.Put("a", 1)
	entries.Put([]int{1}, 2)
	entries.Put("a", 3)
	assert.Equal(t, 3, entries.Len())

	key, value := entries.At(1)
	assert.Equal(t, []int{1}, key)
	assert.Equal(t, 2, value)
}

func TestErrors(t *testing.T) {
	instantiation := &InstantiationError{Type: typ.Any, Reason: "no provider registered"}
	assert.True(t, errors.Is(instantiation, ErrInstantiation))

	mapping := &PropertyMapping{Destination: []*property.Property{{Name: "Shape"}}}
	err := NewMappingError(mapping, reflect.TypeOf(""), typ.Any, fmt.Errorf("failed: %w", instantiation))
	assert.ErrorIs(t, err, ErrInstantiation)
	assert.Contains(t, err.Error(), "Shape")

	outer := NewMappingError(&PropertyMapping{Destination: []*property.Property{{Name: "Drawing"}}}, nil, nil, err)
	assert.Same(t, err, outer)

	assert.ErrorIs(t, NewUnsupportedSourceError(reflect.TypeOf(1), typ.Any, "no converter"), ErrUnsupportedSource)
}
