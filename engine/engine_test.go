package engine

import (
	"errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mapology/conv"
	"github.com/viant/mapology/registry"
	"github.com/viant/mapology/spi"
	"github.com/viant/mapology/typ"
	"reflect"
	"testing"
)

type (
	Shape interface {
		Area() float64
	}

	Square struct {
		Side float64
	}

	Drawing struct {
		Title string
		Shape Shape
	}

	Tree struct {
		Name     string
		Parent   *Tree
		Children []*Tree
	}

	countingConverter struct {
		calls int
	}
)

func (s *Square) Area() float64 {
	return s.Side * s.Side
}

func (c *countingConverter) Supports(source, destination reflect.Type) bool {
	c.calls++
	return false
}

func (c *countingConverter) Convert(ctx *spi.Context) (interface{}, error) {
	return nil, errors.New("not supported")
}

func newEngine(t *testing.T, opts ...Option) *Engine {
	converters := registry.New()
	for _, named := range conv.Defaults(conv.DefaultOptions()) {
		require.NoError(t, converters.Register(named.Name, named.Converter))
	}
	ret, err := New(converters, opts...)
	require.NoError(t, err)
	return ret
}

func mapTo(e *Engine, source interface{}, destination interface{}, destType reflect.Type) (interface{}, error) {
	return e.Map(spi.NewContext(e, source, destination, destType))
}

func TestEngine_Map(t *testing.T) {
	var testCases = []struct {
		description string
		source      interface{}
		destination interface{}
		destType    reflect.Type
		expect      interface{}
	}{
		{
			description: "map with declared types",
			source:      map[string]int{"a": 1, "b": 2},
			destType:    reflect.TypeOf(map[string]int{}),
			expect:      map[string]int{"a": 1, "b": 2},
		},
		{
			description: "untyped map into untyped destination",
			source:      map[string]interface{}{"a": 1, "b": 2},
			destType:    typ.Any,
			expect:      map[string]interface{}{"a": 1, "b": 2},
		},
		{
			description: "colliding converted keys",
			source:      spi.Entries{{Key: 1, Value: "x"}, {Key: "1", Value: "y"}},
			destType:    reflect.TypeOf(map[int]string{}),
			expect:      map[int]string{1: "y"},
		},
		{
			description: "existing destination",
			source:      map[string]int{"a": 1},
			destination: map[string]int{"z": 9},
			destType:    reflect.TypeOf(map[string]int{}),
			expect:      map[string]int{"z": 9, "a": 1},
		},
		{
			description: "empty map",
			source:      map[string]int{},
			destType:    reflect.TypeOf(map[string]string{}),
			expect:      map[string]string{},
		},
		{
			description: "empty slice",
			source:      []int{},
			destType:    reflect.TypeOf([]string{}),
			expect:      []string{},
		},
		{
			description: "nil source",
			source:      nil,
			destType:    reflect.TypeOf(0),
			expect:      0,
		},
		{
			description: "nested",
			source:      map[string]interface{}{"a": []interface{}{"1", 2}},
			destType:    reflect.TypeOf(map[string][]int{}),
			expect:      map[string][]int{"a": {1, 2}},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			e := newEngine(t)
			actual, err := mapTo(e, testCase.source, testCase.destination, testCase.destType)
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, actual, spew.Sdump(actual))
		})
	}
}

func TestEngine_SupportsCalledOncePerDispatch(t *testing.T) {
	e := newEngine(t)
	first := &countingConverter{}
	second := &countingConverter{}
	require.NoError(t, e.Registry().Register("first", first, registry.WithPriority(registry.PriorityUser)))
	require.NoError(t, e.Registry().Register("second", second, registry.WithPriority(registry.PriorityUser)))

	actual, err := mapTo(e, map[string]interface{}{"a": 1}, nil, reflect.TypeOf(map[string]int{}))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, actual)
	//map, key and value dispatches
	assert.Equal(t, 3, first.calls)
	assert.Equal(t, 3, second.calls)
}

func TestEngine_Cycles(t *testing.T) {
	e := newEngine(t)
	root := &Tree{Name: "root"}
	child := &Tree{Name: "child", Parent: root}
	root.Children = []*Tree{child, child}

	actual, err := mapTo(e, root, nil, reflect.TypeOf(&Tree{}))
	require.NoError(t, err)
	result := actual.(*Tree)
	require.Len(t, result.Children, 2)
	assert.Same(t, result, result.Children[0].Parent)
	assert.Same(t, result.Children[0], result.Children[1])
	assert.NotSame(t, root, result)
}

func TestEngine_MaxDepth(t *testing.T) {
	e := newEngine(t, WithMaxDepth(2))
	source := map[string]interface{}{"a": map[string]interface{}{"b": map[string]interface{}{"c": 1}}}
	_, err := mapTo(e, source, nil, typ.Any)
	assert.ErrorIs(t, err, spi.ErrRecursionLimit)
}

func TestEngine_CreateDestination(t *testing.T) {
	e := newEngine(t)
	shapeType := reflect.TypeOf((*Shape)(nil)).Elem()

	var testCases = []struct {
		description string
		destType    reflect.Type
		expect      interface{}
		expectErr   bool
	}{
		{description: "map", destType: reflect.TypeOf(map[string]int{}), expect: map[string]int{}},
		{description: "slice", destType: reflect.TypeOf([]int{}), expect: []int{}},
		{description: "pointer", destType: reflect.TypeOf(&Square{}), expect: &Square{}},
		{description: "struct", destType: reflect.TypeOf(Square{}), expect: &Square{}},
		{description: "interface", destType: shapeType, expectErr: true},
		{description: "func", destType: reflect.TypeOf(func() {}), expectErr: true},
		{description: "chan", destType: reflect.TypeOf(make(chan int)), expectErr: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, err := e.CreateDestination(spi.NewContext(e, nil, nil, testCase.destType))
			if testCase.expectErr {
				assert.ErrorIs(t, err, spi.ErrInstantiation)
				var instantiationErr *spi.InstantiationError
				assert.True(t, errors.As(err, &instantiationErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}
}

func TestEngine_InterfaceDestination(t *testing.T) {
	shapeType := reflect.TypeOf((*Shape)(nil)).Elem()
	source := map[string]interface{}{"title": "plan", "shape": map[string]interface{}{"side": 2}}

	e := newEngine(t)
	_, err := mapTo(e, source, nil, reflect.TypeOf(Drawing{}))
	assert.ErrorIs(t, err, spi.ErrInstantiation)
	var mappingErr *spi.MappingError
	require.True(t, errors.As(err, &mappingErr))
	assert.Equal(t, "Shape", mappingErr.Path)

	e = newEngine(t, WithProvider(shapeType, func() interface{} {
		return &Square{}
	}))
	actual, err := mapTo(e, source, nil, reflect.TypeOf(Drawing{}))
	require.NoError(t, err)
	drawing := actual.(Drawing)
	assert.Equal(t, "plan", drawing.Title)
	assert.Equal(t, 4.0, drawing.Shape.Area())
}

func TestEngine_Structural(t *testing.T) {
	type Address struct {
		City string
		Zip  string `mapping:"omitempty"`
	}
	type Person struct {
		Name    string
		Address Address
		Tags    map[string]string
	}
	e := newEngine(t)

	existing := &Person{Name: "old", Address: Address{City: "x", Zip: "123"}, Tags: map[string]string{"a": "1"}}
	actual, err := mapTo(e, map[string]interface{}{
		"name":    "new",
		"address": map[string]interface{}{"city": "y", "zip": ""},
		"tags":    map[string]interface{}{"b": 2},
	}, existing, reflect.TypeOf(Person{}))
	require.NoError(t, err)
	assert.Equal(t, Person{Name: "new", Address: Address{City: "y", Zip: "123"}, Tags: map[string]string{"a": "1", "b": "2"}}, actual)

	_, err = mapTo(e, map[string]interface{}{"name": []int{1}}, nil, reflect.TypeOf(Person{}))
	var mappingErr *spi.MappingError
	require.True(t, errors.As(err, &mappingErr))
	assert.Equal(t, "Name", mappingErr.Path)

	_, err = mapTo(e, 10, nil, reflect.TypeOf(Person{}))
	assert.ErrorIs(t, err, spi.ErrUnsupportedSource)
}
