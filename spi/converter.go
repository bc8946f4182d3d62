package spi

import "reflect"

type (
	// Converter converts a source value into a destination type.
	// Supports is probed many times per conversion and must be cheap and side effect free.
	Converter interface {
		Supports(source, destination reflect.Type) bool
		Convert(ctx *Context) (interface{}, error)
	}

	// SupportsFunc represents converter predicate
	SupportsFunc func(source, destination reflect.Type) bool

	// ConvertFunc represents conversion function
	ConvertFunc func(ctx *Context) (interface{}, error)

	funcConverter struct {
		supports SupportsFunc
		convert  ConvertFunc
	}
)

func (c *funcConverter) Supports(source, destination reflect.Type) bool {
	return c.supports(source, destination)
}

func (c *funcConverter) Convert(ctx *Context) (interface{}, error) {
	return c.convert(ctx)
}

// NewConverter creates a converter from predicate and conversion function
func NewConverter(supports SupportsFunc, convert ConvertFunc) Converter {
	return &funcConverter{supports: supports, convert: convert}
}

// PairOf returns predicate accepting exactly supplied source and destination types
func PairOf(source, destination reflect.Type) SupportsFunc {
	return func(src, dest reflect.Type) bool {
		return src == source && dest == destination
	}
}
