package spi

import (
	"github.com/viant/mapology/property"
	"github.com/viant/mapology/typ"
	"reflect"
)

// Engine orchestrates conversion steps
type Engine interface {
	//Map maps context source into context destination type
	Map(ctx *Context) (interface{}, error)

	//CreateDestination instantiates context destination type
	CreateDestination(ctx *Context) (interface{}, error)

	//Resolver returns element type resolver
	Resolver() *typ.Resolver

	//Properties returns discovered struct properties
	Properties(t reflect.Type) (*property.Properties, error)
}
