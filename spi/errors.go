package spi

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInstantiation indicates that a destination could not be created
	ErrInstantiation = errors.New("mapology: failed to instantiate destination")
	// ErrUnsupportedSource indicates that a source shape can not be converted
	ErrUnsupportedSource = errors.New("mapology: unsupported source")
	// ErrRecursionLimit indicates that conversion exceeded max depth
	ErrRecursionLimit = errors.New("mapology: recursion limit exceeded")
)

type (
	//InstantiationError represents destination instantiation failure
	InstantiationError struct {
		Type   reflect.Type
		Reason string
	}

	//MappingError represents a failure of a property conversion
	MappingError struct {
		Path            string
		SourceType      reflect.Type
		DestinationType reflect.Type
		Err             error
	}
)

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("%v %v: %s", ErrInstantiation, e.Type, e.Reason)
}

// Is matches ErrInstantiation
func (e *InstantiationError) Is(target error) bool {
	return target == ErrInstantiation
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("failed to map %v (%v -> %v): %v", e.Path, e.SourceType, e.DestinationType, e.Err)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// NewUnsupportedSourceError creates unsupported source error
func NewUnsupportedSourceError(source, destination reflect.Type, reason string) error {
	return fmt.Errorf("%w: %v -> %v: %s", ErrUnsupportedSource, source, destination, reason)
}

// NewMappingError wraps err with mapping path, errors already carrying a path are returned unchanged
func NewMappingError(mapping Mapping, source, destination reflect.Type, err error) error {
	var mappingErr *MappingError
	if errors.As(err, &mappingErr) {
		return err
	}
	path := ""
	if mapping != nil {
		path = mapping.Path()
	}
	return &MappingError{Path: path, SourceType: source, DestinationType: destination, Err: err}
}
