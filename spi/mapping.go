package spi

import (
	"github.com/viant/mapology/property"
	"strings"
)

type (
	// Mapping describes why a conversion step takes place
	Mapping interface {
		Path() string
	}

	// PropertyMapping describes source and destination property paths of a conversion step
	PropertyMapping struct {
		Source      []*property.Property
		Destination []*property.Property
	}
)

// Path returns destination property path, source path when mapping into a map
func (m *PropertyMapping) Path() string {
	if m == nil {
		return ""
	}
	props := m.Destination
	if len(props) == 0 {
		props = m.Source
	}
	names := make([]string, 0, len(props))
	for _, prop := range props {
		names = append(names, prop.Name)
	}
	return strings.Join(names, ".")
}

// LastDestinationProperty returns the property being populated
func (m *PropertyMapping) LastDestinationProperty() *property.Property {
	if m == nil || len(m.Destination) == 0 {
		return nil
	}
	return m.Destination[len(m.Destination)-1]
}

// LastSourceProperty returns the property being read, nil for map sources
func (m *PropertyMapping) LastSourceProperty() *property.Property {
	if m == nil || len(m.Source) == 0 {
		return nil
	}
	return m.Source[len(m.Source)-1]
}

// Append returns a new mapping extended with supplied properties, nil properties are skipped
func (m *PropertyMapping) Append(source, destination *property.Property) *PropertyMapping {
	ret := &PropertyMapping{}
	if m != nil {
		ret.Source = append(ret.Source, m.Source...)
		ret.Destination = append(ret.Destination, m.Destination...)
	}
	if source != nil {
		ret.Source = append(ret.Source, source)
	}
	if destination != nil {
		ret.Destination = append(ret.Destination, destination)
	}
	return ret
}

// MappingOf returns context property mapping extended with supplied properties
func MappingOf(ctx *Context, source, destination *property.Property) *PropertyMapping {
	parent, _ := ctx.PropertyMapping()
	return parent.Append(source, destination)
}
