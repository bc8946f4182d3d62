package property

import (
	"github.com/viant/mapology/format"
	"github.com/viant/xunsafe"
	"reflect"
	"unsafe"
)

type (
	// Property represents a nameable struct member
	Property struct {
		Name  string       //field name
		Key   string       //normalized matching key
		Tag   *format.Tag  //mapping tag
		Type  reflect.Type //declared type
		Owner reflect.Type     //struct declaring the field
		path  []*xunsafe.Field //embedded fields leading to the leaf field
		field *xunsafe.Field
	}

	// Properties represents indexed struct properties
	Properties struct {
		Type  reflect.Type
		Items []*Property
		byKey map[string]int
		err   error
	}
)

// Lookup returns property for a normalized key
func (p *Properties) Lookup(key string) *Property {
	if p == nil {
		return nil
	}
	index, ok := p.byKey[key]
	if !ok {
		return nil
	}
	return p.Items[index]
}

// Len returns properties count
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Items)
}

// Pointer returns property field pointer for supplied holder struct pointer
func (p *Property) Pointer(structPtr unsafe.Pointer) unsafe.Pointer {
	for _, embedded := range p.path {
		structPtr = embedded.Pointer(structPtr)
	}
	return p.field.Pointer(structPtr)
}

// Value returns property value for supplied holder struct pointer
func (p *Property) Value(structPtr unsafe.Pointer) interface{} {
	for _, embedded := range p.path {
		structPtr = embedded.Pointer(structPtr)
	}
	return p.field.Value(structPtr)
}

// Set sets property value, value has to be assignable to property type
func (p *Property) Set(structPtr unsafe.Pointer, value reflect.Value) {
	reflect.NewAt(p.Type, p.Pointer(structPtr)).Elem().Set(value)
}

// Addressable returns struct pointer for supplied struct value, the value is copied when it is not a pointer
func Addressable(value interface{}) (interface{}, unsafe.Pointer) {
	rValue := reflect.ValueOf(value)
	if rValue.Kind() != reflect.Ptr {
		ptr := reflect.New(rValue.Type())
		ptr.Elem().Set(rValue)
		value = ptr.Interface()
	}
	return value, xunsafe.AsPointer(value)
}
