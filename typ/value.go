package typ

import (
	"fmt"
	"reflect"
)

// ValueOf returns value as reflect.Value of type t.
// Nil value returns zero value; assignable and convertible values are adjusted to t.
func ValueOf(value interface{}, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(t), nil
	}
	rValue := reflect.ValueOf(value)
	rType := rValue.Type()
	if rType == t {
		return rValue, nil
	}
	if rType.AssignableTo(t) {
		result := reflect.New(t).Elem()
		result.Set(rValue)
		return result, nil
	}
	if rType.ConvertibleTo(t) && rType.Kind() == t.Kind() {
		return rValue.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("typ: %v is not assignable to %v", rType, t)
}

// IsNil returns true if value is nil or a nil pointer, interface, func or chan
func IsNil(value interface{}) bool {
	if value == nil {
		return true
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rValue.IsNil()
	}
	return false
}

// Zero returns zero value of t as interface
func Zero(t reflect.Type) interface{} {
	if t == nil || t.Kind() == reflect.Interface {
		return nil
	}
	return reflect.Zero(t).Interface()
}

// Reusable returns value as interface when it holds a non zero composite value that can be populated further, otherwise nil
func Reusable(value reflect.Value) interface{} {
	if !value.IsValid() || !value.CanInterface() {
		return nil
	}
	switch value.Kind() {
	case reflect.Map, reflect.Slice, reflect.Ptr:
		if value.IsNil() {
			return nil
		}
	case reflect.Struct, reflect.Array:
		if value.IsZero() {
			return nil
		}
	case reflect.Interface:
		if value.IsNil() {
			return nil
		}
		return Reusable(value.Elem())
	default:
		return nil
	}
	return value.Interface()
}
