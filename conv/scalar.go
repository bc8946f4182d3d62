package conv

import (
	"fmt"
	"github.com/viant/mapology/spi"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

type (
	// StringConverter converts scalars, byte slices and time into strings
	StringConverter struct{}

	// BoolConverter converts numbers and strings into bool
	BoolConverter struct{}

	// IntConverter converts numbers, bool and strings into signed integers
	IntConverter struct{}

	// UintConverter converts non negative numbers, bool and strings into unsigned integers
	UintConverter struct{}

	// FloatConverter converts numbers, bool and strings into floats
	FloatConverter struct{}
)

func isScalar(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func (c *StringConverter) Supports(source, destination reflect.Type) bool {
	if destination.Kind() != reflect.String {
		return false
	}
	if isScalar(source) || source == timeType {
		return true
	}
	return source.Kind() == reflect.Slice && source.Elem().Kind() == reflect.Uint8
}

func (c *StringConverter) Convert(ctx *spi.Context) (interface{}, error) {
	srcValue := reflect.ValueOf(ctx.Source())
	tag := formatTag(ctx)
	var result string
	switch srcValue.Kind() {
	case reflect.String:
		result = srcValue.String()
	case reflect.Bool:
		result = strconv.FormatBool(srcValue.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = strconv.FormatInt(srcValue.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = strconv.FormatUint(srcValue.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		if tag != nil && tag.Format != "" {
			formatted, err := tag.FormatFloat(srcValue.Float())
			if err != nil {
				return nil, err
			}
			result = formatted
			break
		}
		bitSize := 64
		if srcValue.Kind() == reflect.Float32 {
			bitSize = 32
		}
		result = strconv.FormatFloat(srcValue.Float(), 'f', -1, bitSize)
	case reflect.Slice:
		result = string(srcValue.Bytes())
	case reflect.Struct:
		result = tag.FormatTime(srcValue.Interface().(time.Time))
	default:
		return nil, fmt.Errorf("cannot convert %v to string", srcValue.Type())
	}
	ret := reflect.New(ctx.DestinationType()).Elem()
	ret.SetString(result)
	return ret.Interface(), nil
}

func (c *BoolConverter) Supports(source, destination reflect.Type) bool {
	return destination.Kind() == reflect.Bool && isScalar(source)
}

func (c *BoolConverter) Convert(ctx *spi.Context) (interface{}, error) {
	srcValue := reflect.ValueOf(ctx.Source())
	var result bool
	switch srcValue.Kind() {
	case reflect.Bool:
		result = srcValue.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = srcValue.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = srcValue.Uint() != 0
	case reflect.Float32, reflect.Float64:
		result = srcValue.Float() != 0
	case reflect.String:
		var err error
		result, err = strconv.ParseBool(srcValue.String())
		if err != nil {
			//numeric strings are accepted as well
			if f, err := strconv.ParseFloat(srcValue.String(), 64); err == nil {
				result = f != 0
				break
			}
			return nil, err
		}
	default:
		return nil, fmt.Errorf("cannot convert %v to bool", srcValue.Type())
	}
	ret := reflect.New(ctx.DestinationType()).Elem()
	ret.SetBool(result)
	return ret.Interface(), nil
}

func (c *IntConverter) Supports(source, destination reflect.Type) bool {
	switch destination.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return isScalar(source)
	}
	return false
}

func (c *IntConverter) Convert(ctx *spi.Context) (interface{}, error) {
	srcValue := reflect.ValueOf(ctx.Source())
	var result int64
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = srcValue.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := srcValue.Uint()
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("value %d overflows int64", v)
		}
		result = int64(v)
	case reflect.Float32, reflect.Float64:
		var err error
		if result, err = floatToInt(srcValue.Float()); err != nil {
			return nil, err
		}
	case reflect.Bool:
		if srcValue.Bool() {
			result = 1
		}
	case reflect.String:
		var err error
		text := strings.TrimSpace(srcValue.String())
		if strings.Contains(text, ".") {
			var f float64
			if f, err = strconv.ParseFloat(text, 64); err == nil {
				result, err = floatToInt(f)
			}
		} else {
			result, err = strconv.ParseInt(text, 0, 64)
		}
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("cannot convert %v to int", srcValue.Type())
	}
	ret := reflect.New(ctx.DestinationType()).Elem()
	if ret.OverflowInt(result) {
		return nil, fmt.Errorf("value %d overflows %v", result, ret.Type())
	}
	ret.SetInt(result)
	return ret.Interface(), nil
}

func (c *UintConverter) Supports(source, destination reflect.Type) bool {
	switch destination.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return isScalar(source)
	}
	return false
}

func (c *UintConverter) Convert(ctx *spi.Context) (interface{}, error) {
	srcValue := reflect.ValueOf(ctx.Source())
	var result uint64
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := srcValue.Int()
		if v < 0 {
			return nil, fmt.Errorf("cannot convert negative value %d to unsigned int", v)
		}
		result = uint64(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = srcValue.Uint()
	case reflect.Float32, reflect.Float64:
		var err error
		if result, err = floatToUint(srcValue.Float()); err != nil {
			return nil, err
		}
	case reflect.Bool:
		if srcValue.Bool() {
			result = 1
		}
	case reflect.String:
		var err error
		text := strings.TrimSpace(srcValue.String())
		if strings.Contains(text, ".") {
			var f float64
			if f, err = strconv.ParseFloat(text, 64); err == nil {
				result, err = floatToUint(f)
			}
		} else {
			result, err = strconv.ParseUint(text, 0, 64)
		}
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("cannot convert %v to uint", srcValue.Type())
	}
	ret := reflect.New(ctx.DestinationType()).Elem()
	if ret.OverflowUint(result) {
		return nil, fmt.Errorf("value %d overflows %v", result, ret.Type())
	}
	ret.SetUint(result)
	return ret.Interface(), nil
}

func (c *FloatConverter) Supports(source, destination reflect.Type) bool {
	switch destination.Kind() {
	case reflect.Float32, reflect.Float64:
		return isScalar(source)
	}
	return false
}

func (c *FloatConverter) Convert(ctx *spi.Context) (interface{}, error) {
	srcValue := reflect.ValueOf(ctx.Source())
	var result float64
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = float64(srcValue.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = float64(srcValue.Uint())
	case reflect.Float32, reflect.Float64:
		result = srcValue.Float()
	case reflect.Bool:
		if srcValue.Bool() {
			result = 1
		}
	case reflect.String:
		var err error
		result, err = strconv.ParseFloat(strings.TrimSpace(srcValue.String()), 64)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("cannot convert %v to float", srcValue.Type())
	}
	ret := reflect.New(ctx.DestinationType()).Elem()
	ret.SetFloat(result)
	return ret.Interface(), nil
}

// floatToInt truncates v, values outside of int64 range fail
func floatToInt(v float64) (int64, error) {
	if math.IsNaN(v) || v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, fmt.Errorf("value %v overflows int64", v)
	}
	return int64(v), nil
}

func floatToUint(v float64) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("cannot convert negative value %f to unsigned int", v)
	}
	if math.IsNaN(v) || v >= math.MaxUint64 {
		return 0, fmt.Errorf("value %v overflows uint64", v)
	}
	return uint64(v), nil
}
