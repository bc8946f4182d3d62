package conv

import (
	"fmt"
	"github.com/viant/mapology/spi"
	"reflect"
	"strings"
	"time"
)

var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// TimeConverter converts strings and unix timestamps into time.Time
type TimeConverter struct {
	DateLayout string
}

func (c *TimeConverter) Supports(source, destination reflect.Type) bool {
	if destination != timeType {
		return false
	}
	switch source.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func (c *TimeConverter) Convert(ctx *spi.Context) (interface{}, error) {
	srcValue := reflect.ValueOf(ctx.Source())
	switch srcValue.Kind() {
	case reflect.String:
		return c.parse(ctx, strings.TrimSpace(srcValue.String()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return unixTime(srcValue.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return unixTime(int64(srcValue.Uint())), nil
	case reflect.Float32, reflect.Float64:
		seconds := int64(srcValue.Float())
		fractional := srcValue.Float() - float64(seconds)
		return time.Unix(seconds, int64(fractional*1e9)), nil
	}
	return nil, fmt.Errorf("cannot convert %v to time.Time", srcValue.Type())
}

func (c *TimeConverter) parse(ctx *spi.Context, text string) (time.Time, error) {
	if text == "" {
		return time.Time{}, nil
	}
	if tag := formatTag(ctx); tag != nil && tag.TimeLayout != "" {
		ts, err := time.Parse(tag.TimeLayout, text)
		if err == nil {
			return ts, nil
		}
	}
	layout := c.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}
	ts, err := time.Parse(layout, text)
	if err == nil {
		return ts, nil
	}
	for _, candidate := range fallbackLayouts {
		if ts, err = time.Parse(candidate, text); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time string '%s': %w", text, err)
}

func unixTime(value int64) time.Time {
	if value > 1e10 { //nanoseconds
		return time.Unix(0, value)
	}
	return time.Unix(value, 0)
}
