package conv

import (
	"bytes"
	"encoding/json"
	"github.com/francoispqt/gojay"
	"github.com/viant/mapology/spi"
	"reflect"
)

var rawMessageType = reflect.TypeOf(json.RawMessage{})

type (
	// JSONConverter decodes json.RawMessage source and maps decoded value into destination
	JSONConverter struct{}

	//object decodes JSON object keeping document key order
	object struct {
		entries spi.Entries
	}
)

func (o *object) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	var value interface{}
	if err := dec.Interface(&value); err != nil {
		return err
	}
	o.entries.Put(key, value)
	return nil
}

func (o *object) NKeys() int {
	return 0
}

func (c *JSONConverter) Supports(source, destination reflect.Type) bool {
	if source != rawMessageType {
		return false
	}
	return !(destination.Kind() == reflect.Slice && destination.Elem().Kind() == reflect.Uint8)
}

func (c *JSONConverter) Convert(ctx *spi.Context) (interface{}, error) {
	data := bytes.TrimSpace(ctx.Source().(json.RawMessage))
	decoded, err := decodeJSON(data)
	if err != nil {
		return nil, spi.NewUnsupportedSourceError(ctx.SourceType(), ctx.DestinationType(), err.Error())
	}
	return ctx.Engine().Map(ctx.WithSource(decoded))
}

func decodeJSON(data []byte) (interface{}, error) {
	if len(data) == 0 {
		return nil, gojay.InvalidJSONError("empty input")
	}
	if data[0] == '{' {
		obj := &object{entries: spi.Entries{}}
		if err := gojay.UnmarshalJSONObject(data, obj); err != nil {
			return nil, err
		}
		return obj.entries, nil
	}
	var value interface{}
	if err := gojay.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}
