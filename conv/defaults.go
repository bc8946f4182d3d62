package conv

import "github.com/viant/mapology/spi"

// Named represents named converter
type Named struct {
	Name      string
	Converter spi.Converter
}

// Defaults returns built-in converters in probing order
func Defaults(options Options) []Named {
	options.init()
	return []Named{
		{Name: "json", Converter: &JSONConverter{}},
		{Name: "pointer", Converter: &PointerConverter{}},
		{Name: "slice", Converter: &SliceConverter{}},
		{Name: "map", Converter: &MapConverter{MapType: options.MapType}},
		{Name: "structToMap", Converter: &StructMapConverter{}},
		{Name: "assignable", Converter: &AssignableConverter{}},
		{Name: "string", Converter: &StringConverter{}},
		{Name: "bool", Converter: &BoolConverter{}},
		{Name: "int", Converter: &IntConverter{}},
		{Name: "uint", Converter: &UintConverter{}},
		{Name: "float", Converter: &FloatConverter{}},
		{Name: "time", Converter: &TimeConverter{DateLayout: options.DateLayout}},
		{Name: "convertible", Converter: &ConvertibleConverter{}},
	}
}
