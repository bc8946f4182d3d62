// Package conv provides the built-in converters: container converters for maps, slices
// and pointers, struct to map conversion, scalar leaves (string, bool, numbers, time),
// json.RawMessage sources and the identity/convertible fallbacks.
//
// Container converters never convert elements themselves, they delegate every element
// back to the engine with a child context.
package conv
