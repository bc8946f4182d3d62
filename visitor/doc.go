// Package visitor offers visitors over associative and sequential containers.
// Container converters use it to walk source entries in the source's native order:
// Go maps in unspecified order, ordered containers and slices by position.
package visitor
