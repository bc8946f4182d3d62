package spi

import "reflect"

type (
	//Entry represents associative container entry
	Entry struct {
		Key   interface{}
		Value interface{}
	}

	// Entries represents associative container with a guaranteed iteration order
	Entries []Entry
)

// EntriesType represents entries type
var EntriesType = reflect.TypeOf(Entries{})

// Len returns entries count
func (e Entries) Len() int {
	return len(e)
}

// At returns entry key and value at index
func (e Entries) At(index int) (interface{}, interface{}) {
	return e[index].Key, e[index].Value
}

// Put appends an entry
func (e *Entries) Put(key, value interface{}) {
	*e = append(*e, Entry{Key: key, Value: value})
}
