package mapology

import (
	"testing"
)

// Benchmark deep copy of a pointer graph with nested containers.
func BenchmarkMapper_Map_DeepCopy(b *testing.B) {
	mapper, err := New()
	if err != nil {
		b.Fatal(err)
	}
	source := &Person{
		ID:         1,
		FirstName:  "Ann",
		Address:    &Address{Street: "Main", City: "Oslo"},
		Phones:     []Phone{{Kind: "home", Number: "1"}, {Kind: "work", Number: "2"}},
		Attributes: map[string]string{"a": "1", "b": "2"},
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var dest *Person
		if err := mapper.Map(source, &dest); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark As on a slice of untyped maps.
func BenchmarkAs_SliceOfMaps(b *testing.B) {
	mapper, err := New()
	if err != nil {
		b.Fatal(err)
	}
	one := map[string]interface{}{"id": "1", "firstName": "Ann", "phones": []interface{}{map[string]interface{}{"kind": "home"}}}
	source := []interface{}{one, one, one, one}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := As[[]Person](mapper, source); err != nil {
			b.Fatal(err)
		}
	}
}
