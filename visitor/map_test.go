package visitor

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

type pairs [][2]interface{}

func (p pairs) Len() int {
	return len(p)
}

func (p pairs) At(index int) (interface{}, interface{}) {
	return p[index][0], p[index][1]
}

func TestAnyMapVisitorOf(t *testing.T) {
	var aMap = map[string]bool{
		"abc": true,
		"def": true}

	{
		visit, err := AnyMapVisitorOf(aMap)
		assert.Nil(t, err)
		cloned := make(map[string]bool)
		err = visit(func(key any, element any) (bool, error) {
			cloned[key.(string)] = element.(bool)
			return true, nil
		})
		assert.Nil(t, err)
		assert.EqualValues(t, aMap, cloned)
	}
	{
		fMap := map[float64]float64{
			1: 1,
		}
		visit, err := AnyMapVisitorOf(fMap)
		assert.Nil(t, err)
		cloned := make(map[float64]float64)
		err = visit(func(key any, element any) (bool, error) {
			cloned[key.(float64)] = element.(float64)
			return true, nil
		})
		assert.Nil(t, err)
		assert.EqualValues(t, fMap, cloned)
	}
}

func TestOrderedVisitor(t *testing.T) {
	visit, err := AnyMapVisitorOf(pairs{{"b", 2}, {"a", 1}, {"c", 3}})
	assert.Nil(t, err)
	var keys []interface{}
	err = visit(func(key any, element any) (bool, error) {
		keys = append(keys, key)
		return key != "a", nil
	})
	assert.Nil(t, err)
	assert.Equal(t, []interface{}{"b", "a"}, keys)

	_, err = AnyMapVisitorOf([]int{1})
	assert.NotNil(t, err)
}
