package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMap_PreservesInsertionOrder(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("10", 1)
	m.Set("02", 2)
	m.Set("07", 3)

	assert.Equal(t, []string{"10", "02", "07"}, m.Keys())
	assert.Equal(t, 3, m.Len())
}

func TestOrderedMap_OverwriteKeepsPosition(t *testing.T) {
	m := NewOrderedMap[string]()
	m.Set("a", "first")
	m.Set("b", "second")
	m.Set("a", "replaced")

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, "replaced", v)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
}

func TestOrderedMap_GetMissing(t *testing.T) {
	m := NewOrderedMap[int]()

	v, ok := m.Get("missing")
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestOrderedMap_Each(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("x", 1)
	m.Set("y", 2)

	var visited []string
	sum := 0
	m.Each(func(key string, value int) {
		visited = append(visited, key)
		sum += value
	})

	assert.Equal(t, []string{"x", "y"}, visited)
	assert.Equal(t, 3, sum)
}

func TestOrderedMap_KeysReturnsCopy(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("a", 1)

	keys := m.Keys()
	keys[0] = "mutated"

	assert.Equal(t, []string{"a"}, m.Keys())
}

func TestOrderedMap_MarshalJSON(t *testing.T) {
	m := NewOrderedMap[MonthlyTopItem]()
	m.Set("02", MonthlyTopItem{Item: "Gadget", Quantity: 20})
	m.Set("01", MonthlyTopItem{Item: "Widget", Quantity: 10})

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"02":{"item":"Gadget","quantity":20},"01":{"item":"Widget","quantity":10}}`, string(data))
}

func TestOrderedMap_MarshalJSONEmpty(t *testing.T) {
	data, err := json.Marshal(NewOrderedMap[int]())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
