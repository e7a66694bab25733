package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCart(t *testing.T) {
	cart := NewCart("s1", []CartItem{
		{Name: "Masala Chai", Price: 30, Quantity: 2},
		{Name: "Samosa", Price: 20, Quantity: 1},
	})
	assert.Equal(t, 80, cart.Total)

	empty := NewCart("s2", nil)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.Total)
}

func TestNewCart_TotalSaturates(t *testing.T) {
	cart := NewCart("s1", []CartItem{{Name: "x", Price: 1 << 62, Quantity: 2}})
	assert.Equal(t, math.MaxInt, cart.Total)

	cart = NewCart("s1", []CartItem{
		{Name: "a", Price: math.MaxInt / 2, Quantity: 1},
		{Name: "b", Price: math.MaxInt / 2, Quantity: 1},
		{Name: "c", Price: 10, Quantity: 1},
	})
	assert.Equal(t, math.MaxInt, cart.Total)

	cart = NewCart("s1", []CartItem{{Name: "free", Price: 0, Quantity: 5}, {Name: "bad", Price: 30, Quantity: -1}})
	assert.Equal(t, 0, cart.Total)
}
