package models

import "math"

// CartItem is one line of a visitor's saved cart.
type CartItem struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// AddToCartRequest adds quantity cups of a named item to the cart.
type AddToCartRequest struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// Cart is the full saved cart for one session.
type Cart struct {
	Session string     `json:"session"`
	Items   []CartItem `json:"items"`
	Total   int        `json:"total"`
}

// NewCart builds a cart view and its running total. The total saturates at
// math.MaxInt instead of wrapping.
func NewCart(session string, items []CartItem) *Cart {
	if items == nil {
		items = []CartItem{}
	}
	total := 0
	for _, it := range items {
		total = addSaturating(total, lineTotal(it))
	}
	return &Cart{Session: session, Items: items, Total: total}
}

func lineTotal(it CartItem) int {
	if it.Price <= 0 || it.Quantity <= 0 {
		return 0
	}
	if it.Quantity > math.MaxInt/it.Price {
		return math.MaxInt
	}
	return it.Price * it.Quantity
}

func addSaturating(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
