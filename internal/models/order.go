package models

import (
	"time"

	"github.com/chai-gali/chai-gali-orders-service/internal/pricing"
)

// OrderStatus tracks an order from submission to handover.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusOnTheWay  OrderStatus = "on_the_way"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PlaceOrderRequest is the order form as submitted by the site.
type PlaceOrderRequest struct {
	FullName    string              `json:"full_name"`
	Email       string              `json:"email"`
	Phone       string              `json:"phone"`
	TeaType     string              `json:"tea_type"`
	Quantity    pricing.RawQuantity `json:"quantity"`
	Temperature string              `json:"temperature"`
	AddOns      []string            `json:"addons"`
	Delivery    string              `json:"delivery"`
}

// Selection extracts the fields that drive pricing.
func (r *PlaceOrderRequest) Selection() pricing.Selection {
	return pricing.Selection{
		TeaKey:   r.TeaType,
		Quantity: r.Quantity,
		AddOns:   r.AddOns,
		Delivery: r.Delivery,
	}
}

// Order is a placed tea order.
type Order struct {
	ID             string                 `json:"id"`
	Status         OrderStatus            `json:"status"`
	FullName       string                 `json:"full_name"`
	Email          string                 `json:"email"`
	Phone          string                 `json:"phone"`
	TeaType        string                 `json:"tea_type"`
	TeaLabel       string                 `json:"tea_label"`
	UnitPrice      int                    `json:"unit_price"`
	Quantity       int                    `json:"quantity"`
	Temperature    string                 `json:"temperature"`
	AddOns         []pricing.Item         `json:"addons"`
	AddOnsSubtotal int                    `json:"addons_subtotal"`
	Delivery       pricing.DeliveryMethod `json:"delivery"`
	DeliveryCharge int                    `json:"delivery_charge"`
	Total          int                    `json:"total"`
	CreatedAt      time.Time              `json:"created_at"`
}

// Breakdown rebuilds the price breakdown the order was placed with.
func (o *Order) Breakdown() pricing.Breakdown {
	return pricing.Breakdown{
		TeaKey:         o.TeaType,
		TeaLabel:       o.TeaLabel,
		TeaSelected:    o.TeaType != "",
		UnitPrice:      o.UnitPrice,
		Quantity:       o.Quantity,
		AddOns:         o.AddOns,
		AddOnsSubtotal: o.AddOnsSubtotal,
		Delivery:       o.Delivery,
		DeliveryCharge: o.DeliveryCharge,
		Total:          o.Total,
	}
}

// OrderView is a stored order with its summary panel rendered.
type OrderView struct {
	Order   *Order          `json:"order"`
	Summary pricing.Display `json:"summary"`
}

// Quote is the response to a price preview.
type Quote struct {
	Breakdown pricing.Breakdown `json:"breakdown"`
	Summary   pricing.Display   `json:"summary"`
}

// Confirmation is what the site shows after an accepted submission.
type Confirmation struct {
	ID      string           `json:"id"`
	Message string           `json:"message"`
	Summary *pricing.Display `json:"summary,omitempty"`
	Order   *Order           `json:"order,omitempty"`
}

// OrderListFilter selects a page of a customer's orders.
type OrderListFilter struct {
	Email  string
	Limit  int
	Offset int
}
