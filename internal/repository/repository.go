package repository

import (
	"context"

	"github.com/chai-gali/chai-gali-orders-service/internal/models"
	"github.com/chai-gali/chai-gali-orders-service/internal/pricing"
)

// OrderRepository stores placed orders.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter *models.OrderListFilter) ([]*models.Order, int, error)
	Ping(ctx context.Context) error
}

// ContactRepository stores contact form submissions.
type ContactRepository interface {
	CreateContact(ctx context.Context, msg *models.ContactMessage) error
}

// OrderCache defines caching operations for orders.
type OrderCache interface {
	Get(ctx context.Context, id string) (*models.Order, error)
	Set(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id string) error
}

// CartStore persists a visitor's cart under a per-session key.
type CartStore interface {
	Add(ctx context.Context, session string, item models.CartItem) ([]models.CartItem, error)
	Get(ctx context.Context, session string) ([]models.CartItem, error)
	Clear(ctx context.Context, session string) error
}

// MergeCartItem adds item to items: a line with the same name has its
// quantity increased up to pricing.MaxQuantity, otherwise item is appended.
// The stored price of an existing line is left alone.
func MergeCartItem(items []models.CartItem, item models.CartItem) []models.CartItem {
	for i := range items {
		if items[i].Name == item.Name {
			if item.Quantity > pricing.MaxQuantity-items[i].Quantity {
				items[i].Quantity = pricing.MaxQuantity
			} else {
				items[i].Quantity += item.Quantity
			}
			return items
		}
	}
	return append(items, item)
}
