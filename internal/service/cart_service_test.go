package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chai-gali/chai-gali-orders-service/internal/errors"
	"github.com/chai-gali/chai-gali-orders-service/internal/metrics"
	"github.com/chai-gali/chai-gali-orders-service/internal/models"
	"github.com/chai-gali/chai-gali-orders-service/internal/pricing"
	"github.com/chai-gali/chai-gali-orders-service/internal/repository"
)

func TestCartService(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	svc := NewCartService(repository.NewMemoryStore(), m)
	ctx := context.Background()

	cart, err := svc.AddToCart(ctx, "s1", &models.AddToCartRequest{Name: "Masala Chai", Price: 30, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 60, cart.Total)

	cart, err = svc.AddToCart(ctx, "s1", &models.AddToCartRequest{Name: "Masala Chai", Price: 99})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 30, cart.Items[0].Price)

	cart, err = svc.AddToCart(ctx, "s1", &models.AddToCartRequest{Name: "Samosa", Price: 20, Quantity: 1})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 110, cart.Total)

	other, err := svc.GetCart(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other.Items)

	require.NoError(t, svc.ClearCart(ctx, "s1"))
	cart, err = svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.Total)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.CartAdds))
}

func TestCartService_Rejects(t *testing.T) {
	svc := NewCartService(repository.NewMemoryStore(), metrics.New(prometheus.NewRegistry()))
	ctx := context.Background()

	_, err := svc.GetCart(ctx, "  ")
	verr, ok := errors.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "session", verr.Field)

	_, err = svc.AddToCart(ctx, "s1", &models.AddToCartRequest{Name: "", Price: 10})
	_, ok = errors.AsValidationError(err)
	assert.True(t, ok)

	_, err = svc.AddToCart(ctx, "s1", &models.AddToCartRequest{Name: "Chai", Price: -5})
	_, ok = errors.AsValidationError(err)
	assert.True(t, ok)
}

func TestCartService_TotalNeverWraps(t *testing.T) {
	svc := NewCartService(repository.NewMemoryStore(), metrics.New(prometheus.NewRegistry()))
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "s1", &models.AddToCartRequest{Name: "x", Price: 1 << 62, Quantity: 2})
	verr, ok := errors.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "price", verr.Field)

	cart, err := svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	for i := 0; i < 3; i++ {
		cart, err = svc.AddToCart(ctx, "s1", &models.AddToCartRequest{Name: "Gold Leaf Chai", Price: pricing.MaxPrice, Quantity: pricing.MaxQuantity})
		require.NoError(t, err)
	}
	require.Len(t, cart.Items, 1)
	assert.Equal(t, pricing.MaxQuantity, cart.Items[0].Quantity)
	assert.Equal(t, pricing.MaxPrice*pricing.MaxQuantity, cart.Total)
}
