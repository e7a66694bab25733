package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chai-gali/chai-gali-orders-service/internal/errors"
	"github.com/chai-gali/chai-gali-orders-service/internal/logging"
	"github.com/chai-gali/chai-gali-orders-service/internal/models"
	"github.com/chai-gali/chai-gali-orders-service/internal/pricing"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("Integration test - set TEST_DATABASE_URL to run")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, EnsureSchema(context.Background(), db))
	return db
}

func TestPostgresOrderRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresOrderRepository(db, logging.NewLoggerV2("test"))
	ctx := context.Background()

	order := &models.Order{
		ID:             GenerateOrderID(),
		Status:         models.OrderStatusPlaced,
		FullName:       "Asha",
		Email:          "asha@example.com",
		TeaType:        "masala-chai",
		TeaLabel:       "Masala Chai",
		UnitPrice:      50,
		Quantity:       2,
		AddOns:         []pricing.Item{{Key: "honey", Label: "Honey", Price: 10}},
		AddOnsSubtotal: 20,
		Delivery:       pricing.DeliveryExpress,
		DeliveryCharge: 20,
		Total:          140,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.Create(ctx, order))

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Total, got.Total)
	assert.Equal(t, order.AddOns, got.AddOns)

	orders, total, err := repo.List(ctx, &models.OrderListFilter{Email: "ASHA@example.com", Limit: 10})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, 1)
	assert.NotEmpty(t, orders)

	require.NoError(t, repo.CreateContact(ctx, &models.ContactMessage{
		ID:        GenerateContactID(),
		Name:      "Asha",
		Email:     "asha@example.com",
		Subject:   "Hello",
		Message:   "Lovely chai",
		CreatedAt: time.Now(),
	}))
}

func TestPostgresOrderRepository_GetByID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresOrderRepository(db, logging.NewLoggerV2("test"))

	_, err := repo.GetByID(context.Background(), "ord_missing")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestGenerateOrderID(t *testing.T) {
	id := GenerateOrderID()

	if len(id) < 10 {
		t.Errorf("Expected order ID length >= 10, got %d", len(id))
	}

	if id[:4] != "ord_" {
		t.Errorf("Expected order ID to start with 'ord_', got %s", id[:4])
	}

	assert.NotEqual(t, id, GenerateOrderID())
	assert.Equal(t, "msg_", GenerateContactID()[:4])
}
