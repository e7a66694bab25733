package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chai-gali/chai-gali-orders-service/internal/logging"
	"github.com/chai-gali/chai-gali-orders-service/internal/middleware"
	"github.com/chai-gali/chai-gali-orders-service/internal/models"
	"github.com/chai-gali/chai-gali-orders-service/internal/pricing"
)

func TestNewEvent_CarriesCorrelationID(t *testing.T) {
	ctx := middleware.WithRequestID(context.Background(), "req-42")

	event, err := NewEvent(ctx, EventTypeOrderPlaced, "ord_1", &models.Order{ID: "ord_1", Total: 140})
	require.NoError(t, err)

	assert.Equal(t, "req-42", event.CorrelationID)
	assert.Equal(t, "ord_1", event.SubjectID)
	assert.Contains(t, event.ID, "evt_")

	var order models.Order
	require.NoError(t, json.Unmarshal(event.Data, &order))
	assert.Equal(t, 140, order.Total)
}

func TestMockEventPublisher(t *testing.T) {
	pub := NewMockEventPublisher()
	ctx := context.Background()

	require.NoError(t, pub.PublishOrderPlaced(ctx, &models.Order{ID: "ord_1"}))
	require.NoError(t, pub.PublishContactSubmitted(ctx, &models.ContactMessage{ID: "msg_1"}))

	assert.Equal(t, []EventType{EventTypeOrderPlaced, EventTypeContactSubmitted}, pub.Types())
}

func TestApplyMenuEvent(t *testing.T) {
	catalog := pricing.NewCatalog(
		[]pricing.Item{{Key: "masala", Label: "Masala Chai", Price: 30}},
		[]pricing.Item{{Key: "honey", Label: "Honey", Price: 10}},
	)

	require.NoError(t, ApplyMenuEvent(catalog, &MenuEvent{
		ID: "e1", Type: MenuEventPriceUpdated, Kind: MenuItemTea, Key: "masala", Price: 35,
	}))
	tea, _ := catalog.Tea("masala")
	assert.Equal(t, 35, tea.Price)
	assert.Equal(t, "Masala Chai", tea.Label)

	require.NoError(t, ApplyMenuEvent(catalog, &MenuEvent{
		ID: "e2", Type: MenuEventPriceUpdated, Kind: MenuItemAddOn, Key: "mint", Label: "Mint", Price: 5,
	}))
	mint, ok := catalog.AddOn("mint")
	assert.True(t, ok)
	assert.Equal(t, 5, mint.Price)

	require.NoError(t, ApplyMenuEvent(catalog, &MenuEvent{
		ID: "e3", Type: MenuEventItemRemoved, Kind: MenuItemAddOn, Key: "honey",
	}))
	_, ok = catalog.AddOn("honey")
	assert.False(t, ok)
}

func TestApplyMenuEvent_Rejects(t *testing.T) {
	catalog := pricing.DefaultCatalog()

	tests := []struct {
		name  string
		event MenuEvent
	}{
		{"missing key", MenuEvent{Type: MenuEventPriceUpdated, Kind: MenuItemTea}},
		{"unknown kind", MenuEvent{Type: MenuEventPriceUpdated, Kind: "snack", Key: "x"}},
		{"negative price", MenuEvent{Type: MenuEventPriceUpdated, Kind: MenuItemTea, Key: "x", Price: -1}},
		{"price above ceiling", MenuEvent{Type: MenuEventPriceUpdated, Kind: MenuItemAddOn, Key: "honey", Price: 1 << 62}},
		{"unknown type", MenuEvent{Type: "menu.renamed", Kind: MenuItemTea, Key: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ApplyMenuEvent(catalog, &tt.event))
		})
	}

	honey, ok := catalog.AddOn("honey")
	require.True(t, ok)
	assert.Equal(t, 10, honey.Price)
}

func TestMenuConsumer_HandleMessage(t *testing.T) {
	catalog := pricing.NewCatalog([]pricing.Item{{Key: "masala", Label: "Masala Chai", Price: 30}}, nil)
	c := &MenuConsumer{catalog: catalog, logger: logging.NewLoggerV2("test"), stopCh: make(chan struct{})}

	body, _ := json.Marshal(MenuEvent{ID: "e1", Type: MenuEventPriceUpdated, Kind: MenuItemTea, Key: "masala", Price: 45})
	c.handleMessage(kafka.Message{Value: body})
	c.handleMessage(kafka.Message{Value: []byte("not json")})

	tea, _ := catalog.Tea("masala")
	assert.Equal(t, 45, tea.Price)
}
