package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/chai-gali/chai-gali-orders-service/internal/config"
	"github.com/chai-gali/chai-gali-orders-service/internal/logging"
	"github.com/chai-gali/chai-gali-orders-service/internal/pricing"
)

// MenuEventType represents the type of menu event.
type MenuEventType string

const (
	MenuEventPriceUpdated MenuEventType = "menu.price_updated"
	MenuEventItemRemoved  MenuEventType = "menu.item_removed"
)

// MenuItemKind says which part of the menu an event targets.
type MenuItemKind string

const (
	MenuItemTea   MenuItemKind = "tea"
	MenuItemAddOn MenuItemKind = "addon"
)

// MenuEvent changes one entry of the live menu.
type MenuEvent struct {
	ID        string        `json:"id"`
	Type      MenuEventType `json:"type"`
	Kind      MenuItemKind  `json:"kind"`
	Key       string        `json:"key"`
	Label     string        `json:"label,omitempty"`
	Price     int           `json:"price"`
	Timestamp time.Time     `json:"timestamp"`
}

// ApplyMenuEvent updates catalog according to event.
func ApplyMenuEvent(catalog *pricing.Catalog, event *MenuEvent) error {
	if event.Key == "" {
		return fmt.Errorf("menu event %s has no item key", event.ID)
	}
	if event.Kind != MenuItemTea && event.Kind != MenuItemAddOn {
		return fmt.Errorf("menu event %s has unknown kind %q", event.ID, event.Kind)
	}

	switch event.Type {
	case MenuEventPriceUpdated:
		if event.Price < 0 {
			return fmt.Errorf("menu event %s has negative price %d", event.ID, event.Price)
		}
		if event.Price > pricing.MaxPrice {
			return fmt.Errorf("menu event %s has price %d above %d", event.ID, event.Price, pricing.MaxPrice)
		}
		item := pricing.Item{Key: event.Key, Label: event.Label, Price: event.Price}
		if event.Kind == MenuItemTea {
			catalog.UpsertTea(item)
		} else {
			catalog.UpsertAddOn(item)
		}
	case MenuEventItemRemoved:
		if event.Kind == MenuItemTea {
			catalog.RemoveTea(event.Key)
		} else {
			catalog.RemoveAddOn(event.Key)
		}
	default:
		return fmt.Errorf("menu event %s has unknown type %q", event.ID, event.Type)
	}
	return nil
}

// MenuConsumer applies menu events from Kafka to the live catalog.
type MenuConsumer struct {
	reader  *kafka.Reader
	catalog *pricing.Catalog
	logger  *logging.LoggerV2
	stopCh  chan struct{}
}

// NewMenuConsumer creates a new Kafka-based menu consumer.
func NewMenuConsumer(cfg config.KafkaConfig, catalog *pricing.Catalog, logger *logging.LoggerV2) *MenuConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.MenuTopic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})

	return &MenuConsumer{
		reader:  reader,
		catalog: catalog,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
}

// Start begins consuming events. It returns when ctx is done or Stop is called.
func (c *MenuConsumer) Start(ctx context.Context) error {
	c.logger.Info("Starting menu consumer")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stopCh:
			c.logger.Info("Menu consumer stopped")
			return nil
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				select {
				case <-c.stopCh:
					c.logger.Info("Menu consumer stopped")
					return nil
				default:
				}
				c.logger.Error("Failed to read message", logging.Fields{"error": err.Error()})
				continue
			}

			c.handleMessage(msg)
		}
	}
}

// Stop stops the consumer.
func (c *MenuConsumer) Stop() {
	close(c.stopCh)
	c.reader.Close()
}

func (c *MenuConsumer) handleMessage(msg kafka.Message) {
	c.logger.Debug("Received message", logging.Fields{
		"topic":     msg.Topic,
		"partition": msg.Partition,
		"offset":    msg.Offset,
	})

	var event MenuEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("Failed to unmarshal menu event", logging.Fields{"error": err.Error()})
		return
	}

	if err := ApplyMenuEvent(c.catalog, &event); err != nil {
		c.logger.Error("Rejected menu event", logging.Fields{"error": err.Error()})
		return
	}

	c.logger.Info("Menu updated", logging.Fields{
		"event_id": event.ID,
		"type":     event.Type,
		"kind":     event.Kind,
		"key":      event.Key,
		"price":    event.Price,
	})
}
