package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/chai-gali/chai-gali-orders-service/internal/config"
	"github.com/chai-gali/chai-gali-orders-service/internal/logging"
	"github.com/chai-gali/chai-gali-orders-service/internal/middleware"
	"github.com/chai-gali/chai-gali-orders-service/internal/models"
)

// EventType names an outgoing shop event.
type EventType string

const (
	EventTypeOrderPlaced      EventType = "order.placed"
	EventTypeContactSubmitted EventType = "contact.submitted"
)

// Event is the envelope written to the orders topic.
type Event struct {
	ID            string            `json:"id"`
	Type          EventType         `json:"type"`
	SubjectID     string            `json:"subject_id"`
	Data          json.RawMessage   `json:"data"`
	Metadata      map[string]string `json:"metadata"`
	Timestamp     time.Time         `json:"timestamp"`
	CorrelationID string            `json:"correlation_id,omitempty"`
}

// KafkaPublisher publishes shop events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	logger *logging.LoggerV2
}

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *logging.LoggerV2) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.OrdersTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		topic:  cfg.OrdersTopic,
		logger: logger,
	}
}

// PublishOrderPlaced publishes an order placed event.
func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, order *models.Order) error {
	event, err := NewEvent(ctx, EventTypeOrderPlaced, order.ID, order)
	if err != nil {
		return err
	}
	event.Metadata["delivery"] = string(order.Delivery)
	return p.publish(ctx, event)
}

// PublishContactSubmitted publishes a contact form event.
func (p *KafkaPublisher) PublishContactSubmitted(ctx context.Context, msg *models.ContactMessage) error {
	event, err := NewEvent(ctx, EventTypeContactSubmitted, msg.ID, msg)
	if err != nil {
		return err
	}
	return p.publish(ctx, event)
}

// NewEvent wraps payload in an envelope, picking up the request id on ctx as
// the correlation id.
func NewEvent(ctx context.Context, eventType EventType, subjectID string, payload interface{}) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            "evt_" + uuid.NewString(),
		Type:          eventType,
		SubjectID:     subjectID,
		Data:          data,
		Metadata:      make(map[string]string),
		Timestamp:     time.Now().UTC(),
		CorrelationID: middleware.RequestIDFromContext(ctx),
	}, nil
}

func (p *KafkaPublisher) publish(ctx context.Context, event *Event) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.SubjectID),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event", logging.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
			"subject_id": event.SubjectID,
			"error":      err.Error(),
		})
		return err
	}

	p.logger.Info("Event published", logging.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"subject_id": event.SubjectID,
	})

	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	p.logger.Info("Closing Kafka publisher")
	return p.writer.Close()
}

// MockEventPublisher records events in memory for tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []*Event
	Err    error
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{
		Events: make([]*Event, 0),
	}
}

func (m *MockEventPublisher) PublishOrderPlaced(ctx context.Context, order *models.Order) error {
	return m.record(ctx, EventTypeOrderPlaced, order.ID, order)
}

func (m *MockEventPublisher) PublishContactSubmitted(ctx context.Context, msg *models.ContactMessage) error {
	return m.record(ctx, EventTypeContactSubmitted, msg.ID, msg)
}

// Types returns the recorded event types in publish order.
func (m *MockEventPublisher) Types() []EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EventType, len(m.Events))
	for i, e := range m.Events {
		out[i] = e.Type
	}
	return out
}

func (m *MockEventPublisher) record(ctx context.Context, t EventType, id string, payload interface{}) error {
	if m.Err != nil {
		return m.Err
	}
	event, err := NewEvent(ctx, t, id, payload)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}
