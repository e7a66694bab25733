package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/chai-gali/chai-gali-orders-service/internal/config"
	"github.com/chai-gali/chai-gali-orders-service/internal/logging"
	"github.com/chai-gali/chai-gali-orders-service/internal/middleware"
	"github.com/chai-gali/chai-gali-orders-service/internal/models"
)

// HTTPNotificationClient hands confirmations to the notification service.
type HTTPNotificationClient struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	logger     *logging.LoggerV2
}

// NewHTTPNotificationClient creates a new HTTP-based notification client.
func NewHTTPNotificationClient(cfg config.ServiceConfig, logger *logging.LoggerV2) *HTTPNotificationClient {
	return &HTTPNotificationClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey: cfg.APIKey,
		logger: logger,
	}
}

// SendNotification posts a notification to the notification service.
func (c *HTTPNotificationClient) SendNotification(ctx context.Context, notification *models.Notification) error {
	c.logger.Debug("Sending notification", logging.Fields{
		"type":    notification.Type,
		"channel": notification.Channel,
	})

	body, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/v1/notifications", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	c.setHeaders(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to send notification", logging.Fields{
			"type":  notification.Type,
			"error": err.Error(),
		})
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}

	c.logger.Info("Notification sent", logging.Fields{
		"type":    notification.Type,
		"channel": notification.Channel,
	})

	return nil
}

func (c *HTTPNotificationClient) setHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}
}

// MockNotificationClient is a mock implementation for testing.
type MockNotificationClient struct {
	mu            sync.Mutex
	notifications []*models.Notification
	sent          chan struct{}
}

// NewMockNotificationClient creates a mock notification client.
func NewMockNotificationClient() *MockNotificationClient {
	return &MockNotificationClient{
		notifications: make([]*models.Notification, 0),
		sent:          make(chan struct{}, 16),
	}
}

func (m *MockNotificationClient) SendNotification(ctx context.Context, notification *models.Notification) error {
	m.mu.Lock()
	m.notifications = append(m.notifications, notification)
	m.mu.Unlock()

	select {
	case m.sent <- struct{}{}:
	default:
	}
	return nil
}

// Sent signals once per delivered notification.
func (m *MockNotificationClient) Sent() <-chan struct{} {
	return m.sent
}

// Notifications returns everything sent so far.
func (m *MockNotificationClient) Notifications() []*models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Notification(nil), m.notifications...)
}
