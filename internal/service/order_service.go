package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chai-gali/chai-gali-orders-service/internal/config"
	"github.com/chai-gali/chai-gali-orders-service/internal/errors"
	"github.com/chai-gali/chai-gali-orders-service/internal/logging"
	"github.com/chai-gali/chai-gali-orders-service/internal/metrics"
	"github.com/chai-gali/chai-gali-orders-service/internal/models"
	"github.com/chai-gali/chai-gali-orders-service/internal/pricing"
	"github.com/chai-gali/chai-gali-orders-service/internal/repository"
)

const notificationTimeout = 10 * time.Second

// EventPublisher announces accepted submissions.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *models.Order) error
	PublishContactSubmitted(ctx context.Context, msg *models.ContactMessage) error
}

// NotificationSender delivers confirmations to customers.
type NotificationSender interface {
	SendNotification(ctx context.Context, notification *models.Notification) error
}

// OrderService handles order and contact business logic.
type OrderService struct {
	calculator         *pricing.Calculator
	orderRepo          repository.OrderRepository
	contactRepo        repository.ContactRepository
	orderCache         repository.OrderCache
	eventPublisher     EventPublisher
	notificationClient NotificationSender
	metrics            *metrics.Metrics
	config             *config.Config
	logger             *logging.LoggerV2
	now                func() time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(
	calculator *pricing.Calculator,
	orderRepo repository.OrderRepository,
	contactRepo repository.ContactRepository,
	orderCache repository.OrderCache,
	eventPublisher EventPublisher,
	notificationClient NotificationSender,
	m *metrics.Metrics,
	cfg *config.Config,
) *OrderService {
	return &OrderService{
		calculator:         calculator,
		orderRepo:          orderRepo,
		contactRepo:        contactRepo,
		orderCache:         orderCache,
		eventPublisher:     eventPublisher,
		notificationClient: notificationClient,
		metrics:            m,
		config:             cfg,
		logger:             logging.NewLoggerV2("order-service"),
		now:                time.Now,
	}
}

// Menu returns the teas and add-ons currently on offer.
func (s *OrderService) Menu() (teas, addOns []pricing.Item) {
	catalog := s.calculator.Catalog()
	return catalog.Teas(), catalog.AddOns()
}

// Quote prices the order form as it currently stands. It never fails:
// missing or unknown inputs price as zero or fall back to their defaults.
func (s *OrderService) Quote(ctx context.Context, sel pricing.Selection) *models.Quote {
	return NewQuote(s.calculator, sel)
}

// PlaceOrder guards, prices and stores an order. A refused order stores
// nothing and comes back as a *errors.ValidationError carrying the warning.
func (s *OrderService) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) (*models.Confirmation, error) {
	s.logger.Info("Placing order", logging.Fields{
		"tea_type": req.TeaType,
		"delivery": req.Delivery,
	})

	if err := ValidatePlaceOrderRequest(req, s.calculator.Catalog(), s.config.Features.StrictFieldValidation); err != nil {
		s.metrics.OrderRejected()
		s.logger.Warn("Order refused", logging.Fields{"error": err.Error()})
		return nil, err
	}

	b := s.calculator.Calculate(req.Selection())

	order := &models.Order{
		ID:             repository.GenerateOrderID(),
		Status:         models.OrderStatusPlaced,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		TeaType:        b.TeaKey,
		TeaLabel:       b.TeaLabel,
		UnitPrice:      b.UnitPrice,
		Quantity:       b.Quantity,
		Temperature:    req.Temperature,
		AddOns:         b.AddOns,
		AddOnsSubtotal: b.AddOnsSubtotal,
		Delivery:       b.Delivery,
		DeliveryCharge: b.DeliveryCharge,
		Total:          b.Total,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error("Failed to create order", logging.Fields{
			"order_id": order.ID,
			"error":    err.Error(),
		})
		return nil, err
	}

	if s.config.Features.EnableOrderCaching {
		if err := s.orderCache.Set(ctx, order); err != nil {
			s.logger.Error("Failed to cache order", logging.Fields{
				"order_id": order.ID,
				"error":    err.Error(),
			})
		}
	}

	if s.config.Features.EnableOrderEvents {
		if err := s.eventPublisher.PublishOrderPlaced(ctx, order); err != nil {
			s.logger.Error("Failed to publish order placed event", logging.Fields{
				"order_id": order.ID,
				"error":    err.Error(),
			})
		}
	}

	message := FormatOrderConfirmation(order, s.config.Pricing.DeliveryETA)

	if s.config.Features.EnableNotifications && order.Email != "" {
		go s.sendNotification(&models.Notification{
			Type:      "order_confirmation",
			Channel:   "email",
			Recipient: order.Email,
			Subject:   orderTitle,
			Body:      message,
			Metadata: map[string]string{
				"order_id": order.ID,
				"total":    pricing.FormatRupees(order.Total),
			},
		})
	}

	s.metrics.OrderAccepted(order.Total)

	s.logger.Info("Order placed", logging.Fields{
		"order_id": order.ID,
		"total":    order.Total,
	})

	summary := b.Display()
	return &models.Confirmation{
		ID:      order.ID,
		Message: message,
		Summary: &summary,
		Order:   order,
	}, nil
}

// GetOrder retrieves an order by ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	s.logger.Debug("Getting order", logging.Fields{"order_id": id})

	if s.config.Features.EnableOrderCaching {
		if order, err := s.orderCache.Get(ctx, id); err == nil && order != nil {
			s.logger.Debug("Order found in cache", logging.Fields{"order_id": id})
			return order, nil
		}
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.ErrNotFound
	}

	if s.config.Features.EnableOrderCaching {
		if err := s.orderCache.Set(ctx, order); err != nil {
			s.logger.Debug("Failed to cache order", logging.Fields{"order_id": id, "error": err.Error()})
		}
	}

	return order, nil
}

// ListOrders returns a page of a customer's orders, newest first, along with
// the total number of orders for that email.
func (s *OrderService) ListOrders(ctx context.Context, filter *models.OrderListFilter) ([]*models.Order, int, error) {
	if err := ValidateOrderListFilter(filter); err != nil {
		return nil, 0, err
	}

	s.logger.Debug("Listing orders", logging.Fields{
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})

	return s.orderRepo.List(ctx, filter)
}

// SubmitContact stores a contact form message once every required field is
// present.
func (s *OrderService) SubmitContact(ctx context.Context, req *models.ContactRequest) (*models.Confirmation, error) {
	if err := ValidateContactRequest(req, s.config.Features.StrictFieldValidation); err != nil {
		s.metrics.ContactOutcome(false)
		return nil, err
	}

	msg := &models.ContactMessage{
		ID:        repository.GenerateContactID(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   SanitizeMessage(req.Message),
		CreatedAt: s.now().UTC(),
	}

	if err := s.contactRepo.CreateContact(ctx, msg); err != nil {
		s.logger.Error("Failed to store contact message", logging.Fields{
			"message_id": msg.ID,
			"error":      err.Error(),
		})
		return nil, err
	}

	if s.config.Features.EnableOrderEvents {
		if err := s.eventPublisher.PublishContactSubmitted(ctx, msg); err != nil {
			s.logger.Error("Failed to publish contact submitted event", logging.Fields{
				"message_id": msg.ID,
				"error":      err.Error(),
			})
		}
	}

	// The reply quotes the message as typed, not the escaped stored copy.
	reply := *msg
	reply.Message = req.Message
	message := FormatContactConfirmation(&reply)

	if s.config.Features.EnableNotifications {
		go s.sendNotification(&models.Notification{
			Type:      "contact_confirmation",
			Channel:   "email",
			Recipient: msg.Email,
			Subject:   fmt.Sprintf("Re: %s", msg.Subject),
			Body:      message,
			Metadata:  map[string]string{"message_id": msg.ID},
		})
	}

	s.metrics.ContactOutcome(true)

	s.logger.Info("Contact message received", logging.Fields{"message_id": msg.ID})

	return &models.Confirmation{ID: msg.ID, Message: message}, nil
}

func (s *OrderService) sendNotification(n *models.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
	defer cancel()

	if err := s.notificationClient.SendNotification(ctx, n); err != nil {
		s.logger.Error("Failed to send notification", logging.Fields{
			"type":  n.Type,
			"error": err.Error(),
		})
	}
}
