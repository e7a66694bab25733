package service

import (
	"context"
	"strings"

	"github.com/chai-gali/chai-gali-orders-service/internal/errors"
	"github.com/chai-gali/chai-gali-orders-service/internal/logging"
	"github.com/chai-gali/chai-gali-orders-service/internal/metrics"
	"github.com/chai-gali/chai-gali-orders-service/internal/models"
	"github.com/chai-gali/chai-gali-orders-service/internal/repository"
)

// CartService keeps each visitor's saved cart.
type CartService struct {
	store   repository.CartStore
	metrics *metrics.Metrics
	logger  *logging.LoggerV2
}

// NewCartService creates a new cart service.
func NewCartService(store repository.CartStore, m *metrics.Metrics) *CartService {
	return &CartService{
		store:   store,
		metrics: m,
		logger:  logging.NewLoggerV2("cart-service"),
	}
}

// AddToCart merges an item into the session's cart and returns the result.
func (s *CartService) AddToCart(ctx context.Context, session string, req *models.AddToCartRequest) (*models.Cart, error) {
	if err := validateSession(session); err != nil {
		return nil, err
	}
	if err := ValidateAddToCartRequest(req); err != nil {
		return nil, err
	}

	items, err := s.store.Add(ctx, session, models.CartItem{
		Name:     strings.TrimSpace(req.Name),
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		s.logger.Error("Failed to add cart item", logging.Fields{
			"name":  req.Name,
			"error": err.Error(),
		})
		return nil, err
	}

	s.metrics.CartAdds.Inc()
	return models.NewCart(session, items), nil
}

// GetCart returns the session's cart. A missing cart is empty.
func (s *CartService) GetCart(ctx context.Context, session string) (*models.Cart, error) {
	if err := validateSession(session); err != nil {
		return nil, err
	}

	items, err := s.store.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	return models.NewCart(session, items), nil
}

// ClearCart drops the session's cart.
func (s *CartService) ClearCart(ctx context.Context, session string) error {
	if err := validateSession(session); err != nil {
		return err
	}
	return s.store.Clear(ctx, session)
}

func validateSession(session string) error {
	if strings.TrimSpace(session) == "" {
		return errors.NewValidationError("session", "cart session is required")
	}
	return nil
}
