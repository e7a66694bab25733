package handlers

import (
	"context"

	"github.com/chai-gali/chai-gali-orders-service/internal/config"
	"github.com/chai-gali/chai-gali-orders-service/internal/logging"
	"github.com/chai-gali/chai-gali-orders-service/internal/service"
)

// ReadinessCheck is a named dependency probe run by /ready.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Handlers holds all HTTP handlers for the orders service.
type Handlers struct {
	orderService *service.OrderService
	cartService  *service.CartService
	checks       []ReadinessCheck
	config       *config.Config
	logger       *logging.LoggerV2
}

// NewHandlers creates a new handlers instance.
func NewHandlers(
	orderService *service.OrderService,
	cartService *service.CartService,
	cfg *config.Config,
	checks ...ReadinessCheck,
) *Handlers {
	return &Handlers{
		orderService: orderService,
		cartService:  cartService,
		checks:       checks,
		config:       cfg,
		logger:       logging.NewLoggerV2("handlers"),
	}
}
