package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chai-gali/chai-gali-orders-service/internal/errors"
	"github.com/chai-gali/chai-gali-orders-service/internal/logging"
	"github.com/chai-gali/chai-gali-orders-service/internal/models"
	"github.com/chai-gali/chai-gali-orders-service/internal/pricing"
	"github.com/chai-gali/chai-gali-orders-service/internal/repository"
)

// QuoteFromBody handles POST /api/v1/quote
func (h *Handlers) QuoteFromBody(c *gin.Context) {
	var sel pricing.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		h.logger.Error("Failed to bind request", logging.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, h.orderService.Quote(c.Request.Context(), sel))
}

// QuoteFromQuery handles GET /api/v1/quote?tea_type=&quantity=&addons=&delivery=
func (h *Handlers) QuoteFromQuery(c *gin.Context) {
	sel := pricing.Selection{
		TeaKey:   c.Query("tea_type"),
		Quantity: pricing.RawQuantity(c.Query("quantity")),
		AddOns:   c.QueryArray("addons"),
		Delivery: c.Query("delivery"),
	}

	c.JSON(http.StatusOK, h.orderService.Quote(c.Request.Context(), sel))
}

// PlaceOrder handles POST /api/v1/orders
func (h *Handlers) PlaceOrder(c *gin.Context) {
	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind request", logging.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	conf, err := h.orderService.PlaceOrder(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, conf)
}

// GetOrder handles GET /api/v1/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OrderView{Order: order, Summary: order.Breakdown().Display()})
}

// ListOrders handles GET /api/v1/orders?email=
func (h *Handlers) ListOrders(c *gin.Context) {
	filter := &models.OrderListFilter{Email: c.Query("email")}

	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

func handleError(c *gin.Context, err error) {
	if errors.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if validationErr, ok := errors.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   validationErr.Message,
			"warning": validationErr.Message,
			"field":   validationErr.Field,
			"details": validationErr.Details,
		})
		return
	}

	if stderrors.Is(err, repository.ErrCartConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": "cart was updated elsewhere, please retry"})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
