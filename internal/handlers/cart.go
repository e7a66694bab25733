package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chai-gali/chai-gali-orders-service/internal/models"
)

// HeaderCartSession identifies the visitor whose cart is addressed.
const HeaderCartSession = "X-Cart-Session"

// GetCart handles GET /api/v1/cart
func (h *Handlers) GetCart(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), c.GetHeader(HeaderCartSession))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// AddToCart handles POST /api/v1/cart/items
func (h *Handlers) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cart, err := h.cartService.AddToCart(c.Request.Context(), c.GetHeader(HeaderCartSession), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// ClearCart handles DELETE /api/v1/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	if err := h.cartService.ClearCart(c.Request.Context(), c.GetHeader(HeaderCartSession)); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
