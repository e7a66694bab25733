package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Menu handles GET /api/v1/menu
func (h *Handlers) Menu(c *gin.Context) {
	teas, addOns := h.orderService.Menu()

	c.JSON(http.StatusOK, gin.H{
		"teas":              teas,
		"addons":            addOns,
		"express_surcharge": h.config.Pricing.ExpressSurcharge,
		"currency":          "INR",
	})
}
