package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chai-gali/chai-gali-orders-service/internal/models"
)

// SubmitContact handles POST /api/v1/contact
func (h *Handlers) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	conf, err := h.orderService.SubmitContact(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, conf)
}
