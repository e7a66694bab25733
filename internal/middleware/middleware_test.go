package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/chai-gali/chai-gali-orders-service/internal/logging"
)

func newTestRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var seen string
	r := gin.New()
	r.Use(RequestID(), RequestLogger(logging.NewLoggerV2("test")))
	r.GET("/ping", func(c *gin.Context) {
		seen = RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestRequestID_Generated(t *testing.T) {
	r, seen := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, *seen)
	assert.Equal(t, *seen, w.Header().Get(HeaderRequestID))
}

func TestRequestID_Propagated(t *testing.T) {
	r, seen := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", *seen)
	assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
	assert.Equal(t, "x", RequestIDFromContext(WithRequestID(context.Background(), "x")))
}
