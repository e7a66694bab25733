package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/chai-gali/chai-gali-orders-service/internal/config"
	"github.com/chai-gali/chai-gali-orders-service/internal/handlers"
	"github.com/chai-gali/chai-gali-orders-service/internal/logging"
	"github.com/chai-gali/chai-gali-orders-service/internal/middleware"
)

// Server wraps the gin router and the HTTP listener.
type Server struct {
	config     *config.Config
	router     *gin.Engine
	handlers   *handlers.Handlers
	httpServer *http.Server
}

// New builds the router and registers every route.
func New(h *handlers.Handlers, cfg *config.Config) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logging.NewLoggerV2("http")))

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
	}

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/live", s.handlers.Live)
	s.router.GET("/version", s.handlers.Version)
	s.router.GET("/metrics", s.handlers.Metrics)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/menu", s.handlers.Menu)

		v1.GET("/quote", s.handlers.QuoteFromQuery)
		v1.POST("/quote", s.handlers.QuoteFromBody)

		v1.POST("/orders", s.handlers.PlaceOrder)
		v1.GET("/orders", s.handlers.ListOrders)
		v1.GET("/orders/:id", s.handlers.GetOrder)

		v1.POST("/contact", s.handlers.SubmitContact)

		v1.GET("/cart", s.handlers.GetCart)
		v1.DELETE("/cart", s.handlers.ClearCart)
		v1.POST("/cart/items", s.handlers.AddToCart)
	}
}

// corsConfig lets the shop's static pages call the API. With no origins
// configured every origin is allowed.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.HeaderRequestID, handlers.HeaderCartSession},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start listens until Shutdown is called. It returns http.ErrServerClosed
// after a clean shutdown.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
