// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/baankanom/bakery-backend/internal/config"
	"github.com/baankanom/bakery-backend/internal/domain/cart"
	"github.com/baankanom/bakery-backend/internal/domain/checkout"
	"github.com/baankanom/bakery-backend/internal/domain/order"
	"github.com/baankanom/bakery-backend/internal/domain/pricing"
	"github.com/baankanom/bakery-backend/internal/domain/product"
	"github.com/baankanom/bakery-backend/internal/domain/user"
	"github.com/baankanom/bakery-backend/internal/infrastructure/storage"
	"github.com/baankanom/bakery-backend/internal/interfaces/http/handlers"
	"github.com/baankanom/bakery-backend/internal/interfaces/http/middleware"
	"github.com/baankanom/bakery-backend/internal/interfaces/http/routes"
	"github.com/baankanom/bakery-backend/internal/pkg/auth"
	"github.com/baankanom/bakery-backend/internal/pkg/email"
	"github.com/baankanom/bakery-backend/internal/pkg/pdf"
	"github.com/baankanom/bakery-backend/internal/pkg/realtime"
)

// Server represents the HTTP server
type Server struct {
	config      *config.Config
	gin         *gin.Engine
	httpServer  *http.Server
	db          *gorm.DB
	redisClient *redis.Client
	store       *storage.LocalStore
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	return &Server{
		config:      cfg,
		db:          db,
		redisClient: redisClient,
		store:       storage.NewLocalStore(cfg),
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	s.gin = gin.New()

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:        ":" + s.config.Server.Port,
		Handler:     s.gin,
		ReadTimeout: s.config.Server.ReadTimeout,
		IdleTimeout: s.config.Server.IdleTimeout,
		// No WriteTimeout: the cart count stream holds its response open
		// indefinitely. Per-request deadlines come from the timeout
		// middleware on the non-streaming route groups.
	}

	log.Printf("🚀 HTTP Server starting on port %s", s.config.Server.Port)
	log.Printf("🌐 API Base URL: http://localhost:%s/api/v1", s.config.Server.Port)
	log.Printf("📊 Health Check: http://localhost:%s/health", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	log.Println("🛑 Shutting down HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	log.Println("✅ HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	logger := middleware.NewLogger(s.config)

	s.gin.Use(gin.Recovery())
	s.gin.Use(middleware.Logger(logger))
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.CORS(s.config))
	s.gin.Use(middleware.SecurityHeaders())
	s.gin.Use(middleware.RateLimit(s.config, s.redisClient))
	s.gin.Use(middleware.RequestSizeLimit(s.config.Upload.MaxSize))
}

// setupRoutes configures all routes for the server
func (s *Server) setupRoutes() {
	s.gin.GET("/health", s.healthCheck)
	s.gin.GET("/ready", s.readinessCheck)

	// Stored objects (product images, avatars, slips) are served from disk
	s.gin.Static(s.config.Storage.PublicBaseURL, s.config.Storage.LocalPath)

	apiV1 := s.gin.Group("/api/v1")
	routes.SetupRoutes(apiV1, s.config, s.buildHandlers())
}

// buildHandlers wires domain services into route handlers
func (s *Server) buildHandlers() *routes.Handlers {
	logger := middleware.NewLogger(s.config)

	jwtManager := auth.NewJWTManager(s.config)
	passwords := auth.NewPasswordManager(s.config)
	hub := realtime.NewHub(s.redisClient, logger)

	registry := pricing.NewRegistry()
	shippingCalc := pricing.NewShippingCalculator(
		s.config.Pricing.ShippingBaseFee,
		s.config.Pricing.ShippingPerKmFee,
	)
	aggregator := pricing.NewAggregator(registry, shippingCalc)

	userService := user.NewService(s.db, jwtManager, passwords, s.store, s.config.Storage.AvatarBucket)
	productService := product.NewService(s.db, s.store, s.config.Storage.ProductBucket)
	cartService := cart.NewService(s.db, productService, hub)
	checkoutService := checkout.NewService(s.redisClient, registry, aggregator, cartService)

	var mailer order.ConfirmationMailer
	if s.config.Email.Enabled {
		mailer = email.NewService(s.config)
	}

	orderService := order.NewService(
		s.db,
		s.store,
		s.config.Storage.SlipBucket,
		cartService,
		checkoutService,
		hub,
		mailer,
		logger,
	)
	pdfService := pdf.NewService(s.config)

	return &routes.Handlers{
		Auth:      handlers.NewAuthHandler(userService),
		Product:   handlers.NewProductHandler(productService),
		Cart:      handlers.NewCartHandler(cartService, hub),
		Checkout:  handlers.NewCheckoutHandler(checkoutService),
		Order:     handlers.NewOrderHandler(orderService, pdfService),
		Promotion: handlers.NewPromotionHandler(registry),
	}
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database connection error",
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database ping failed",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "redis ping failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}

// readinessCheck handles readiness check requests
func (s *Server) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
	})
}
