// internal/interfaces/http/routes/routes.go
package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/baankanom/bakery-backend/internal/config"
	"github.com/baankanom/bakery-backend/internal/interfaces/http/handlers"
	"github.com/baankanom/bakery-backend/internal/interfaces/http/middleware"
)

// requestTimeout bounds every request except the SSE stream, which holds
// its response open until the client disconnects
const requestTimeout = 30 * time.Second

// Handlers bundles every route handler the API mounts
type Handlers struct {
	Auth      *handlers.AuthHandler
	Product   *handlers.ProductHandler
	Cart      *handlers.CartHandler
	Checkout  *handlers.CheckoutHandler
	Order     *handlers.OrderHandler
	Promotion *handlers.PromotionHandler
}

// SetupRoutes mounts all API routes on the given group. The cart count
// stream is mounted outside the timed group so the request timeout never
// cuts a live stream and writes into its body.
func SetupRoutes(rg *gin.RouterGroup, cfg *config.Config, h *Handlers) {
	timed := rg.Group("", middleware.Timeout(requestTimeout))
	setupAuthRoutes(timed, cfg, h)
	setupProductRoutes(timed, h)
	setupCartRoutes(timed, cfg, h)
	setupCheckoutRoutes(timed, cfg, h)
	setupOrderRoutes(timed, cfg, h)
	setupAdminRoutes(timed, cfg, h)

	setupStreamRoutes(rg, cfg, h)
}

func setupAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, h *Handlers) {
	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", h.Auth.GetProfile)
			protected.PUT("/profile", h.Auth.UpdateProfile)
		}
	}
}

func setupProductRoutes(rg *gin.RouterGroup, h *Handlers) {
	products := rg.Group("/products")
	{
		products.GET("", h.Product.GetProducts)
		products.GET("/:id", h.Product.GetProduct)
	}

	rg.GET("/promotions", h.Promotion.GetPromotions)
}

func setupCartRoutes(rg *gin.RouterGroup, cfg *config.Config, h *Handlers) {
	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(cfg))
	{
		cart.GET("", h.Cart.GetCart)
		cart.DELETE("", h.Cart.ClearCart)
		cart.POST("/items", h.Cart.AddToCart)
		cart.PUT("/items/:id", h.Cart.UpdateCartItem)
		cart.DELETE("/items/:id", h.Cart.RemoveCartItem)
		cart.GET("/count", h.Cart.GetCartCount)
	}
}

func setupStreamRoutes(rg *gin.RouterGroup, cfg *config.Config, h *Handlers) {
	stream := rg.Group("/cart")
	stream.Use(middleware.AuthMiddleware(cfg))
	{
		stream.GET("/count/stream", h.Cart.StreamCartCount)
	}
}

func setupCheckoutRoutes(rg *gin.RouterGroup, cfg *config.Config, h *Handlers) {
	checkout := rg.Group("/checkout")
	checkout.Use(middleware.AuthMiddleware(cfg))
	{
		checkout.GET("", h.Checkout.GetSummary)
		checkout.PUT("/recipient", h.Checkout.SetRecipient)
		checkout.PUT("/distance", h.Checkout.SetDistance)
		checkout.POST("/coupon", h.Checkout.ApplyCoupon)
		checkout.DELETE("/coupon", h.Checkout.RemoveCoupon)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, cfg *config.Config, h *Handlers) {
	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.POST("", h.Order.SubmitOrder)
		orders.GET("", h.Order.GetOrders)
		orders.GET("/:id", h.Order.GetOrder)
		orders.GET("/:id/receipt", h.Order.GetReceipt)
	}
}

func setupAdminRoutes(rg *gin.RouterGroup, cfg *config.Config, h *Handlers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.GET("/products", h.Product.AdminList)
		admin.POST("/products", h.Product.CreateProduct)
		admin.PUT("/products/:id", h.Product.UpdateProduct)
		admin.DELETE("/products/:id", h.Product.DeleteProduct)

		admin.GET("/orders", h.Order.AdminListOrders)
		admin.GET("/orders/:id", h.Order.AdminGetOrder)
		admin.PUT("/orders/:id/status", h.Order.AdminUpdateOrderStatus)
	}
}
