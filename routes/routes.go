package routes

import (
	"net/http"
	"time"

	"bakehouse/handlers"
	"bakehouse/middleware"
	"bakehouse/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterStorefrontRoutes registers the public ordering endpoints.
func RegisterStorefrontRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		// Delivery calendar.
		api.GET("/availability", hb.GetWindowAvailability)
		api.GET("/availability/:date", hb.CheckDate)

		// Catalog.
		api.GET("/products", hb.ListProducts)
		api.GET("/products/:id", hb.GetProduct)

		// Cart.
		api.GET("/cart", hb.GetCart)
		api.POST("/cart/items", hb.AddCartItem)
		api.PATCH("/cart/items", hb.SetCartQuantity)
		api.DELETE("/cart", hb.ClearCart)

		// Orders.
		api.POST("/orders", hb.SubmitOrder)
		api.GET("/orders/:id", hb.GetOrder)
		api.POST("/orders/:id/cancel", hb.CancelOrder)

		// Card checkout.
		api.POST("/checkout", hb.CreateCheckoutSession)
	}

	// The payment processor calls this outside the rate-limited API surface.
	r.POST("/webhooks/stripe", hb.StripeWebhook)
}

// RegisterAdminRoutes registers the capacity console endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.POST("/login", hb.AdminLogin)

		// Protected routes (require operator session)
		api.Use(middleware.AdminAuthMiddleware())
		api.GET("/availability", hb.AdminGetWindow)
		api.POST("/blocked-dates", hb.AdminBlockDate)
		api.DELETE("/blocked-dates/:date", hb.AdminUnblockDate)
		api.GET("/orders", hb.AdminListOrders)
		api.GET("/orders/date/:date", hb.AdminListForDate)
		api.PATCH("/orders/:id/status", hb.AdminUpdateStatus)
		api.POST("/products", hb.AdminCreateProduct)
		api.PUT("/products/:id", hb.AdminUpdateProduct)
		api.DELETE("/products/:id", hb.AdminDeleteProduct)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes wires global middleware and all route groups.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Cart-Session"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterStorefrontRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
