// File: bakehouse/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bakehouse/config"
	"bakehouse/database"
	blockedRepoPkg "bakehouse/database/repository/blocked"
	orderRepoPkg "bakehouse/database/repository/order"
	productRepoPkg "bakehouse/database/repository/product"
	"bakehouse/handlers"
	"bakehouse/middleware"
	"bakehouse/routes"
	"bakehouse/services/admin"
	"bakehouse/services/availability"
	"bakehouse/services/cart"
	"bakehouse/services/catalog"
	"bakehouse/services/checkout"
	"bakehouse/services/order"
	"bakehouse/utils"
	"bakehouse/workers"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	loc, err := time.LoadLocation(config.AppConfig.BakeryTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid BAKERY_TIMEZONE %q: %v", config.AppConfig.BakeryTimezone, err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	orderRepo := orderRepoPkg.NewMongoOrderRepo()
	blockedRepo := blockedRepoPkg.NewMongoBlockedDateRepo()
	productRepo := productRepoPkg.NewMongoProductRepo()

	// services.
	policy := availability.Policy{
		CapacityPerDay: config.AppConfig.CapacityPerDay,
		WindowDays:     config.AppConfig.BookingWindowDays,
	}
	availabilityEngine := availability.NewDefaultEngine(orderRepo, blockedRepo, policy, loc)

	orderService := order.NewDefaultOrderService(orderRepo, availabilityEngine, policy, config.AppConfig.Currency, loc)
	catalogService := &catalog.DefaultCatalogService{Repo: productRepo}

	cartStore := cart.NewRedisCartStore(utils.GetCartCacheClient(), time.Duration(config.AppConfig.CartTTLMin)*time.Minute)
	cartService := &cart.DefaultCartService{Store: cartStore, Products: productRepo}

	expiryScheduler := workers.NewAsynqExpiryScheduler()
	checkoutService := &checkout.DefaultCheckoutService{
		Orders:       orderRepo,
		Carts:        cartService,
		Availability: availabilityEngine,
		Dates:        orderService,
		Gateway:      &checkout.StripeGateway{},
		Expiry:       expiryScheduler,
		Policy:       policy,
		Currency:     config.AppConfig.Currency,
		PendingTTL:   time.Duration(config.AppConfig.PendingPaymentTTLMin) * time.Minute,
	}
	adminService := &admin.DefaultAdminService{}

	// Background workers and monitors.
	workers.InitExpiryWorker(orderRepo)
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient(), utils.GetCartCacheClient()}, database.MongoClient)

	// handlers.
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityEngine)
	orderHandler := handlers.NewOrderHandler(orderService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	adminHandler := handlers.NewAdminHandler(adminService, availabilityEngine, orderService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Availability endpoints.
		GetWindowAvailability: availabilityHandler.GetWindowAvailability,
		CheckDate:             availabilityHandler.CheckDate,

		// Catalog endpoints.
		ListProducts: catalogHandler.ListProducts,
		GetProduct:   catalogHandler.GetProduct,

		// Cart endpoints.
		GetCart:         cartHandler.GetCart,
		AddCartItem:     cartHandler.AddItem,
		SetCartQuantity: cartHandler.SetQuantity,
		ClearCart:       cartHandler.ClearCart,

		// Order endpoints.
		SubmitOrder: orderHandler.SubmitOrder,
		GetOrder:    orderHandler.GetOrder,
		CancelOrder: orderHandler.CancelOrder,

		// Checkout endpoints.
		CreateCheckoutSession: checkoutHandler.CreateSession,
		StripeWebhook:         checkoutHandler.StripeWebhook,

		// Admin endpoints.
		AdminLogin:         adminHandler.Login,
		AdminBlockDate:     adminHandler.BlockDate,
		AdminUnblockDate:   adminHandler.UnblockDate,
		AdminListForDate:   adminHandler.ListOrdersForDate,
		AdminListOrders:    adminHandler.ListOrders,
		AdminUpdateStatus:  adminHandler.UpdateOrderStatus,
		AdminCreateProduct: catalogHandler.CreateProduct,
		AdminUpdateProduct: catalogHandler.UpdateProduct,
		AdminDeleteProduct: catalogHandler.DeleteProduct,
		AdminGetWindow:     availabilityHandler.GetWindowAvailability,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
