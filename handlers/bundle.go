// File: bakehouse/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Availability endpoints
	GetWindowAvailability gin.HandlerFunc
	CheckDate             gin.HandlerFunc

	// Catalog endpoints
	ListProducts gin.HandlerFunc
	GetProduct   gin.HandlerFunc

	// Cart endpoints
	GetCart         gin.HandlerFunc
	AddCartItem     gin.HandlerFunc
	SetCartQuantity gin.HandlerFunc
	ClearCart       gin.HandlerFunc

	// Order endpoints
	SubmitOrder gin.HandlerFunc
	GetOrder    gin.HandlerFunc
	CancelOrder gin.HandlerFunc

	// Checkout endpoints
	CreateCheckoutSession gin.HandlerFunc
	StripeWebhook         gin.HandlerFunc

	// Admin endpoints
	AdminLogin         gin.HandlerFunc
	AdminBlockDate     gin.HandlerFunc
	AdminUnblockDate   gin.HandlerFunc
	AdminListForDate   gin.HandlerFunc
	AdminListOrders    gin.HandlerFunc
	AdminUpdateStatus  gin.HandlerFunc
	AdminCreateProduct gin.HandlerFunc
	AdminUpdateProduct gin.HandlerFunc
	AdminDeleteProduct gin.HandlerFunc
	AdminGetWindow     gin.HandlerFunc
}
