package models

// OrderInput is the payload for the pay-at-pickup submission path. The order
// is inserted directly with status "pending" under the capacity guard.
type OrderInput struct {
	CustomerName    string      `json:"customer_name" binding:"required"`
	CustomerEmail   string      `json:"customer_email" binding:"required,email"`
	CustomerPhone   string      `json:"customer_phone"`
	DeliveryAddress string      `json:"delivery_address" binding:"required"`
	DeliveryDate    string      `json:"delivery_date" binding:"required"` // "YYYY-MM-DD"
	Items           []OrderItem `json:"items" binding:"required"`
	Notes           string      `json:"notes"`
}

// CheckoutInput is the payload for the card checkout path: the cart session
// to charge plus the customer and delivery details. The order is inserted as
// "pending_payment" and only consumes capacity once the payment processor
// reports success.
type CheckoutInput struct {
	CartSessionID   string `json:"cart_session_id" binding:"required"`
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerEmail   string `json:"customer_email" binding:"required,email"`
	CustomerPhone   string `json:"customer_phone"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	DeliveryDate    string `json:"delivery_date" binding:"required"` // "YYYY-MM-DD"
	Notes           string `json:"notes"`
	SuccessURL      string `json:"success_url" binding:"required"`
	CancelURL       string `json:"cancel_url" binding:"required"`
}
