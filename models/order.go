package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPendingPayment OrderStatus = "pending_payment" // created via card checkout, awaiting the payment processor
	StatusPending        OrderStatus = "pending"         // awaiting bakery confirmation (pay-at-pickup path, or payment received)
	StatusConfirmed      OrderStatus = "confirmed"       // accepted by the bakery
	StatusCompleted      OrderStatus = "completed"       // delivered
	StatusCancelled      OrderStatus = "cancelled"       // cancelled by customer or admin
)

// ActiveStatuses is the single source of truth for which statuses consume
// delivery-date capacity. Both the window projection and the admission check
// must filter with exactly this set.
func ActiveStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusConfirmed, StatusCompleted}
}

// CountsTowardCapacity reports whether an order in this status occupies a
// slot on its delivery date.
func (s OrderStatus) CountsTowardCapacity() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo validates a lifecycle transition. Cancellation is allowed
// from any non-terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	switch s {
	case StatusPendingPayment:
		return next == StatusPending
	case StatusPending:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusCompleted
	}
	return false
}

// IsValid reports whether s is one of the known statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is one product line on an order.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"product_id"` // Catalog product reference
	Name      string  `bson:"name" json:"name"`             // Product name as sold (denormalized)
	UnitPrice float64 `bson:"unit_price" json:"unit_price"` // Price per unit at time of order
	Quantity  int     `bson:"quantity" json:"quantity"`     // Units ordered
}

// Order is a customer order for delivery on a specific calendar date.
type Order struct {
	ID                string      `bson:"id" json:"id"`                                                       // Unique order identifier (UUID)
	CustomerName      string      `bson:"customer_name" json:"customer_name"`                                 // Customer display name
	CustomerEmail     string      `bson:"customer_email" json:"customer_email"`                               // Contact email, also used as identity proof for self-cancel
	CustomerPhone     string      `bson:"customer_phone,omitempty" json:"customer_phone,omitempty"`           // Optional contact phone
	DeliveryAddress   string      `bson:"delivery_address" json:"delivery_address"`                           // Drop-off address
	Items             []OrderItem `bson:"items" json:"items"`                                                 // Ordered products
	Notes             string      `bson:"notes,omitempty" json:"notes,omitempty"`                             // Free-text customer notes
	DeliveryDate      string      `bson:"delivery_date" json:"delivery_date"`                                 // Delivery date in "YYYY-MM-DD" format, immutable after creation
	Status            OrderStatus `bson:"status" json:"status"`                                               // Lifecycle status
	Total             float64     `bson:"total" json:"total"`                                                 // Order total
	Currency          string      `bson:"currency" json:"currency"`                                           // ISO currency code
	CheckoutSessionID string      `bson:"checkout_session_id,omitempty" json:"checkout_session_id,omitempty"` // Payment processor session, card path only
	CreatedAt         time.Time   `bson:"created_at" json:"created_at"`                                       // Timestamp when order was created
	UpdatedAt         time.Time   `bson:"updated_at" json:"updated_at"`                                       // Timestamp of last status change
}

// OrderSummary is the projection the availability engine works with.
type OrderSummary struct {
	DeliveryDate string      `bson:"delivery_date" json:"delivery_date"`
	Status       OrderStatus `bson:"status" json:"status"`
}
