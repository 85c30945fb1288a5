package order

import "bakehouse/models"

// OrderService owns the order lifecycle: guarded submission, status
// transitions, and the admin listings.
type OrderService interface {
	// SubmitOrder validates the delivery date against the booking window and
	// the availability engine, then inserts the order as "pending" under the
	// store-layer capacity guard. The advisory pre-check gives the customer a
	// fast, friendly rejection; the guard ensures the ceiling holds even when
	// two submissions race for the last slot.
	SubmitOrder(input models.OrderInput) (*models.Order, error)
	GetOrder(id string) (*models.Order, error)
	// CancelOrder is the customer self-cancel path; email is the identity proof.
	CancelOrder(id, email string) (*models.Order, error)
	// Transition applies an admin lifecycle change, validated against the
	// status table.
	Transition(id string, next models.OrderStatus) (*models.Order, error)
	ListOrdersForDate(date string) ([]models.Order, error)
	ListOrders(start, end string, statuses []models.OrderStatus) ([]models.Order, error)
}
