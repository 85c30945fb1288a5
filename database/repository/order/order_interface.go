package orderRepo

import (
	"errors"

	"bakehouse/models"
)

// ErrNotFound is returned when no order matches the given identifier.
var ErrNotFound = errors.New("order not found")

// ErrCapacityExceeded is returned by the guarded write operations when the
// transactional recount finds the delivery date already at its ceiling. It is
// the store-layer backstop for the advisory admissibility pre-check: two
// customers can both pass the pre-check for the last slot, but only one
// guarded write commits.
var ErrCapacityExceeded = errors.New("delivery date capacity exceeded")

// ErrNotAwaitingPayment is returned when a payment confirmation targets an
// order that is not in pending_payment (already confirmed, expired, or
// cancelled).
var ErrNotAwaitingPayment = errors.New("order is not awaiting payment")

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// Create inserts the order without a capacity guard. Only valid for
	// statuses that do not count toward capacity (pending_payment).
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByCheckoutSession(sessionID string) (*models.Order, error)
	UpdateStatus(id string, status models.OrderStatus) error

	// GetActiveSummariesByRange returns the delivery date and status of every
	// capacity-counting order with delivery_date in [start, end] inclusive.
	GetActiveSummariesByRange(start, end string) ([]models.OrderSummary, error)
	// CountActiveByDate counts capacity-counting orders on a single date.
	CountActiveByDate(date string) (int64, error)
	ListByDate(date string) ([]models.Order, error)
	ListByRange(start, end string, statuses []models.OrderStatus) ([]models.Order, error)

	// InsertIfCapacityAvailable atomically recounts the active orders on the
	// order's delivery date and inserts iff the count is below limit.
	// Returns ErrCapacityExceeded otherwise.
	InsertIfCapacityAvailable(order *models.Order, limit int) error
	// ConfirmPaymentIfCapacityAvailable atomically moves a pending_payment
	// order to pending iff its delivery date still has a free slot.
	// Returns ErrCapacityExceeded when the date filled up while the customer
	// was paying.
	ConfirmPaymentIfCapacityAvailable(id string, limit int) (*models.Order, error)
}
