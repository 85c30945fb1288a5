package order

import (
	"errors"

	orderRepo "bakehouse/database/repository/order"
)

var (
	// ErrOrderNotFound is surfaced when no order matches the identifier.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDateOutsideWindow rejects delivery dates in the past, today, or
	// beyond the booking lookahead. Same-day orders are never accepted: the
	// ovens are already committed by the time the storefront opens.
	ErrDateOutsideWindow = errors.New("delivery date is outside the booking window")
	// ErrDateUnavailable rejects a date the engine reports as blocked or full.
	// The customer should be re-offered the calendar, not retried.
	ErrDateUnavailable = errors.New("delivery date is not available")
	// ErrCapacityExceeded means the advisory check passed but the guarded
	// insert lost the race for the last slot.
	ErrCapacityExceeded = orderRepo.ErrCapacityExceeded
	// ErrInvalidTransition rejects a lifecycle change the status table forbids.
	ErrInvalidTransition = errors.New("invalid order status transition")
	// ErrNotOrderOwner rejects a self-cancel whose email does not match the
	// order's customer email.
	ErrNotOrderOwner = errors.New("email does not match order")
	// ErrEmptyOrder rejects submissions with no items.
	ErrEmptyOrder = errors.New("order has no items")
)
