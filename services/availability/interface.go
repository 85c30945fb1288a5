package availability

import "bakehouse/models"

// AvailabilityService answers which delivery dates can accept new orders and
// lets the operator open or close dates by hand. It owns no persistent state:
// every answer is recomputed from the order and blocked-date stores, so a
// cancellation is visible on the very next read without any cache to keep
// coherent. Callers that need the higher-volume optimization (incremental
// per-date counters) can swap the implementation behind this interface
// without touching any consumer.
type AvailabilityService interface {
	// WindowAvailability returns one record per calendar day in
	// [start, end] inclusive, ascending, zero-order days included.
	WindowAvailability(start, end string) ([]models.DateAvailability, error)
	// DefaultWindow returns the standard booking window: today through
	// today plus the configured lookahead, in the bakery's time zone.
	DefaultWindow() (start, end string)
	// IsDateAdmissible reports whether a new order may be placed on the
	// date right now: not blocked, and active orders below the ceiling.
	IsDateAdmissible(date string) (bool, error)
	// BlockDate closes a date to new orders. Idempotent; a repeat call
	// replaces the reason. Existing orders on the date are untouched.
	BlockDate(date, reason string) error
	// UnblockDate reopens a date. No-op when the date was not blocked.
	UnblockDate(date string) error
}
