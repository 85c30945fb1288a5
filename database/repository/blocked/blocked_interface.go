package blockedRepo

import "bakehouse/models"

// BlockedDateRepository defines persistence operations for operator date blocks.
type BlockedDateRepository interface {
	// Upsert creates or replaces the block record for a date. Re-blocking an
	// already-blocked date overwrites the reason.
	Upsert(date, reason string) error
	// Delete removes the block for a date. Deleting a date that was never
	// blocked is a no-op, not an error.
	Delete(date string) error
	// GetByDate returns the block for a date, or nil when the date is not blocked.
	GetByDate(date string) (*models.BlockedDate, error)
	// GetByRange returns all blocks with date in [start, end] inclusive.
	GetByRange(start, end string) ([]models.BlockedDate, error)
}
