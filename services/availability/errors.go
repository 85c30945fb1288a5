package availability

import "errors"

var (
	// ErrInvalidDate rejects a malformed date string before any store call.
	ErrInvalidDate = errors.New("invalid date: expected YYYY-MM-DD")
	// ErrInvalidWindow rejects a window whose end precedes its start.
	ErrInvalidWindow = errors.New("invalid window: end date precedes start date")
)
