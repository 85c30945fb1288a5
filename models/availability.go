package models

// DateStatus is the admission status of a single delivery date.
type DateStatus string

const (
	DateAvailable DateStatus = "available" // open for new orders
	DateFull      DateStatus = "full"      // active orders reached the capacity ceiling
	DateBlocked   DateStatus = "blocked"   // manually closed by the operator
)

// DateAvailability is the derived per-date record returned by the
// availability engine. It is never persisted; it is recomputed from the
// order and blocked-date stores on every query.
//
// IsBlocked is carried separately from Status so the admin console can tell
// "full by volume" apart from "closed by hand" even though both render as
// non-selectable.
type DateAvailability struct {
	Date       string     `json:"date"`       // "YYYY-MM-DD"
	Status     DateStatus `json:"status"`     // blocked > full > available
	OrderCount int        `json:"orderCount"` // active orders on this date
	IsBlocked  bool       `json:"isBlocked"`  // true iff an operator block exists
}
