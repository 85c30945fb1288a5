package models

import "time"

// BlockedDate marks a delivery date the operator has manually closed to new
// orders. At most one record exists per date; re-blocking replaces the reason.
type BlockedDate struct {
	Date      string    `bson:"date" json:"date"`             // Date in "YYYY-MM-DD" format, unique
	Reason    string    `bson:"reason" json:"reason"`         // Operator-supplied reason (e.g., "Holiday"), optional
	CreatedAt time.Time `bson:"created_at" json:"created_at"` // Timestamp when the block was first created
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"` // Timestamp of the latest block/reason update
}
