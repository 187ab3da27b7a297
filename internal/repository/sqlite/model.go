package sqlite

import "time"

// Record is a single keyed blob in the records table.
type Record struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}
