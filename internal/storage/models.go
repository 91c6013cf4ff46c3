package storage

import "time"

// Entry is one row of the key-value table.
type Entry struct {
	Key       string
	Value     []byte // JSON document
	UpdatedAt time.Time
}
