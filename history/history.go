// Package history keeps a record of every list creation attempt.
package history

import (
	"context"
	"time"
)

// Outcome is how a single check-then-create pass ended
type Outcome string

const (
	OutcomeExists          Outcome = "exists"
	OutcomeCreated         Outcome = "created"
	OutcomeServerError     Outcome = "server_error"
	OutcomeTransportFailed Outcome = "transport_failed"
)

// Attempt is one recorded pass
type Attempt struct {
	ID          int64     `json:"id"`
	ListName    string    `json:"listName"`
	Description string    `json:"description"`
	Outcome     Outcome   `json:"outcome"`
	Status      int       `json:"status"` // Status of the last call made, 0 when it never got a reply
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Store is the storage contract for attempts
type Store interface {
	Record(ctx context.Context, attempt *Attempt) error
	Recent(ctx context.Context, limit int) ([]*Attempt, error)
	Close() error
}
