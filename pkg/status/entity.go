package status

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Check records that a client reached the service.
type Check struct {
	ID         uuid.UUID `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// Repository persists status checks.
type Repository interface {
	Create(ctx context.Context, c Check) error
	// List returns checks oldest first, skipping offset and returning at most limit.
	List(ctx context.Context, limit, offset int) ([]Check, error)
}
