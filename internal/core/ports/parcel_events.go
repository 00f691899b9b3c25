package ports

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
)

// ParcelStatusChanged is emitted once per tracking log entry, after the
// transaction that wrote it has committed.
type ParcelStatusChanged struct {
	ParcelID    kernel.UUID
	TrackingID  string
	Status      string
	UpdatedBy   kernel.UUID
	Description string
	At          time.Time
}

// ParcelEventPublisher delivers committed parcel events to live subscribers.
type ParcelEventPublisher interface {
	Publish(ctx context.Context, event ParcelStatusChanged) error
}
