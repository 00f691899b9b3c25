package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
// Parcels are never deleted; their tracking log is append-only.
type ParcelRepository interface {
	// Add persists a new parcel together with its initial tracking log.
	// A tracking id collision is reported as errs.DuplicateKeyError.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists the parcel only if its stored status still equals expected,
	// then appends the tracking log entries added since it was loaded.
	// A lost race is reported as errs.ConflictError.
	Update(ctx context.Context, aggregate *parcel.Parcel, expected parcel.Status) error

	// Get retrieves a parcel with its full tracking log.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingID retrieves a parcel by its public tracking id.
	GetByTrackingID(ctx context.Context, trackingID parcel.TrackingID) (*parcel.Parcel, error)

	// CountOutForDeliveryByRider counts the parcels the rider is delivering right now,
	// leaving out the parcel with id exclude.
	CountOutForDeliveryByRider(ctx context.Context, riderID kernel.UUID, exclude kernel.UUID) (int64, error)
}
