package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for users, their address
// books and rider profiles.
type UserRepository interface {
	// Add persists a new user. A taken email is reported as errs.DuplicateKeyError.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists profile changes and appends addresses that are not stored yet.
	Update(ctx context.Context, aggregate *user.User) error

	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	GetByEmail(ctx context.Context, email string) (*user.User, error)

	// GetStuckOnDelivery returns riders marked ON_DELIVERY that have no parcel
	// OUT_FOR_DELIVERY as delivery rider.
	GetStuckOnDelivery(ctx context.Context) ([]*user.User, error)
}
