package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/hub"
	"parcelhub/internal/core/domain/model/kernel"
)

// HubRepository defines the persistence contract for hubs.
// Hub names are unique; a clash is reported as errs.DuplicateKeyError.
type HubRepository interface {
	Add(ctx context.Context, aggregate *hub.Hub) error

	Update(ctx context.Context, aggregate *hub.Hub) error

	Get(ctx context.Context, id kernel.UUID) (*hub.Hub, error)
}
