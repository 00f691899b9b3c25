package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/fee"
	"parcelhub/internal/core/domain/model/kernel"
)

// FeeConfigRepository defines the persistence contract for the fee schedule.
// There is at most one config per parcel type.
type FeeConfigRepository interface {
	// Add persists a new config. A second config for the same parcel type is
	// reported as errs.DuplicateKeyError.
	Add(ctx context.Context, aggregate *fee.FeeConfig) error

	Get(ctx context.Context, id kernel.UUID) (*fee.FeeConfig, error)

	GetByParcelType(ctx context.Context, parcelType fee.ParcelType) (*fee.FeeConfig, error)
}

// FeeConfigCache is a read-through cache in front of FeeConfigRepository.
// A miss is (nil, false, nil); errors are infrastructure failures only.
type FeeConfigCache interface {
	Get(ctx context.Context, parcelType fee.ParcelType) (*fee.FeeConfig, bool, error)

	Set(ctx context.Context, config *fee.FeeConfig) error

	Invalidate(ctx context.Context, parcelType fee.ParcelType) error
}
