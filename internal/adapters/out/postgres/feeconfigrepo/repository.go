package feeconfigrepo

import (
	"context"
	"errors"

	"parcelhub/internal/adapters/out/postgres/pgerrs"
	"parcelhub/internal/core/domain/model/fee"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormFeeConfigRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormFeeConfigRepository(db *gorm.DB, tracker aggregateTracker) *GormFeeConfigRepository {
	return &GormFeeConfigRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormFeeConfigRepository) Add(ctx context.Context, aggregate *fee.FeeConfig) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsDuplicateKey(err) {
			return errs.NewDuplicateKeyErrorWithCause("parcelType", dto.ParcelType, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormFeeConfigRepository) Get(ctx context.Context, id kernel.UUID) (*fee.FeeConfig, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto FeeConfigDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("feeConfig", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormFeeConfigRepository) GetByParcelType(ctx context.Context, parcelType fee.ParcelType) (*fee.FeeConfig, error) {
	if err := parcelType.Validate(); err != nil {
		return nil, err
	}

	var dto FeeConfigDTO
	if err := r.db.WithContext(ctx).First(&dto, "parcel_type = ?", parcelType.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("feeConfig", parcelType.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
