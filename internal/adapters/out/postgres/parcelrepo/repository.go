package parcelrepo

import (
	"context"
	"errors"

	"parcelhub/internal/adapters/out/postgres/pgerrs"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParcelRepository stores parcels in the parcels table and their history
// in parcel_tracking_logs. Log rows are only ever inserted.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsDuplicateKey(err) {
			return errs.NewDuplicateKeyErrorWithCause("trackingId", dto.TrackingID, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the parcel row guarded by the expected prior status and
// appends the log entries the aggregate gained since it was loaded.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel, expected parcel.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Select("*").
		Omit("id", "tracking_id", "sender_id", "receiver_id", "created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missingOrConflict(ctx, aggregate.ID(), expected)
	}

	persisted := len(dto.TrackingLogs) - len(aggregate.NewTrackingLogs())
	if fresh := dto.TrackingLogs[persisted:]; len(fresh) > 0 {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&fresh).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.withLogs(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormParcelRepository) GetByTrackingID(ctx context.Context, trackingID parcel.TrackingID) (*parcel.Parcel, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.withLogs(ctx).First(&dto, "tracking_id = ?", trackingID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", trackingID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormParcelRepository) CountOutForDeliveryByRider(
	ctx context.Context,
	riderID kernel.UUID,
	exclude kernel.UUID,
) (int64, error) {
	if err := errors.Join(riderID.Validate(), exclude.Validate()); err != nil {
		return 0, err
	}

	var n int64
	err := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("delivery_rider_id = ? AND status = ? AND id <> ?", riderID.Bytes(), int(parcel.OutForDelivery), exclude.Bytes()).
		Count(&n).Error
	return n, err
}

func (r *GormParcelRepository) withLogs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("TrackingLogs", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (r *GormParcelRepository) missingOrConflict(ctx context.Context, id kernel.UUID, expected parcel.Status) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("id = ?", id.Bytes()).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return errs.NewObjectNotFoundError("parcel", id.String())
	}
	return errs.NewConflictError("status", expected)
}
