package hubrepo

import (
	"context"
	"errors"

	"parcelhub/internal/adapters/out/postgres/pgerrs"
	"parcelhub/internal/core/domain/model/hub"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormHubRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormHubRepository(db *gorm.DB, tracker aggregateTracker) *GormHubRepository {
	return &GormHubRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormHubRepository) Add(ctx context.Context, aggregate *hub.Hub) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsDuplicateKey(err) {
			return errs.NewDuplicateKeyErrorWithCause("hub name", dto.Name, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormHubRepository) Update(ctx context.Context, aggregate *hub.Hub) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&HubDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		if pgerrs.IsDuplicateKey(result.Error) {
			return errs.NewDuplicateKeyErrorWithCause("hub name", dto.Name, result.Error)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("hub", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormHubRepository) Get(ctx context.Context, id kernel.UUID) (*hub.Hub, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HubDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("hub", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
