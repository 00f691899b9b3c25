package postgres

import (
	"context"

	"parcelhub/internal/adapters/out/postgres/feeconfigrepo"
	"parcelhub/internal/adapters/out/postgres/hubrepo"
	"parcelhub/internal/adapters/out/postgres/parcelrepo"
	"parcelhub/internal/adapters/out/postgres/userrepo"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory produces GORM-backed units of work sharing one
// connection pool and one event publisher.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.ParcelEventPublisher
	logger    *zap.Logger
}

// NewGormUnitOfWorkFactory creates a factory. A nil publisher disables
// post-commit events.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.ParcelEventPublisher, logger *zap.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormUnitOfWorkFactory{db: db, publisher: publisher, logger: logger}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork implements UnitOfWork on a single GORM transaction.
// Repositories report every aggregate they write; after a successful commit
// the new tracking log entries of tracked parcels are published.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.ParcelEventPublisher
	logger            *zap.Logger
	trackedAggregates []trackedAggregate
}

func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publishTracked(ctx)
	return nil
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) HubRepository() ports.HubRepository {
	return hubrepo.NewGormHubRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) FeeConfigRepository() ports.FeeConfigRepository {
	return feeconfigrepo.NewGormFeeConfigRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// publishTracked never fails the caller: the data is already committed.
func (uow *GormUnitOfWork) publishTracked(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	for _, t := range tracked {
		p, ok := t.Aggregate.(*parcel.Parcel)
		if !ok {
			continue
		}

		fresh := p.NewTrackingLogs()
		p.MarkPersisted()
		if uow.publisher == nil {
			continue
		}

		for _, l := range fresh {
			event := ports.ParcelStatusChanged{
				ParcelID:    p.ID(),
				TrackingID:  p.TrackingID().String(),
				Status:      l.Status().String(),
				UpdatedBy:   l.UpdatedBy(),
				Description: l.Description(),
				At:          l.At(),
			}
			if err := uow.publisher.Publish(ctx, event); err != nil {
				uow.logger.Warn("parcel event not published",
					zap.String("trackingId", event.TrackingID),
					zap.String("status", event.Status),
					zap.Error(err),
				)
			}
		}
	}
}
