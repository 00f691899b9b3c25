package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/fee"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"go.uber.org/zap"
)

// TrackingIDSource hands out candidate tracking ids. Uniqueness is checked by storage.
type TrackingIDSource interface {
	Next() (parcel.TrackingID, error)
}

// CreateParcelCommandHandler opens a new PENDING parcel for the acting sender.
//
// Example:
//
//	handler := NewCreateParcelCommandHandler(uowFactory, feeCache, services.NewTrackingIDGenerator(time.Now), time.Now, logger)
//	p, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("parcel creation failed: %w", err)
//	}
//	fmt.Printf("Parcel %s is waiting for approval", p.TrackingID())
type CreateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	feeCache   ports.FeeConfigCache
	trackingID TrackingIDSource
	clock      func() time.Time
	logger     *zap.Logger
}

// NewCreateParcelCommandHandler creates the handler. feeCache may be nil, in
// which case fee configs are always read from storage. Cache failures are
// logged as warnings and never fail the command.
func NewCreateParcelCommandHandler(
	uowFactory ParcelUoWFactory,
	feeCache ports.FeeConfigCache,
	trackingID TrackingIDSource,
	clock func() time.Time,
	logger *zap.Logger,
) CreateParcelCommandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
		feeCache:   feeCache,
		trackingID: trackingID,
		clock:      clock,
		logger:     logger,
	}
}

// Handle validates the request against the stored users and fee schedule and
// persists the parcel. A tracking id collision is retried once with a fresh id
// in a fresh transaction.
func (h *CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if cmd.Actor().Role() != kernel.RoleUser {
		return nil, errs.NewForbiddenErrorWithCause("create parcel", errors.New("only users can send parcels"))
	}

	p, err := h.create(ctx, cmd)
	if errors.Is(err, errs.ErrDuplicateKey) {
		p, err = h.create(ctx, cmd)
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (h *CreateParcelCommandHandler) create(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	sender, err := h.party(ctx, users, cmd.Actor().UserID(), "sender")
	if err != nil {
		return nil, err
	}

	receiver, err := h.party(ctx, users, cmd.ReceiverID(), "receiver")
	if err != nil {
		return nil, err
	}

	pickup, err := resolveAddress(sender, "pickupAddress", cmd.PickupAddress())
	if err != nil {
		return nil, err
	}

	delivery, err := resolveAddress(receiver, "deliveryAddress", cmd.DeliveryAddress())
	if err != nil {
		return nil, err
	}

	config, err := h.feeConfig(ctx, uow.FeeConfigRepository(), cmd.ParcelType())
	if err != nil {
		return nil, err
	}

	deliveryFee, err := config.CalculateFee(cmd.Weight())
	if err != nil {
		return nil, err
	}

	trackingID, err := h.trackingID.Next()
	if err != nil {
		return nil, fmt.Errorf("generate tracking id: %w", err)
	}

	p, err := parcel.NewParcel(parcel.Draft{
		ID:              kernel.NewUUID(),
		TrackingID:      trackingID,
		SenderID:        sender.ID(),
		ReceiverID:      receiver.ID(),
		Priority:        cmd.Priority(),
		PickupAddress:   pickup,
		DeliveryAddress: delivery,
		FeeConfigID:     config.ID(),
		Weight:          cmd.Weight(),
		Distance:        cmd.Distance(),
		DeliveryFee:     deliveryFee,
		CreatedAt:       h.clock(),
	})
	if err != nil {
		return nil, err
	}

	if err = uow.ParcelRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}

// party loads the sender or receiver. Both must exist and be reachable by phone.
func (h *CreateParcelCommandHandler) party(ctx context.Context, users ports.UserRepository, id kernel.UUID, role string) (*user.User, error) {
	u, err := users.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewValueIsInvalidErrorWithCause(role, fmt.Errorf("%s does not exist", role))
	}
	if err != nil {
		return nil, err
	}

	if !u.HasPhone() {
		return nil, errs.NewValueIsRequiredErrorWithCause(role+" phone", fmt.Errorf("%s phone number is required", role))
	}

	return u, nil
}

// feeConfig reads through the cache. Cache failures fall back to storage.
func (h *CreateParcelCommandHandler) feeConfig(ctx context.Context, repo ports.FeeConfigRepository, parcelType fee.ParcelType) (*fee.FeeConfig, error) {
	if h.feeCache != nil {
		config, ok, err := h.feeCache.Get(ctx, parcelType)
		if err != nil {
			h.logger.Warn("fee config cache read failed", zap.Error(err), zap.String("parcel_type", string(parcelType)))
		} else if ok {
			return config, nil
		}
	}

	config, err := repo.GetByParcelType(ctx, parcelType)
	if err != nil {
		return nil, err
	}

	if h.feeCache != nil {
		if err = h.feeCache.Set(ctx, config); err != nil {
			h.logger.Warn("fee config cache write failed", zap.Error(err), zap.String("parcel_type", string(parcelType)))
		}
	}

	return config, nil
}
