package commands

import (
	"context"
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

// UpdateParcelCommandHandler applies status changes and assignments to a parcel.
// Everything is validated in memory by services.ParcelLifecycle; the parcel and
// any rider whose availability changed are written in one transaction.
type UpdateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	lifecycle  services.ParcelLifecycle
	clock      func() time.Time
}

func NewUpdateParcelCommandHandler(uowFactory ParcelUoWFactory, clock func() time.Time) UpdateParcelCommandHandler {
	return UpdateParcelCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  services.NewParcelLifecycle(),
		clock:      clock,
	}
}

// Handle returns the updated parcel. A concurrent update of the same parcel
// that committed first makes this one fail with errs.ConflictError.
func (h *UpdateParcelCommandHandler) Handle(ctx context.Context, cmd UpdateParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcels := uow.ParcelRepository()
	p, err := parcels.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}
	expected := p.Status()

	update := services.ParcelUpdate{
		Actor:   cmd.Actor(),
		Status:  cmd.Status(),
		Remarks: cmd.Remarks(),
	}

	users := uow.UserRepository()
	if cmd.HasAssignments() {
		if err = h.resolveAssignments(ctx, uow.HubRepository(), users, cmd, &update); err != nil {
			return nil, err
		}
	}

	if err = h.loadRiders(ctx, parcels, users, p, &update); err != nil {
		return nil, err
	}

	outcome, err := h.lifecycle.Apply(p, update, h.clock())
	if err != nil {
		return nil, err
	}

	if err = parcels.Update(ctx, p, expected); err != nil {
		return nil, err
	}

	for _, rider := range outcome.Riders {
		if err = users.Update(ctx, rider); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}

// resolveAssignments looks up the hubs and riders named in the request. Ids
// that do not resolve are passed on with a nil target so the lifecycle can
// report them. Non-admins are rejected by the lifecycle before any lookup
// would matter, so their ids are not resolved at all.
func (h *UpdateParcelCommandHandler) resolveAssignments(
	ctx context.Context,
	hubs ports.HubRepository,
	users ports.UserRepository,
	cmd UpdateParcelCommand,
	update *services.ParcelUpdate,
) error {
	resolve := cmd.Actor().IsAdmin()

	hubRef := func(id *kernel.UUID) (*services.HubRef, error) {
		if id == nil {
			return nil, nil
		}
		ref := &services.HubRef{ID: *id}
		if !resolve {
			return ref, nil
		}
		found, err := hubs.Get(ctx, *id)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ref, nil
		}
		if err != nil {
			return nil, err
		}
		ref.Hub = found
		return ref, nil
	}

	riderRef := func(id *kernel.UUID) (*services.RiderRef, error) {
		if id == nil {
			return nil, nil
		}
		ref := &services.RiderRef{ID: *id}
		if !resolve {
			return ref, nil
		}
		found, err := users.Get(ctx, *id)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ref, nil
		}
		if err != nil {
			return nil, err
		}
		ref.User = found
		return ref, nil
	}

	var err error
	if update.PickupHub, err = hubRef(cmd.PickupHub()); err != nil {
		return err
	}
	if update.DeliveryHub, err = hubRef(cmd.DeliveryHub()); err != nil {
		return err
	}
	if update.PickupRider, err = riderRef(cmd.PickupRider()); err != nil {
		return err
	}
	if update.DeliveryRider, err = riderRef(cmd.DeliveryRider()); err != nil {
		return err
	}
	return nil
}

// loadRiders fetches the riders already on the parcel that the update needs:
// a kept rider whose leg moves to another hub, both riders for APPROVED, the
// delivery rider for OUT_FOR_DELIVERY and DELIVERED, and the delivery rider's
// other running deliveries for DELIVERED.
func (h *UpdateParcelCommandHandler) loadRiders(
	ctx context.Context,
	parcels ports.ParcelRepository,
	users ports.UserRepository,
	p *parcel.Parcel,
	update *services.ParcelUpdate,
) error {
	var ids []*kernel.UUID
	// The lifecycle rejects any other assignment before it looks at riders.
	if update.Actor.IsAdmin() && p.Status() == parcel.Pending {
		if movesKeptRider(update.PickupHub, update.PickupRider) {
			ids = append(ids, p.PickupRiderID())
		}
		if movesKeptRider(update.DeliveryHub, update.DeliveryRider) {
			ids = append(ids, p.DeliveryRiderID())
		}
	}

	if update.Status != nil {
		switch *update.Status {
		case parcel.Approved:
			ids = append(ids, p.PickupRiderID(), p.DeliveryRiderID())
		case parcel.OutForDelivery, parcel.Delivered:
			ids = append(ids, p.DeliveryRiderID())
		}
	}

	for _, id := range ids {
		if id == nil || update.KnowsRider(*id) {
			continue
		}
		rider, err := users.Get(ctx, *id)
		if errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		update.AssignedRiders = append(update.AssignedRiders, rider)
	}

	if update.Status != nil && *update.Status == parcel.Delivered && p.DeliveryRiderID() != nil {
		others, err := parcels.CountOutForDeliveryByRider(ctx, *p.DeliveryRiderID(), p.ID())
		if err != nil {
			return err
		}
		update.OtherOutForDelivery = others
	}

	return nil
}

func movesKeptRider(hub *services.HubRef, rider *services.RiderRef) bool {
	return hub != nil && hub.Hub != nil && rider == nil
}
