package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrUpdateParcelCommandIsNotConstructed = errors.New(
		"UpdateParcelCommand must be created via NewUpdateParcelCommand constructor",
	)
	ErrParcelUpdateIsEmpty = errs.NewValueIsRequiredErrorWithCause("update", errors.New("nothing to update"))
)

// ParcelChanges is the raw update payload. Nil fields are left untouched.
type ParcelChanges struct {
	Status        *string
	Remarks       *string
	PickupHub     *kernel.UUID
	DeliveryHub   *kernel.UUID
	PickupRider   *kernel.UUID
	DeliveryRider *kernel.UUID
}

// UpdateParcelCommand moves a parcel through its lifecycle and/or assigns its
// hubs and riders.
type UpdateParcelCommand struct { //nolint:recvcheck //using for validation
	actor         kernel.Actor
	parcelID      kernel.UUID
	status        *parcel.Status
	remarks       *string
	pickupHub     *kernel.UUID
	deliveryHub   *kernel.UUID
	pickupRider   *kernel.UUID
	deliveryRider *kernel.UUID

	guard guard.ConstructorGuard
}

// NewUpdateParcelCommand parses the status name and rejects empty payloads.
func NewUpdateParcelCommand(actor kernel.Actor, parcelID kernel.UUID, changes ParcelChanges) (UpdateParcelCommand, error) {
	cmd := UpdateParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setParcelID(parcelID),
		cmd.setStatus(changes.Status),
		cmd.setAssignments(changes),
	); err != nil {
		return UpdateParcelCommand{}, err
	}
	cmd.remarks = changes.Remarks

	if cmd.status == nil && cmd.remarks == nil && !cmd.HasAssignments() {
		return UpdateParcelCommand{}, ErrParcelUpdateIsEmpty
	}

	return cmd, nil
}

func (c UpdateParcelCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelCommandIsNotConstructed)
}

func (c UpdateParcelCommand) Actor() kernel.Actor {
	return c.actor
}

func (c UpdateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c UpdateParcelCommand) Status() *parcel.Status {
	return c.status
}

func (c UpdateParcelCommand) Remarks() *string {
	return c.remarks
}

func (c UpdateParcelCommand) PickupHub() *kernel.UUID {
	return c.pickupHub
}

func (c UpdateParcelCommand) DeliveryHub() *kernel.UUID {
	return c.deliveryHub
}

func (c UpdateParcelCommand) PickupRider() *kernel.UUID {
	return c.pickupRider
}

func (c UpdateParcelCommand) DeliveryRider() *kernel.UUID {
	return c.deliveryRider
}

// HasAssignments reports whether any hub or rider field is set.
func (c UpdateParcelCommand) HasAssignments() bool {
	return c.pickupHub != nil || c.deliveryHub != nil || c.pickupRider != nil || c.deliveryRider != nil
}

func (c *UpdateParcelCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *UpdateParcelCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.parcelID = id
	return nil
}

func (c *UpdateParcelCommand) setStatus(name *string) error {
	if name == nil {
		return nil
	}

	status, err := parcel.ParseStatus(*name)
	if err != nil {
		return err
	}

	c.status = &status
	return nil
}

func (c *UpdateParcelCommand) setAssignments(changes ParcelChanges) error {
	for _, id := range []*kernel.UUID{changes.PickupHub, changes.DeliveryHub, changes.PickupRider, changes.DeliveryRider} {
		if id == nil {
			continue
		}
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.pickupHub = changes.PickupHub
	c.deliveryHub = changes.DeliveryHub
	c.pickupRider = changes.PickupRider
	c.deliveryRider = changes.DeliveryRider
	return nil
}
