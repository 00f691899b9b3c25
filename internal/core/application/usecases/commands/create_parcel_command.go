package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/fee"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrCreateParcelCommandIsNotConstructed = errors.New(
		"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
	)
	ErrWeightIsInvalid   = errs.NewValueIsInvalidErrorWithCause("weight", errors.New("weight must be greater than 0"))
	ErrDistanceIsInvalid = errs.NewValueIsInvalidErrorWithCause("distance", errors.New("distance must be greater than 0"))
)

// ParcelRequest is the raw content of a new delivery request.
type ParcelRequest struct {
	ReceiverID      kernel.UUID
	Priority        string
	PickupAddress   AddressInput
	DeliveryAddress AddressInput
	ParcelType      fee.ParcelType
	Weight          *float64
	Distance        *float64
}

// CreateParcelCommand represents a sender's request to ship a parcel.
// The sender is always the acting user.
//
// Example:
//
//	cmd, err := NewCreateParcelCommand(actor, ParcelRequest{
//	    ReceiverID:      receiverID,
//	    PickupAddress:   AddressRef{ID: homeID},
//	    DeliveryAddress: InlineAddress{Params: params},
//	    ParcelType:      fee.ParcelTypePackage,
//	    Weight:          &weight,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid parcel request: %w", err)
//	}
//
//	p, err := handler.Handle(ctx, cmd)
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	actor           kernel.Actor
	receiverID      kernel.UUID
	priority        parcel.Priority
	pickupAddress   AddressInput
	deliveryAddress AddressInput
	parcelType      fee.ParcelType
	weight          *float64
	distance        *float64

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand checks the shape of the request. Whether the users,
// addresses and fee config exist is up to the handler.
func NewCreateParcelCommand(actor kernel.Actor, req ParcelRequest) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setReceiverID(req.ReceiverID),
		cmd.setPriority(req.Priority),
		cmd.setAddresses(req.PickupAddress, req.DeliveryAddress),
		cmd.setParcelType(req.ParcelType),
		cmd.setMeasures(req.Weight, req.Distance),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateParcelCommand) ReceiverID() kernel.UUID {
	return c.receiverID
}

func (c CreateParcelCommand) Priority() parcel.Priority {
	return c.priority
}

func (c CreateParcelCommand) PickupAddress() AddressInput {
	return c.pickupAddress
}

func (c CreateParcelCommand) DeliveryAddress() AddressInput {
	return c.deliveryAddress
}

func (c CreateParcelCommand) ParcelType() fee.ParcelType {
	return c.parcelType
}

func (c CreateParcelCommand) Weight() *float64 {
	return c.weight
}

func (c CreateParcelCommand) Distance() *float64 {
	return c.distance
}

func (c *CreateParcelCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateParcelCommand) setReceiverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("receiver", err)
	}

	c.receiverID = id
	return nil
}

func (c *CreateParcelCommand) setPriority(s string) error {
	priority, err := parcel.ParsePriority(s)
	if err != nil {
		return err
	}

	c.priority = priority
	return nil
}

func (c *CreateParcelCommand) setAddresses(pickup, delivery AddressInput) error {
	if err := errors.Join(
		validateAddressInput("pickupAddress", pickup),
		validateAddressInput("deliveryAddress", delivery),
	); err != nil {
		return err
	}

	c.pickupAddress = pickup
	c.deliveryAddress = delivery
	return nil
}

func (c *CreateParcelCommand) setParcelType(parcelType fee.ParcelType) error {
	if err := parcelType.Validate(); err != nil {
		return err
	}

	c.parcelType = parcelType
	return nil
}

func (c *CreateParcelCommand) setMeasures(weight, distance *float64) error {
	if weight != nil && *weight <= 0 {
		return ErrWeightIsInvalid
	}
	if distance != nil && *distance <= 0 {
		return ErrDistanceIsInvalid
	}

	c.weight = weight
	c.distance = distance
	return nil
}
