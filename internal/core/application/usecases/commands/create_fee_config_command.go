package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/fee"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrCreateFeeConfigCommandIsNotConstructed = errors.New(
	"CreateFeeConfigCommand must be created via NewCreateFeeConfigCommand constructor",
)

// CreateFeeConfigCommand sets the price formula for a parcel type that has none yet.
type CreateFeeConfigCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	parcelType fee.ParcelType
	feeType    fee.Type
	baseFee    float64
	weightRate *float64

	guard guard.ConstructorGuard
}

func NewCreateFeeConfigCommand(
	actor kernel.Actor,
	parcelType fee.ParcelType,
	feeType fee.Type,
	baseFee float64,
	weightRate *float64,
) (CreateFeeConfigCommand, error) {
	if err := errors.Join(actor.Validate(), parcelType.Validate(), feeType.Validate()); err != nil {
		return CreateFeeConfigCommand{}, err
	}

	return CreateFeeConfigCommand{
		actor:      actor,
		parcelType: parcelType,
		feeType:    feeType,
		baseFee:    baseFee,
		weightRate: weightRate,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateFeeConfigCommand) Validate() error {
	return c.guard.Validate(ErrCreateFeeConfigCommandIsNotConstructed)
}

func (c CreateFeeConfigCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateFeeConfigCommand) ParcelType() fee.ParcelType {
	return c.parcelType
}

func (c CreateFeeConfigCommand) FeeType() fee.Type {
	return c.feeType
}

func (c CreateFeeConfigCommand) BaseFee() float64 {
	return c.baseFee
}

func (c CreateFeeConfigCommand) WeightRate() *float64 {
	return c.weightRate
}
