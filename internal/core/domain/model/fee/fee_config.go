// Package fee contains the fee schedule: one FeeConfig per parcel type and
// the delivery fee formula it applies.
package fee

import (
	"errors"
	"fmt"
	"math"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrWeightIsRequired          = errs.NewValueIsRequiredError("weight")
	ErrWeightRateIsRequired      = errs.NewValueIsRequiredError("weightRate")
	ErrFeeConfigIsNotConstructed = errors.New("FeeConfig must be created via NewFeeConfig constructor")
)

// FeeConfig prices parcels of one type.
//
//	FIXED:        fee = baseFee
//	WEIGHT_BASED: fee = baseFee + weight * weightRate, weight > 0
type FeeConfig struct {
	id         kernel.UUID
	parcelType ParcelType
	feeType    Type
	baseFee    float64
	weightRate *float64
	guard      guard.ConstructorGuard
}

// NewFeeConfig validates the formula. baseFee must be >= 0; weightRate is
// required and > 0 for WEIGHT_BASED, optional and >= 0 for FIXED.
func NewFeeConfig(id kernel.UUID, parcelType ParcelType, feeType Type, baseFee float64, weightRate *float64) (*FeeConfig, error) {
	c := &FeeConfig{
		parcelType: parcelType,
		feeType:    feeType,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		parcelType.Validate(),
		feeType.Validate(),
		c.setBaseFee(baseFee),
		c.setWeightRate(feeType, weightRate),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *FeeConfig) Validate() error {
	if c == nil {
		return ErrFeeConfigIsNotConstructed
	}
	return c.guard.Validate(ErrFeeConfigIsNotConstructed)
}

func (c *FeeConfig) ID() kernel.UUID {
	return c.id
}

func (c *FeeConfig) ParcelType() ParcelType {
	return c.parcelType
}

func (c *FeeConfig) FeeType() Type {
	return c.feeType
}

func (c *FeeConfig) BaseFee() float64 {
	return c.baseFee
}

// WeightRate returns the per-unit rate, nil when not configured.
func (c *FeeConfig) WeightRate() *float64 {
	if c.weightRate == nil {
		return nil
	}
	rate := *c.weightRate
	return &rate
}

// CalculateFee applies the formula. Weight is ignored for FIXED configs.
func (c *FeeConfig) CalculateFee(weight *float64) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	if c.feeType == Fixed {
		return c.baseFee, nil
	}

	if weight == nil {
		return 0, ErrWeightIsRequired
	}
	if *weight <= 0 || math.IsNaN(*weight) || math.IsInf(*weight, 0) {
		return 0, errs.NewValueIsOutOfRangeErrorWithCause(
			"weight", *weight, 0, math.MaxFloat64, errors.New("weight must be greater than 0"),
		)
	}

	return c.baseFee + *weight*(*c.weightRate), nil
}

func (c *FeeConfig) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *FeeConfig) setBaseFee(baseFee float64) error {
	if baseFee < 0 || math.IsNaN(baseFee) || math.IsInf(baseFee, 0) {
		return errs.NewValueIsOutOfRangeError("baseFee", baseFee, 0, math.MaxFloat64)
	}
	c.baseFee = baseFee
	return nil
}

func (c *FeeConfig) setWeightRate(feeType Type, rate *float64) error {
	if rate == nil {
		if feeType == WeightBased {
			return ErrWeightRateIsRequired
		}
		return nil
	}
	if math.IsNaN(*rate) || math.IsInf(*rate, 0) || *rate < 0 || (feeType == WeightBased && *rate == 0) {
		return errs.NewValueIsInvalidErrorWithCause("weightRate", fmt.Errorf("%v is not a usable rate for %s", *rate, feeType))
	}
	value := *rate
	c.weightRate = &value
	return nil
}
