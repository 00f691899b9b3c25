package fee

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// ParcelType is the category a fee config is keyed on. Each type has at most one config.
type ParcelType string

const (
	ParcelTypeDocument ParcelType = "DOCUMENT"
	ParcelTypePackage  ParcelType = "PACKAGE"
	ParcelTypeFragile  ParcelType = "FRAGILE"
	ParcelTypeOther    ParcelType = "OTHER"
)

func (p ParcelType) Validate() error {
	switch p {
	case ParcelTypeDocument, ParcelTypePackage, ParcelTypeFragile, ParcelTypeOther:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("parcel type", fmt.Errorf("%q is not a valid parcel type", string(p)))
	}
}

func (p ParcelType) String() string {
	return string(p)
}

// Type is the pricing formula of a fee config.
type Type string

const (
	Fixed       Type = "FIXED"
	WeightBased Type = "WEIGHT_BASED"
)

func (t Type) Validate() error {
	switch t {
	case Fixed, WeightBased:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("fee type", fmt.Errorf("%q is not a valid fee type", string(t)))
	}
}

func (t Type) String() string {
	return string(t)
}
