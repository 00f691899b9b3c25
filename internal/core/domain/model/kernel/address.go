package kernel

import (
	"errors"
	"fmt"
	"strings"

	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

// AddressLabel names an entry in a user's address book.
type AddressLabel string

const (
	AddressLabelHome   AddressLabel = "HOME"
	AddressLabelOffice AddressLabel = "OFFICE"
	AddressLabelOther  AddressLabel = "OTHER"
)

// Validate accepts the empty label (inline parcel addresses carry none) and the three known labels.
func (l AddressLabel) Validate() error {
	switch l {
	case "", AddressLabelHome, AddressLabelOffice, AddressLabelOther:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("address label", fmt.Errorf("%q is not a valid label", string(l)))
	}
}

// SameAs compares labels case-insensitively.
func (l AddressLabel) SameAs(other AddressLabel) bool {
	return strings.EqualFold(string(l), string(other))
}

// ErrAddressIsNotConstructed is returned when a zero-value Address is used.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// AddressParams carries the raw fields of an address. It is the input of
// NewAddress and the output of Address.Params, which keeps persistence
// mapping symmetric.
type AddressParams struct {
	Label       AddressLabel
	AddressLine string
	Area        string
	City        string
	State       string
	PostalCode  string
	Country     string
	IsDefault   bool
}

// Address is an immutable postal address value object.
//
// Parcels hold addresses by value: once a parcel is created its pickup and
// delivery addresses are snapshots, and later edits to the owner's address
// book never reach the parcel.
type Address struct {
	id     UUID
	params AddressParams
	guard  guard.ConstructorGuard
}

// NewAddress validates and builds an address.
// AddressLine, Area, City, PostalCode and Country are mandatory; State and Label are optional.
func NewAddress(id UUID, params AddressParams) (Address, error) {
	if err := errors.Join(
		id.Validate(),
		params.Label.Validate(),
		required("addressLine", params.AddressLine),
		required("area", params.Area),
		required("city", params.City),
		required("postalCode", params.PostalCode),
		required("country", params.Country),
	); err != nil {
		return Address{}, err
	}

	params.AddressLine = strings.TrimSpace(params.AddressLine)
	params.Area = strings.TrimSpace(params.Area)
	params.City = strings.TrimSpace(params.City)
	params.State = strings.TrimSpace(params.State)
	params.PostalCode = strings.TrimSpace(params.PostalCode)
	params.Country = strings.TrimSpace(params.Country)

	return Address{
		id:     id,
		params: params,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the address was built by NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) ID() UUID {
	return a.id
}

func (a Address) Label() AddressLabel {
	return a.params.Label
}

func (a Address) City() string {
	return a.params.City
}

func (a Address) IsDefault() bool {
	return a.params.IsDefault
}

// Params returns a copy of the address fields.
func (a Address) Params() AddressParams {
	return a.params
}

func (a Address) String() string {
	parts := []string{a.params.AddressLine, a.params.Area, a.params.City}
	if a.params.State != "" {
		parts = append(parts, a.params.State)
	}
	parts = append(parts, a.params.PostalCode, a.params.Country)
	return strings.Join(parts, ", ")
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
