package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
)

// AddressInput is how a request names a parcel address: either a reference
// into the owner's address book or a full inline address.
type AddressInput interface {
	addressInput()
}

// AddressRef points at an address in the owning user's book.
type AddressRef struct {
	ID kernel.UUID
}

// InlineAddress carries a one-off address that is not stored in any book.
type InlineAddress struct {
	Params kernel.AddressParams
}

func (AddressRef) addressInput()    {}
func (InlineAddress) addressInput() {}

func validateAddressInput(field string, in AddressInput) error {
	switch a := in.(type) {
	case AddressRef:
		return a.ID.Validate()
	case InlineAddress:
		return nil
	default:
		return errs.NewValueIsRequiredError(field)
	}
}

// resolveAddress turns an input into the snapshot stored on the parcel.
// Inline addresses get a fresh id.
func resolveAddress(owner *user.User, field string, in AddressInput) (kernel.Address, error) {
	switch a := in.(type) {
	case AddressRef:
		found, ok := owner.FindAddress(a.ID)
		if !ok {
			return kernel.Address{}, errs.NewValueIsInvalidErrorWithCause(field, errors.New("address "+a.ID.String()+" not found"))
		}
		return found, nil
	case InlineAddress:
		params := a.Params
		params.IsDefault = false
		return kernel.NewAddress(kernel.NewUUID(), params)
	default:
		return kernel.Address{}, errs.NewValueIsRequiredError(field)
	}
}
