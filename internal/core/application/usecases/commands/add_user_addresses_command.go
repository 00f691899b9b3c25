package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrAddUserAddressesCommandIsNotConstructed = errors.New(
		"AddUserAddressesCommand must be created via NewAddUserAddressesCommand constructor",
	)
	ErrAddressDataIsRequired = errs.NewValueIsRequiredErrorWithCause("address", errors.New("address data is required"))
)

// AddressBatch is either one address or a list of them.
type AddressBatch interface {
	params() []kernel.AddressParams
}

type SingleAddress struct {
	Address kernel.AddressParams
}

type AddressList struct {
	Addresses []kernel.AddressParams
}

func (s SingleAddress) params() []kernel.AddressParams {
	return []kernel.AddressParams{s.Address}
}

func (l AddressList) params() []kernel.AddressParams {
	return l.Addresses
}

// AddUserAddressesCommand appends addresses to the acting user's own book.
type AddUserAddressesCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	addresses []kernel.Address

	guard guard.ConstructorGuard
}

// NewAddUserAddressesCommand builds every address of the batch. Label
// uniqueness is checked against the stored book by the handler.
func NewAddUserAddressesCommand(actor kernel.Actor, batch AddressBatch) (AddUserAddressesCommand, error) {
	cmd := AddUserAddressesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setAddresses(batch),
	); err != nil {
		return AddUserAddressesCommand{}, err
	}

	return cmd, nil
}

func (c AddUserAddressesCommand) Validate() error {
	return c.guard.Validate(ErrAddUserAddressesCommandIsNotConstructed)
}

func (c AddUserAddressesCommand) Actor() kernel.Actor {
	return c.actor
}

func (c AddUserAddressesCommand) Addresses() []kernel.Address {
	return append([]kernel.Address(nil), c.addresses...)
}

func (c *AddUserAddressesCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *AddUserAddressesCommand) setAddresses(batch AddressBatch) error {
	if batch == nil || len(batch.params()) == 0 {
		return ErrAddressDataIsRequired
	}

	addresses := make([]kernel.Address, 0, len(batch.params()))
	for _, params := range batch.params() {
		if params.Label == "" {
			return errs.NewValueIsRequiredError("address label")
		}
		a, err := kernel.NewAddress(kernel.NewUUID(), params)
		if err != nil {
			return err
		}
		addresses = append(addresses, a)
	}

	c.addresses = addresses
	return nil
}
