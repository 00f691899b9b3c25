package commands

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
)

// AddUserAddressesCommandHandler appends addresses to a user's book. Either the
// whole batch is stored or none of it.
type AddUserAddressesCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewAddUserAddressesCommandHandler(uowFactory UserUoWFactory) AddUserAddressesCommandHandler {
	return AddUserAddressesCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *AddUserAddressesCommandHandler) Handle(ctx context.Context, cmd AddUserAddressesCommand) (*user.User, error) {
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

	users := uow.UserRepository()
	u, err := users.Get(ctx, cmd.Actor().UserID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewValueIsInvalidErrorWithCause("user", errors.New("user does not exist"))
	}
	if err != nil {
		return nil, err
	}

	if err = u.AddAddresses(cmd.Addresses()); err != nil {
		return nil, err
	}

	if err = users.Update(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}
