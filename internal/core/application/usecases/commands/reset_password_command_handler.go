package commands

import (
	"context"
	"errors"
	"fmt"

	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

var ErrOldPasswordDoesNotMatch = errors.New("old password does not match")

// ResetPasswordCommandHandler checks the current password before storing a
// hash of the new one.
type ResetPasswordCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	matcher    ports.PasswordMatcher
}

func NewResetPasswordCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	matcher ports.PasswordMatcher,
) ResetPasswordCommandHandler {
	return ResetPasswordCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		matcher:    matcher,
	}
}

// Handle returns errs.UnauthorizedError when the old password is wrong.
func (h *ResetPasswordCommandHandler) Handle(ctx context.Context, cmd ResetPasswordCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	u, err := users.Get(ctx, cmd.Actor().UserID())
	if err != nil {
		return err
	}

	ok, err := h.matcher.Matches(u.PasswordHash(), cmd.OldPassword())
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewUnauthorizedErrorWithCause("reset password", ErrOldPasswordDoesNotMatch)
	}

	hash, err := h.hasher.Hash(cmd.NewPassword())
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err = u.ChangePasswordHash(hash); err != nil {
		return err
	}

	if err = users.Update(ctx, u); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
