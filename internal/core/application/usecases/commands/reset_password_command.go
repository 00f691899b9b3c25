package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrResetPasswordCommandIsNotConstructed = errors.New(
	"ResetPasswordCommand must be created via NewResetPasswordCommand constructor",
)

// ResetPasswordCommand replaces the caller's own password.
type ResetPasswordCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	oldPassword string
	newPassword string

	guard guard.ConstructorGuard
}

// NewResetPasswordCommand requires the current password and a strong new one.
func NewResetPasswordCommand(actor kernel.Actor, oldPassword, newPassword string) (ResetPasswordCommand, error) {
	var oldErr error
	if oldPassword == "" {
		oldErr = errs.NewValueIsRequiredError("oldPassword")
	}

	if err := errors.Join(actor.Validate(), oldErr, validatePassword(newPassword)); err != nil {
		return ResetPasswordCommand{}, err
	}

	return ResetPasswordCommand{
		actor:       actor,
		oldPassword: oldPassword,
		newPassword: newPassword,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ResetPasswordCommand) Validate() error {
	return c.guard.Validate(ErrResetPasswordCommandIsNotConstructed)
}

func (c ResetPasswordCommand) Actor() kernel.Actor {
	return c.actor
}

func (c ResetPasswordCommand) OldPassword() string {
	return c.oldPassword
}

func (c ResetPasswordCommand) NewPassword() string {
	return c.newPassword
}
