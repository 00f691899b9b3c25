package commands

import (
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrUpdateUserCommandIsNotConstructed = errors.New(
		"UpdateUserCommand must be created via NewUpdateUserCommand constructor",
	)
	ErrUserUpdateIsEmpty = errs.NewValueIsRequiredErrorWithCause("update", errors.New("nothing to update"))
)

// UserChanges is the raw profile update payload. Nil fields are left untouched.
// Email is not editable.
type UserChanges struct {
	Name     *string
	Phone    *string
	Password *string
	Role     *string
	Rider    *RiderInput
}

// UpdateUserCommand edits an account. Who may change which field is decided
// by the handler, since it depends on the stored role of the target.
type UpdateUserCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.Actor
	userID   kernel.UUID
	name     *string
	phone    *string
	password *string
	role     *kernel.Role
	rider    *RiderInput

	guard guard.ConstructorGuard
}

// NewUpdateUserCommand checks the password strength and phone format of the
// fields that are present and rejects empty payloads.
func NewUpdateUserCommand(actor kernel.Actor, userID kernel.UUID, changes UserChanges) (UpdateUserCommand, error) {
	cmd := UpdateUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		userID.Validate(),
		cmd.setPassword(changes.Password),
		cmd.setPhone(changes.Phone),
		cmd.setRole(changes.Role),
	); err != nil {
		return UpdateUserCommand{}, err
	}

	cmd.actor = actor
	cmd.userID = userID
	cmd.name = changes.Name
	cmd.rider = changes.Rider

	if cmd.name == nil && cmd.phone == nil && cmd.password == nil && cmd.role == nil && cmd.rider == nil {
		return UpdateUserCommand{}, ErrUserUpdateIsEmpty
	}

	return cmd, nil
}

func (c UpdateUserCommand) Validate() error {
	return c.guard.Validate(ErrUpdateUserCommandIsNotConstructed)
}

func (c UpdateUserCommand) Actor() kernel.Actor {
	return c.actor
}

func (c UpdateUserCommand) UserID() kernel.UUID {
	return c.userID
}

func (c UpdateUserCommand) Name() *string {
	return c.name
}

func (c UpdateUserCommand) Phone() *string {
	return c.phone
}

// Password is the new plain-text password, if any.
func (c UpdateUserCommand) Password() *string {
	return c.password
}

func (c UpdateUserCommand) Role() *kernel.Role {
	return c.role
}

func (c UpdateUserCommand) Rider() *RiderInput {
	return c.rider
}

func (c *UpdateUserCommand) setPassword(password *string) error {
	if password == nil {
		return nil
	}
	if err := validatePassword(*password); err != nil {
		return err
	}
	c.password = password
	return nil
}

func (c *UpdateUserCommand) setPhone(phone *string) error {
	if phone == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*phone)
	if err := validatePhone(trimmed); err != nil {
		return err
	}
	c.phone = &trimmed
	return nil
}

func (c *UpdateUserCommand) setRole(role *string) error {
	if role == nil {
		return nil
	}
	r, err := kernel.ParseRole(*role)
	if err != nil {
		return err
	}
	c.role = &r
	return nil
}
