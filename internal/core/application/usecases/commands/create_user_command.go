package commands

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

const minPasswordLength = 8

var (
	ErrCreateUserCommandIsNotConstructed = errors.New(
		"CreateUserCommand must be created via NewCreateUserCommand constructor",
	)
	ErrPasswordIsTooWeak = errs.NewValueIsInvalidErrorWithCause("password", errors.New(
		"password needs at least 8 characters, an uppercase letter, a digit and one of !@#$%^&*",
	))
	ErrPhoneIsInvalid = errs.NewValueIsInvalidErrorWithCause("phone", errors.New(
		"phone number must be valid for Bangladesh: +8801XXXXXXXXX or 01XXXXXXXXX",
	))
	ErrRiderProfileIsRequired   = errs.NewValueIsRequiredError("riderProfile")
	ErrRiderProfileIsNotAllowed = errs.NewValueIsInvalidErrorWithCause("riderProfile", errors.New("only riders have a rider profile"))
)

var phonePattern = regexp.MustCompile(`^(?:\+8801\d{9}|01\d{9})$`)

// RiderInput is the rider profile part of a registration.
type RiderInput struct {
	VehicleType   user.VehicleType
	VehicleNumber string
	LicenseNumber string
	AssignedHub   kernel.UUID
}

// Registration is the raw content of a new account.
type Registration struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     kernel.Role
	Rider    *RiderInput
}

// CreateUserCommand registers a user. Actor is nil for self sign-up.
type CreateUserCommand struct { //nolint:recvcheck //using for validation
	actor        *kernel.Actor
	registration Registration

	guard guard.ConstructorGuard
}

// NewCreateUserCommand validates the registration form. An empty role means USER.
func NewCreateUserCommand(actor *kernel.Actor, reg Registration) (CreateUserCommand, error) {
	cmd := CreateUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if reg.Role == "" {
		reg.Role = kernel.RoleUser
	}
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	reg.Phone = strings.TrimSpace(reg.Phone)

	if err := errors.Join(
		cmd.setActor(actor),
		validatePassword(reg.Password),
		validatePhone(reg.Phone),
		validateRiderInput(reg.Role, reg.Rider),
	); err != nil {
		return CreateUserCommand{}, err
	}
	cmd.registration = reg

	return cmd, nil
}

func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

// Actor is the admin creating the account, or nil for self sign-up.
func (c CreateUserCommand) Actor() *kernel.Actor {
	return c.actor
}

func (c CreateUserCommand) Registration() Registration {
	return c.registration
}

func (c *CreateUserCommand) setActor(actor *kernel.Actor) error {
	if actor == nil {
		return nil
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordIsTooWeak
	}

	var upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune("!@#$%^&*", r):
			special = true
		}
	}
	if !upper || !digit || !special {
		return ErrPasswordIsTooWeak
	}
	return nil
}

func validatePhone(phone string) error {
	if phone == "" || phonePattern.MatchString(phone) {
		return nil
	}
	return ErrPhoneIsInvalid
}

func validateRiderInput(role kernel.Role, rider *RiderInput) error {
	if err := role.Validate(); err != nil {
		return err
	}
	switch {
	case role == kernel.RoleRider && rider == nil:
		return ErrRiderProfileIsRequired
	case role != kernel.RoleRider && rider != nil:
		return ErrRiderProfileIsNotAllowed
	}
	return nil
}
