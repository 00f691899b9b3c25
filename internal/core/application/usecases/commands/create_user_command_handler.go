package commands

import (
	"context"
	"errors"
	"fmt"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

// CreateUserCommandHandler registers users and riders.
//
// Anyone may sign up as USER. RIDER and ADMIN accounts are created by admins,
// SUPER_ADMIN accounts only by a SUPER_ADMIN.
type CreateUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

func NewCreateUserCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) CreateUserCommandHandler {
	return CreateUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

func (h *CreateUserCommandHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	reg := cmd.Registration()
	if err := authorizeRole(cmd.Actor(), reg.Role); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var profile *user.RiderProfile
	if reg.Rider != nil {
		if _, err = uow.HubRepository().Get(ctx, reg.Rider.AssignedHub); err != nil {
			return nil, err
		}

		p, profileErr := user.NewRiderProfile(
			reg.Rider.VehicleType,
			reg.Rider.VehicleNumber,
			reg.Rider.LicenseNumber,
			reg.Rider.AssignedHub,
			user.Available,
		)
		if profileErr != nil {
			return nil, profileErr
		}
		profile = &p
	}

	u, err := user.NewUser(kernel.NewUUID(), reg.Name, reg.Email, hash, reg.Phone, reg.Role, profile)
	if err != nil {
		return nil, err
	}

	if err = uow.UserRepository().Add(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}

func authorizeRole(actor *kernel.Actor, role kernel.Role) error {
	switch role {
	case kernel.RoleUser:
		return nil
	case kernel.RoleSuperAdmin:
		if actor == nil || actor.Role() != kernel.RoleSuperAdmin {
			return errs.NewForbiddenErrorWithCause("create user", errors.New("only a super admin can create super admins"))
		}
	default:
		if actor == nil || !actor.IsAdmin() {
			return errs.NewForbiddenErrorWithCause("create user", fmt.Errorf("only an admin can create %s accounts", role))
		}
	}
	return nil
}
