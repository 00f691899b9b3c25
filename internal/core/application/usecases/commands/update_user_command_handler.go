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

// UpdateUserCommandHandler edits accounts.
//
// Access rules:
//   - USER and RIDER may only edit themselves, and only name, phone and password
//   - an ADMIN may edit anyone except a SUPER_ADMIN
//   - only a SUPER_ADMIN may grant SUPER_ADMIN
//   - promoting to RIDER needs a rider profile whose hub exists
type UpdateUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

func NewUpdateUserCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) UpdateUserCommandHandler {
	return UpdateUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

func (h *UpdateUserCommandHandler) Handle(ctx context.Context, cmd UpdateUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if !actor.IsAdmin() && !actor.Is(cmd.UserID()) {
		return nil, errs.NewUnauthorizedErrorWithCause("update user", errors.New("you can only update your own account"))
	}
	if err := authorizeUserChanges(actor, cmd); err != nil {
		return nil, err
	}

	var hash *string
	if cmd.Password() != nil {
		hashed, err := h.hasher.Hash(*cmd.Password())
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash = &hashed
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	u, err := users.Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	if actor.Role() == kernel.RoleAdmin && u.Role() == kernel.RoleSuperAdmin {
		return nil, errs.NewUnauthorizedErrorWithCause("update user", errors.New("an admin cannot edit a super admin"))
	}

	role := u.Role()
	if cmd.Role() != nil {
		role = *cmd.Role()
	}

	profile, err := h.riderProfile(ctx, uow.HubRepository(), u, role, cmd.Rider())
	if err != nil {
		return nil, err
	}

	if err = applyUserChanges(u, cmd, hash, role, profile); err != nil {
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

// riderProfile builds the replacement profile from the request. It returns nil
// when the current profile, if any, should be kept or dropped by the role change.
func (h *UpdateUserCommandHandler) riderProfile(
	ctx context.Context,
	hubs ports.HubRepository,
	u *user.User,
	role kernel.Role,
	input *RiderInput,
) (*user.RiderProfile, error) {
	if err := validateRiderInput(role, input); err != nil {
		if errors.Is(err, ErrRiderProfileIsRequired) && u.IsRider() {
			return nil, nil
		}
		return nil, err
	}
	if input == nil {
		return nil, nil
	}

	if _, err := hubs.Get(ctx, input.AssignedHub); err != nil {
		return nil, err
	}

	availability := user.Available
	if current := u.RiderProfile(); current != nil {
		availability = current.Availability()
	}

	profile, err := user.NewRiderProfile(
		input.VehicleType,
		input.VehicleNumber,
		input.LicenseNumber,
		input.AssignedHub,
		availability,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func authorizeUserChanges(actor kernel.Actor, cmd UpdateUserCommand) error {
	if !actor.IsAdmin() {
		switch {
		case cmd.Rider() != nil && actor.Role() == kernel.RoleRider:
			return errs.NewForbiddenErrorWithCause("update user", errors.New("contact an admin to update your rider profile"))
		case cmd.Role() != nil || cmd.Rider() != nil:
			return errs.NewForbiddenErrorWithCause("update user", errors.New("only an admin can change roles and rider profiles"))
		}
	}
	if cmd.Role() != nil && *cmd.Role() == kernel.RoleSuperAdmin && actor.Role() != kernel.RoleSuperAdmin {
		return errs.NewForbiddenErrorWithCause("update user", errors.New("only a super admin can grant super admin"))
	}
	return nil
}

func applyUserChanges(u *user.User, cmd UpdateUserCommand, hash *string, role kernel.Role, profile *user.RiderProfile) error {
	var errList []error
	if cmd.Name() != nil {
		errList = append(errList, u.Rename(*cmd.Name()))
	}
	if cmd.Phone() != nil {
		u.ChangePhone(*cmd.Phone())
	}
	if hash != nil {
		errList = append(errList, u.ChangePasswordHash(*hash))
	}
	if cmd.Role() != nil || profile != nil {
		errList = append(errList, u.ChangeRole(role, profile))
	}
	return errors.Join(errList...)
}
