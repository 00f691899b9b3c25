package kernel

import (
	"errors"
	"fmt"

	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

// Role is the authorization role carried by every authenticated request.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleUser       Role = "USER"
	RoleRider      Role = "RIDER"
)

// ParseRole converts an external role name into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser, RoleRider:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// IsAdmin is true for ADMIN and SUPER_ADMIN.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

func (r Role) String() string {
	return string(r)
}

// ErrActorIsNotConstructed is returned when a zero-value Actor reaches a handler.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the verified identity of the caller: who they are and which role
// they hold. The core never authenticates; it only authorizes against Actor.
type Actor struct {
	userID UUID
	role   Role
	guard  guard.ConstructorGuard
}

// NewActor builds an Actor from an authenticated user id and role.
func NewActor(userID UUID, role Role) (Actor, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{
		userID: userID,
		role:   role,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) UserID() UUID {
	return a.userID
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) IsAdmin() bool {
	return a.role.IsAdmin()
}

// Is reports whether the actor is the user identified by id.
func (a Actor) Is(id UUID) bool {
	return a.userID.IsEqual(id)
}

// IsOptional reports whether the actor is the user identified by an optional reference.
func (a Actor) IsOptional(id *UUID) bool {
	return a.userID.EqualsOptional(id)
}
