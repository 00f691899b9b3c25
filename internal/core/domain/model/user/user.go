package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
	ErrPasswordHashIsRequired = errs.NewValueIsRequiredError("password")
	ErrUserIsNotConstructed   = errors.New("User must be created via NewUser constructor")
	// ErrUserIsNotRider is returned when a rider-only operation is applied to a non-rider.
	ErrUserIsNotRider = errs.NewValueIsInvalidErrorWithCause("rider", errors.New("user is not a rider"))
)

// User is the identity aggregate: senders, receivers, admins and riders.
//
// Business rules:
//   - email is unique (enforced by storage) and stored lower-cased
//   - a rider profile is present iff role is RIDER
//   - address labels are unique within the book, compared case-insensitively
type User struct {
	id           kernel.UUID
	name         string
	email        string
	passwordHash string
	phone        string
	role         kernel.Role
	addresses    []kernel.Address
	rider        *RiderProfile
	guard        guard.ConstructorGuard
}

// NewUser creates a user with an empty address book.
// The password must already be hashed; the domain never sees plain text.
func NewUser(
	id kernel.UUID,
	name string,
	email string,
	passwordHash string,
	phone string,
	role kernel.Role,
	rider *RiderProfile,
) (*User, error) {
	return RestoreUser(id, name, email, passwordHash, phone, role, nil, rider)
}

// RestoreUser rebuilds a user from storage, including its address book.
func RestoreUser(
	id kernel.UUID,
	name string,
	email string,
	passwordHash string,
	phone string,
	role kernel.Role,
	addresses []kernel.Address,
	rider *RiderProfile,
) (*User, error) {
	u := &User{
		guard: guard.NewConstructorGuard(),
		phone: strings.TrimSpace(phone),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setPasswordHash(passwordHash),
		u.setRole(role, rider),
	); err != nil {
		return nil, err
	}

	if len(addresses) > 0 {
		if err := u.AddAddresses(addresses); err != nil {
			return nil, err
		}
	}

	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Email() string {
	return u.email
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Phone() string {
	return u.phone
}

// HasPhone reports whether the user can take part in a parcel as sender or receiver.
func (u *User) HasPhone() bool {
	return u.phone != ""
}

func (u *User) Role() kernel.Role {
	return u.role
}

func (u *User) IsRider() bool {
	return u.role == kernel.RoleRider && u.rider != nil
}

// RiderProfile returns a copy of the rider profile, or nil for non-riders.
func (u *User) RiderProfile() *RiderProfile {
	if u.rider == nil {
		return nil
	}
	profile := *u.rider
	return &profile
}

// Addresses returns a copy of the address book.
func (u *User) Addresses() []kernel.Address {
	out := make([]kernel.Address, len(u.addresses))
	copy(out, u.addresses)
	return out
}

// FindAddress looks up an address in the book by id.
func (u *User) FindAddress(id kernel.UUID) (kernel.Address, bool) {
	for _, a := range u.addresses {
		if a.ID().IsEqual(id) {
			return a, true
		}
	}
	return kernel.Address{}, false
}

// AddAddresses appends addresses to the book. Every address needs a label and
// no label may repeat, either against the book or within the batch. Nothing is
// added unless the whole batch is valid.
func (u *User) AddAddresses(addresses []kernel.Address) error {
	if len(addresses) == 0 {
		return errs.NewValueIsRequiredError("address")
	}

	seen := make([]kernel.AddressLabel, 0, len(u.addresses)+len(addresses))
	for _, a := range u.addresses {
		seen = append(seen, a.Label())
	}

	for _, a := range addresses {
		if err := a.Validate(); err != nil {
			return err
		}
		if a.Label() == "" {
			return errs.NewValueIsRequiredError("address label")
		}
		for _, label := range seen {
			if label.SameAs(a.Label()) {
				return errs.NewValueIsInvalidErrorWithCause(
					"address label",
					fmt.Errorf("'%s' already exists, update it instead", a.Label()),
				)
			}
		}
		seen = append(seen, a.Label())
	}

	u.addresses = append(u.addresses, addresses...)
	return nil
}

// Rename changes the display name.
func (u *User) Rename(name string) error {
	return u.setName(name)
}

// ChangePhone replaces the contact number. An empty phone clears it.
func (u *User) ChangePhone(phone string) {
	u.phone = strings.TrimSpace(phone)
}

// ChangePasswordHash replaces the stored hash. The password must already be hashed.
func (u *User) ChangePasswordHash(hash string) error {
	return u.setPasswordHash(hash)
}

// ChangeRole moves the user to role. A non-nil rider replaces the rider
// profile. A nil rider keeps the current profile when the user stays a rider
// and drops it for any other role. The user is unchanged on error.
func (u *User) ChangeRole(role kernel.Role, rider *RiderProfile) error {
	if rider == nil && role == kernel.RoleRider {
		rider = u.rider
	}

	previousRole, previousRider := u.role, u.rider
	u.rider = nil
	if err := u.setRole(role, rider); err != nil {
		u.role, u.rider = previousRole, previousRider
		return err
	}
	return nil
}

// EnsureAssignableTo checks that the user can be put on a parcel leg served by hubID:
// the user is a rider, pinned to that hub and AVAILABLE.
func (u *User) EnsureAssignableTo(hubID kernel.UUID) error {
	if !u.IsRider() {
		return errs.NewValueIsInvalidErrorWithCause("rider", fmt.Errorf("user %s is not a rider", u.id))
	}
	if !u.rider.assignedHub.IsEqual(hubID) {
		return errs.NewValueIsInvalidErrorWithCause(
			"rider",
			fmt.Errorf("rider %s is assigned to hub %s, not %s", u.id, u.rider.assignedHub, hubID),
		)
	}
	if u.rider.availability != Available {
		return errs.NewValueIsInvalidErrorWithCause(
			"rider",
			fmt.Errorf("rider %s is %s, not available for assignment", u.id, u.rider.availability),
		)
	}
	return nil
}

// StartDelivery marks the rider as ON_DELIVERY.
func (u *User) StartDelivery() error {
	if !u.IsRider() {
		return ErrUserIsNotRider
	}
	u.rider.availability = OnDelivery
	return nil
}

// FinishDelivery returns an ON_DELIVERY rider to AVAILABLE when no other parcel
// of theirs is still OUT_FOR_DELIVERY. It reports whether availability changed.
func (u *User) FinishDelivery(otherOutForDelivery int64) (bool, error) {
	if !u.IsRider() {
		return false, ErrUserIsNotRider
	}
	if otherOutForDelivery > 0 || u.rider.availability != OnDelivery {
		return false, nil
	}
	u.rider.availability = Available
	return true, nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	u.email = email
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return ErrPasswordHashIsRequired
	}
	u.passwordHash = hash
	return nil
}

func (u *User) setRole(role kernel.Role, rider *RiderProfile) error {
	if err := role.Validate(); err != nil {
		return err
	}
	if role == kernel.RoleRider && rider == nil {
		return errs.NewValueIsRequiredError("riderProfile")
	}
	if role != kernel.RoleRider && rider != nil {
		return errs.NewValueIsInvalidErrorWithCause("riderProfile", fmt.Errorf("role %s cannot carry a rider profile", role))
	}
	u.role = role
	if rider != nil {
		profile := *rider
		u.rider = &profile
	}
	return nil
}
