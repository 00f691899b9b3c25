package kernel

import (
	"fmt"

	"parcelhub/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID. The
// nil UUID parsed from text or read from a column is rejected the same way.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies users, hubs, fee configs, parcels and addresses. It wraps
// github.com/google/uuid so that the zero value is detectably invalid.
//
// UUID is an immutable value and safe to share between goroutines. Build one
// with NewUUID, UUIDFromString or UUIDFromBytes; repositories persist it
// through Bytes and restore it through UUIDFromBytes.
//
// Example usage:
//
//	parcelID := kernel.NewUUID()
//
//	hubID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    return fmt.Errorf("invalid hub id: %w", err)
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) UUID. Aggregates call it when
// they are first created; restored aggregates keep the stored id.
//
// Example:
//
//	h, err := hub.NewHub(kernel.NewUUID(), "Motijheel Hub", "Dhaka", "01711111111", []string{"Motijheel"})
//
// Returns:
//   - A valid UUID
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses an identifier received from outside, such as a path
// parameter or a JSON field. It accepts these forms:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "6ba7b8109dad11d180b400c04fd430c8"
//
// The result is validated, so the nil UUID is rejected.
//
// Parameters:
//   - s: the textual identifier
//
// Example:
//
//	hubID, err := kernel.UUIDFromString(req.AssignedHub)
//	if err != nil {
//	    return errs.NewValueIsInvalidErrorWithCause("assignedHub", err)
//	}
//
// Returns:
//   - The parsed UUID
//   - errs.ValueIsInvalidError for malformed input
//   - ErrUUIDIsNotConstructed for the nil UUID
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("UUID", fmt.Errorf("invalid UUID format: %w", err))
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes creates a UUID from a 16 byte slice, typically a database
// column scanned into a uuid.UUID.
//
// Parameters:
//   - b: exactly 16 bytes
//
// Example:
//
//	id, err := kernel.UUIDFromBytes(row.ID[:])
//	if err != nil {
//	    return nil, fmt.Errorf("restore parcel: %w", err)
//	}
//
// Returns:
//   - The UUID
//   - an error when b is not 16 bytes long
//   - ErrUUIDIsNotConstructed when b is all zeros
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// OptionalUUIDFromBytes converts a nullable column, such as a parcel's
// pickup rider, into an optional identifier.
//
// Returns:
//   - nil, nil when raw is nil
//   - the UUID, or the error UUIDFromBytes reports for it
func OptionalUUIDFromBytes(raw *uuid.UUID) (*UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// OptionalBytes is the inverse of OptionalUUIDFromBytes. A nil id maps to
// a NULL column.
func OptionalBytes(id *UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form,
// lower case. JSON responses and log fields carry this form. The zero value renders as "00000000-0000-0000-0000-000000000000".
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID value, which gorm and the postgres
// driver store as a uuid column. Slice it for a []byte:
//
//	raw := id.Bytes()
//	column := raw[:]
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two UUIDs for equality.
//
// Example:
//
//	if !p.SenderID().IsEqual(actor.UserID()) {
//	    return errs.NewForbiddenError("cancel parcel")
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// EqualsOptional reports whether the optional identifier is set and equal to
// u. A nil other is never equal.
//
// Example:
//
//	isPickupRider := actor.UserID().EqualsOptional(p.PickupRiderID())
func (u UUID) EqualsOptional(other *UUID) bool {
	return other != nil && u.IsEqual(*other)
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
//
// Example:
//
//	func NewActor(userID UUID, role Role) (Actor, error) {
//	    if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
//	        return Actor{}, err
//	    }
//	    // ...
//	}
//
// Returns:
//   - nil for any UUID built by a constructor
//   - ErrUUIDIsNotConstructed otherwise
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
