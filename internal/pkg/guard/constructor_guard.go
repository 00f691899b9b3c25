// Package guard provides ConstructorGuard, a marker that lets value objects,
// aggregates, commands and queries detect whether they were built through
// their constructor rather than as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when the
// caller passes a nil error, so an unconstructed object never validates
// silently.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in a struct and set only by its constructor.
// A zero-value guard fails Validate.
//
// Aggregates such as Parcel and Hub, and every command and query in the
// application layer, carry one. Handlers call Validate on their input first,
// so a command literal written outside its package is rejected before any
// storage is touched.
//
// Example usage:
//
//	var ErrHubIsNotConstructed = errors.New("Hub must be created via NewHub constructor")
//
//	type Hub struct {
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewHub(name string) (*Hub, error) {
//	    if strings.TrimSpace(name) == "" {
//	        return nil, errs.NewValueIsRequiredError("name")
//	    }
//	    return &Hub{name: name, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (h *Hub) Validate() error {
//	    return h.guard.Validate(ErrHubIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed. Call it only
// from the constructor of the owning type, after every field has been
// checked.
//
// Example:
//
//	func NewTrackParcelQuery(actor kernel.Actor, trackingID string) (TrackParcelQuery, error) {
//	    id, err := parcel.ParseTrackingID(trackingID)
//	    if err != nil {
//	        return TrackParcelQuery{}, err
//	    }
//	    return TrackParcelQuery{actor: actor, trackingID: id, guard: guard.NewConstructorGuard()}, nil
//	}
//
// Returns:
//   - A ConstructorGuard whose Validate returns nil
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate reports whether the owning object came from its constructor.
//
// Parameters:
//   - validationError: the error to return for a zero-value guard, usually the
//     owner's ErrXIsNotConstructed sentinel
//
// Example:
//
//	func (h *CreateHubCommandHandler) Handle(ctx context.Context, cmd CreateHubCommand) (*hub.Hub, error) {
//	    if err := cmd.Validate(); err != nil {
//	        return nil, err
//	    }
//	    // ...
//	}
//
// Returns:
//   - nil if the guard was created by NewConstructorGuard
//   - validationError if it was not
//   - ErrDefaultConstructorGuard if it was not and validationError is nil
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
