package parcel

import (
	"errors"
	"fmt"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
)

// ErrInvalidStatusUpdate is the cause of every rejected status target.
var ErrInvalidStatusUpdate = errors.New("invalid status update")

// gate names the party allowed to take a transition.
type gate int

const (
	gateSender gate = iota + 1
	gateAdmin
	gatePickupRider
	gateDeliveryRider
)

type transition struct {
	from        Status
	gate        gate
	description string
}

// getTransitions maps each reachable target to its single source state and gate.
// Targets missing from the table (PENDING and UNKNOWN) cannot be requested.
func getTransitions() map[Status]transition {
	return map[Status]transition{
		Cancelled:      {Pending, gateSender, "Parcel cancelled by sender"},
		Approved:       {Pending, gateAdmin, "Parcel approved and riders assigned"},
		Rejected:       {Pending, gateAdmin, "Parcel rejected"},
		PickedUp:       {Approved, gatePickupRider, "Parcel picked up by rider"},
		InTransit:      {PickedUp, gatePickupRider, "Parcel in transit"},
		AtHub:          {PickedUp, gatePickupRider, "Parcel arrived at delivery hub"},
		OutForDelivery: {AtHub, gateDeliveryRider, "Parcel out for delivery"},
		Delivered:      {OutForDelivery, gateDeliveryRider, "Parcel delivered"},
		DeliveryFailed: {OutForDelivery, gateDeliveryRider, "Delivery attempt failed"},
		Reassigned:     {OutForDelivery, gateDeliveryRider, "Parcel reassigned"},
	}
}

// SourceStatus returns the only status a parcel may be in to move to target.
func SourceStatus(target Status) (Status, bool) {
	t, ok := getTransitions()[target]
	return t.from, ok
}

func invalidStatusUpdate(cause error) error {
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%w: %w", ErrInvalidStatusUpdate, cause))
}

// authorize checks role first (Forbidden), then identity (Unauthorized).
func (g gate) authorize(actor kernel.Actor, p *Parcel, target Status) error {
	action := "set status " + target.String()

	switch g {
	case gateSender:
		if actor.Role() != kernel.RoleUser {
			return errs.NewForbiddenErrorWithCause(action, errors.New("only the sender can cancel a parcel"))
		}
		if !actor.Is(p.senderID) {
			return errs.NewUnauthorizedErrorWithCause(action, errors.New("actor is not the sender of this parcel"))
		}
	case gateAdmin:
		if !actor.IsAdmin() {
			return errs.NewForbiddenErrorWithCause(action, errors.New("only an admin can approve or reject"))
		}
	case gatePickupRider:
		if actor.Role() != kernel.RoleRider {
			return errs.NewForbiddenErrorWithCause(action, errors.New("only a rider can update pickup status"))
		}
		if !actor.IsOptional(p.pickupRiderID) {
			return errs.NewUnauthorizedErrorWithCause(action, errors.New("actor is not the pickup rider of this parcel"))
		}
	case gateDeliveryRider:
		if actor.Role() != kernel.RoleRider {
			return errs.NewForbiddenErrorWithCause(action, errors.New("only a rider can update delivery status"))
		}
		if !actor.IsOptional(p.deliveryRiderID) {
			return errs.NewUnauthorizedErrorWithCause(action, errors.New("actor is not the delivery rider of this parcel"))
		}
	default:
		return invalidStatusUpdate(fmt.Errorf("no gate for %s", target))
	}
	return nil
}
