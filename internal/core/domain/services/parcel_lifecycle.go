package services

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/hub"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
)

// ErrAssignmentsLocked is the cause of rejecting hub or rider changes once the
// parcel has left PENDING.
var ErrAssignmentsLocked = errors.New("hubs and riders can only change while the parcel is PENDING")

// HubRef is a hub id from an update request together with the hub it
// resolved to. Hub is nil when the id did not resolve.
type HubRef struct {
	ID  kernel.UUID
	Hub *hub.Hub
}

// RiderRef is a rider id from an update request together with the user it
// resolved to. User is nil when the id did not resolve.
type RiderRef struct {
	ID   kernel.UUID
	User *user.User
}

// ParcelUpdate is a fully resolved update request. Nil fields are absent from
// the request.
type ParcelUpdate struct {
	Actor         kernel.Actor
	Status        *parcel.Status
	Remarks       *string
	PickupHub     *HubRef
	DeliveryHub   *HubRef
	PickupRider   *RiderRef
	DeliveryRider *RiderRef

	// AssignedRiders are the riders already on the parcel. They are needed to
	// re-check a kept rider against a changed hub, to re-validate riders on
	// APPROVED and to flip availability on OUT_FOR_DELIVERY and DELIVERED.
	AssignedRiders []*user.User

	// OtherOutForDelivery is the number of OUT_FOR_DELIVERY parcels of the
	// delivery rider, excluding this parcel. Used on DELIVERED.
	OtherOutForDelivery int64
}

// HasAssignments reports whether the update touches hubs or riders.
func (u ParcelUpdate) HasAssignments() bool {
	return u.PickupHub != nil || u.DeliveryHub != nil || u.PickupRider != nil || u.DeliveryRider != nil
}

// KnowsRider reports whether the rider with id is already among the resolved
// request riders or the assigned riders.
func (u ParcelUpdate) KnowsRider(id kernel.UUID) bool {
	return u.rider(id) != nil
}

func (u ParcelUpdate) rider(id kernel.UUID) *user.User {
	for _, ref := range []*RiderRef{u.PickupRider, u.DeliveryRider} {
		if ref != nil && ref.User != nil && ref.User.ID().IsEqual(id) {
			return ref.User
		}
	}
	for _, r := range u.AssignedRiders {
		if r != nil && r.ID().IsEqual(id) {
			return r
		}
	}
	return nil
}

// ParcelUpdateOutcome lists the rider aggregates whose availability changed
// and must be persisted with the parcel.
type ParcelUpdateOutcome struct {
	Riders []*user.User
}

// ParcelLifecycle is the domain service behind every parcel update. It owns
// the rules that span the Parcel, Hub and User aggregates:
//
//  1. hub and rider fields: admins only (Forbidden), PENDING parcels only
//     (BadRequest)
//  2. hub fields: hub must exist (NotFound); a rider kept on a leg whose hub
//     changes must be assignable to the new hub (BadRequest)
//  3. rider fields: user must exist, be a RIDER pinned to the effective hub
//     and be AVAILABLE (BadRequest)
//  4. status: the parcel's transition gate, approval re-validation of both
//     riders, then rider availability side effects
//
// Either the whole update applies or the parcel is left exactly as it was.
type ParcelLifecycle struct{}

func NewParcelLifecycle() ParcelLifecycle {
	return ParcelLifecycle{}
}

// Apply validates and applies u to p at the given time.
func (l ParcelLifecycle) Apply(p *parcel.Parcel, u ParcelUpdate, at time.Time) (*ParcelUpdateOutcome, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := u.Actor.Validate(); err != nil {
		return nil, err
	}

	saved := *p
	outcome, err := l.apply(p, u, at)
	if err != nil {
		*p = saved
		return nil, err
	}
	return outcome, nil
}

func (l ParcelLifecycle) apply(p *parcel.Parcel, u ParcelUpdate, at time.Time) (*ParcelUpdateOutcome, error) {
	if u.HasAssignments() && !u.Actor.IsAdmin() {
		return nil, errs.NewForbiddenErrorWithCause("assign hubs and riders", errors.New("only an admin can assign hubs and riders"))
	}
	if u.HasAssignments() && p.Status() != parcel.Pending {
		return nil, errs.NewValueIsInvalidErrorWithCause(assignmentField(u), ErrAssignmentsLocked)
	}

	if err := l.assignHub(u.PickupHub, "pickupHub", p.AssignPickupHub); err != nil {
		return nil, err
	}
	if err := l.assignHub(u.DeliveryHub, "deliveryHub", p.AssignDeliveryHub); err != nil {
		return nil, err
	}
	if err := l.recheckKeptRider(u, u.PickupHub, u.PickupRider, p.PickupRiderID(), "pickupRider"); err != nil {
		return nil, err
	}
	if err := l.recheckKeptRider(u, u.DeliveryHub, u.DeliveryRider, p.DeliveryRiderID(), "deliveryRider"); err != nil {
		return nil, err
	}
	if err := l.assignRider(u.PickupRider, p.PickupHubID(), "pickupRider", p.AssignPickupRider); err != nil {
		return nil, err
	}
	if err := l.assignRider(u.DeliveryRider, p.DeliveryHubID(), "deliveryRider", p.AssignDeliveryRider); err != nil {
		return nil, err
	}

	if u.Remarks != nil {
		if u.Status == nil && !u.Actor.IsAdmin() {
			return nil, errs.NewForbiddenErrorWithCause("update remarks", errors.New("remarks without a status change are admin only"))
		}
		p.SetRemarks(*u.Remarks)
	}

	outcome := &ParcelUpdateOutcome{}
	if u.Status == nil {
		return outcome, nil
	}
	target := *u.Status

	if err := p.CanTransition(u.Actor, target); err != nil {
		return nil, err
	}

	var deliveryRider *user.User
	switch target {
	case parcel.Approved:
		if err := l.revalidateRiders(p, u); err != nil {
			return nil, err
		}
	case parcel.OutForDelivery, parcel.Delivered:
		var err error
		if deliveryRider, err = l.requireRider(u, *p.DeliveryRiderID(), "deliveryRider"); err != nil {
			return nil, err
		}
	}

	if err := p.Transition(u.Actor, target, at); err != nil {
		return nil, err
	}

	switch target {
	case parcel.OutForDelivery:
		if err := deliveryRider.StartDelivery(); err != nil {
			return nil, err
		}
		outcome.Riders = append(outcome.Riders, deliveryRider)
	case parcel.Delivered:
		changed, err := deliveryRider.FinishDelivery(u.OtherOutForDelivery)
		if err != nil {
			return nil, err
		}
		if changed {
			outcome.Riders = append(outcome.Riders, deliveryRider)
		}
	}

	return outcome, nil
}

func (l ParcelLifecycle) assignHub(ref *HubRef, field string, assign func(kernel.UUID) error) error {
	if ref == nil {
		return nil
	}
	if ref.Hub == nil {
		return errs.NewObjectNotFoundError(field, ref.ID)
	}
	return assign(ref.Hub.ID())
}

// recheckKeptRider validates the rider already on a leg against the hub the
// same request moved that leg to. A rider replaced in the request is checked
// by assignRider instead.
func (l ParcelLifecycle) recheckKeptRider(u ParcelUpdate, hubRef *HubRef, riderRef *RiderRef, current *kernel.UUID, field string) error {
	if hubRef == nil || riderRef != nil || current == nil {
		return nil
	}
	rider, err := l.requireRider(u, *current, field)
	if err != nil {
		return err
	}
	return rider.EnsureAssignableTo(hubRef.Hub.ID())
}

// assignRider validates the rider against the effective hub, which is the hub
// already applied from the same request or else the parcel's stored hub.
func (l ParcelLifecycle) assignRider(ref *RiderRef, effectiveHub *kernel.UUID, field string, assign func(kernel.UUID) error) error {
	if ref == nil {
		return nil
	}
	if ref.User == nil {
		return errs.NewValueIsInvalidErrorWithCause(field, errors.New("rider "+ref.ID.String()+" does not exist"))
	}
	if effectiveHub == nil {
		return errs.NewValueIsRequiredErrorWithCause(hubFieldFor(field), errors.New("assign the hub before its rider"))
	}
	if err := ref.User.EnsureAssignableTo(*effectiveHub); err != nil {
		return err
	}
	return assign(ref.User.ID())
}

func (l ParcelLifecycle) revalidateRiders(p *parcel.Parcel, u ParcelUpdate) error {
	pickup, err := l.requireRider(u, *p.PickupRiderID(), "pickupRider")
	if err != nil {
		return err
	}
	if err = pickup.EnsureAssignableTo(*p.PickupHubID()); err != nil {
		return err
	}

	delivery, err := l.requireRider(u, *p.DeliveryRiderID(), "deliveryRider")
	if err != nil {
		return err
	}
	return delivery.EnsureAssignableTo(*p.DeliveryHubID())
}

// requireRider finds the rider among the request's resolved riders and the
// parcel's current riders.
func (l ParcelLifecycle) requireRider(u ParcelUpdate, id kernel.UUID, field string) (*user.User, error) {
	if r := u.rider(id); r != nil {
		return r, nil
	}
	return nil, errs.NewValueIsInvalidErrorWithCause(field, errors.New("rider "+id.String()+" does not exist"))
}

func assignmentField(u ParcelUpdate) string {
	switch {
	case u.PickupHub != nil:
		return "pickupHub"
	case u.DeliveryHub != nil:
		return "deliveryHub"
	case u.PickupRider != nil:
		return "pickupRider"
	default:
		return "deliveryRider"
	}
}

func hubFieldFor(riderField string) string {
	if riderField == "pickupRider" {
		return "pickupHub"
	}
	return "deliveryHub"
}
