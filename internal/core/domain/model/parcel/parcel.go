package parcel

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

// CreatedDescription is the description of the first tracking log entry.
const CreatedDescription = "Parcel created and waiting for pickup"

var (
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

	// ErrParcelIsClosed is returned when assignments are changed on a parcel in a terminal status.
	ErrParcelIsClosed = errors.New("parcel is in a terminal status")
)

// Draft carries everything needed to open a new parcel. Addresses are
// snapshots; the parcel never refers back to an address book.
type Draft struct {
	ID              kernel.UUID
	TrackingID      TrackingID
	SenderID        kernel.UUID
	ReceiverID      kernel.UUID
	Priority        Priority
	PickupAddress   kernel.Address
	DeliveryAddress kernel.Address
	FeeConfigID     kernel.UUID
	Weight          *float64
	Distance        *float64
	DeliveryFee     float64
	CreatedAt       time.Time
}

// Snapshot is the full persisted state of a parcel, used by RestoreParcel.
type Snapshot struct {
	Draft
	Status          Status
	PickupHubID     *kernel.UUID
	DeliveryHubID   *kernel.UUID
	PickupRiderID   *kernel.UUID
	DeliveryRiderID *kernel.UUID
	CurrentHubID    *kernel.UUID
	Remarks         string
	TrackingLogs    []TrackingLog
	UpdatedAt       time.Time
}

// Parcel is the aggregate root of the delivery lifecycle.
//
// Invariants:
//   - trackingID never changes after creation
//   - status only moves along the edges in transitions.go
//   - every status change appends exactly one TrackingLog
//   - logs are append-only
//
// Rider/hub consistency and rider availability involve other aggregates and
// are enforced by services.ParcelLifecycle before the parcel is mutated.
type Parcel struct {
	id              kernel.UUID
	trackingID      TrackingID
	senderID        kernel.UUID
	receiverID      kernel.UUID
	priority        Priority
	pickupHubID     *kernel.UUID
	deliveryHubID   *kernel.UUID
	pickupRiderID   *kernel.UUID
	deliveryRiderID *kernel.UUID
	currentHubID    *kernel.UUID
	pickupAddress   kernel.Address
	deliveryAddress kernel.Address
	feeConfigID     kernel.UUID
	weight          *float64
	distance        *float64
	deliveryFee     float64
	status          Status
	remarks         string
	logs            []TrackingLog
	persistedLogs   int
	createdAt       time.Time
	updatedAt       time.Time
	guard           guard.ConstructorGuard
}

// NewParcel opens a PENDING parcel and seeds its history with one entry
// attributed to the sender.
func NewParcel(d Draft) (*Parcel, error) {
	p := &Parcel{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := p.setDraft(d); err != nil {
		return nil, err
	}

	first, err := NewTrackingLog(kernel.NewUUID(), Pending, d.SenderID, CreatedDescription, d.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.logs = []TrackingLog{first}
	p.updatedAt = d.CreatedAt

	return p, nil
}

// RestoreParcel rebuilds a parcel from storage. Restored logs count as persisted.
func RestoreParcel(s Snapshot) (*Parcel, error) {
	p := &Parcel{guard: guard.NewConstructorGuard()}

	if err := errors.Join(p.setDraft(s.Draft), s.Status.Validate()); err != nil {
		return nil, err
	}
	if len(s.TrackingLogs) == 0 {
		return nil, errs.NewValueIsRequiredError("trackingLogs")
	}

	p.status = s.Status
	p.pickupHubID = s.PickupHubID
	p.deliveryHubID = s.DeliveryHubID
	p.pickupRiderID = s.PickupRiderID
	p.deliveryRiderID = s.DeliveryRiderID
	p.currentHubID = s.CurrentHubID
	p.remarks = s.Remarks
	p.logs = append([]TrackingLog(nil), s.TrackingLogs...)
	p.persistedLogs = len(p.logs)
	p.updatedAt = s.UpdatedAt

	return p, nil
}

func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Parcel) ID() kernel.UUID                 { return p.id }
func (p *Parcel) TrackingID() TrackingID          { return p.trackingID }
func (p *Parcel) SenderID() kernel.UUID           { return p.senderID }
func (p *Parcel) ReceiverID() kernel.UUID         { return p.receiverID }
func (p *Parcel) Priority() Priority              { return p.priority }
func (p *Parcel) PickupHubID() *kernel.UUID       { return p.pickupHubID }
func (p *Parcel) DeliveryHubID() *kernel.UUID     { return p.deliveryHubID }
func (p *Parcel) PickupRiderID() *kernel.UUID     { return p.pickupRiderID }
func (p *Parcel) DeliveryRiderID() *kernel.UUID   { return p.deliveryRiderID }
func (p *Parcel) CurrentHubID() *kernel.UUID      { return p.currentHubID }
func (p *Parcel) PickupAddress() kernel.Address   { return p.pickupAddress }
func (p *Parcel) DeliveryAddress() kernel.Address { return p.deliveryAddress }
func (p *Parcel) FeeConfigID() kernel.UUID        { return p.feeConfigID }
func (p *Parcel) Weight() *float64                { return p.weight }
func (p *Parcel) Distance() *float64              { return p.distance }
func (p *Parcel) DeliveryFee() float64            { return p.deliveryFee }
func (p *Parcel) Status() Status                  { return p.status }
func (p *Parcel) Remarks() string                 { return p.remarks }
func (p *Parcel) CreatedAt() time.Time            { return p.createdAt }
func (p *Parcel) UpdatedAt() time.Time            { return p.updatedAt }

// TrackingLogs returns a copy of the full history, oldest first.
func (p *Parcel) TrackingLogs() []TrackingLog {
	return append([]TrackingLog(nil), p.logs...)
}

// NewTrackingLogs returns the entries appended since the parcel was created or restored.
func (p *Parcel) NewTrackingLogs() []TrackingLog {
	return append([]TrackingLog(nil), p.logs[p.persistedLogs:]...)
}

// MarkPersisted records that every log entry has been stored.
func (p *Parcel) MarkPersisted() {
	p.persistedLogs = len(p.logs)
}

// AssignPickupHub sets the pickup hub. Existence of the hub and the admin role
// are checked by the caller.
func (p *Parcel) AssignPickupHub(hubID kernel.UUID) error {
	return p.assign(&p.pickupHubID, hubID)
}

func (p *Parcel) AssignDeliveryHub(hubID kernel.UUID) error {
	return p.assign(&p.deliveryHubID, hubID)
}

// AssignPickupRider sets the pickup rider. Rider role, hub pinning and
// availability are checked by the caller.
func (p *Parcel) AssignPickupRider(riderID kernel.UUID) error {
	return p.assign(&p.pickupRiderID, riderID)
}

func (p *Parcel) AssignDeliveryRider(riderID kernel.UUID) error {
	return p.assign(&p.deliveryRiderID, riderID)
}

// SetRemarks replaces the free-text remarks.
func (p *Parcel) SetRemarks(remarks string) {
	p.remarks = strings.TrimSpace(remarks)
}

// CanTransition reports whether actor may move the parcel to target right now.
// Checks run in order: known target, role, identity, current status, and for
// APPROVED the presence of all four assignments.
func (p *Parcel) CanTransition(actor kernel.Actor, target Status) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	rule, ok := getTransitions()[target]
	if !ok {
		return invalidStatusUpdate(fmt.Errorf("%s cannot be requested", target))
	}

	if err := rule.gate.authorize(actor, p, target); err != nil {
		return err
	}

	if p.status != rule.from {
		return invalidStatusUpdate(fmt.Errorf("cannot move from %s to %s, parcel must be %s", p.status, target, rule.from))
	}

	if target == Approved {
		return p.ensureFullyAssigned()
	}

	return nil
}

// Transition moves the parcel to target and appends one tracking log entry.
// APPROVED moves the parcel to the pickup hub, AT_HUB to the delivery hub.
func (p *Parcel) Transition(actor kernel.Actor, target Status, at time.Time) error {
	if err := p.CanTransition(actor, target); err != nil {
		return err
	}

	description := getTransitions()[target].description
	if p.remarks != "" && target.IsTerminal() {
		description = description + ": " + p.remarks
	}

	entry, err := NewTrackingLog(kernel.NewUUID(), target, actor.UserID(), description, at)
	if err != nil {
		return err
	}

	switch target {
	case Approved:
		hub := *p.pickupHubID
		p.currentHubID = &hub
	case AtHub:
		hub := *p.deliveryHubID
		p.currentHubID = &hub
	}

	p.status = target
	p.logs = append(p.logs, entry)
	p.updatedAt = at
	return nil
}

// CanBeReadBy applies the tracking read rule: admins always, users only as
// sender or receiver, riders only as pickup or delivery rider.
func (p *Parcel) CanBeReadBy(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	switch {
	case actor.IsAdmin():
		return nil
	case actor.Role() == kernel.RoleUser && (actor.Is(p.senderID) || actor.Is(p.receiverID)):
		return nil
	case actor.Role() == kernel.RoleRider && (actor.IsOptional(p.pickupRiderID) || actor.IsOptional(p.deliveryRiderID)):
		return nil
	}

	return errs.NewUnauthorizedError("track parcel " + p.trackingID.String())
}

func (p *Parcel) ensureFullyAssigned() error {
	var missing []error
	if p.pickupHubID == nil {
		missing = append(missing, errs.NewValueIsRequiredError("pickupHub"))
	}
	if p.deliveryHubID == nil {
		missing = append(missing, errs.NewValueIsRequiredError("deliveryHub"))
	}
	if p.pickupRiderID == nil {
		missing = append(missing, errs.NewValueIsRequiredError("pickupRider"))
	}
	if p.deliveryRiderID == nil {
		missing = append(missing, errs.NewValueIsRequiredError("deliveryRider"))
	}
	return errors.Join(missing...)
}

func (p *Parcel) assign(field **kernel.UUID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if p.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("assignment", fmt.Errorf("%w: %s", ErrParcelIsClosed, p.status))
	}
	*field = &id
	return nil
}

func (p *Parcel) setDraft(d Draft) error {
	priority := d.Priority
	if priority == "" {
		priority = PriorityNormal
	}

	var createdAt error
	if d.CreatedAt.IsZero() {
		createdAt = errs.NewValueIsRequiredError("createdAt")
	}

	if err := errors.Join(
		d.ID.Validate(),
		d.TrackingID.Validate(),
		d.SenderID.Validate(),
		d.ReceiverID.Validate(),
		priority.Validate(),
		d.PickupAddress.Validate(),
		d.DeliveryAddress.Validate(),
		d.FeeConfigID.Validate(),
		positiveOptional("weight", d.Weight),
		positiveOptional("distance", d.Distance),
		nonNegative("deliveryFee", d.DeliveryFee),
		createdAt,
	); err != nil {
		return err
	}

	p.id = d.ID
	p.trackingID = d.TrackingID
	p.senderID = d.SenderID
	p.receiverID = d.ReceiverID
	p.priority = priority
	p.pickupAddress = d.PickupAddress
	p.deliveryAddress = d.DeliveryAddress
	p.feeConfigID = d.FeeConfigID
	p.weight = copyFloat(d.Weight)
	p.distance = copyFloat(d.Distance)
	p.deliveryFee = d.DeliveryFee
	p.createdAt = d.CreatedAt
	return nil
}

func positiveOptional(name string, v *float64) error {
	if v == nil {
		return nil
	}
	if *v <= 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return errs.NewValueIsOutOfRangeErrorWithCause(name, *v, 0, math.MaxFloat64, fmt.Errorf("%s must be greater than 0", name))
	}
	return nil
}

func nonNegative(name string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return errs.NewValueIsOutOfRangeError(name, v, 0, math.MaxFloat64)
	}
	return nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
