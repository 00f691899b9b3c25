package parcel

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// Status is the lifecycle state of a parcel.
//
//	PENDING ──┬──> APPROVED ──> PICKED_UP ──┬──> IN_TRANSIT
//	          ├──> REJECTED                 └──> AT_HUB ──> OUT_FOR_DELIVERY ──┬──> DELIVERED
//	          └──> CANCELLED                                                  ├──> DELIVERY_FAILED
//	                                                                          └──> REASSIGNED
//
// CANCELLED, REJECTED, DELIVERED, DELIVERY_FAILED and REASSIGNED are terminal.
// Who may take each edge is defined in transitions.go.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Approved
	Rejected
	Cancelled
	PickedUp
	InTransit
	AtHub
	OutForDelivery
	Delivered
	DeliveryFailed
	Reassigned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Pending:        "PENDING",
		Approved:       "APPROVED",
		Rejected:       "REJECTED",
		Cancelled:      "CANCELLED",
		PickedUp:       "PICKED_UP",
		InTransit:      "IN_TRANSIT",
		AtHub:          "AT_HUB",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		DeliveryFailed: "DELIVERY_FAILED",
		Reassigned:     "REASSIGNED",
	}
}

// ParseStatus converts a status name into a Status. Unknown names are an
// invalid status update.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, invalidStatusUpdate(fmt.Errorf("%q is not a known status", s))
}

// Validate checks that the status is one of the defined states.
func (s Status) Validate() error {
	if s < Pending || s > Reassigned {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the lifecycle has ended.
func (s Status) IsTerminal() bool {
	switch s {
	case Cancelled, Rejected, Delivered, DeliveryFailed, Reassigned:
		return true
	default:
		return false
	}
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{
		Pending, Approved, Rejected, Cancelled, PickedUp, InTransit,
		AtHub, OutForDelivery, Delivered, DeliveryFailed, Reassigned,
	}
}
