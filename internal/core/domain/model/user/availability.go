package user

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// Availability is the dispatch state of a rider.
//
//	AVAILABLE ──(starts OUT_FOR_DELIVERY leg)──> ON_DELIVERY
//	    ^                                             │
//	    └──────(no OUT_FOR_DELIVERY parcels left)─────┘
//
// INACTIVE riders are never assigned and never flipped automatically.
type Availability int

const (
	AvailabilityUnknown Availability = iota
	Available
	OnDelivery
	Inactive
)

func getAvailabilityStrings() map[Availability]string {
	return map[Availability]string{
		AvailabilityUnknown: "UNKNOWN",
		Available:           "AVAILABLE",
		OnDelivery:          "ON_DELIVERY",
		Inactive:            "INACTIVE",
	}
}

// ParseAvailability converts the persisted name back to an Availability.
func ParseAvailability(s string) (Availability, error) {
	for a, name := range getAvailabilityStrings() {
		if a != AvailabilityUnknown && name == s {
			return a, nil
		}
	}
	return AvailabilityUnknown, errs.NewValueIsInvalidErrorWithCause(
		"availability status is invalid",
		fmt.Errorf("%q is not a valid availability status", s),
	)
}

func (a Availability) Validate() error {
	if a < Available || a > Inactive {
		return errs.NewValueIsInvalidErrorWithCause(
			"availability status is invalid",
			fmt.Errorf("%d is not a valid availability status", a),
		)
	}
	return nil
}

func (a Availability) String() string {
	if str, ok := getAvailabilityStrings()[a]; ok {
		return str
	}
	return "UNKNOWN"
}
