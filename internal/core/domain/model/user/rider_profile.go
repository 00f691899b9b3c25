package user

import (
	"errors"
	"fmt"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
)

// VehicleType is the kind of vehicle a rider uses.
type VehicleType string

const (
	VehicleMotorbike VehicleType = "MOTORBIKE"
	VehicleBicycle   VehicleType = "BICYCLE"
	VehicleScooter   VehicleType = "SCOOTER"
)

func (v VehicleType) Validate() error {
	switch v {
	case VehicleMotorbike, VehicleBicycle, VehicleScooter:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("vehicle type", fmt.Errorf("%q is not a valid vehicle type", string(v)))
	}
}

// RiderProfile is the rider-only part of a user: vehicle details, the hub the
// rider is pinned to and the current availability.
type RiderProfile struct {
	vehicleType   VehicleType
	vehicleNumber string
	licenseNumber string
	assignedHub   kernel.UUID
	availability  Availability
}

// NewRiderProfile builds a profile. New riders start AVAILABLE unless a
// different availability is restored from storage.
func NewRiderProfile(
	vehicleType VehicleType,
	vehicleNumber string,
	licenseNumber string,
	assignedHub kernel.UUID,
	availability Availability,
) (RiderProfile, error) {
	if availability == AvailabilityUnknown {
		availability = Available
	}

	var missing []error
	if strings.TrimSpace(vehicleNumber) == "" {
		missing = append(missing, errs.NewValueIsRequiredError("vehicleNumber"))
	}
	if strings.TrimSpace(licenseNumber) == "" {
		missing = append(missing, errs.NewValueIsRequiredError("licenseNumber"))
	}

	if err := errors.Join(
		vehicleType.Validate(),
		assignedHub.Validate(),
		availability.Validate(),
		errors.Join(missing...),
	); err != nil {
		return RiderProfile{}, err
	}

	return RiderProfile{
		vehicleType:   vehicleType,
		vehicleNumber: strings.TrimSpace(vehicleNumber),
		licenseNumber: strings.TrimSpace(licenseNumber),
		assignedHub:   assignedHub,
		availability:  availability,
	}, nil
}

func (r RiderProfile) VehicleType() VehicleType {
	return r.vehicleType
}

func (r RiderProfile) VehicleNumber() string {
	return r.vehicleNumber
}

func (r RiderProfile) LicenseNumber() string {
	return r.licenseNumber
}

func (r RiderProfile) AssignedHub() kernel.UUID {
	return r.assignedHub
}

func (r RiderProfile) Availability() Availability {
	return r.availability
}
