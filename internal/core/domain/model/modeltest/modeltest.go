// Package modeltest builds valid domain aggregates for tests in other packages.
package modeltest

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/fee"
	"parcelhub/internal/core/domain/model/hub"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

// PasswordHash only has to be non-empty; tests that check passwords hash their own.
const PasswordHash = "$2a$04$placeholder"

var (
	CreatedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	seq       atomic.Int64
)

func next() int64 {
	return seq.Add(1)
}

func Address(t testing.TB, label kernel.AddressLabel) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(kernel.NewUUID(), kernel.AddressParams{
		Label:       label,
		AddressLine: "House 4, Road 2",
		Area:        "Banani",
		City:        "Dhaka",
		PostalCode:  "1213",
		Country:     "Bangladesh",
	})
	require.NoError(t, err)
	return a
}

func Hub(t testing.TB) *hub.Hub {
	t.Helper()
	n := next()
	h, err := hub.NewHub(kernel.NewUUID(), fmt.Sprintf("Hub %d", n), "Gulshan 1", "+8801700000000", []string{"Gulshan", "Banani"})
	require.NoError(t, err)
	return h
}

// Customer is a USER with a phone and a HOME address.
func Customer(t testing.TB) *user.User {
	t.Helper()
	n := next()
	u, err := user.RestoreUser(
		kernel.NewUUID(),
		fmt.Sprintf("Customer %d", n),
		fmt.Sprintf("customer%d@example.com", n),
		PasswordHash,
		"+8801800000000",
		kernel.RoleUser,
		[]kernel.Address{Address(t, kernel.AddressLabelHome)},
		nil,
	)
	require.NoError(t, err)
	return u
}

func Admin(t testing.TB) *user.User {
	t.Helper()
	n := next()
	u, err := user.NewUser(kernel.NewUUID(), fmt.Sprintf("Admin %d", n), fmt.Sprintf("admin%d@example.com", n), PasswordHash, "", kernel.RoleAdmin, nil)
	require.NoError(t, err)
	return u
}

func SuperAdmin(t testing.TB) *user.User {
	t.Helper()
	n := next()
	u, err := user.NewUser(kernel.NewUUID(), fmt.Sprintf("Root %d", n), fmt.Sprintf("root%d@example.com", n), PasswordHash, "", kernel.RoleSuperAdmin, nil)
	require.NoError(t, err)
	return u
}

// Rider is a RIDER pinned to hubID with the given availability.
func Rider(t testing.TB, hubID kernel.UUID, availability user.Availability) *user.User {
	t.Helper()
	n := next()
	profile, err := user.NewRiderProfile(user.VehicleMotorbike, fmt.Sprintf("DHK-%d", n), fmt.Sprintf("LIC-%d", n), hubID, availability)
	require.NoError(t, err)
	u, err := user.NewUser(kernel.NewUUID(), fmt.Sprintf("Rider %d", n), fmt.Sprintf("rider%d@example.com", n), PasswordHash, "+8801900000000", kernel.RoleRider, &profile)
	require.NoError(t, err)
	return u
}

func Actor(t testing.TB, u *user.User) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(u.ID(), u.Role())
	require.NoError(t, err)
	return a
}

func FixedFee(t testing.TB, parcelType fee.ParcelType, baseFee float64) *fee.FeeConfig {
	t.Helper()
	c, err := fee.NewFeeConfig(kernel.NewUUID(), parcelType, fee.Fixed, baseFee, nil)
	require.NoError(t, err)
	return c
}

func WeightFee(t testing.TB, parcelType fee.ParcelType, baseFee, rate float64) *fee.FeeConfig {
	t.Helper()
	c, err := fee.NewFeeConfig(kernel.NewUUID(), parcelType, fee.WeightBased, baseFee, &rate)
	require.NoError(t, err)
	return c
}

// TrackingID returns a tracking id that is unique within the test binary.
func TrackingID(t testing.TB) parcel.TrackingID {
	t.Helper()
	id, err := parcel.NewTrackingID(CreatedAt, next()%parcel.TrackingIDSpace)
	require.NoError(t, err)
	return id
}

// Parcel opens a PENDING parcel between sender and receiver.
func Parcel(t testing.TB, senderID, receiverID, feeConfigID kernel.UUID) *parcel.Parcel {
	t.Helper()
	weight := 2.0
	p, err := parcel.NewParcel(parcel.Draft{
		ID:              kernel.NewUUID(),
		TrackingID:      TrackingID(t),
		SenderID:        senderID,
		ReceiverID:      receiverID,
		Priority:        parcel.PriorityNormal,
		PickupAddress:   Address(t, ""),
		DeliveryAddress: Address(t, ""),
		FeeConfigID:     feeConfigID,
		Weight:          &weight,
		DeliveryFee:     70,
		CreatedAt:       CreatedAt,
	})
	require.NoError(t, err)
	return p
}

// Assignment names the hubs and riders of a fully assigned parcel.
type Assignment struct {
	PickupHub, DeliveryHub     kernel.UUID
	PickupRider, DeliveryRider kernel.UUID
}

// ParcelInStatus restores a fully assigned parcel in the given status with a
// single PENDING log entry.
func ParcelInStatus(t testing.TB, senderID, receiverID kernel.UUID, a Assignment, status parcel.Status) *parcel.Parcel {
	t.Helper()
	weight := 2.0
	log, err := parcel.NewTrackingLog(kernel.NewUUID(), parcel.Pending, senderID, parcel.CreatedDescription, CreatedAt)
	require.NoError(t, err)
	p, err := parcel.RestoreParcel(parcel.Snapshot{
		Draft: parcel.Draft{
			ID:              kernel.NewUUID(),
			TrackingID:      TrackingID(t),
			SenderID:        senderID,
			ReceiverID:      receiverID,
			Priority:        parcel.PriorityNormal,
			PickupAddress:   Address(t, ""),
			DeliveryAddress: Address(t, ""),
			FeeConfigID:     kernel.NewUUID(),
			Weight:          &weight,
			DeliveryFee:     70,
			CreatedAt:       CreatedAt,
		},
		Status:          status,
		PickupHubID:     &a.PickupHub,
		DeliveryHubID:   &a.DeliveryHub,
		PickupRiderID:   &a.PickupRider,
		DeliveryRiderID: &a.DeliveryRider,
		CurrentHubID:    &a.PickupHub,
		TrackingLogs:    []parcel.TrackingLog{log},
		UpdatedAt:       CreatedAt,
	})
	require.NoError(t, err)
	return p
}
