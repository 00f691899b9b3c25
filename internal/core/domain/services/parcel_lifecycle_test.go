package services_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/hub"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type world struct {
	sender        *user.User
	hubX, hubY    *hub.Hub
	pickupRider   *user.User
	deliveryRider *user.User
	admin         kernel.Actor
}

func newWorld(t *testing.T) world {
	t.Helper()
	hubX, err := hub.NewHub(kernel.NewUUID(), "Hub X", "Mirpur", "+8801700000001", []string{"Mirpur"})
	require.NoError(t, err)
	hubY, err := hub.NewHub(kernel.NewUUID(), "Hub Y", "Uttara", "+8801700000002", []string{"Uttara"})
	require.NoError(t, err)
	sender, err := user.NewUser(kernel.NewUUID(), "Sender", "sender@example.com", "hash", "+8801800000000", kernel.RoleUser, nil)
	require.NoError(t, err)
	admin, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin)
	require.NoError(t, err)

	return world{
		sender:        sender,
		hubX:          hubX,
		hubY:          hubY,
		pickupRider:   newRider(t, hubX.ID(), user.Available),
		deliveryRider: newRider(t, hubY.ID(), user.Available),
		admin:         admin,
	}
}

func newRider(t *testing.T, hubID kernel.UUID, availability user.Availability) *user.User {
	t.Helper()
	profile, err := user.NewRiderProfile(user.VehicleMotorbike, "DHA-1", "LIC-1", hubID, availability)
	require.NoError(t, err)
	id := kernel.NewUUID()
	r, err := user.NewUser(id, "Rider", id.String()+"@riders.example.com", "hash", "+8801900000000", kernel.RoleRider, &profile)
	require.NoError(t, err)
	return r
}

func actorOf(t *testing.T, u *user.User) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(u.ID(), u.Role())
	require.NoError(t, err)
	return a
}

func pendingParcel(t *testing.T, w world) *parcel.Parcel {
	t.Helper()
	addr, err := kernel.NewAddress(kernel.NewUUID(), kernel.AddressParams{
		AddressLine: "Road 1", Area: "Mirpur", City: "Dhaka", PostalCode: "1216", Country: "Bangladesh",
	})
	require.NoError(t, err)
	trackingID, err := parcel.NewTrackingID(now, 1)
	require.NoError(t, err)
	p, err := parcel.NewParcel(parcel.Draft{
		ID:              kernel.NewUUID(),
		TrackingID:      trackingID,
		SenderID:        w.sender.ID(),
		ReceiverID:      kernel.NewUUID(),
		PickupAddress:   addr,
		DeliveryAddress: addr,
		FeeConfigID:     kernel.NewUUID(),
		DeliveryFee:     60,
		CreatedAt:       now,
	})
	require.NoError(t, err)
	return p
}

func status(s parcel.Status) *parcel.Status {
	return &s
}

// assignAll puts both hubs and both riders on a pending parcel.
func assignAll(t *testing.T, w world, p *parcel.Parcel) {
	t.Helper()
	_, err := services.NewParcelLifecycle().Apply(p, services.ParcelUpdate{
		Actor:         w.admin,
		PickupHub:     &services.HubRef{ID: w.hubX.ID(), Hub: w.hubX},
		DeliveryHub:   &services.HubRef{ID: w.hubY.ID(), Hub: w.hubY},
		PickupRider:   &services.RiderRef{ID: w.pickupRider.ID(), User: w.pickupRider},
		DeliveryRider: &services.RiderRef{ID: w.deliveryRider.ID(), User: w.deliveryRider},
	}, now)
	require.NoError(t, err)
}

func TestParcelLifecycle_Assignments(t *testing.T) {
	lifecycle := services.NewParcelLifecycle()

	t.Run("assignment only update writes no log", func(t *testing.T) {
		w := newWorld(t)
		p := pendingParcel(t, w)

		assignAll(t, w, p)

		assert.True(t, p.PickupHubID().IsEqual(w.hubX.ID()))
		assert.True(t, p.DeliveryRiderID().IsEqual(w.deliveryRider.ID()))
		assert.Len(t, p.TrackingLogs(), 1)
		assert.Equal(t, parcel.Pending, p.Status())
	})

	t.Run("non admin assigning is forbidden", func(t *testing.T) {
		w := newWorld(t)
		p := pendingParcel(t, w)

		_, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:     actorOf(t, w.sender),
			PickupHub: &services.HubRef{ID: kernel.NewUUID()},
		}, now)

		assert.ErrorIs(t, err, errs.ErrForbidden)
		assert.Nil(t, p.PickupHubID())
	})

	t.Run("missing hub is not found", func(t *testing.T) {
		w := newWorld(t)
		p := pendingParcel(t, w)

		_, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:       w.admin,
			DeliveryHub: &services.HubRef{ID: kernel.NewUUID()},
		}, now)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("rider from another hub is rejected and not applied", func(t *testing.T) {
		w := newWorld(t)
		p := pendingParcel(t, w)
		riderOnX := newRider(t, w.hubX.ID(), user.Available)

		_, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:         w.admin,
			DeliveryHub:   &services.HubRef{ID: w.hubY.ID(), Hub: w.hubY},
			DeliveryRider: &services.RiderRef{ID: riderOnX.ID(), User: riderOnX},
		}, now)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, p.DeliveryRiderID())
		assert.Nil(t, p.DeliveryHubID(), "whole update is discarded")
	})

	t.Run("effective hub prefers the hub in the same request", func(t *testing.T) {
		w := newWorld(t)
		p := pendingParcel(t, w)
		require.NoError(t, p.AssignPickupHub(w.hubY.ID()))

		_, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:       w.admin,
			PickupHub:   &services.HubRef{ID: w.hubX.ID(), Hub: w.hubX},
			PickupRider: &services.RiderRef{ID: w.pickupRider.ID(), User: w.pickupRider},
		}, now)

		require.NoError(t, err)
		assert.True(t, p.PickupRiderID().IsEqual(w.pickupRider.ID()))
	})

	t.Run("effective hub falls back to the stored hub", func(t *testing.T) {
		w := newWorld(t)
		p := pendingParcel(t, w)
		require.NoError(t, p.AssignPickupHub(w.hubY.ID()))

		_, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:       w.admin,
			PickupRider: &services.RiderRef{ID: w.pickupRider.ID(), User: w.pickupRider},
		}, now)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, p.PickupRiderID())
	})

	t.Run("rider without any hub is a bad request", func(t *testing.T) {
		w := newWorld(t)
		p := pendingParcel(t, w)

		_, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:       w.admin,
			PickupRider: &services.RiderRef{ID: w.pickupRider.ID(), User: w.pickupRider},
		}, now)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown user, non rider and busy rider are bad requests", func(t *testing.T) {
		w := newWorld(t)
		busy := newRider(t, w.hubX.ID(), user.OnDelivery)

		for _, ref := range []*services.RiderRef{
			{ID: kernel.NewUUID()},
			{ID: w.sender.ID(), User: w.sender},
			{ID: busy.ID(), User: busy},
		} {
			p := pendingParcel(t, w)

			_, err := lifecycle.Apply(p, services.ParcelUpdate{
				Actor:       w.admin,
				PickupHub:   &services.HubRef{ID: w.hubX.ID(), Hub: w.hubX},
				PickupRider: ref,
			}, now)

			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.True(t, errs.IsBadRequest(err))
			assert.Nil(t, p.PickupRiderID())
		}
	})
}

func TestParcelLifecycle_HubChangeKeepsLegConsistent(t *testing.T) {
	lifecycle := services.NewParcelLifecycle()

	t.Run("moving a leg away from its rider's hub is rejected", func(t *testing.T) {
		w := newWorld(t)
		p := pendingParcel(t, w)
		assignAll(t, w, p)

		_, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:          w.admin,
			DeliveryHub:    &services.HubRef{ID: w.hubX.ID(), Hub: w.hubX},
			AssignedRiders: []*user.User{w.deliveryRider},
		}, now)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, errs.IsBadRequest(err))
		assert.True(t, p.DeliveryHubID().IsEqual(w.hubY.ID()))
	})

	t.Run("kept rider pinned to the new hub is accepted", func(t *testing.T) {
		w := newWorld(t)
		p := pendingParcel(t, w)
		assignAll(t, w, p)
		hubY2, err := hub.NewHub(kernel.NewUUID(), "Hub Y2", "Uttara", "+8801700000003", []string{"Uttara"})
		require.NoError(t, err)
		movedRider := newRider(t, hubY2.ID(), user.Available)
		_, err = lifecycle.Apply(p, services.ParcelUpdate{
			Actor:         w.admin,
			DeliveryHub:   &services.HubRef{ID: hubY2.ID(), Hub: hubY2},
			DeliveryRider: &services.RiderRef{ID: movedRider.ID(), User: movedRider},
		}, now)
		require.NoError(t, err)

		_, err = lifecycle.Apply(p, services.ParcelUpdate{
			Actor:          w.admin,
			DeliveryHub:    &services.HubRef{ID: hubY2.ID(), Hub: hubY2},
			AssignedRiders: []*user.User{movedRider},
		}, now)

		require.NoError(t, err)
		assert.True(t, p.DeliveryRiderID().IsEqual(movedRider.ID()))
	})

	t.Run("kept rider that cannot be loaded is rejected", func(t *testing.T) {
		w := newWorld(t)
		p := pendingParcel(t, w)
		assignAll(t, w, p)

		_, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:     w.admin,
			PickupHub: &services.HubRef{ID: w.hubY.ID(), Hub: w.hubY},
		}, now)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, p.PickupHubID().IsEqual(w.hubX.ID()))
	})
}

func TestParcelLifecycle_AssignmentsOnlyWhilePending(t *testing.T) {
	lifecycle := services.NewParcelLifecycle()

	t.Run("hub change after approval is rejected", func(t *testing.T) {
		w := newWorld(t)
		p := approved(t, w)

		_, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:       w.admin,
			DeliveryHub: &services.HubRef{ID: w.hubX.ID(), Hub: w.hubX},
		}, now)

		require.ErrorIs(t, err, services.ErrAssignmentsLocked)
		assert.True(t, errs.IsBadRequest(err))
		assert.True(t, p.DeliveryHubID().IsEqual(w.hubY.ID()))
		assert.Equal(t, parcel.Approved, p.Status())
	})

	t.Run("delivery rider swap while out for delivery is rejected", func(t *testing.T) {
		w := newWorld(t)
		p := approved(t, w)
		advance(t, w, p, parcel.PickedUp, parcel.AtHub, parcel.OutForDelivery)
		replacement := newRider(t, w.hubY.ID(), user.Available)

		outcome, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:         w.admin,
			DeliveryRider: &services.RiderRef{ID: replacement.ID(), User: replacement},
		}, now)

		require.ErrorIs(t, err, services.ErrAssignmentsLocked)
		assert.Nil(t, outcome)
		assert.True(t, p.DeliveryRiderID().IsEqual(w.deliveryRider.ID()))
		assert.Equal(t, user.OnDelivery, w.deliveryRider.RiderProfile().Availability())
		assert.Equal(t, user.Available, replacement.RiderProfile().Availability())
	})

	t.Run("non admin is still forbidden rather than locked", func(t *testing.T) {
		w := newWorld(t)
		p := approved(t, w)

		_, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:     actorOf(t, w.pickupRider),
			PickupHub: &services.HubRef{ID: w.hubX.ID(), Hub: w.hubX},
		}, now)

		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestParcelLifecycle_Approval(t *testing.T) {
	lifecycle := services.NewParcelLifecycle()

	t.Run("assign and approve in one call sets current hub", func(t *testing.T) {
		w := newWorld(t)
		p := pendingParcel(t, w)

		_, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:         w.admin,
			Status:        status(parcel.Approved),
			PickupHub:     &services.HubRef{ID: w.hubX.ID(), Hub: w.hubX},
			DeliveryHub:   &services.HubRef{ID: w.hubY.ID(), Hub: w.hubY},
			PickupRider:   &services.RiderRef{ID: w.pickupRider.ID(), User: w.pickupRider},
			DeliveryRider: &services.RiderRef{ID: w.deliveryRider.ID(), User: w.deliveryRider},
		}, now)

		require.NoError(t, err)
		assert.Equal(t, parcel.Approved, p.Status())
		assert.True(t, p.CurrentHubID().IsEqual(w.hubX.ID()))
		require.Len(t, p.TrackingLogs(), 2)
		assert.True(t, p.TrackingLogs()[1].UpdatedBy().IsEqual(w.admin.UserID()))
	})

	t.Run("approval without assignments is a bad request", func(t *testing.T) {
		w := newWorld(t)
		p := pendingParcel(t, w)

		_, err := lifecycle.Apply(p, services.ParcelUpdate{Actor: w.admin, Status: status(parcel.Approved)}, now)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, parcel.Pending, p.Status())
	})

	t.Run("approval re-validates rider availability", func(t *testing.T) {
		w := newWorld(t)
		p := pendingParcel(t, w)
		assignAll(t, w, p)
		require.NoError(t, w.deliveryRider.StartDelivery())

		_, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:          w.admin,
			Status:         status(parcel.Approved),
			AssignedRiders: []*user.User{w.pickupRider, w.deliveryRider},
		}, now)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, parcel.Pending, p.Status())
		assert.Nil(t, p.CurrentHubID())
	})

	t.Run("non admin approval is forbidden and parcel unchanged", func(t *testing.T) {
		w := newWorld(t)
		p := pendingParcel(t, w)
		assignAll(t, w, p)

		_, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:          actorOf(t, w.pickupRider),
			Status:         status(parcel.Approved),
			AssignedRiders: []*user.User{w.pickupRider, w.deliveryRider},
		}, now)

		assert.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, parcel.Pending, p.Status())
		assert.Len(t, p.TrackingLogs(), 1)
	})

	t.Run("failed status rolls back assignments from the same call", func(t *testing.T) {
		w := newWorld(t)
		p := pendingParcel(t, w)

		_, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:     w.admin,
			Status:    status(parcel.Delivered),
			PickupHub: &services.HubRef{ID: w.hubX.ID(), Hub: w.hubX},
		}, now)

		require.Error(t, err)
		assert.Nil(t, p.PickupHubID())
	})
}

// advance drives an approved parcel along the happy path up to target.
func advance(t *testing.T, w world, p *parcel.Parcel, targets ...parcel.Status) {
	t.Helper()
	for _, target := range targets {
		a := actorOf(t, w.pickupRider)
		if target == parcel.OutForDelivery || target == parcel.Delivered {
			a = actorOf(t, w.deliveryRider)
		}
		_, err := services.NewParcelLifecycle().Apply(p, services.ParcelUpdate{
			Actor:          a,
			Status:         status(target),
			AssignedRiders: []*user.User{w.pickupRider, w.deliveryRider},
		}, now)
		require.NoError(t, err, target.String())
	}
}

func approved(t *testing.T, w world) *parcel.Parcel {
	t.Helper()
	p := pendingParcel(t, w)
	assignAll(t, w, p)
	_, err := services.NewParcelLifecycle().Apply(p, services.ParcelUpdate{
		Actor:          w.admin,
		Status:         status(parcel.Approved),
		AssignedRiders: []*user.User{w.pickupRider, w.deliveryRider},
	}, now)
	require.NoError(t, err)
	return p
}

func TestParcelLifecycle_RiderAvailability(t *testing.T) {
	lifecycle := services.NewParcelLifecycle()

	t.Run("full journey flips delivery rider on and off", func(t *testing.T) {
		w := newWorld(t)
		p := approved(t, w)
		advance(t, w, p, parcel.PickedUp, parcel.AtHub)
		assert.True(t, p.CurrentHubID().IsEqual(w.hubY.ID()))

		outcome, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:          actorOf(t, w.deliveryRider),
			Status:         status(parcel.OutForDelivery),
			AssignedRiders: []*user.User{w.deliveryRider},
		}, now)
		require.NoError(t, err)
		require.Len(t, outcome.Riders, 1)
		assert.Equal(t, user.OnDelivery, w.deliveryRider.RiderProfile().Availability())

		outcome, err = lifecycle.Apply(p, services.ParcelUpdate{
			Actor:          actorOf(t, w.deliveryRider),
			Status:         status(parcel.Delivered),
			AssignedRiders: []*user.User{w.deliveryRider},
		}, now)
		require.NoError(t, err)
		require.Len(t, outcome.Riders, 1)
		assert.Equal(t, user.Available, w.deliveryRider.RiderProfile().Availability())
		assert.Equal(t, parcel.Delivered, p.Status())
		assert.Len(t, p.TrackingLogs(), 6)
	})

	t.Run("delivered with another parcel still out keeps rider on delivery", func(t *testing.T) {
		w := newWorld(t)
		p := approved(t, w)
		advance(t, w, p, parcel.PickedUp, parcel.AtHub, parcel.OutForDelivery)

		outcome, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:               actorOf(t, w.deliveryRider),
			Status:              status(parcel.Delivered),
			AssignedRiders:      []*user.User{w.deliveryRider},
			OtherOutForDelivery: 1,
		}, now)

		require.NoError(t, err)
		assert.Empty(t, outcome.Riders)
		assert.Equal(t, parcel.Delivered, p.Status())
		assert.Equal(t, user.OnDelivery, w.deliveryRider.RiderProfile().Availability())
	})

	t.Run("failed delivery has no availability side effect", func(t *testing.T) {
		w := newWorld(t)
		p := approved(t, w)
		advance(t, w, p, parcel.PickedUp, parcel.AtHub, parcel.OutForDelivery)

		outcome, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:  actorOf(t, w.deliveryRider),
			Status: status(parcel.DeliveryFailed),
		}, now)

		require.NoError(t, err)
		assert.Empty(t, outcome.Riders)
		assert.Equal(t, user.OnDelivery, w.deliveryRider.RiderProfile().Availability())
	})

	t.Run("out for delivery needs the rider record", func(t *testing.T) {
		w := newWorld(t)
		p := approved(t, w)
		advance(t, w, p, parcel.PickedUp, parcel.AtHub)

		_, err := lifecycle.Apply(p, services.ParcelUpdate{
			Actor:  actorOf(t, w.deliveryRider),
			Status: status(parcel.OutForDelivery),
		}, now)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, parcel.AtHub, p.Status())
	})
}

func TestParcelLifecycle_Remarks(t *testing.T) {
	lifecycle := services.NewParcelLifecycle()

	t.Run("admin may set remarks alone", func(t *testing.T) {
		w := newWorld(t)
		p := pendingParcel(t, w)
		remarks := "fragile, handle with care"

		_, err := lifecycle.Apply(p, services.ParcelUpdate{Actor: w.admin, Remarks: &remarks}, now)

		require.NoError(t, err)
		assert.Equal(t, remarks, p.Remarks())
	})

	t.Run("sender may only set remarks with a status change", func(t *testing.T) {
		w := newWorld(t)
		p := pendingParcel(t, w)
		remarks := "changed my mind"

		_, err := lifecycle.Apply(p, services.ParcelUpdate{Actor: actorOf(t, w.sender), Remarks: &remarks}, now)
		assert.ErrorIs(t, err, errs.ErrForbidden)

		_, err = lifecycle.Apply(p, services.ParcelUpdate{
			Actor:   actorOf(t, w.sender),
			Remarks: &remarks,
			Status:  status(parcel.Cancelled),
		}, now)
		require.NoError(t, err)
		assert.Equal(t, parcel.Cancelled, p.Status())
		assert.Equal(t, remarks, p.Remarks())
	})
}

func TestParcelLifecycle_RejectsUnconstructedInput(t *testing.T) {
	w := newWorld(t)

	_, err := services.NewParcelLifecycle().Apply(nil, services.ParcelUpdate{Actor: w.admin}, now)
	assert.ErrorIs(t, err, parcel.ErrParcelIsNotConstructed)

	_, err = services.NewParcelLifecycle().Apply(pendingParcel(t, w), services.ParcelUpdate{}, now)
	assert.ErrorIs(t, err, kernel.ErrActorIsNotConstructed)
}
