package commands_test

import (
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/modeltest"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestNewUpdateParcelCommand_ValidInput(t *testing.T) {
	actor := modeltest.Actor(t, modeltest.Admin(t))
	parcelID := kernel.NewUUID()
	hubID := kernel.NewUUID()

	cmd, err := commands.NewUpdateParcelCommand(actor, parcelID, commands.ParcelChanges{
		Status:    ptr("APPROVED"),
		Remarks:   ptr("fragile, handle with care"),
		PickupHub: &hubID,
	})
	require.NoError(t, err)
	assert.Equal(t, parcelID, cmd.ParcelID())
	require.NotNil(t, cmd.Status())
	assert.Equal(t, parcel.Approved, *cmd.Status())
	assert.Equal(t, "fragile, handle with care", *cmd.Remarks())
	assert.Equal(t, hubID, *cmd.PickupHub())
	assert.Nil(t, cmd.DeliveryRider())
	assert.True(t, cmd.HasAssignments())
}

func TestNewUpdateParcelCommand_UnknownStatus(t *testing.T) {
	actor := modeltest.Actor(t, modeltest.Admin(t))
	_, err := commands.NewUpdateParcelCommand(actor, kernel.NewUUID(), commands.ParcelChanges{
		Status: ptr("LOST"),
	})
	require.ErrorIs(t, err, parcel.ErrInvalidStatusUpdate)
	assert.True(t, errs.IsBadRequest(err))
}

func TestNewUpdateParcelCommand_EmptyPayload(t *testing.T) {
	actor := modeltest.Actor(t, modeltest.Admin(t))
	_, err := commands.NewUpdateParcelCommand(actor, kernel.NewUUID(), commands.ParcelChanges{})
	require.ErrorIs(t, err, commands.ErrParcelUpdateIsEmpty)
}

func TestNewUpdateParcelCommand_InvalidParcelID(t *testing.T) {
	actor := modeltest.Actor(t, modeltest.Admin(t))
	_, err := commands.NewUpdateParcelCommand(actor, kernel.UUID{}, commands.ParcelChanges{Status: ptr("REJECTED")})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewUpdateParcelCommand_RemarksOnly(t *testing.T) {
	actor := modeltest.Actor(t, modeltest.Admin(t))
	cmd, err := commands.NewUpdateParcelCommand(actor, kernel.NewUUID(), commands.ParcelChanges{Remarks: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, cmd.Status())
	assert.False(t, cmd.HasAssignments())
}
