package commands_test

import (
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registration() commands.Registration {
	return commands.Registration{
		Name:     "Nadia Rahman",
		Email:    "  Nadia@Example.com ",
		Password: "Secret#123",
		Phone:    "01712345678",
	}
}

func TestNewCreateUserCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewCreateUserCommand(nil, registration())
	require.NoError(t, err)
	assert.Nil(t, cmd.Actor())
	assert.Equal(t, kernel.RoleUser, cmd.Registration().Role)
	assert.Equal(t, "nadia@example.com", cmd.Registration().Email)
}

func TestNewCreateUserCommand_WeakPassword(t *testing.T) {
	for _, password := range []string{"nouppercase#1", "NoDigits#here", "NoSpecial123", "Ab#1"} {
		reg := registration()
		reg.Password = password
		_, err := commands.NewCreateUserCommand(nil, reg)
		require.ErrorIs(t, err, commands.ErrPasswordIsTooWeak, password)
	}
}

func TestNewCreateUserCommand_InvalidPhone(t *testing.T) {
	reg := registration()
	reg.Phone = "+15551234567"
	_, err := commands.NewCreateUserCommand(nil, reg)
	require.ErrorIs(t, err, commands.ErrPhoneIsInvalid)
}

func TestNewCreateUserCommand_PhoneIsOptional(t *testing.T) {
	reg := registration()
	reg.Phone = ""
	_, err := commands.NewCreateUserCommand(nil, reg)
	require.NoError(t, err)
}

func TestNewCreateUserCommand_RiderNeedsProfile(t *testing.T) {
	reg := registration()
	reg.Role = kernel.RoleRider
	_, err := commands.NewCreateUserCommand(nil, reg)
	require.ErrorIs(t, err, commands.ErrRiderProfileIsRequired)
}

func TestNewCreateUserCommand_ProfileOnlyForRiders(t *testing.T) {
	reg := registration()
	reg.Rider = &commands.RiderInput{
		VehicleType:   user.VehicleBicycle,
		VehicleNumber: "DHK-1",
		LicenseNumber: "LIC-1",
		AssignedHub:   kernel.NewUUID(),
	}
	_, err := commands.NewCreateUserCommand(nil, reg)
	require.ErrorIs(t, err, commands.ErrRiderProfileIsNotAllowed)
}

func TestNewCreateUserCommand_UnknownRole(t *testing.T) {
	reg := registration()
	reg.Role = "OWNER"
	_, err := commands.NewCreateUserCommand(nil, reg)
	require.Error(t, err)
}
