package commands_test

import (
	"errors"
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/modeltest"
	"parcelhub/internal/core/domain/model/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReconcileRiderAvailabilityCommand_Validate(t *testing.T) {
	cmd := commands.NewReconcileRiderAvailabilityCommand()
	require.NoError(t, cmd.Validate())

	empty := commands.ReconcileRiderAvailabilityCommand{}
	require.ErrorIs(t, empty.Validate(), commands.ErrReconcileRiderAvailabilityCommandIsNotConstructed)
}

func TestReconcileRiderAvailabilityCommandHandler_Handle_FreesStuckRiders(t *testing.T) {
	ctx := t.Context()
	hubID := kernel.NewUUID()
	first := modeltest.Rider(t, hubID, user.OnDelivery)
	second := modeltest.Rider(t, hubID, user.OnDelivery)

	users := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("GetStuckOnDelivery", ctx).Return([]*user.User{first, second}, nil).Once(),
		users.On("Update", ctx, first).Return(nil).Once(),
		users.On("Update", ctx, second).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRiderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcileRiderAvailabilityCommandHandler(factory)
	repaired, err := h.Handle(ctx, commands.NewReconcileRiderAvailabilityCommand())
	require.NoError(t, err)
	assert.Equal(t, 2, repaired)
	assert.Equal(t, user.Available, first.RiderProfile().Availability())
	assert.Equal(t, user.Available, second.RiderProfile().Availability())
	users.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReconcileRiderAvailabilityCommandHandler_Handle_NothingToDo(t *testing.T) {
	ctx := t.Context()
	users := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("GetStuckOnDelivery", ctx).Return([]*user.User{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRiderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcileRiderAvailabilityCommandHandler(factory)
	repaired, err := h.Handle(ctx, commands.NewReconcileRiderAvailabilityCommand())
	require.NoError(t, err)
	assert.Zero(t, repaired)
}

func TestReconcileRiderAvailabilityCommandHandler_Handle_QueryError(t *testing.T) {
	ctx := t.Context()
	users := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("GetStuckOnDelivery", ctx).Return(nil, errors.New("query error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRiderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcileRiderAvailabilityCommandHandler(factory)
	_, err := h.Handle(ctx, commands.NewReconcileRiderAvailabilityCommand())
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestReconcileRiderAvailabilityCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	uow := new(MockUoW)
	factory := new(MockRiderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewReconcileRiderAvailabilityCommandHandler(factory)
	_, err := h.Handle(ctx, commands.NewReconcileRiderAvailabilityCommand())
	require.Error(t, err)
}
