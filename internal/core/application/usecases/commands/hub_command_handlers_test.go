package commands_test

import (
	"errors"
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/hub"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/modeltest"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateHubCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	admin := modeltest.Actor(t, modeltest.Admin(t))
	cmd, err := commands.NewCreateHubCommand(admin, "Mirpur Hub", "Mirpur 10", "+8801711111111", []string{"Mirpur", "Pallabi"})
	require.NoError(t, err)

	hubs := new(MockHubRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("HubRepository").Return(hubs).Once(),
		hubs.On("Add", ctx, mock.AnythingOfType("*hub.Hub")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockHubUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateHubCommandHandler(factory)
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "Mirpur Hub", created.Name())
	assert.Equal(t, []string{"Mirpur", "Pallabi"}, created.CoveredAreas())
	uow.AssertExpectations(t)
	hubs.AssertExpectations(t)
}

func TestCreateHubCommandHandler_Handle_AdminOnly(t *testing.T) {
	customer := modeltest.Actor(t, modeltest.Customer(t))
	cmd, err := commands.NewCreateHubCommand(customer, "Mirpur Hub", "Mirpur 10", "+8801711111111", []string{"Mirpur"})
	require.NoError(t, err)

	factory := new(MockHubUoWFactory)
	h := commands.NewCreateHubCommandHandler(factory)
	_, err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateHubCommandHandler_Handle_InvalidHub(t *testing.T) {
	admin := modeltest.Actor(t, modeltest.Admin(t))
	cmd, err := commands.NewCreateHubCommand(admin, "", "Mirpur 10", "+8801711111111", nil)
	require.NoError(t, err)

	factory := new(MockHubUoWFactory)
	h := commands.NewCreateHubCommandHandler(factory)
	_, err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, hub.ErrNameIsRequired)
	require.ErrorIs(t, err, hub.ErrCoveredAreaIsRequired)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateHubCommandHandler_Handle_DuplicateName(t *testing.T) {
	ctx := t.Context()
	admin := modeltest.Actor(t, modeltest.Admin(t))
	cmd, err := commands.NewCreateHubCommand(admin, "Mirpur Hub", "Mirpur 10", "+8801711111111", []string{"Mirpur"})
	require.NoError(t, err)

	hubs := new(MockHubRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("HubRepository").Return(hubs).Once(),
		hubs.On("Add", ctx, mock.AnythingOfType("*hub.Hub")).Return(errs.NewDuplicateKeyError("hub name", "Mirpur Hub")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockHubUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateHubCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrDuplicateKey)
	uow.AssertExpectations(t)
}

func TestNewUpdateHubCommand_EmptyChanges(t *testing.T) {
	admin := modeltest.Actor(t, modeltest.Admin(t))
	_, err := commands.NewUpdateHubCommand(admin, kernel.NewUUID(), hub.Changes{})
	require.ErrorIs(t, err, commands.ErrHubUpdateIsEmpty)
}

func TestUpdateHubCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	existing := modeltest.Hub(t)
	admin := modeltest.Actor(t, modeltest.Admin(t))
	cmd, err := commands.NewUpdateHubCommand(admin, existing.ID(), hub.Changes{
		Location:     ptr("Gulshan 2"),
		CoveredAreas: []string{"Gulshan", "Baridhara"},
	})
	require.NoError(t, err)

	hubs := new(MockHubRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("HubRepository").Return(hubs).Once(),
		hubs.On("Get", ctx, existing.ID()).Return(existing, nil).Once(),
		hubs.On("Update", ctx, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockHubUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateHubCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "Gulshan 2", updated.Location())
	assert.Equal(t, []string{"Gulshan", "Baridhara"}, updated.CoveredAreas())
	uow.AssertExpectations(t)
}

func TestUpdateHubCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	admin := modeltest.Actor(t, modeltest.Admin(t))
	cmd, err := commands.NewUpdateHubCommand(admin, id, hub.Changes{Name: ptr("Uttara Hub")})
	require.NoError(t, err)

	hubs := new(MockHubRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("HubRepository").Return(hubs).Once(),
		hubs.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("hub", id)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockHubUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateHubCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUpdateHubCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	existing := modeltest.Hub(t)
	admin := modeltest.Actor(t, modeltest.Admin(t))
	cmd, err := commands.NewUpdateHubCommand(admin, existing.ID(), hub.Changes{Name: ptr("Taken")})
	require.NoError(t, err)

	hubs := new(MockHubRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("HubRepository").Return(hubs).Once(),
		hubs.On("Get", ctx, existing.ID()).Return(existing, nil).Once(),
		hubs.On("Update", ctx, existing).Return(errors.New("update error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockHubUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateHubCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
