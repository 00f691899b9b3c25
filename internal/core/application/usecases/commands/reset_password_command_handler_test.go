package commands_test

import (
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/modeltest"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewResetPasswordCommand(t *testing.T) {
	actor := modeltest.Actor(t, modeltest.Customer(t))

	_, err := commands.NewResetPasswordCommand(actor, "", "Fresh#Pass1")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewResetPasswordCommand(actor, "Old#Pass1", "weak")
	require.ErrorIs(t, err, commands.ErrPasswordIsTooWeak)
}

func TestResetPasswordCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	me := modeltest.Customer(t)
	cmd, err := commands.NewResetPasswordCommand(modeltest.Actor(t, me), "Old#Pass1", "Fresh#Pass1")
	require.NoError(t, err)

	matcher := new(MockPasswordMatcher)
	matcher.On("Matches", modeltest.PasswordHash, "Old#Pass1").Return(true, nil).Once()
	hasher := new(MockPasswordHasher)
	hasher.On("Hash", "Fresh#Pass1").Return("$2a$10$fresh", nil).Once()

	users := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Get", ctx, me.ID()).Return(me, nil).Once(),
		users.On("Update", ctx, me).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResetPasswordCommandHandler(factory, hasher, matcher)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, "$2a$10$fresh", me.PasswordHash())

	matcher.AssertExpectations(t)
	hasher.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestResetPasswordCommandHandler_Handle_WrongOldPassword(t *testing.T) {
	ctx := t.Context()
	me := modeltest.Customer(t)
	cmd, err := commands.NewResetPasswordCommand(modeltest.Actor(t, me), "Guess#Pass1", "Fresh#Pass1")
	require.NoError(t, err)

	matcher := new(MockPasswordMatcher)
	matcher.On("Matches", modeltest.PasswordHash, "Guess#Pass1").Return(false, nil).Once()
	hasher := new(MockPasswordHasher)

	users := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Get", ctx, me.ID()).Return(me, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResetPasswordCommandHandler(factory, hasher, matcher)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	require.ErrorIs(t, err, commands.ErrOldPasswordDoesNotMatch)
	assert.Equal(t, modeltest.PasswordHash, me.PasswordHash())
	hasher.AssertNotCalled(t, "Hash", mock.Anything)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
