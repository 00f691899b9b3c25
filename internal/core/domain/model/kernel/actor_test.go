package kernel_test

import (
	"testing"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, name := range []string{"SUPER_ADMIN", "ADMIN", "USER", "RIDER"} {
		t.Run(name, func(t *testing.T) {
			r, err := kernel.ParseRole(name)

			require.NoError(t, err)
			assert.Equal(t, name, r.String())
		})
	}

	t.Run("should reject unknown role", func(t *testing.T) {
		_, err := kernel.ParseRole("GUEST")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRole_IsAdmin(t *testing.T) {
	assert.True(t, kernel.RoleAdmin.IsAdmin())
	assert.True(t, kernel.RoleSuperAdmin.IsAdmin())
	assert.False(t, kernel.RoleUser.IsAdmin())
	assert.False(t, kernel.RoleRider.IsAdmin())
}

func TestNewActor(t *testing.T) {
	userID := kernel.NewUUID()

	t.Run("should identify its own user", func(t *testing.T) {
		a, err := kernel.NewActor(userID, kernel.RoleRider)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.Is(userID))
		assert.True(t, a.IsOptional(&userID))
		assert.False(t, a.IsOptional(nil))
		assert.False(t, a.IsAdmin())
	})

	t.Run("should reject invalid input", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.UUID{}, "X")

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero actor is not constructed", func(t *testing.T) {
		var a kernel.Actor

		assert.ErrorIs(t, a.Validate(), kernel.ErrActorIsNotConstructed)
	})
}
