package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("userId", "123")

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("userId", "123", cause)

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: userId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, "email", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)

		assert.Equal(t, "age", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is age, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t, "score", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is score, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("username")

		assert.Equal(t, "username", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: username", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("username", cause)

		assert.Equal(t, "username", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: username (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrForbidden)
		require.Error(t, errs.ErrUnauthorized)
		require.Error(t, errs.ErrConflict)
		require.Error(t, errs.ErrDuplicateKey)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "access is forbidden", errs.ErrForbidden.Error())
		assert.Equal(t, "duplicate key", errs.ErrDuplicateKey.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("userId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("email")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("username")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		require.ErrorIs(t, errs.NewForbiddenError("approve parcel"), errs.ErrForbidden)
		require.ErrorIs(t, errs.NewUnauthorizedError("track parcel"), errs.ErrUnauthorized)
		require.ErrorIs(t, errs.NewConflictError("status", "PENDING"), errs.ErrConflict)
		require.ErrorIs(t, errs.NewDuplicateKeyError("trackingId", "TRK-1"), errs.ErrDuplicateKey)
	})

	t.Run("wrapped errors keep their kind", func(t *testing.T) {
		err := fmt.Errorf("update parcel: %w", errs.NewForbiddenError("approve parcel"))
		require.ErrorIs(t, err, errs.ErrForbidden)

		var forbidden *errs.ForbiddenError
		require.ErrorAs(t, err, &forbidden)
		assert.Equal(t, "approve parcel", forbidden.Action)
	})
}

func TestAccessErrors(t *testing.T) {
	t.Run("NewForbiddenError", func(t *testing.T) {
		err := errs.NewForbiddenError("only admin can approve a parcel")

		assert.Equal(t, "access is forbidden: only admin can approve a parcel", err.Error())
		assert.Equal(t, errs.ErrForbidden, err.Unwrap())
	})

	t.Run("NewUnauthorizedErrorWithCause", func(t *testing.T) {
		err := errs.NewUnauthorizedErrorWithCause("track parcel", errors.New("not a participant"))

		assert.Equal(t, "access is unauthorized: track parcel (cause: not a participant)", err.Error())
		assert.Equal(t, errs.ErrUnauthorized, err.Unwrap())
	})

	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("status", "PENDING")

		assert.Equal(t, "object state conflict: status is no longer PENDING", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})

	t.Run("NewDuplicateKeyErrorWithCause", func(t *testing.T) {
		cause := errors.New("unique violation")
		err := errs.NewDuplicateKeyErrorWithCause("hub name", "Dhaka\nCentral", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"duplicate key: hub name Dhaka Central already exists (cause: unique violation)",
			err.Error())
		assert.Equal(t, errs.ErrDuplicateKey, err.Unwrap())
	})
}

func TestIsBadRequest(t *testing.T) {
	assert.True(t, errs.IsBadRequest(errs.NewValueIsRequiredError("weight")))
	assert.True(t, errs.IsBadRequest(errs.NewValueIsInvalidError("status")))
	assert.True(t, errs.IsBadRequest(errs.NewValueIsOutOfRangeError("weight", 0, 0, 100)))
	assert.False(t, errs.IsBadRequest(errs.NewObjectNotFoundError("hub", "1")))
	assert.False(t, errs.IsBadRequest(errs.NewForbiddenError("approve")))
}

func TestErrorsMatchTheirCause(t *testing.T) {
	cause := errors.New("invalid status update")

	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"ObjectNotFoundError", errs.NewObjectNotFoundErrorWithCause("hub", "1", cause), errs.ErrObjectNotFound},
		{"ValueIsInvalidError", errs.NewValueIsInvalidErrorWithCause("status", cause), errs.ErrValueIsInvalid},
		{"ValueIsOutOfRangeError", errs.NewValueIsOutOfRangeErrorWithCause("weight", 0, 1, 10, cause), errs.ErrValueIsOutOfRange},
		{"ValueIsRequiredError", errs.NewValueIsRequiredErrorWithCause("weight", cause), errs.ErrValueIsRequired},
		{"ForbiddenError", errs.NewForbiddenErrorWithCause("approve", cause), errs.ErrForbidden},
		{"UnauthorizedError", errs.NewUnauthorizedErrorWithCause("login", cause), errs.ErrUnauthorized},
		{"ConflictError", errs.NewConflictErrorWithCause("status", "PENDING", cause), errs.ErrConflict},
		{"DuplicateKeyError", errs.NewDuplicateKeyErrorWithCause("email", "a@b.c", cause), errs.ErrDuplicateKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.ErrorIs(t, tt.err, cause)
			assert.ErrorIs(t, fmt.Errorf("handler: %w", tt.err), cause)
		})
	}
}

func TestErrorsMatchWrappedCause(t *testing.T) {
	sentinel := errors.New("invalid status update")
	err := errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%w: %w", sentinel, errors.New("no gate")))

	assert.ErrorIs(t, err, sentinel)
	assert.True(t, errs.IsBadRequest(err))
}

func TestErrorsWithoutCauseMatchOnlyTheirKind(t *testing.T) {
	err := errs.NewUnauthorizedError("login")

	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.NotErrorIs(t, err, errs.ErrForbidden)
	assert.False(t, err.Is(errs.ErrUnauthorized))
}
