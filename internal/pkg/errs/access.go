package errs

import (
	"errors"
	"fmt"
)

var (
	ErrForbidden    = errors.New("access is forbidden")
	ErrUnauthorized = errors.New("access is unauthorized")
	ErrConflict     = errors.New("object state conflict")
	ErrDuplicateKey = errors.New("duplicate key")
)

// ForbiddenError is returned when the actor's role does not permit an action.
type ForbiddenError struct {
	Action string
	Cause  error
}

func NewForbiddenError(action string) *ForbiddenError {
	return &ForbiddenError{Action: action}
}

func NewForbiddenErrorWithCause(action string, cause error) *ForbiddenError {
	return &ForbiddenError{
		Action: action,
		Cause:  cause,
	}
}

func (e *ForbiddenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrForbidden, e.Action, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrForbidden, e.Action)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// Is matches the cause chain, so callers can test for the sentinel that
// explains the failure as well as for the error kind.
func (e *ForbiddenError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// UnauthorizedError is returned when the actor has the right role but is not
// the specific sender, receiver or rider the action is scoped to.
type UnauthorizedError struct {
	Action string
	Cause  error
}

func NewUnauthorizedError(action string) *UnauthorizedError {
	return &UnauthorizedError{Action: action}
}

func NewUnauthorizedErrorWithCause(action string, cause error) *UnauthorizedError {
	return &UnauthorizedError{
		Action: action,
		Cause:  cause,
	}
}

func (e *UnauthorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrUnauthorized, e.Action, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrUnauthorized, e.Action)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

func (e *UnauthorizedError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// ConflictError is returned when a conditional write finds that the persisted
// state moved on since it was read.
type ConflictError struct {
	ParamName string
	Expected  any
	Cause     error
}

func NewConflictError(paramName string, expected any) *ConflictError {
	return &ConflictError{
		ParamName: paramName,
		Expected:  expected,
	}
}

func NewConflictErrorWithCause(paramName string, expected any, cause error) *ConflictError {
	return &ConflictError{
		ParamName: paramName,
		Expected:  expected,
		Cause:     cause,
	}
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s is no longer %v", ErrConflict, e.ParamName, e.Expected)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

func (e *ConflictError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// DuplicateKeyError is returned when a unique constraint rejects a write.
type DuplicateKeyError struct {
	ParamName string
	Value     any
	Cause     error
}

func NewDuplicateKeyError(paramName string, value any) *DuplicateKeyError {
	return &DuplicateKeyError{
		ParamName: paramName,
		Value:     value,
	}
}

func NewDuplicateKeyErrorWithCause(paramName string, value any, cause error) *DuplicateKeyError {
	return &DuplicateKeyError{
		ParamName: paramName,
		Value:     value,
		Cause:     cause,
	}
}

func (e *DuplicateKeyError) Error() string {
	msg := fmt.Sprintf("%s: %s %v already exists", ErrDuplicateKey, e.ParamName, sanitize(e.Value))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}

func (e *DuplicateKeyError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}
