package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
)

func requireAdmin(actor kernel.Actor, action string) error {
	if !actor.IsAdmin() {
		return errs.NewForbiddenErrorWithCause(action, errors.New("admin role required"))
	}
	return nil
}
