package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrCreateHubCommandIsNotConstructed = errors.New(
	"CreateHubCommand must be created via NewCreateHubCommand constructor",
)

// CreateHubCommand registers a new hub. Field validation happens in hub.NewHub.
type CreateHubCommand struct { //nolint:recvcheck //using for validation
	actor         kernel.Actor
	name          string
	location      string
	contactNumber string
	coveredAreas  []string

	guard guard.ConstructorGuard
}

func NewCreateHubCommand(actor kernel.Actor, name, location, contactNumber string, coveredAreas []string) (CreateHubCommand, error) {
	if err := actor.Validate(); err != nil {
		return CreateHubCommand{}, err
	}

	return CreateHubCommand{
		actor:         actor,
		name:          name,
		location:      location,
		contactNumber: contactNumber,
		coveredAreas:  append([]string(nil), coveredAreas...),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CreateHubCommand) Validate() error {
	return c.guard.Validate(ErrCreateHubCommandIsNotConstructed)
}

func (c CreateHubCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateHubCommand) Name() string {
	return c.name
}

func (c CreateHubCommand) Location() string {
	return c.location
}

func (c CreateHubCommand) ContactNumber() string {
	return c.contactNumber
}

func (c CreateHubCommand) CoveredAreas() []string {
	return append([]string(nil), c.coveredAreas...)
}
