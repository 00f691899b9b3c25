package commands

import (
	"context"

	"parcelhub/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	HubRepoFactory interface {
		HubRepository() ports.HubRepository
	}

	FeeConfigRepoFactory interface {
		FeeConfigRepository() ports.FeeConfigRepository
	}

	// ParcelUoW covers parcel creation and updates: both read users, hubs and
	// the fee schedule next to the parcel itself.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
		UserRepoFactory
		HubRepoFactory
		FeeConfigRepoFactory
	}

	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	UserUoW interface {
		TxManager
		UserRepoFactory
		HubRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	HubUoW interface {
		TxManager
		HubRepoFactory
	}

	HubUoWFactory interface {
		Create() HubUoW
	}

	FeeConfigUoW interface {
		TxManager
		FeeConfigRepoFactory
	}

	FeeConfigUoWFactory interface {
		Create() FeeConfigUoW
	}

	RiderUoW interface {
		TxManager
		UserRepoFactory
	}

	RiderUoWFactory interface {
		Create() RiderUoW
	}
)
