package cmd

import (
	"time"

	httpadapter "parcelhub/internal/adapters/in/http"
	"parcelhub/internal/adapters/in/http/auth"
	"parcelhub/internal/adapters/in/ws"
	"parcelhub/internal/adapters/out/postgres"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/jobs"
	"parcelhub/internal/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg           Config
	gormDB        *gorm.DB
	uowFactory    *postgres.GormUnitOfWorkFactory
	tracking      *ws.Hub
	feeCache      ports.FeeConfigCache
	authenticator *auth.Authenticator
	hasher        auth.BcryptHasher
	logger        *zap.Logger
	clock         func() time.Time
}

// NewCompositionRoot wires the application. feeCache may be nil.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, feeCache ports.FeeConfigCache, l *zap.Logger) (*CompositionRoot, error) {
	authenticator, err := auth.NewAuthenticator(cfg.Auth)
	if err != nil {
		return nil, err
	}

	tracking := ws.NewHub(logger.Component(l, "tracking_hub"))

	return &CompositionRoot{
		cfg:           cfg,
		gormDB:        gormDB,
		uowFactory:    postgres.NewGormUnitOfWorkFactory(gormDB, tracking, logger.Component(l, "unit_of_work")),
		tracking:      tracking,
		feeCache:      feeCache,
		authenticator: authenticator,
		hasher:        auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		logger:        l,
		clock:         time.Now,
	}, nil
}

func (c *CompositionRoot) TrackingHub() *ws.Hub {
	return c.tracking
}

func (c *CompositionRoot) TokenVerifier() httpadapter.TokenVerifier {
	return c.authenticator
}

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	createParcel := c.CreateCreateParcelCommandHandler()
	updateParcel := c.CreateUpdateParcelCommandHandler()
	createUser := c.CreateCreateUserCommandHandler()
	addAddresses := c.CreateAddUserAddressesCommandHandler()
	updateUser := c.CreateUpdateUserCommandHandler()
	resetPassword := c.CreateResetPasswordCommandHandler()
	createHub := c.CreateCreateHubCommandHandler()
	updateHub := c.CreateUpdateHubCommandHandler()
	createFeeConfig := c.CreateCreateFeeConfigCommandHandler()

	return httpadapter.NewServer(httpadapter.Handlers{
		CreateParcel:     &createParcel,
		UpdateParcel:     &updateParcel,
		TrackParcel:      c.CreateTrackParcelQueryHandler(),
		ListParcels:      c.CreateListParcelsQueryHandler(),
		CreateUser:       &createUser,
		AddUserAddresses: &addAddresses,
		UpdateUser:       &updateUser,
		ListUsers:        c.CreateListUsersQueryHandler(),
		ResetPassword:    &resetPassword,
		CreateHub:        &createHub,
		UpdateHub:        &updateHub,
		ListHubs:         c.CreateListHubsQueryHandler(),
		GetHubRiders:     c.CreateGetHubRidersQueryHandler(),
		CreateFeeConfig:  &createFeeConfig,
		ListFeeConfigs:   c.CreateListFeeConfigsQueryHandler(),
	}, c.CreateCredentialsStrategy(), c.tracking,
		httpadapter.CookieConfig{Secure: c.cfg.Auth.SecureCookies},
		logger.Component(c.logger, "http"))
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	reconcile := c.CreateReconcileRiderAvailabilityCommandHandler()
	return jobs.NewJobManager(c.cfg.Jobs, &reconcile, c.logger)
}

func (c *CompositionRoot) CreateCredentialsStrategy() auth.CredentialsStrategy {
	// Login and refresh read outside a transaction.
	return auth.NewCredentialsStrategy(c.uowFactory.Create().UserRepository(), c.hasher, c.authenticator)
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateParcelCommandHandler(f, c.feeCache, services.NewTrackingIDGenerator(c.clock), c.clock, logger.Component(c.logger, "create_parcel"))
}

func (c *CompositionRoot) CreateUpdateParcelCommandHandler() commands.UpdateParcelCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateParcelCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateCreateUserCommandHandler() commands.CreateUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateUserCommandHandler(f, c.hasher)
}

func (c *CompositionRoot) CreateAddUserAddressesCommandHandler() commands.AddUserAddressesCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddUserAddressesCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateUserCommandHandler() commands.UpdateUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateUserCommandHandler(f, c.hasher)
}

func (c *CompositionRoot) CreateResetPasswordCommandHandler() commands.ResetPasswordCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResetPasswordCommandHandler(f, c.hasher, c.hasher)
}

func (c *CompositionRoot) CreateCreateHubCommandHandler() commands.CreateHubCommandHandler {
	var f commands.HubUoWFactory = FuncHubUoWFactory(func() commands.HubUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateHubCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateHubCommandHandler() commands.UpdateHubCommandHandler {
	var f commands.HubUoWFactory = FuncHubUoWFactory(func() commands.HubUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateHubCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateFeeConfigCommandHandler() commands.CreateFeeConfigCommandHandler {
	var f commands.FeeConfigUoWFactory = FuncFeeConfigUoWFactory(func() commands.FeeConfigUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateFeeConfigCommandHandler(f, c.feeCache, logger.Component(c.logger, "create_fee_config"))
}

func (c *CompositionRoot) CreateReconcileRiderAvailabilityCommandHandler() commands.ReconcileRiderAvailabilityCommandHandler {
	var f commands.RiderUoWFactory = FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileRiderAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateTrackParcelQueryHandler() queries.TrackParcelQueryHandler {
	return queries.NewTrackParcelQueryHandler(c.uowFactory.Create().ParcelRepository())
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUsersQueryHandler() queries.ListUsersQueryHandler {
	return queries.NewListUsersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListHubsQueryHandler() queries.ListHubsQueryHandler {
	return queries.NewListHubsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetHubRidersQueryHandler() queries.GetHubRidersQueryHandler {
	return queries.NewGetHubRidersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListFeeConfigsQueryHandler() queries.ListFeeConfigsQueryHandler {
	return queries.NewListFeeConfigsQueryHandler(c.gormDB)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncHubUoWFactory func() commands.HubUoW

func (f FuncHubUoWFactory) Create() commands.HubUoW {
	return f()
}

type FuncFeeConfigUoWFactory func() commands.FeeConfigUoW

func (f FuncFeeConfigUoWFactory) Create() commands.FeeConfigUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}
