package commands_test

import (
	"context"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/fee"
	"parcelhub/internal/core/domain/model/hub"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel, expected parcel.Status) error {
	args := m.Called(ctx, p, expected)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByTrackingID(ctx context.Context, id parcel.TrackingID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) CountOutForDeliveryByRider(ctx context.Context, riderID, exclude kernel.UUID) (int64, error) {
	args := m.Called(ctx, riderID, exclude)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetStuckOnDelivery(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

type MockHubRepository struct{ mock.Mock }

func (m *MockHubRepository) Add(ctx context.Context, h *hub.Hub) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHubRepository) Update(ctx context.Context, h *hub.Hub) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHubRepository) Get(ctx context.Context, id kernel.UUID) (*hub.Hub, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hub.Hub), args.Error(1)
}

type MockFeeConfigRepository struct{ mock.Mock }

func (m *MockFeeConfigRepository) Add(ctx context.Context, c *fee.FeeConfig) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockFeeConfigRepository) Get(ctx context.Context, id kernel.UUID) (*fee.FeeConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fee.FeeConfig), args.Error(1)
}

func (m *MockFeeConfigRepository) GetByParcelType(ctx context.Context, t fee.ParcelType) (*fee.FeeConfig, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fee.FeeConfig), args.Error(1)
}

type MockFeeConfigCache struct{ mock.Mock }

func (m *MockFeeConfigCache) Get(ctx context.Context, t fee.ParcelType) (*fee.FeeConfig, bool, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*fee.FeeConfig), args.Bool(1), args.Error(2)
}

func (m *MockFeeConfigCache) Set(ctx context.Context, c *fee.FeeConfig) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockFeeConfigCache) Invalidate(ctx context.Context, t fee.ParcelType) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

// MockUoW satisfies every unit of work flavour of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

func (m *MockUoW) HubRepository() ports.HubRepository {
	args := m.Called()
	return args.Get(0).(ports.HubRepository)
}

func (m *MockUoW) FeeConfigRepository() ports.FeeConfigRepository {
	args := m.Called()
	return args.Get(0).(ports.FeeConfigRepository)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

type MockHubUoWFactory struct{ mock.Mock }

func (m *MockHubUoWFactory) Create() commands.HubUoW {
	args := m.Called()
	return args.Get(0).(commands.HubUoW)
}

type MockFeeConfigUoWFactory struct{ mock.Mock }

func (m *MockFeeConfigUoWFactory) Create() commands.FeeConfigUoW {
	args := m.Called()
	return args.Get(0).(commands.FeeConfigUoW)
}

type MockRiderUoWFactory struct{ mock.Mock }

func (m *MockRiderUoWFactory) Create() commands.RiderUoW {
	args := m.Called()
	return args.Get(0).(commands.RiderUoW)
}

type MockTrackingIDSource struct{ mock.Mock }

func (m *MockTrackingIDSource) Next() (parcel.TrackingID, error) {
	args := m.Called()
	return args.Get(0).(parcel.TrackingID), args.Error(1)
}

type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

type MockPasswordMatcher struct{ mock.Mock }

func (m *MockPasswordMatcher) Matches(hash, password string) (bool, error) {
	args := m.Called(hash, password)
	return args.Bool(0), args.Error(1)
}
