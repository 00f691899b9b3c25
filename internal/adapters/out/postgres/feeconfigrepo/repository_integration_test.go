package feeconfigrepo_test

import (
	"context"
	"testing"

	"parcelhub/internal/adapters/out/postgres/feeconfigrepo"
	"parcelhub/internal/adapters/out/postgres/pgtest"
	"parcelhub/internal/core/domain/model/fee"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/modeltest"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type FeeConfigRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *feeconfigrepo.GormFeeConfigRepository
	tracker    *MockAggregateTracker
}

func (suite *FeeConfigRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *FeeConfigRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Maybe()
	suite.repository = feeconfigrepo.NewGormFeeConfigRepository(suite.db, suite.tracker)
}

func (suite *FeeConfigRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *FeeConfigRepositoryIntegrationTestSuite) TestAdd_GetByParcelType() {
	ctx := context.Background()
	weightBased := modeltest.WeightFee(suite.T(), fee.ParcelTypePackage, 50, 10)
	fixed := modeltest.FixedFee(suite.T(), fee.ParcelTypeDocument, 40)
	suite.Require().NoError(suite.repository.Add(ctx, weightBased))
	suite.Require().NoError(suite.repository.Add(ctx, fixed))

	got, err := suite.repository.GetByParcelType(ctx, fee.ParcelTypePackage)
	suite.Require().NoError(err)
	suite.Equal(weightBased.ID(), got.ID())
	suite.Equal(fee.WeightBased, got.FeeType())
	suite.Require().NotNil(got.WeightRate())
	suite.InDelta(10.0, *got.WeightRate(), 0.0001)

	got, err = suite.repository.Get(ctx, fixed.ID())
	suite.Require().NoError(err)
	suite.Equal(fee.ParcelTypeDocument, got.ParcelType())
	suite.Nil(got.WeightRate())
}

func (suite *FeeConfigRepositoryIntegrationTestSuite) TestAdd_SecondConfigForType_ReturnsDuplicateKeyError() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, modeltest.FixedFee(suite.T(), fee.ParcelTypeFragile, 80)))

	err := suite.repository.Add(ctx, modeltest.FixedFee(suite.T(), fee.ParcelTypeFragile, 90))

	var dupErr *errs.DuplicateKeyError
	suite.Require().ErrorAs(err, &dupErr)
	suite.Equal("parcelType", dupErr.ParamName)
}

func (suite *FeeConfigRepositoryIntegrationTestSuite) TestGetByParcelType_Missing_ReturnsNotFoundError() {
	_, err := suite.repository.GetByParcelType(context.Background(), fee.ParcelTypeOther)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestFeeConfigRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(FeeConfigRepositoryIntegrationTestSuite))
}
