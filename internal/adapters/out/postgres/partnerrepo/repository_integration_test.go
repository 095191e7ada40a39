package partnerrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/partnerrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// PartnerRepositoryIntegrationTestSuite provides integration tests for
// PartnerRepository using PostgreSQL containers.
type PartnerRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *partnerrepo.GormPartnerRepository
	tracker    *MockAggregateTracker
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&partnerrepo.PartnerDTO{}))
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE delivery_partners").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = partnerrepo.NewGormPartnerRepository(suite.db, suite.tracker)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestAdd_ValidPartner_Success() {
	ctx := context.Background()

	testPartner := suite.createTestPartner("fcm-token-1")
	suite.tracker.On("TrackAggregate", testPartner.ID(), testPartner).Once()

	err := suite.repository.Add(ctx, testPartner)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testPartner.ID())
	suite.Require().NoError(err)
	suite.Equal(testPartner.ID(), retrieved.ID())
	suite.Equal("Ravi Kumar", retrieved.Name())
	suite.Equal("fcm-token-1", retrieved.FCMToken())
	suite.True(retrieved.IsAvailable())
	suite.Nil(retrieved.CurrentOrderID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGet_NonExistentPartner_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestUpdate_EngagedPartner_PersistsAvailabilityTogether() {
	ctx := context.Background()

	testPartner := suite.createTestPartner("")
	suite.tracker.On("TrackAggregate", testPartner.ID(), testPartner).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testPartner))

	orderID := kernel.NewUUID()
	suite.Require().NoError(testPartner.Engage(orderID))
	suite.Require().NoError(suite.repository.Update(ctx, testPartner))

	retrieved, err := suite.repository.Get(ctx, testPartner.ID())
	suite.Require().NoError(err)
	suite.False(retrieved.IsAvailable())
	suite.Require().NotNil(retrieved.CurrentOrderID())
	suite.Equal(orderID, *retrieved.CurrentOrderID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestUpdate_NonExistentPartner_ReturnsNotFoundError() {
	ctx := context.Background()

	missingPartner := suite.createTestPartner("")

	err := suite.repository.Update(ctx, missingPartner)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestIncrementActiveOrders_AdjustsCounterAtomically() {
	ctx := context.Background()

	testPartner := suite.createTestPartner("")
	suite.tracker.On("TrackAggregate", testPartner.ID(), testPartner).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testPartner))

	suite.Require().NoError(suite.repository.IncrementActiveOrders(ctx, testPartner.ID(), 1))
	suite.Require().NoError(suite.repository.IncrementActiveOrders(ctx, testPartner.ID(), 1))
	suite.Require().NoError(suite.repository.IncrementActiveOrders(ctx, testPartner.ID(), -1))

	retrieved, err := suite.repository.Get(ctx, testPartner.ID())
	suite.Require().NoError(err)
	suite.Equal(1, retrieved.ActiveOrders())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestIncrementActiveOrders_NeverDropsBelowZero() {
	ctx := context.Background()

	testPartner := suite.createTestPartner("")
	suite.tracker.On("TrackAggregate", testPartner.ID(), testPartner).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testPartner))

	suite.Require().NoError(suite.repository.IncrementActiveOrders(ctx, testPartner.ID(), -5))

	retrieved, err := suite.repository.Get(ctx, testPartner.ID())
	suite.Require().NoError(err)
	suite.Equal(0, retrieved.ActiveOrders())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestUpdate_DoesNotOverwriteCounter() {
	ctx := context.Background()

	testPartner := suite.createTestPartner("")
	suite.tracker.On("TrackAggregate", testPartner.ID(), mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testPartner))

	// Counter moves in the database while the aggregate snapshot is stale.
	suite.Require().NoError(suite.repository.IncrementActiveOrders(ctx, testPartner.ID(), 2))

	suite.Require().NoError(testPartner.Engage(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Update(ctx, testPartner))

	retrieved, err := suite.repository.Get(ctx, testPartner.ID())
	suite.Require().NoError(err)
	suite.Equal(2, retrieved.ActiveOrders())
	suite.False(retrieved.IsAvailable())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestIncrementActiveOrders_NonExistentPartner_ReturnsNotFoundError() {
	ctx := context.Background()

	err := suite.repository.IncrementActiveOrders(ctx, kernel.NewUUID(), 1)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

// createTestPartner creates an available partner with the given device token.
func (suite *PartnerRepositoryIntegrationTestSuite) createTestPartner(fcmToken string) *partner.DeliveryPartner {
	testPartner, err := partner.NewDeliveryPartner(
		kernel.NewUUID(), "Ravi Kumar", "+919000000001", fcmToken)
	suite.Require().NoError(err)
	return testPartner
}

func TestPartnerRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PartnerRepositoryIntegrationTestSuite))
}
