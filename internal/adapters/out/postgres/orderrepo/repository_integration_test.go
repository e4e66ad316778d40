package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockChangeTracker is a mock implementation of the changeTracker interface.
type MockChangeTracker struct {
	mock.Mock
}

func (m *MockChangeTracker) TrackChange(table string) {
	m.Called(table)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockChangeTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockChangeTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	money := func(amount int64) kernel.Money {
		return kernel.MustMoney(decimal.NewFromInt(amount))
	}

	item, err := order.NewItem(gofakeit.ProductName(), 2, money(150))
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		gofakeit.Name(), gofakeit.Phone(), gofakeit.Address().Address, gofakeit.Company(),
		[]order.Item{item},
		money(330), money(30), money(27),
		"cash",
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTrip() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackChange", ports.TableOrders).Once()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(testOrder.ID()))
	suite.Equal(testOrder.CustomerName(), loaded.CustomerName())
	suite.Equal(testOrder.ShopName(), loaded.ShopName())
	suite.Equal(order.StatusPending, loaded.Status())
	suite.Nil(loaded.DeliveryBoy())
	suite.Len(loaded.Items(), 1)
	suite.True(loaded.TotalAmount().IsEqual(testOrder.TotalAmount()))
	suite.True(loaded.Commission().IsEqual(testOrder.Commission()))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsLifecycleChanges() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackChange", ports.TableOrders).Times(2)

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	boyID := kernel.NewUUID()
	suite.Require().NoError(testOrder.Assign(boyID, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusAssigned, loaded.Status())
	suite.Require().NotNil(loaded.DeliveryBoy())
	suite.True(loaded.DeliveryBoy().IsEqual(boyID))
	suite.NotNil(loaded.AssignedAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClearsDeliveryBoyOnCancel() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackChange", ports.TableOrders).Times(3)

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	suite.Require().NoError(testOrder.Assign(kernel.NewUUID(), time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	suite.Require().NoError(testOrder.Cancel("shop closed"))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusCancelled, loaded.Status())
	suite.Nil(loaded.DeliveryBoy(), "cancel must write a real NULL")
	suite.Equal("shop closed", loaded.CancelReason())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateConditional_WinnerAndLoser() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackChange", ports.TableOrders).Times(2)

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// First claimant wins the conditional write.
	firstBoy := kernel.NewUUID()
	suite.Require().NoError(testOrder.Assign(firstBoy, time.Now().UTC()))
	err := suite.repository.UpdateConditional(ctx, testOrder, order.StatusPending, nil)
	suite.Require().NoError(err)

	// A second claimant raced the same pending->assigned transition; its
	// conditional write must now match zero rows.
	rearmed, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	err = suite.repository.UpdateConditional(ctx, rearmed, order.StatusPending, nil)
	suite.Require().ErrorIs(err, errs.ErrPreconditionFailed)

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded.DeliveryBoy())
	suite.True(loaded.DeliveryBoy().IsEqual(firstBoy), "loser must not overwrite the winner's claim")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateConditional_ReleasesClaim() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackChange", ports.TableOrders).Times(3)

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	boyID := kernel.NewUUID()
	suite.Require().NoError(testOrder.Assign(boyID, time.Now().UTC()))
	suite.Require().NoError(suite.repository.UpdateConditional(ctx, testOrder, order.StatusPending, nil))

	suite.Require().NoError(testOrder.Unassign())
	suite.Require().NoError(suite.repository.UpdateConditional(ctx, testOrder, order.StatusAssigned, &boyID))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusPending, loaded.Status())
	suite.Nil(loaded.DeliveryBoy())
	suite.Nil(loaded.AssignedAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus() {
	ctx := context.Background()

	suite.tracker.On("TrackChange", ports.TableOrders).Times(3)

	pending := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	delivered := suite.createTestOrder()
	suite.Require().NoError(delivered.Assign(kernel.NewUUID(), time.Now().UTC()))
	suite.Require().NoError(delivered.AdvanceTo(order.StatusPickedUp, time.Now().UTC()))
	suite.Require().NoError(delivered.AdvanceTo(order.StatusDelivered, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Add(ctx, delivered))

	other := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, other))

	deliveredOrders, err := suite.repository.GetAllInStatus(ctx, order.StatusDelivered)
	suite.Require().NoError(err)
	suite.Require().Len(deliveredOrders, 1)
	suite.True(deliveredOrders[0].ID().IsEqual(delivered.ID()))

	pendingOrders, err := suite.repository.GetAllInStatus(ctx, order.StatusPending)
	suite.Require().NoError(err)
	suite.Len(pendingOrders, 2)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
