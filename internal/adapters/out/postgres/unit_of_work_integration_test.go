package postgres_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	postgresadapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/assignmentrepo"
	"fulfillment/internal/adapters/out/postgres/deliveryboyrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/paymentrepo"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/notifier"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// RecordingPublisher captures published change signals for assertions.
type RecordingPublisher struct {
	mu     sync.Mutex
	tables []string
}

func (p *RecordingPublisher) Publish(table string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tables = append(p.tables, table)
}

func (p *RecordingPublisher) Tables() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	tables := make([]string, len(p.tables))
	copy(tables, p.tables)
	sort.Strings(tables)
	return tables
}

// UnitOfWorkIntegrationTestSuite provides integration tests for the
// GORM-based unit of work with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	publisher *RecordingPublisher
	factory   *postgresadapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&assignmentrepo.AssignmentDTO{},
		&deliveryboyrepo.DeliveryBoyDTO{},
		&paymentrepo.ShopPaymentDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_assignments, delivery_boys, shop_payments").Error
	suite.Require().NoError(err)

	suite.publisher = &RecordingPublisher{}
	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(suite.db, suite.publisher)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
	money := func(amount int64) kernel.Money {
		return kernel.MustMoney(decimal.NewFromInt(amount))
	}

	item, err := order.NewItem(gofakeit.ProductName(), 1, money(120))
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		gofakeit.Name(), gofakeit.Phone(), gofakeit.Address().Address, gofakeit.Company(),
		[]order.Item{item},
		money(150), money(30), money(12),
		"cash",
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.AssignmentRepository())
	suite.NotNil(uow2.DeliveryBoyRepository())
	suite.NotNil(uow2.ShopPaymentRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PublishesTouchedTables() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.createTestOrder()))

	proposal, err := assignment.NewAssignment(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AssignmentRepository().Add(ctx, proposal))

	suite.Empty(suite.publisher.Tables(), "nothing may go out before commit")

	suite.Require().NoError(uow.Commit(ctx))
	suite.Equal([]string{ports.TableAssignments, ports.TableOrders}, suite.publisher.Tables())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_CoalescesRepeatedWrites() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	repo := uow.OrderRepository()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(repo.Add(ctx, testOrder))
	suite.Require().NoError(testOrder.Assign(kernel.NewUUID(), time.Now().UTC()))
	suite.Require().NoError(repo.Update(ctx, testOrder))

	suite.Require().NoError(uow.Commit(ctx))
	suite.Equal([]string{ports.TableOrders}, suite.publisher.Tables(),
		"two writes to one table make one signal")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWritesAndSignals() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Empty(suite.publisher.Tables())

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Zero(count, "rolled back insert must not persist")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutWritesPublishesNothing() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	_, err := uow.OrderRepository().GetAllInStatus(ctx, order.StatusPending)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Commit(ctx))
	suite.Empty(suite.publisher.Tables())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_FeedsInProcessBus() {
	ctx := context.Background()

	bus := notifier.NewBus()
	defer bus.Close()

	sub := bus.Subscribe(ports.TableOrders)
	defer sub.Close()

	factory := postgresadapter.NewGormUnitOfWorkFactory(suite.db, bus)
	uow := factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.createTestOrder()))
	suite.Require().NoError(uow.Commit(ctx))

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	change, err := sub.Next(waitCtx)
	suite.Require().NoError(err)
	suite.Equal(ports.TableOrders, change.Table)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "repeated begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().Error(uow.Commit(ctx), "commit without open transaction must fail")
	suite.Require().Error(uow.Rollback(ctx), "rollback without open transaction must fail")
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
