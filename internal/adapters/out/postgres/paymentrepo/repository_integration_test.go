package paymentrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/paymentrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"
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

// ShopPaymentRepositoryIntegrationTestSuite provides integration tests for
// ShopPaymentRepository using PostgreSQL containers.
type ShopPaymentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *paymentrepo.GormShopPaymentRepository
	tracker    *MockChangeTracker
}

func (suite *ShopPaymentRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&paymentrepo.ShopPaymentDTO{}))
}

func (suite *ShopPaymentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shop_payments").Error)

	suite.tracker = new(MockChangeTracker)
	suite.repository = paymentrepo.NewGormShopPaymentRepository(suite.db, suite.tracker)
}

func (suite *ShopPaymentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShopPaymentRepositoryIntegrationTestSuite) newObligation(
	orderID kernel.UUID,
	paymentType payment.Type,
) *payment.ShopPayment {
	obligation, err := payment.NewShopPayment(
		kernel.NewUUID(),
		gofakeit.Company(),
		kernel.MustMoney(decimal.NewFromInt(27)),
		paymentType,
		&orderID,
		"",
	)
	suite.Require().NoError(err)
	return obligation
}

func (suite *ShopPaymentRepositoryIntegrationTestSuite) TestUpsert_InsertsThenSkips() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	suite.tracker.On("TrackChange", ports.TableShopPayments).Once()

	inserted, err := suite.repository.Upsert(ctx, suite.newObligation(orderID, payment.TypeCommission))
	suite.Require().NoError(err)
	suite.True(inserted)

	// Same (order, type) pair again: the conflict clause swallows it.
	inserted, err = suite.repository.Upsert(ctx, suite.newObligation(orderID, payment.TypeCommission))
	suite.Require().NoError(err)
	suite.False(inserted)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShopPaymentRepositoryIntegrationTestSuite) TestUpsert_DistinctTypesBothInsert() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	suite.tracker.On("TrackChange", ports.TableShopPayments).Times(2)

	inserted, err := suite.repository.Upsert(ctx, suite.newObligation(orderID, payment.TypeCommission))
	suite.Require().NoError(err)
	suite.True(inserted)

	inserted, err = suite.repository.Upsert(ctx, suite.newObligation(orderID, payment.TypeDeliveryCharge))
	suite.Require().NoError(err)
	suite.True(inserted)
}

func (suite *ShopPaymentRepositoryIntegrationTestSuite) TestUpsert_PaidRowIsNotRecreated() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	suite.tracker.On("TrackChange", ports.TableShopPayments).Times(2)

	obligation := suite.newObligation(orderID, payment.TypeCommission)
	inserted, err := suite.repository.Upsert(ctx, obligation)
	suite.Require().NoError(err)
	suite.True(inserted)

	suite.Require().NoError(obligation.MarkPaid("admin", time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, obligation))

	// Reconciliation reruns must not resurrect a settled obligation as
	// pending.
	inserted, err = suite.repository.Upsert(ctx, suite.newObligation(orderID, payment.TypeCommission))
	suite.Require().NoError(err)
	suite.False(inserted)

	loaded, err := suite.repository.Get(ctx, obligation.ID())
	suite.Require().NoError(err)
	suite.Equal(payment.StatusPaid, loaded.Status())
	suite.Equal("admin", loaded.PaidBy())
}

func (suite *ShopPaymentRepositoryIntegrationTestSuite) TestAdd_ManualEntryWithoutOrder() {
	ctx := context.Background()

	suite.tracker.On("TrackChange", ports.TableShopPayments).Times(2)

	// Manual adjustments carry no order reference; NULL order_id rows never
	// collide on the unique index.
	first, err := payment.NewShopPayment(
		kernel.NewUUID(), "Corner Bakery",
		kernel.MustMoney(decimal.NewFromInt(500)),
		payment.TypeOther, nil, "festival bonus")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second, err := payment.NewShopPayment(
		kernel.NewUUID(), "Corner Bakery",
		kernel.MustMoney(decimal.NewFromInt(200)),
		payment.TypeOther, nil, "")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, second))

	loaded, err := suite.repository.Get(ctx, first.ID())
	suite.Require().NoError(err)
	suite.Nil(loaded.OrderID())
	suite.Equal("festival bonus", loaded.Notes())
}

func (suite *ShopPaymentRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShopPaymentRepositoryIntegrationTestSuite) TestGetAll_GroupedByShop() {
	ctx := context.Background()

	suite.tracker.On("TrackChange", ports.TableShopPayments).Times(3)

	for _, shopName := range []string{"Zetta Foods", "Alma Deli", "Zetta Foods"} {
		obligation, err := payment.NewShopPayment(
			kernel.NewUUID(), shopName,
			kernel.MustMoney(decimal.NewFromInt(40)),
			payment.TypeOther, nil, "")
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Add(ctx, obligation))
	}

	payments, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(payments, 3)
	suite.Equal("Alma Deli", payments[0].ShopName())
	suite.Equal("Zetta Foods", payments[1].ShopName())
	suite.Equal("Zetta Foods", payments[2].ShopName())
}

func TestShopPaymentRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(ShopPaymentRepositoryIntegrationTestSuite))
}
