package assignmentrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/assignmentrepo"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

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

// AssignmentRepositoryIntegrationTestSuite provides integration tests for
// AssignmentRepository using PostgreSQL containers.
type AssignmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *assignmentrepo.GormAssignmentRepository
	tracker    *MockChangeTracker
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&assignmentrepo.AssignmentDTO{}))
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_assignments").Error)

	suite.tracker = new(MockChangeTracker)
	suite.repository = assignmentrepo.NewGormAssignmentRepository(suite.db, suite.tracker)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AssignmentRepositoryIntegrationTestSuite) newProposal(orderID kernel.UUID) *assignment.Assignment {
	proposal, err := assignment.NewAssignment(
		kernel.NewUUID(), orderID, kernel.NewUUID(), "ring the back bell", time.Now().UTC())
	suite.Require().NoError(err)
	return proposal
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTrip() {
	ctx := context.Background()

	proposal := suite.newProposal(kernel.NewUUID())
	suite.tracker.On("TrackChange", ports.TableAssignments).Once()

	suite.Require().NoError(suite.repository.Add(ctx, proposal))

	loaded, err := suite.repository.Get(ctx, proposal.ID())
	suite.Require().NoError(err)
	suite.True(loaded.OrderID().IsEqual(proposal.OrderID()))
	suite.True(loaded.DeliveryBoy().IsEqual(proposal.DeliveryBoy()))
	suite.Equal(assignment.StatusPending, loaded.Status())
	suite.Equal("ring the back bell", loaded.Notes())
	suite.Nil(loaded.RespondedAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAdd_SecondPendingForSameOrderFails() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	suite.tracker.On("TrackChange", ports.TableAssignments).Once()

	suite.Require().NoError(suite.repository.Add(ctx, suite.newProposal(orderID)))

	err := suite.repository.Add(ctx, suite.newProposal(orderID))
	suite.Require().Error(err, "partial unique index must reject a second pending proposal")
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAdd_NewPendingAllowedAfterRejection() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	suite.tracker.On("TrackChange", ports.TableAssignments).Times(3)

	first := suite.newProposal(orderID)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	suite.Require().NoError(first.Reject(time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	// The index only covers pending rows, so a fresh proposal may follow
	// a rejection.
	suite.Require().NoError(suite.repository.Add(ctx, suite.newProposal(orderID)))
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestUpdate_PersistsResponse() {
	ctx := context.Background()

	proposal := suite.newProposal(kernel.NewUUID())
	suite.tracker.On("TrackChange", ports.TableAssignments).Times(2)

	suite.Require().NoError(suite.repository.Add(ctx, proposal))

	respondedAt := time.Now().UTC()
	suite.Require().NoError(proposal.Accept(respondedAt))
	suite.Require().NoError(suite.repository.Update(ctx, proposal))

	loaded, err := suite.repository.Get(ctx, proposal.ID())
	suite.Require().NoError(err)
	suite.Equal(assignment.StatusAccepted, loaded.Status())
	suite.Require().NotNil(loaded.RespondedAt())
	suite.WithinDuration(respondedAt, *loaded.RespondedAt(), time.Second)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestGetPendingByOrder() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	suite.tracker.On("TrackChange", ports.TableAssignments).Times(2)

	proposal := suite.newProposal(orderID)
	suite.Require().NoError(suite.repository.Add(ctx, proposal))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newProposal(kernel.NewUUID())))

	loaded, err := suite.repository.GetPendingByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(proposal.ID()))

	_, err = suite.repository.GetPendingByOrder(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestGetAllPending_OldestFirst() {
	ctx := context.Background()

	suite.tracker.On("TrackChange", ports.TableAssignments).Times(4)

	older, err := assignment.NewAssignment(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "",
		time.Now().UTC().Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, older))

	newer := suite.newProposal(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, newer))

	answered := suite.newProposal(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, answered))
	suite.Require().NoError(answered.Reject(time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, answered))

	pending, err := suite.repository.GetAllPending(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.True(pending[0].ID().IsEqual(older.ID()))
	suite.True(pending[1].ID().IsEqual(newer.ID()))
}

func TestAssignmentRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(AssignmentRepositoryIntegrationTestSuite))
}
