package commands_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/deliveryboy"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/ports"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateConditional(
	ctx context.Context,
	o *order.Order,
	expectedStatus order.Status,
	expectedDeliveryBoy *kernel.UUID,
) error {
	args := m.Called(ctx, o, expectedStatus, expectedDeliveryBoy)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetPendingByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetAllPending(ctx context.Context) ([]*assignment.Assignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}

type MockDeliveryBoyRepository struct{ mock.Mock }

func (m *MockDeliveryBoyRepository) Get(ctx context.Context, id kernel.UUID) (*deliveryboy.DeliveryBoy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deliveryboy.DeliveryBoy), args.Error(1)
}

func (m *MockDeliveryBoyRepository) GetAllActive(ctx context.Context) ([]*deliveryboy.DeliveryBoy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*deliveryboy.DeliveryBoy), args.Error(1)
}

type MockShopPaymentRepository struct{ mock.Mock }

func (m *MockShopPaymentRepository) Add(ctx context.Context, p *payment.ShopPayment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockShopPaymentRepository) Upsert(ctx context.Context, p *payment.ShopPayment) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (m *MockShopPaymentRepository) Update(ctx context.Context, p *payment.ShopPayment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockShopPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.ShopPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.ShopPayment), args.Error(1)
}

func (m *MockShopPaymentRepository) GetAll(ctx context.Context) ([]*payment.ShopPayment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.ShopPayment), args.Error(1)
}

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

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) DeliveryBoyRepository() ports.DeliveryBoyRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryBoyRepository)
}

func (m *MockUoW) ShopPaymentRepository() ports.ShopPaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShopPaymentRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockAssignmentUoWFactory struct{ mock.Mock }

func (m *MockAssignmentUoWFactory) Create() commands.AssignmentUoW {
	args := m.Called()
	return args.Get(0).(commands.AssignmentUoW)
}

type MockSettlementUoWFactory struct{ mock.Mock }

func (m *MockSettlementUoWFactory) Create() commands.SettlementUoW {
	args := m.Called()
	return args.Get(0).(commands.SettlementUoW)
}

type MockPaymentUoWFactory struct{ mock.Mock }

func (m *MockPaymentUoWFactory) Create() commands.PaymentUoW {
	args := m.Called()
	return args.Get(0).(commands.PaymentUoW)
}

func money(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	return kernel.MustMoney(decimal.NewFromInt(amount))
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	item, err := order.NewItem(gofakeit.ProductName(), 2, money(t, 120))
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		gofakeit.Name(), gofakeit.Phone(), gofakeit.Address().Address, gofakeit.Company(),
		[]order.Item{item},
		money(t, 270), money(t, 30), money(t, 24),
		"cash",
	)
	require.NoError(t, err)
	return o
}

func newTestDeliveryBoy(t *testing.T, active bool) *deliveryboy.DeliveryBoy {
	t.Helper()

	boy, err := deliveryboy.RestoreDeliveryBoy(
		kernel.NewUUID(),
		gofakeit.Name(), gofakeit.Phone(), "bike", "KA-01-1234",
		active,
		gofakeit.City(),
	)
	require.NoError(t, err)
	return boy
}
