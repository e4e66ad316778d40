package payment_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayment(t *testing.T) *payment.ShopPayment {
	t.Helper()
	orderID := kernel.NewUUID()
	p, err := payment.NewShopPayment(
		kernel.NewUUID(),
		"Hotel Saravana",
		kernel.MustMoney(decimal.NewFromInt(50)),
		payment.TypeCommission,
		&orderID,
		"",
	)
	require.NoError(t, err)
	return p
}

func TestNewShopPayment(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		p := newTestPayment(t)

		assert.Equal(t, payment.StatusPending, p.Status())
		assert.True(t, p.IsPending())
		assert.Empty(t, p.PaidBy())
		assert.Nil(t, p.PaidAt())
	})

	t.Run("empty shop name fails", func(t *testing.T) {
		orderID := kernel.NewUUID()
		_, err := payment.NewShopPayment(
			kernel.NewUUID(), "", kernel.ZeroMoney(), payment.TypeCommission, &orderID, "",
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("order-derived type without order fails", func(t *testing.T) {
		_, err := payment.NewShopPayment(
			kernel.NewUUID(), "shop", kernel.ZeroMoney(), payment.TypeDeliveryCharge, nil, "",
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("other type without order is allowed", func(t *testing.T) {
		p, err := payment.NewShopPayment(
			kernel.NewUUID(), "shop", kernel.ZeroMoney(), payment.TypeOther, nil, "festival bonus",
		)
		require.NoError(t, err)
		assert.Nil(t, p.OrderID())
	})

	t.Run("unknown type fails", func(t *testing.T) {
		orderID := kernel.NewUUID()
		_, err := payment.NewShopPayment(
			kernel.NewUUID(), "shop", kernel.ZeroMoney(), payment.Type("refund"), &orderID, "",
		)
		require.Error(t, err)
	})
}

func TestShopPayment_MarkPaid(t *testing.T) {
	t.Run("pending payment is settled with stamps", func(t *testing.T) {
		p := newTestPayment(t)
		at := time.Now()

		require.NoError(t, p.MarkPaid("admin", at))

		assert.Equal(t, payment.StatusPaid, p.Status())
		assert.Equal(t, "admin", p.PaidBy())
		require.NotNil(t, p.PaidAt())
		assert.Equal(t, at, *p.PaidAt())
	})

	t.Run("settling twice fails with AlreadySettled", func(t *testing.T) {
		p := newTestPayment(t)
		first := time.Now()
		require.NoError(t, p.MarkPaid("admin", first))

		err := p.MarkPaid("admin", first.Add(time.Hour))
		require.ErrorIs(t, err, payment.ErrAlreadySettled)
		assert.Equal(t, first, *p.PaidAt())
	})

	t.Run("empty paidBy fails", func(t *testing.T) {
		p := newTestPayment(t)
		require.ErrorIs(t, p.MarkPaid("", time.Now()), errs.ErrValueIsRequired)
		assert.True(t, p.IsPending())
	})
}

func TestRestoreShopPayment(t *testing.T) {
	orderID := kernel.NewUUID()
	paidAt := time.Now()

	t.Run("restores paid payment", func(t *testing.T) {
		p, err := payment.RestoreShopPayment(
			kernel.NewUUID(), "shop",
			kernel.MustMoney(decimal.NewFromInt(20)),
			payment.TypeDeliveryCharge, &orderID,
			payment.StatusPaid, "admin", &paidAt, "",
		)
		require.NoError(t, err)
		assert.Equal(t, payment.StatusPaid, p.Status())
	})

	t.Run("paid without paid_at is rejected", func(t *testing.T) {
		_, err := payment.RestoreShopPayment(
			kernel.NewUUID(), "shop", kernel.ZeroMoney(),
			payment.TypeCommission, &orderID,
			payment.StatusPaid, "admin", nil, "",
		)
		require.Error(t, err)
	})
}

func TestReconciledTypes(t *testing.T) {
	types := payment.ReconciledTypes()
	assert.ElementsMatch(t, []payment.Type{payment.TypeCommission, payment.TypeDeliveryCharge}, types)
	assert.NotContains(t, types, payment.TypeOther)
}

func TestShopPayment_Validate(t *testing.T) {
	t.Run("zero value fails", func(t *testing.T) {
		require.ErrorIs(
			t,
			(&payment.ShopPayment{}).Validate(),
			payment.ErrShopPaymentIsNotConstructed,
		)
	})

	t.Run("constructed passes", func(t *testing.T) {
		require.NoError(t, newTestPayment(t).Validate())
	})
}
