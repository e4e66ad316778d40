package services

import (
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"

	"github.com/samber/lo"
)

// ShopSummary is the per-shop settlement breakdown: pending and paid totals,
// the pending/paid split by payment type, and the number of obligations.
//
// Invariant: PendingCommission + PendingDeliveryCharge + PendingOther equals
// TotalPending (and likewise for paid), because every payment contributes to
// exactly one type bucket and one status bucket.
type ShopSummary struct {
	ShopName string

	TotalPending kernel.Money
	TotalPaid    kernel.Money

	PendingCommission     kernel.Money
	PendingDeliveryCharge kernel.Money
	PendingOther          kernel.Money

	PaidCommission     kernel.Money
	PaidDeliveryCharge kernel.Money
	PaidOther          kernel.Money

	PaymentCount int
}

// SettlementSummarizer computes per-shop settlement summaries from the full
// current set of shop payments. The summary is recomputed on every call
// rather than incrementally maintained: obligations change at low frequency
// relative to reads, and a full recompute cannot drift or double count.
type SettlementSummarizer struct{}

// NewSettlementSummarizer creates a SettlementSummarizer.
func NewSettlementSummarizer() *SettlementSummarizer {
	return &SettlementSummarizer{}
}

// Summarize groups the given payments by shop name and returns one summary
// per shop, sorted by shop name for stable output.
func (s *SettlementSummarizer) Summarize(payments []*payment.ShopPayment) []ShopSummary {
	byShop := lo.GroupBy(payments, func(p *payment.ShopPayment) string {
		return p.ShopName()
	})

	summaries := make([]ShopSummary, 0, len(byShop))
	for shopName, shopPayments := range byShop {
		summary := ShopSummary{
			ShopName:              shopName,
			TotalPending:          kernel.ZeroMoney(),
			TotalPaid:             kernel.ZeroMoney(),
			PendingCommission:     kernel.ZeroMoney(),
			PendingDeliveryCharge: kernel.ZeroMoney(),
			PendingOther:          kernel.ZeroMoney(),
			PaidCommission:        kernel.ZeroMoney(),
			PaidDeliveryCharge:    kernel.ZeroMoney(),
			PaidOther:             kernel.ZeroMoney(),
			PaymentCount:          len(shopPayments),
		}

		for _, p := range shopPayments {
			if p.IsPending() {
				summary.TotalPending = summary.TotalPending.Add(p.Amount())
				switch p.PaymentType() {
				case payment.TypeCommission:
					summary.PendingCommission = summary.PendingCommission.Add(p.Amount())
				case payment.TypeDeliveryCharge:
					summary.PendingDeliveryCharge = summary.PendingDeliveryCharge.Add(p.Amount())
				case payment.TypeOther:
					summary.PendingOther = summary.PendingOther.Add(p.Amount())
				}
				continue
			}

			summary.TotalPaid = summary.TotalPaid.Add(p.Amount())
			switch p.PaymentType() {
			case payment.TypeCommission:
				summary.PaidCommission = summary.PaidCommission.Add(p.Amount())
			case payment.TypeDeliveryCharge:
				summary.PaidDeliveryCharge = summary.PaidDeliveryCharge.Add(p.Amount())
			case payment.TypeOther:
				summary.PaidOther = summary.PaidOther.Add(p.Amount())
			}
		}

		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ShopName < summaries[j].ShopName
	})

	return summaries
}
