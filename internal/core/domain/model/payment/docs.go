// Package payment contains the ShopPayment aggregate: one monetary
// obligation owed by the platform to a partner shop, derived from a
// delivered order by the settlement reconciler. For a given order and
// payment type at most one ShopPayment exists; rows are settled with
// MarkPaid and never deleted.
package payment
