package ports

// Table names broadcast over the change-notification channel. Observers
// subscribe per table and re-read current state on any signal; the signal
// itself carries no row content.
const (
	TableOrders       = "orders"
	TableAssignments  = "order_assignments"
	TableShopPayments = "shop_payments"
)

// ChangePublisher broadcasts "a row in table T changed" signals to all
// active subscribers. Delivery is at-least-once and signals may be
// coalesced; consumers must treat any signal as "go re-read".
type ChangePublisher interface {
	Publish(table string)
}

// NopChangePublisher discards all signals. Used where notification fan-out
// is not wired, such as repository-level tests.
type NopChangePublisher struct{}

// Publish implements ChangePublisher by doing nothing.
func (NopChangePublisher) Publish(string) {}
