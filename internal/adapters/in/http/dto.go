package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Error is the uniform error payload for every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderItem is one line of a new order request. Unit price travels as a
// decimal string to avoid float rounding.
type NewOrderItem struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

// NewOrder is the request body for POST /api/v1/orders.
type NewOrder struct {
	CustomerName    string         `json:"customer_name"`
	CustomerPhone   string         `json:"customer_phone"`
	CustomerAddress string         `json:"customer_address"`
	ShopName        string         `json:"shop_name"`
	Items           []NewOrderItem `json:"items"`
	TotalAmount     string         `json:"total_amount"`
	DeliveryCharge  string         `json:"delivery_charge"`
	Commission      string         `json:"commission"`
	PaymentMethod   string         `json:"payment_method"`
}

// OrderCreated is the response body for a successful order creation.
type OrderCreated struct {
	ID uuid.UUID `json:"id"`
}

// StatusChange is the request body for POST /api/v1/orders/:id/status.
type StatusChange struct {
	Status string `json:"status"`
}

// Cancellation is the request body for POST /api/v1/orders/:id/cancel.
type Cancellation struct {
	Reason string `json:"reason"`
}

// NewAssignment is the request body for POST /api/v1/orders/:id/assignments.
type NewAssignment struct {
	DeliveryBoyID uuid.UUID `json:"delivery_boy_id"`
	Notes         string    `json:"notes"`
}

// AssignmentResponse is the request body for
// POST /api/v1/assignments/:id/response.
type AssignmentResponse struct {
	Decision string `json:"decision"`
}

// ReconciliationResult reports how many settlement rows a reconciliation
// run created.
type ReconciliationResult struct {
	Created int `json:"created"`
}

// PaymentSettlement is the request body for POST /api/v1/payments/:id/paid.
type PaymentSettlement struct {
	PaidBy string `json:"paid_by"`
}

// ActiveOrder is one row of GET /api/v1/orders/active.
type ActiveOrder struct {
	ID              uuid.UUID       `json:"id"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress string          `json:"customer_address"`
	ShopName        string          `json:"shop_name"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaymentStatus   string          `json:"payment_status"`
	PaymentMethod   string          `json:"payment_method"`
	Status          string          `json:"status"`
	DeliveryBoyID   *uuid.UUID      `json:"delivery_boy_id,omitempty"`
	AssignedAt      *time.Time      `json:"assigned_at,omitempty"`
	PickedUpAt      *time.Time      `json:"picked_up_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// PendingAssignment is one row of GET /api/v1/assignments/pending.
type PendingAssignment struct {
	ID              uuid.UUID `json:"id"`
	OrderID         uuid.UUID `json:"order_id"`
	DeliveryBoyID   uuid.UUID `json:"delivery_boy_id"`
	Notes           string    `json:"notes,omitempty"`
	AssignedAt      time.Time `json:"assigned_at"`
	CustomerName    string    `json:"customer_name"`
	CustomerAddress string    `json:"customer_address"`
	ShopName        string    `json:"shop_name"`
}

// ShopSummary is one row of GET /api/v1/settlements/summary.
type ShopSummary struct {
	ShopName              string          `json:"shop_name"`
	TotalPending          decimal.Decimal `json:"total_pending"`
	TotalPaid             decimal.Decimal `json:"total_paid"`
	PendingCommission     decimal.Decimal `json:"pending_commission"`
	PendingDeliveryCharge decimal.Decimal `json:"pending_delivery_charge"`
	PendingOther          decimal.Decimal `json:"pending_other"`
	PaidCommission        decimal.Decimal `json:"paid_commission"`
	PaidDeliveryCharge    decimal.Decimal `json:"paid_delivery_charge"`
	PaidOther             decimal.Decimal `json:"paid_other"`
	PaymentCount          int             `json:"payment_count"`
}
