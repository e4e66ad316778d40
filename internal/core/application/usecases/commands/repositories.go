// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends on the narrowest interface covering the
// repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AssignmentRepoFactory provides access to the assignment repository
	// within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// DeliveryBoyRepoFactory provides access to the delivery boy repository
	// within a transaction.
	DeliveryBoyRepoFactory interface {
		DeliveryBoyRepository() ports.DeliveryBoyRepository
	}

	// ShopPaymentRepoFactory provides access to the shop payment repository
	// within a transaction.
	ShopPaymentRepoFactory interface {
		ShopPaymentRepository() ports.ShopPaymentRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// AssignmentUoW manages transactions for the assignment protocol,
	// which reads delivery boys and writes orders and assignments.
	//
	// Note that holding all three repositories does not give the
	// coordinator cross-table atomicity: it creates a separate unit of
	// work per saga step on purpose.
	AssignmentUoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
		DeliveryBoyRepoFactory
	}

	// AssignmentUoWFactory creates new assignment unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// SettlementUoW manages transactions for reconciliation, which reads
	// delivered orders and writes shop payments.
	SettlementUoW interface {
		TxManager
		OrderRepoFactory
		ShopPaymentRepoFactory
	}

	// SettlementUoWFactory creates new settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}

	// PaymentUoW manages transactions for payment-only operations.
	PaymentUoW interface {
		TxManager
		ShopPaymentRepoFactory
	}

	// PaymentUoWFactory creates new payment unit of work instances.
	PaymentUoWFactory interface {
		Create() PaymentUoW
	}
)
