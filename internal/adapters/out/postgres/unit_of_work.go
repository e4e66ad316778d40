// Package postgres provides the GORM-based implementation of the Unit of
// Work pattern. A unit of work owns one database transaction, hands out
// repositories bound to it, and records which tables the transaction
// touched so that change signals can go out after a successful commit.
//
// Signals travel two ways: through the in-process publisher for observers
// inside this process, and through pg_notify on the "table_changed" channel
// for other processes listening on the same database. The pg_notify call
// runs inside the transaction, so Postgres delivers it only on commit.
package postgres

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/assignmentrepo"
	"fulfillment/internal/adapters/out/postgres/deliveryboyrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/paymentrepo"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// NotifyChannel is the Postgres channel change signals are broadcast on.
// The payload is the table name.
const NotifyChannel = "table_changed"

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool and one change publisher.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.ChangePublisher
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. Committed changes are announced on the given publisher.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.ChangePublisher) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
	}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		publisher: f.publisher,
		touched:   make(map[string]struct{}),
	}
}

// GormUnitOfWork coordinates one database transaction and the change
// signals that follow it. Repositories created from it report their writes
// via TrackChange; Commit turns the collected set into one signal per
// table. A rolled back transaction publishes nothing.
type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	publisher ports.ChangePublisher
	touched   map[string]struct{}
}

// Begin initiates a new database transaction. Calling Begin again on an
// instance with an open transaction is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes the transaction and announces the touched tables, first
// to other processes via pg_notify (delivered by Postgres on commit), then
// to in-process subscribers. On commit failure nothing is published.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	for table := range uow.touched {
		if err := uow.tx.Exec("SELECT pg_notify(?, ?)", NotifyChannel, table).Error; err != nil {
			uow.tx = nil
			return err
		}
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for table := range uow.touched {
		uow.publisher.Publish(table)
	}
	uow.touched = make(map[string]struct{})

	return nil
}

// Rollback discards the transaction and the pending change signals.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.touched = make(map[string]struct{})
	return err
}

// TrackChange records that a row in the given table was written within
// this unit of work. Called by the repository implementations.
func (uow *GormUnitOfWork) TrackChange(table string) {
	uow.touched[table] = struct{}{}
}

// OrderRepository returns an order repository bound to the current
// transaction, or to the pool if no transaction is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// AssignmentRepository returns an assignment repository bound to the
// current transaction.
func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentrepo.NewGormAssignmentRepository(uow.conn(), uow)
}

// DeliveryBoyRepository returns a delivery boy repository bound to the
// current transaction.
func (uow *GormUnitOfWork) DeliveryBoyRepository() ports.DeliveryBoyRepository {
	return deliveryboyrepo.NewGormDeliveryBoyRepository(uow.conn())
}

// ShopPaymentRepository returns a shop payment repository bound to the
// current transaction.
func (uow *GormUnitOfWork) ShopPaymentRepository() ports.ShopPaymentRepository {
	return paymentrepo.NewGormShopPaymentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
