// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. The Unit of Work pattern maintains a list of objects affected by a
// business transaction and coordinates writing out changes as one atomic
// operation.
//
// Key Features:
//   - Transaction management across the engine's repositories
//   - Aggregate tracking for post-commit processing
//   - Proper isolation between concurrent operations
//
// Usage Pattern:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.WorkOrderRepository().Add(ctx, workOrder); err != nil {
//	    return err
//	}
//	if err := uow.AuditEventRepository().Append(ctx, event); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides one isolated transaction
//   - Multiple goroutines must use separate UnitOfWork instances
//   - Keep transactions short to reduce lock contention
package postgres

import (
	"context"

	"manufacturing/internal/adapters/out/postgres/agentrepo"
	"manufacturing/internal/adapters/out/postgres/auditrepo"
	"manufacturing/internal/adapters/out/postgres/designjobrepo"
	"manufacturing/internal/adapters/out/postgres/fulfillmentrepo"
	"manufacturing/internal/adapters/out/postgres/purchaseorderrepo"
	"manufacturing/internal/adapters/out/postgres/workorderrepo"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// This is useful for implementing patterns like event sourcing or outbox pattern.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{} // Will be changed to a common Aggregate interface in the future
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// database connection. The factory ensures each business operation gets a
// fresh unit of work instance with proper isolation from other concurrent
// operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. The provided database connection is shared by all created
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for business transaction
// management. Each instance maintains its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the engine's
// repositories and tracks aggregate changes made within it. A primary status
// change, its audit event, and any rows that must exist together commit or
// roll back as a unit.
//
// The tracked aggregates remain available after the transaction completes,
// enabling post-commit activities such as domain event publishing.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Subsequent repository operations execute within this transaction context.
// Multiple calls to Begin on the same instance are safe and will not create
// nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// After commit, the transaction is closed and cannot be reused.
//
// Returns error if no active transaction exists or if the commit fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// After rollback, the transaction is closed and cannot be reused. Rolling
// back when no transaction is active returns gorm.ErrInvalidTransaction,
// which deferred cleanup paths routinely ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// conn returns the active transaction if one exists, otherwise the main
// database connection for immediate execution.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// DesignJobRepository provides access to design job persistence within the
// unit of work. The returned repository tracks all aggregates it adds or
// updates.
func (uow *GormUnitOfWork) DesignJobRepository() ports.DesignJobRepository {
	return designjobrepo.NewGormDesignJobRepository(uow.conn(), uow)
}

// WorkOrderRepository provides access to work order persistence within the
// unit of work.
func (uow *GormUnitOfWork) WorkOrderRepository() ports.WorkOrderRepository {
	return workorderrepo.NewGormWorkOrderRepository(uow.conn(), uow)
}

// MaterialRequirementRepository provides access to material requirement
// persistence within the unit of work.
func (uow *GormUnitOfWork) MaterialRequirementRepository() ports.MaterialRequirementRepository {
	return workorderrepo.NewGormMaterialRequirementRepository(uow.conn(), uow)
}

// PurchaseOrderRepository provides access to purchase order persistence
// within the unit of work. Purchase orders persist together with their line
// items.
func (uow *GormUnitOfWork) PurchaseOrderRepository() ports.PurchaseOrderRepository {
	return purchaseorderrepo.NewGormPurchaseOrderRepository(uow.conn(), uow)
}

// OrderItemRepository provides access to order item persistence within the
// unit of work.
func (uow *GormUnitOfWork) OrderItemRepository() ports.OrderItemRepository {
	return fulfillmentrepo.NewGormOrderItemRepository(uow.conn(), uow)
}

// MilestoneRepository provides access to milestone persistence within the
// unit of work.
func (uow *GormUnitOfWork) MilestoneRepository() ports.MilestoneRepository {
	return fulfillmentrepo.NewGormMilestoneRepository(uow.conn(), uow)
}

// AgentRepository provides access to agent persistence within the unit of
// work.
func (uow *GormUnitOfWork) AgentRepository() ports.AgentRepository {
	return agentrepo.NewGormAgentRepository(uow.conn(), uow)
}

// AuditEventRepository provides access to the append-only audit stream
// within the unit of work.
func (uow *GormUnitOfWork) AuditEventRepository() ports.AuditEventRepository {
	return auditrepo.NewGormAuditEventRepository(uow.conn(), uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. This method is typically called by repository implementations
// when aggregates are added or updated.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
