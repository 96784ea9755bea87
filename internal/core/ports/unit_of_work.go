package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per request/command, ensuring
// isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary over the data store. A
// primary status change, its audit event, and any rows that must exist
// together (for example a work order and its seeded milestones) commit
// through one UnitOfWork; cascades each open their own.
type UnitOfWork interface {
	// Begin starts a new database transaction. Calling Begin on an instance
	// with an active transaction is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Rolling back after a
	// successful commit is a no-op error and is routinely deferred.
	Rollback(ctx context.Context) error

	// DesignJobRepository returns a repository bound to the current
	// transaction.
	DesignJobRepository() DesignJobRepository

	// WorkOrderRepository returns a repository bound to the current
	// transaction.
	WorkOrderRepository() WorkOrderRepository

	// MaterialRequirementRepository returns a repository bound to the
	// current transaction.
	MaterialRequirementRepository() MaterialRequirementRepository

	// PurchaseOrderRepository returns a repository bound to the current
	// transaction.
	PurchaseOrderRepository() PurchaseOrderRepository

	// OrderItemRepository returns a repository bound to the current
	// transaction.
	OrderItemRepository() OrderItemRepository

	// MilestoneRepository returns a repository bound to the current
	// transaction.
	MilestoneRepository() MilestoneRepository

	// AgentRepository returns a repository bound to the current transaction.
	AgentRepository() AgentRepository

	// AuditEventRepository returns a repository bound to the current
	// transaction.
	AuditEventRepository() AuditEventRepository
}
