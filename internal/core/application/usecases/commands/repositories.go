// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"manufacturing/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DesignJobRepoFactory provides access to the design job repository within a transaction.
	DesignJobRepoFactory interface {
		DesignJobRepository() ports.DesignJobRepository
	}

	// WorkOrderRepoFactory provides access to the work order repository within a transaction.
	WorkOrderRepoFactory interface {
		WorkOrderRepository() ports.WorkOrderRepository
	}

	// MaterialRequirementRepoFactory provides access to the material requirement
	// repository within a transaction.
	MaterialRequirementRepoFactory interface {
		MaterialRequirementRepository() ports.MaterialRequirementRepository
	}

	// PurchaseOrderRepoFactory provides access to the purchase order repository
	// within a transaction.
	PurchaseOrderRepoFactory interface {
		PurchaseOrderRepository() ports.PurchaseOrderRepository
	}

	// OrderItemRepoFactory provides access to the order item repository within a transaction.
	OrderItemRepoFactory interface {
		OrderItemRepository() ports.OrderItemRepository
	}

	// MilestoneRepoFactory provides access to the milestone repository within a transaction.
	MilestoneRepoFactory interface {
		MilestoneRepository() ports.MilestoneRepository
	}

	// AgentRepoFactory provides access to the agent repository within a transaction.
	AgentRepoFactory interface {
		AgentRepository() ports.AgentRepository
	}

	// AuditRepoFactory provides access to the audit event repository within a
	// transaction. Every primary command writes its audit event through this
	// factory so the event commits or rolls back with the state change.
	AuditRepoFactory interface {
		AuditEventRepository() ports.AuditEventRepository
	}

	// DesignUoW manages transactions for the design stage: design jobs, the
	// designer pool, and their audit streams.
	DesignUoW interface {
		TxManager
		DesignJobRepoFactory
		AgentRepoFactory
		AuditRepoFactory
	}

	// DesignUoWFactory creates new design unit of work instances.
	DesignUoWFactory interface {
		Create() DesignUoW
	}

	// ProcurementUoW manages transactions for procurement: purchase orders,
	// the material requirements they cover, and their audit streams.
	ProcurementUoW interface {
		TxManager
		PurchaseOrderRepoFactory
		MaterialRequirementRepoFactory
		AuditRepoFactory
	}

	// ProcurementUoWFactory creates new procurement unit of work instances.
	ProcurementUoWFactory interface {
		Create() ProcurementUoW
	}

	// UoW manages transactions across every aggregate the engine owns. Used by
	// commands and cascades that touch multiple life cycles at once, such as
	// work order creation (work order + milestones + order item + audit).
	//
	// Example:
	//
	//	uow := factory.Create()
	//	err := uow.Begin(ctx)
	//	defer uow.Rollback(ctx)
	//
	//	woRepo := uow.WorkOrderRepository()
	//	msRepo := uow.MilestoneRepository()
	//	// ... perform operations
	//
	//	err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DesignJobRepoFactory
		WorkOrderRepoFactory
		MaterialRequirementRepoFactory
		PurchaseOrderRepoFactory
		OrderItemRepoFactory
		MilestoneRepoFactory
		AgentRepoFactory
		AuditRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)
