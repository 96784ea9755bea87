// Package ports defines the persistence contracts between the domain layer
// and infrastructure. Every read is org-scoped: repositories add the org-id
// predicate to each query and report a tenant mismatch as not-found, so the
// engine can never leak cross-tenant existence.
package ports

import (
	"context"

	"manufacturing/internal/core/domain/model/agent"
	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/designjob"
	"manufacturing/internal/core/domain/model/fulfillment"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/purchaseorder"
	"manufacturing/internal/core/domain/model/workorder"
)

// DesignJobRepository persists design job aggregates.
type DesignJobRepository interface {
	// Add persists a new design job. The (orgID, orderItemID) natural key is
	// backed by a uniqueness constraint; a violation surfaces as
	// errs.ObjectAlreadyExistsError.
	Add(ctx context.Context, job *designjob.DesignJob) error

	// Update persists changes to an existing design job.
	Update(ctx context.Context, job *designjob.DesignJob) error

	// Get retrieves a design job by id within the organization.
	Get(ctx context.Context, orgID, id kernel.UUID) (*designjob.DesignJob, error)

	// GetByOrderItemID retrieves the design job for an order item, the
	// natural-key lookup used by the idempotency guard.
	GetByOrderItemID(ctx context.Context, orgID, orderItemID kernel.UUID) (*designjob.DesignJob, error)

	// ListQueuedUnassigned returns queued jobs without an assignee, oldest
	// first, for auto-assignment.
	ListQueuedUnassigned(ctx context.Context, orgID kernel.UUID) ([]*designjob.DesignJob, error)

	// OrgIDsWithQueuedUnassigned returns the organizations that currently
	// have queued unassigned jobs. Used by the background assignment job.
	OrgIDsWithQueuedUnassigned(ctx context.Context) ([]kernel.UUID, error)
}

// WorkOrderRepository persists work order aggregates.
type WorkOrderRepository interface {
	// Add persists a new work order. The (orgID, orderItemID) natural key is
	// backed by a uniqueness constraint; a violation surfaces as
	// errs.ObjectAlreadyExistsError.
	Add(ctx context.Context, wo *workorder.WorkOrder) error

	// Update persists changes to an existing work order.
	Update(ctx context.Context, wo *workorder.WorkOrder) error

	// Get retrieves a work order by id within the organization.
	Get(ctx context.Context, orgID, id kernel.UUID) (*workorder.WorkOrder, error)

	// GetByOrderItemID retrieves the work order for an order item, the
	// natural-key lookup used by the idempotency guard.
	GetByOrderItemID(ctx context.Context, orgID, orderItemID kernel.UUID) (*workorder.WorkOrder, error)

	// ListByOrderID returns every work order of a customer order, used by the
	// all-siblings-complete cascade.
	ListByOrderID(ctx context.Context, orgID, orderID kernel.UUID) ([]*workorder.WorkOrder, error)

	// ListOpen returns work orders in non-terminal statuses, oldest first.
	ListOpen(ctx context.Context, orgID kernel.UUID) ([]*workorder.WorkOrder, error)
}

// MaterialRequirementRepository persists material requirements.
type MaterialRequirementRepository interface {
	// Add persists a new requirement.
	Add(ctx context.Context, req *workorder.MaterialRequirement) error

	// Update persists status changes to an existing requirement.
	Update(ctx context.Context, req *workorder.MaterialRequirement) error

	// Get retrieves a requirement by id within the organization.
	Get(ctx context.Context, orgID, id kernel.UUID) (*workorder.MaterialRequirement, error)

	// ListPendingByWorkOrderIDs returns pending requirements of the given
	// work orders, the input to purchase-order generation.
	ListPendingByWorkOrderIDs(ctx context.Context, orgID kernel.UUID, workOrderIDs []kernel.UUID) ([]*workorder.MaterialRequirement, error)
}

// PurchaseOrderRepository persists purchase order aggregates with their lines.
type PurchaseOrderRepository interface {
	// Add persists a new purchase order and all of its lines atomically.
	Add(ctx context.Context, po *purchaseorder.PurchaseOrder) error

	// Update persists changes to an existing purchase order.
	Update(ctx context.Context, po *purchaseorder.PurchaseOrder) error

	// Get retrieves a purchase order with its lines by id within the
	// organization.
	Get(ctx context.Context, orgID, id kernel.UUID) (*purchaseorder.PurchaseOrder, error)
}

// OrderItemRepository persists the engine's view of customer order items.
type OrderItemRepository interface {
	// Add persists a new order item.
	Add(ctx context.Context, item *fulfillment.OrderItem) error

	// Update persists stage changes to an existing order item.
	Update(ctx context.Context, item *fulfillment.OrderItem) error

	// Get retrieves an order item by id within the organization.
	Get(ctx context.Context, orgID, id kernel.UUID) (*fulfillment.OrderItem, error)
}

// MilestoneRepository persists fulfillment milestones.
type MilestoneRepository interface {
	// AddAll persists a batch of milestones. The (orgID, orderID, code)
	// natural key is backed by a uniqueness constraint; rows whose key
	// already exists are skipped (insert on-conflict-do-nothing), so
	// seeding the same order twice is a no-op rather than an error.
	AddAll(ctx context.Context, milestones []*fulfillment.Milestone) error

	// Update persists status changes to an existing milestone.
	Update(ctx context.Context, milestone *fulfillment.Milestone) error

	// ListByOrderID returns the milestones of an order in seeded sequence.
	ListByOrderID(ctx context.Context, orgID, orderID kernel.UUID) ([]*fulfillment.Milestone, error)

	// GetByCode retrieves one milestone by its (orderID, code) natural key.
	GetByCode(ctx context.Context, orgID, orderID kernel.UUID, code fulfillment.Code) (*fulfillment.Milestone, error)
}

// AgentRepository persists designer and manufacturer agents.
type AgentRepository interface {
	// Add persists a new agent.
	Add(ctx context.Context, a *agent.Agent) error

	// Update persists changes to an existing agent, including the assignment
	// counter.
	Update(ctx context.Context, a *agent.Agent) error

	// Get retrieves an agent by id within the organization.
	Get(ctx context.Context, orgID, id kernel.UUID) (*agent.Agent, error)

	// ListActiveByRole returns the active agents of a role, in a stable
	// order, forming the pool for assignment runs.
	ListActiveByRole(ctx context.Context, orgID kernel.UUID, role agent.Role) ([]*agent.Agent, error)
}

// AuditEventRepository appends to and reads the append-only audit streams.
// There is no update or delete: rows are immutable once written.
type AuditEventRepository interface {
	// Append writes one event within the caller's transaction.
	Append(ctx context.Context, event *audit.Event) error

	// ListByEntity returns an entity's stream ordered by occurredAt.
	ListByEntity(ctx context.Context, orgID kernel.UUID, kind kernel.EntityKind, entityID kernel.UUID) ([]*audit.Event, error)
}
