package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/workorder"
)

// CreateWorkOrderCommandHandler opens work orders manually. It shares the
// creation path with bulk generation and the design-approval cascade, so a
// manual create and an automatic one are indistinguishable in the data store.
type CreateWorkOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateWorkOrderCommandHandler creates a handler for work order creation.
func NewCreateWorkOrderCommandHandler(uowFactory UoWFactory) CreateWorkOrderCommandHandler {
	return CreateWorkOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the work order for the command's order item, or returns the
// existing one. Creation seeds the order's milestone set, moves the order
// item into preparation, and writes WORK_ORDER_CREATED, all in one
// transaction.
func (h CreateWorkOrderCommandHandler) Handle(ctx context.Context, command CreateWorkOrderCommand) (*workorder.WorkOrder, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	wo, _, err := createOrFetchWorkOrder(ctx, h.uowFactory, workOrderSeed{
		orgID:        command.OrgID(),
		orderItemID:  command.OrderItemID(),
		quantity:     command.Quantity(),
		priority:     command.Priority(),
		plannedStart: command.PlannedStart(),
		plannedEnd:   command.PlannedEnd(),
		actorID:      command.ActorID(),
	})
	return wo, err
}
