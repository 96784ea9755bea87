package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/purchaseorder"
)

// GeneratePurchaseOrdersCommandHandler sweeps pending material requirements
// into supplier-grouped purchase orders on demand. The same core runs inside
// the materials-pending cascade; this handler is the manual entry point.
type GeneratePurchaseOrdersCommandHandler struct {
	uowFactory UoWFactory
}

// NewGeneratePurchaseOrdersCommandHandler creates a handler for on-demand
// purchase order generation.
func NewGeneratePurchaseOrdersCommandHandler(uowFactory UoWFactory) GeneratePurchaseOrdersCommandHandler {
	return GeneratePurchaseOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle generates one purchase order per supplier with pending requirements
// across the command's work orders. No pending requirements yields an empty
// result, not an error.
func (h GeneratePurchaseOrdersCommandHandler) Handle(ctx context.Context, command GeneratePurchaseOrdersCommand) ([]*purchaseorder.PurchaseOrder, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.MaterialRequirementRepository().
		ListPendingByWorkOrderIDs(ctx, command.OrgID(), command.WorkOrderIDs())
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, nil
	}

	orders, err := generatePurchaseOrders(ctx, uow, command.OrgID(), pending,
		command.ThresholdCent(), command.ActorID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return orders, nil
}
