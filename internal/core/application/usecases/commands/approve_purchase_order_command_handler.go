package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/purchaseorder"
)

// ApprovePurchaseOrderCommandHandler approves purchase orders waiting in the
// approval queue.
type ApprovePurchaseOrderCommandHandler struct {
	uowFactory ProcurementUoWFactory
}

// NewApprovePurchaseOrderCommandHandler creates a handler for purchase order
// approval.
func NewApprovePurchaseOrderCommandHandler(uowFactory ProcurementUoWFactory) ApprovePurchaseOrderCommandHandler {
	return ApprovePurchaseOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle moves the purchase order to approved and writes PO_APPROVED in the
// same transaction.
func (h ApprovePurchaseOrderCommandHandler) Handle(ctx context.Context, command ApprovePurchaseOrderCommand) (*purchaseorder.PurchaseOrder, error) {
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

	poRepo := uow.PurchaseOrderRepository()
	po, err := poRepo.Get(ctx, command.OrgID(), command.PurchaseOrderID())
	if err != nil {
		return nil, err
	}

	if err = po.Approve(); err != nil {
		return nil, err
	}
	if err = poRepo.Update(ctx, po); err != nil {
		return nil, err
	}

	err = appendEvent(ctx, uow.AuditEventRepository(), command.OrgID(),
		kernel.KindPurchaseOrder, po.ID(), audit.PurchaseOrderApproved, command.ActorID(),
		audit.Payload{
			"total_amount_cent": po.TotalAmountCent(),
		})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return po, nil
}
