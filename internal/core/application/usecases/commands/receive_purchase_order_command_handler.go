package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/purchaseorder"
	"manufacturing/internal/core/domain/model/workorder"
)

// ReceivePurchaseOrderCommandHandler records warehouse receipt of a delivered
// purchase order and advances the material requirements its lines cover.
type ReceivePurchaseOrderCommandHandler struct {
	uowFactory ProcurementUoWFactory
}

// NewReceivePurchaseOrderCommandHandler creates a handler for purchase order
// receipt.
func NewReceivePurchaseOrderCommandHandler(uowFactory ProcurementUoWFactory) ReceivePurchaseOrderCommandHandler {
	return ReceivePurchaseOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle moves the purchase order to received, marks the covered requirements
// received, and writes PO_RECEIVED, all in one transaction.
func (h ReceivePurchaseOrderCommandHandler) Handle(ctx context.Context, command ReceivePurchaseOrderCommand) (*purchaseorder.PurchaseOrder, error) {
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
	reqRepo := uow.MaterialRequirementRepository()

	po, err := poRepo.Get(ctx, command.OrgID(), command.PurchaseOrderID())
	if err != nil {
		return nil, err
	}

	if err = po.Receive(); err != nil {
		return nil, err
	}
	if err = poRepo.Update(ctx, po); err != nil {
		return nil, err
	}

	received := 0
	for _, item := range po.Items() {
		req, err := reqRepo.Get(ctx, command.OrgID(), item.RequirementID())
		if err != nil {
			return nil, err
		}
		// A requirement already past ordered (for example fulfilled by a
		// partial earlier receipt) stays where it is.
		if req.Status() != workorder.RequirementOrdered {
			continue
		}
		if err = req.MarkReceived(); err != nil {
			return nil, err
		}
		if err = reqRepo.Update(ctx, req); err != nil {
			return nil, err
		}
		received++
	}

	err = appendEvent(ctx, uow.AuditEventRepository(), command.OrgID(),
		kernel.KindPurchaseOrder, po.ID(), audit.PurchaseOrderReceived, command.ActorID(),
		audit.Payload{
			"requirements_received": received,
		})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return po, nil
}
