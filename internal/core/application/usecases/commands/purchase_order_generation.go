package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/purchaseorder"
	"manufacturing/internal/core/domain/model/workorder"
)

// generatePurchaseOrders sweeps pending material requirements into one
// purchase order per supplier, inside the caller's transaction. Each order is
// submitted against the approval threshold (auto-approved below it), the
// covered requirements move to ordered, and a PURCHASE_ORDER_CREATED event is
// appended per order.
//
// Suppliers are emitted in first-seen requirement order, so identical inputs
// produce identical output.
func generatePurchaseOrders(
	ctx context.Context,
	uow UoW,
	orgID kernel.UUID,
	requirements []*workorder.MaterialRequirement,
	thresholdCent int64,
	actorID *kernel.UUID,
) ([]*purchaseorder.PurchaseOrder, error) {
	if thresholdCent <= 0 {
		thresholdCent = purchaseorder.DefaultApprovalThresholdCent
	}

	var supplierIDs []kernel.UUID
	bySupplier := make(map[kernel.UUID][]*workorder.MaterialRequirement)
	for _, req := range requirements {
		if _, seen := bySupplier[req.SupplierID()]; !seen {
			supplierIDs = append(supplierIDs, req.SupplierID())
		}
		bySupplier[req.SupplierID()] = append(bySupplier[req.SupplierID()], req)
	}

	poRepo := uow.PurchaseOrderRepository()
	reqRepo := uow.MaterialRequirementRepository()
	auditRepo := uow.AuditEventRepository()

	orders := make([]*purchaseorder.PurchaseOrder, 0, len(supplierIDs))
	for _, supplierID := range supplierIDs {
		group := bySupplier[supplierID]

		items := make([]purchaseorder.Item, 0, len(group))
		for _, req := range group {
			item, err := purchaseorder.NewItem(
				kernel.NewUUID(), req.ID(), req.MaterialID(),
				req.QuantityNeeded(), req.UnitCostCent(),
			)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}

		po, err := purchaseorder.NewPurchaseOrder(kernel.NewUUID(), orgID, supplierID, thresholdCent, items)
		if err != nil {
			return nil, err
		}
		if err = po.Submit(); err != nil {
			return nil, err
		}
		if err = poRepo.Add(ctx, po); err != nil {
			return nil, err
		}

		for _, req := range group {
			if err = req.MarkOrdered(); err != nil {
				return nil, err
			}
			if err = reqRepo.Update(ctx, req); err != nil {
				return nil, err
			}
		}

		err = appendEvent(ctx, auditRepo, orgID, kernel.KindPurchaseOrder, po.ID(),
			audit.PurchaseOrderCreated, actorID, audit.Payload{
				"supplier_id":       supplierID.String(),
				"status":            po.Status().String(),
				"total_amount_cent": po.TotalAmountCent(),
				"item_count":        len(items),
			})
		if err != nil {
			return nil, err
		}

		orders = append(orders, po)
	}

	return orders, nil
}
