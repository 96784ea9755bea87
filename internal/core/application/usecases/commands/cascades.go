package commands

import (
	"context"
	"log/slog"

	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/designjob"
	"manufacturing/internal/core/domain/model/fulfillment"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/workorder"
)

// qualityApproved is accepted alongside completed and shipped when deciding
// whether every work order of a customer order is done. Upstream quality
// systems report it for work orders they sign off out of band; it is not part
// of the work order vocabulary this engine writes.
const qualityApproved workorder.Status = "quality_approved"

// CascadeRunner executes the secondary updates that primary transitions
// trigger. Cascades run after the primary transaction has committed, each in
// its own transaction, and they never surface failures to the caller: a
// broken cascade is logged, recorded as a failure audit event, and the
// primary result stands.
type CascadeRunner struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewCascadeRunner creates a cascade runner over the given unit of work
// factory.
func NewCascadeRunner(uowFactory UoWFactory, logger *slog.Logger) CascadeRunner {
	return CascadeRunner{
		uowFactory: uowFactory,
		logger:     logger.With("component", "cascades"),
	}
}

// DesignApproved creates the work order for an approved design job's order
// item. The creation is idempotent: when the work order already exists
// nothing is written and no event fires. Failures are absorbed into a
// WORK_ORDER_AUTO_CREATE_FAILED event on the design job's stream.
func (r CascadeRunner) DesignApproved(ctx context.Context, job *designjob.DesignJob) {
	wo, created, err := createOrFetchWorkOrder(ctx, r.uowFactory, workOrderSeed{
		orgID:       job.OrgID(),
		orderItemID: job.OrderItemID(),
		quantity:    1,
		priority:    job.Priority(),
	})
	if err != nil {
		r.logger.Error("work order auto-creation failed",
			"design_job_id", job.ID(), "order_item_id", job.OrderItemID(), "error", err)
		recordBestEffort(ctx, r.uowFactory, r.logger, job.OrgID(),
			kernel.KindDesignJob, job.ID(), audit.WorkOrderAutoCreateFailed, audit.Payload{
				"order_item_id": job.OrderItemID().String(),
				"error":         err.Error(),
			})
		return
	}
	if !created {
		return
	}

	r.logger.Info("work order auto-created",
		"design_job_id", job.ID(), "work_order_id", wo.ID())
	recordBestEffort(ctx, r.uowFactory, r.logger, job.OrgID(),
		kernel.KindDesignJob, job.ID(), audit.WorkOrderAutoCreated, audit.Payload{
			"work_order_id": wo.ID().String(),
			"order_item_id": job.OrderItemID().String(),
		})
}

// WorkOrderStatusChanged runs the cascades attached to a work order's new
// status: milestone advancement when the order's last work order completes,
// purchase order generation when the status signals pending material demand,
// and milestone blocking when production goes on hold.
func (r CascadeRunner) WorkOrderStatusChanged(ctx context.Context, wo *workorder.WorkOrder) {
	switch {
	case wo.Status() == workorder.Completed:
		if err := r.advanceOrderMilestones(ctx, wo); err != nil {
			r.logger.Error("milestone advancement failed",
				"work_order_id", wo.ID(), "order_id", wo.OrderID(), "error", err)
			recordBestEffort(ctx, r.uowFactory, r.logger, wo.OrgID(),
				kernel.KindWorkOrder, wo.ID(), audit.MilestoneUpdateFailed, audit.Payload{
					"order_id": wo.OrderID().String(),
					"error":    err.Error(),
				})
		}
	case wo.Status().IsMaterialsPending():
		if err := r.generateMaterialOrders(ctx, wo); err != nil {
			r.logger.Error("purchase order generation failed",
				"work_order_id", wo.ID(), "error", err)
			recordBestEffort(ctx, r.uowFactory, r.logger, wo.OrgID(),
				kernel.KindWorkOrder, wo.ID(), audit.POGenerationFailed, audit.Payload{
					"error": err.Error(),
				})
		}
	case wo.Status() == workorder.OnHold:
		r.ProductionDelayed(ctx, wo)
	}
}

// ProductionDelayed blocks the not-yet-completed milestones of the work
// order's customer order with the reported delay reason.
func (r CascadeRunner) ProductionDelayed(ctx context.Context, wo *workorder.WorkOrder) {
	if err := r.blockOrderMilestones(ctx, wo); err != nil {
		r.logger.Error("milestone blocking failed",
			"work_order_id", wo.ID(), "order_id", wo.OrderID(), "error", err)
		recordBestEffort(ctx, r.uowFactory, r.logger, wo.OrgID(),
			kernel.KindWorkOrder, wo.ID(), audit.MilestoneUpdateFailed, audit.Payload{
				"order_id": wo.OrderID().String(),
				"error":    err.Error(),
			})
	}
}

// advanceOrderMilestones completes READY_FOR_PACKAGING and starts
// READY_TO_SHIP once every work order of the customer order is done. A
// sibling still in flight ends the cascade without writing anything.
func (r CascadeRunner) advanceOrderMilestones(ctx context.Context, wo *workorder.WorkOrder) error {
	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	siblings, err := uow.WorkOrderRepository().ListByOrderID(ctx, wo.OrgID(), wo.OrderID())
	if err != nil {
		return err
	}
	for _, sibling := range siblings {
		if !workOrderDone(sibling.Status()) {
			return nil
		}
	}

	msRepo := uow.MilestoneRepository()
	reached := make([]string, 0, 2)

	packaging, err := msRepo.GetByCode(ctx, wo.OrgID(), wo.OrderID(), fulfillment.ReadyForPackaging)
	if err != nil {
		return err
	}
	if packaging.Status() != fulfillment.MilestoneCompleted {
		if err = packaging.Complete(); err != nil {
			return err
		}
		if err = msRepo.Update(ctx, packaging); err != nil {
			return err
		}
		reached = append(reached, fulfillment.ReadyForPackaging.String())
	}

	toShip, err := msRepo.GetByCode(ctx, wo.OrgID(), wo.OrderID(), fulfillment.ReadyToShipMilestone)
	if err != nil {
		return err
	}
	if toShip.Status() == fulfillment.MilestonePending {
		if err = toShip.Start(); err != nil {
			return err
		}
		if err = msRepo.Update(ctx, toShip); err != nil {
			return err
		}
		reached = append(reached, fulfillment.ReadyToShipMilestone.String())
	}

	if len(reached) > 0 {
		err = appendEvent(ctx, uow.AuditEventRepository(), wo.OrgID(),
			kernel.KindWorkOrder, wo.ID(), audit.MilestoneReached, nil, audit.Payload{
				"order_id":   wo.OrderID().String(),
				"milestones": reached,
			})
		if err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// generateMaterialOrders sweeps the work order's pending material
// requirements into supplier purchase orders. No pending requirements means
// no write at all.
func (r CascadeRunner) generateMaterialOrders(ctx context.Context, wo *workorder.WorkOrder) error {
	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.MaterialRequirementRepository().
		ListPendingByWorkOrderIDs(ctx, wo.OrgID(), []kernel.UUID{wo.ID()})
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	orders, err := generatePurchaseOrders(ctx, uow, wo.OrgID(), pending, 0, nil)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(orders))
	for _, po := range orders {
		ids = append(ids, po.ID().String())
	}
	err = appendEvent(ctx, uow.AuditEventRepository(), wo.OrgID(),
		kernel.KindWorkOrder, wo.ID(), audit.POsAutoGenerated, nil, audit.Payload{
			"purchase_order_ids": ids,
			"requirement_count":  len(pending),
		})
	if err != nil {
		return err
	}

	r.logger.Info("purchase orders auto-generated",
		"work_order_id", wo.ID(), "count", len(orders))
	return uow.Commit(ctx)
}

// blockOrderMilestones marks every open milestone of the customer order
// blocked with the work order's delay reason.
func (r CascadeRunner) blockOrderMilestones(ctx context.Context, wo *workorder.WorkOrder) error {
	reason := wo.DelayReason()
	if reason == "" {
		reason = "production on hold"
	}

	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	msRepo := uow.MilestoneRepository()
	milestones, err := msRepo.ListByOrderID(ctx, wo.OrgID(), wo.OrderID())
	if err != nil {
		return err
	}

	blocked := make([]string, 0, len(milestones))
	for _, m := range milestones {
		if !m.IsOpen() || m.Status() == fulfillment.MilestoneBlocked {
			continue
		}
		if err = m.Block(reason); err != nil {
			return err
		}
		if err = msRepo.Update(ctx, m); err != nil {
			return err
		}
		blocked = append(blocked, m.Code().String())
	}
	if len(blocked) == 0 {
		return nil
	}

	err = appendEvent(ctx, uow.AuditEventRepository(), wo.OrgID(),
		kernel.KindOrderItem, wo.OrderItemID(), audit.MilestonesBlocked, nil, audit.Payload{
			"order_id":   wo.OrderID().String(),
			"reason":     reason,
			"milestones": blocked,
		})
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// workOrderDone reports whether a sibling work order no longer stands in the
// way of order-level milestone advancement.
func workOrderDone(s workorder.Status) bool {
	switch s {
	case workorder.Completed, workorder.Shipped, qualityApproved:
		return true
	default:
		return false
	}
}
