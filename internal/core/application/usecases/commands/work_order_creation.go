package commands

import (
	"context"
	"errors"
	"time"

	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/fulfillment"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/workorder"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/idempotency"
)

// workOrderSeed carries everything needed to create one work order for an
// order item. It is shared by the manual create command, bulk generation, and
// the design-approval cascade so all three produce identical rows.
type workOrderSeed struct {
	orgID        kernel.UUID
	orderItemID  kernel.UUID
	quantity     int
	priority     int
	plannedStart *time.Time
	plannedEnd   *time.Time
	actorID      *kernel.UUID
}

// createOrFetchWorkOrder creates the work order for an order item, or returns
// the one that already exists. At most one work order exists per order item;
// the data store's natural-key constraint backs that up, and a lost insert
// race converges on the winner's row.
//
// Creation is one transaction: the work order row, the order's default
// milestone set (when not yet seeded), the order item's move into the
// preparation stage, and the WORK_ORDER_CREATED event all commit together.
func createOrFetchWorkOrder(ctx context.Context, factory UoWFactory, seed workOrderSeed) (*workorder.WorkOrder, bool, error) {
	find := func(ctx context.Context) (*workorder.WorkOrder, error) {
		uow := factory.Create()
		return uow.WorkOrderRepository().GetByOrderItemID(ctx, seed.orgID, seed.orderItemID)
	}

	create := func(ctx context.Context) (*workorder.WorkOrder, error) {
		uow := factory.Create()
		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		item, err := uow.OrderItemRepository().Get(ctx, seed.orgID, seed.orderItemID)
		if err != nil {
			return nil, err
		}

		wo, err := workorder.NewWorkOrder(
			kernel.NewUUID(), seed.orgID, seed.orderItemID, item.OrderID(),
			seed.quantity, seed.priority,
		)
		if err != nil {
			return nil, err
		}
		if seed.plannedStart != nil && seed.plannedEnd != nil {
			if err = wo.SchedulePlan(*seed.plannedStart, *seed.plannedEnd); err != nil {
				return nil, err
			}
		}

		if err = uow.WorkOrderRepository().Add(ctx, wo); err != nil {
			return nil, err
		}

		seeded, err := seedMilestones(ctx, uow, seed.orgID, item.OrderID())
		if err != nil {
			return nil, err
		}

		if item.Stage() == fulfillment.NotStarted {
			if err = item.AdvanceStage(fulfillment.Preparation); err != nil {
				return nil, err
			}
			if err = uow.OrderItemRepository().Update(ctx, item); err != nil {
				return nil, err
			}
		}

		auditRepo := uow.AuditEventRepository()
		err = appendEvent(ctx, auditRepo, seed.orgID, kernel.KindWorkOrder, wo.ID(),
			audit.WorkOrderCreated, seed.actorID, audit.Payload{
				"order_item_id": seed.orderItemID.String(),
				"order_id":      item.OrderID().String(),
				"quantity":      seed.quantity,
				"priority":      seed.priority,
			})
		if err != nil {
			return nil, err
		}
		if seeded {
			err = appendEvent(ctx, auditRepo, seed.orgID, kernel.KindOrderItem, item.ID(),
				audit.MilestonesSeeded, seed.actorID, audit.Payload{
					"order_id": item.OrderID().String(),
					"count":    len(fulfillment.DefaultCodes()),
				})
			if err != nil {
				return nil, err
			}
		}

		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return wo, nil
	}

	return idempotency.CreateOrFetch(ctx, find, create)
}

// seedMilestones writes the default milestone sequence for an order unless it
// was seeded before. AddAll skips rows whose (org, order, code) key already
// exists, so two work orders of the same order racing here both succeed.
func seedMilestones(ctx context.Context, uow UoW, orgID, orderID kernel.UUID) (bool, error) {
	existing, err := uow.MilestoneRepository().ListByOrderID(ctx, orgID, orderID)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	milestones := make([]*fulfillment.Milestone, 0, len(fulfillment.DefaultCodes()))
	for _, code := range fulfillment.DefaultCodes() {
		m, err := fulfillment.NewMilestone(kernel.NewUUID(), orgID, orderID, code)
		if err != nil {
			return false, err
		}
		milestones = append(milestones, m)
	}

	if err := uow.MilestoneRepository().AddAll(ctx, milestones); err != nil {
		return false, err
	}
	return true, nil
}
