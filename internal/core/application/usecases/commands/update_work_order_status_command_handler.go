package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/workorder"
)

// UpdateWorkOrderStatusCommandHandler performs a work order's primary status
// transition and then fires the status-dependent cascades. The primary
// transition and its STATUS_UPDATED event commit first; cascade failures
// never undo them.
type UpdateWorkOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	cascades   CascadeRunner
}

// NewUpdateWorkOrderStatusCommandHandler creates a handler for work order
// status transitions.
func NewUpdateWorkOrderStatusCommandHandler(uowFactory UoWFactory, cascades CascadeRunner) UpdateWorkOrderStatusCommandHandler {
	return UpdateWorkOrderStatusCommandHandler{
		uowFactory: uowFactory,
		cascades:   cascades,
	}
}

// Handle commits the transition, then runs milestone advancement, purchase
// order generation, or milestone blocking depending on the new status.
func (h UpdateWorkOrderStatusCommandHandler) Handle(ctx context.Context, command UpdateWorkOrderStatusCommand) (*workorder.WorkOrder, error) {
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

	woRepo := uow.WorkOrderRepository()
	wo, err := woRepo.Get(ctx, command.OrgID(), command.WorkOrderID())
	if err != nil {
		return nil, err
	}

	from := wo.Status()
	if err = wo.ChangeStatus(command.To()); err != nil {
		return nil, err
	}
	if command.QualityNotes() != "" {
		wo.RecordQualityNotes(command.QualityNotes())
	}
	if err = woRepo.Update(ctx, wo); err != nil {
		return nil, err
	}

	err = appendEvent(ctx, uow.AuditEventRepository(), command.OrgID(),
		kernel.KindWorkOrder, wo.ID(), audit.StatusUpdated, command.ActorID(),
		audit.Payload{
			"from": from.String(),
			"to":   wo.Status().String(),
		})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.cascades.WorkOrderStatusChanged(ctx, wo)
	return wo, nil
}
