package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/workorder"
)

// ReportProductionDelayCommandHandler records a production delay and blocks
// the order's open milestones. The delay itself commits first; the milestone
// blocking is a cascade and cannot undo it.
type ReportProductionDelayCommandHandler struct {
	uowFactory UoWFactory
	cascades   CascadeRunner
}

// NewReportProductionDelayCommandHandler creates a handler for delay reports.
func NewReportProductionDelayCommandHandler(uowFactory UoWFactory, cascades CascadeRunner) ReportProductionDelayCommandHandler {
	return ReportProductionDelayCommandHandler{
		uowFactory: uowFactory,
		cascades:   cascades,
	}
}

// Handle records the delay (optionally parking the work order in on_hold),
// writes PRODUCTION_DELAYED, then blocks open milestones.
func (h ReportProductionDelayCommandHandler) Handle(ctx context.Context, command ReportProductionDelayCommand) (*workorder.WorkOrder, error) {
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

	if err = wo.ReportDelay(command.Reason(), command.Hold()); err != nil {
		return nil, err
	}
	if err = woRepo.Update(ctx, wo); err != nil {
		return nil, err
	}

	err = appendEvent(ctx, uow.AuditEventRepository(), command.OrgID(),
		kernel.KindWorkOrder, wo.ID(), audit.ProductionDelayed, command.ActorID(),
		audit.Payload{
			"reason":  command.Reason(),
			"on_hold": command.Hold(),
		})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.cascades.ProductionDelayed(ctx, wo)
	return wo, nil
}
