package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/agent"
	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/workorder"
)

// AssignManufacturerCommandHandler assigns a work order to a manufacturer,
// enforcing role, activity and capacity. Assignment does not change the work
// order's status.
type AssignManufacturerCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignManufacturerCommandHandler creates a handler for manufacturer
// assignment.
func NewAssignManufacturerCommandHandler(uowFactory UoWFactory) AssignManufacturerCommandHandler {
	return AssignManufacturerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle assigns the work order, bumps the manufacturer's assignment counter,
// and emits ASSIGNED_TO_MANUFACTURER, all in one transaction.
func (h AssignManufacturerCommandHandler) Handle(ctx context.Context, command AssignManufacturerCommand) (*workorder.WorkOrder, error) {
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
	agentRepo := uow.AgentRepository()

	wo, err := woRepo.Get(ctx, command.OrgID(), command.WorkOrderID())
	if err != nil {
		return nil, err
	}

	manufacturer, err := agentRepo.Get(ctx, command.OrgID(), command.ManufacturerID())
	if err != nil {
		return nil, err
	}
	if err = validateAssignable(manufacturer, agent.RoleManufacturer); err != nil {
		return nil, err
	}

	previousID := wo.ManufacturerID()
	if err = wo.AssignManufacturer(command.ManufacturerID()); err != nil {
		return nil, err
	}

	if previousID != nil && !previousID.IsEqual(command.ManufacturerID()) {
		previous, err := agentRepo.Get(ctx, command.OrgID(), *previousID)
		if err != nil {
			return nil, err
		}
		previous.ReleaseAssignment()
		if err = agentRepo.Update(ctx, previous); err != nil {
			return nil, err
		}
	}

	manufacturer.TakeAssignment()
	if err = agentRepo.Update(ctx, manufacturer); err != nil {
		return nil, err
	}
	if err = woRepo.Update(ctx, wo); err != nil {
		return nil, err
	}

	err = appendEvent(ctx, uow.AuditEventRepository(), command.OrgID(),
		kernel.KindWorkOrder, wo.ID(), audit.AssignedToManufacturer, command.ActorID(),
		audit.Payload{
			"manufacturer_id": command.ManufacturerID().String(),
		})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return wo, nil
}
