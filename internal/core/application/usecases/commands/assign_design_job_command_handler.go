package commands

import (
	"context"
	"fmt"

	"manufacturing/internal/core/domain/model/agent"
	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/designjob"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
)

// AssignDesignJobCommandHandler assigns one design job to one designer,
// enforcing role, activity and capacity. Reassignment releases the previous
// designer's slot in the same transaction.
type AssignDesignJobCommandHandler struct {
	uowFactory DesignUoWFactory
}

// NewAssignDesignJobCommandHandler creates a handler for explicit design job
// assignment.
func NewAssignDesignJobCommandHandler(uowFactory DesignUoWFactory) AssignDesignJobCommandHandler {
	return AssignDesignJobCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle assigns the job, bumps the designer's assignment counter, and emits
// ASSIGNED_TO_DESIGNER, all in one transaction.
func (h AssignDesignJobCommandHandler) Handle(ctx context.Context, command AssignDesignJobCommand) (*designjob.DesignJob, error) {
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

	jobRepo := uow.DesignJobRepository()
	agentRepo := uow.AgentRepository()

	job, err := jobRepo.Get(ctx, command.OrgID(), command.DesignJobID())
	if err != nil {
		return nil, err
	}

	designer, err := agentRepo.Get(ctx, command.OrgID(), command.DesignerID())
	if err != nil {
		return nil, err
	}
	if err = validateAssignable(designer, agent.RoleDesigner); err != nil {
		return nil, err
	}

	previousID := job.AssigneeDesignerID()
	if err = job.AssignDesigner(command.DesignerID()); err != nil {
		return nil, err
	}

	if previousID != nil && !previousID.IsEqual(command.DesignerID()) {
		previous, err := agentRepo.Get(ctx, command.OrgID(), *previousID)
		if err != nil {
			return nil, err
		}
		previous.ReleaseAssignment()
		if err = agentRepo.Update(ctx, previous); err != nil {
			return nil, err
		}
	}

	designer.TakeAssignment()
	if err = agentRepo.Update(ctx, designer); err != nil {
		return nil, err
	}
	if err = jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	err = appendEvent(ctx, uow.AuditEventRepository(), command.OrgID(),
		kernel.KindDesignJob, job.ID(), audit.AssignedToDesigner, command.ActorID(),
		audit.Payload{
			"designer_id": command.DesignerID().String(),
		})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return job, nil
}

// validateAssignable checks that an agent can take one more assignment in the
// given role right now.
func validateAssignable(a *agent.Agent, role agent.Role) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.Role() != role {
		return errs.NewValueIsInvalidErrorWithCause("agent is not eligible",
			fmt.Errorf("agent %s is a %s, not a %s", a.ID(), a.Role(), role))
	}
	if !a.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause("agent is not eligible",
			fmt.Errorf("agent %s is inactive", a.ID()))
	}
	if !a.HasCapacity(nil) {
		return errs.NewValueIsInvalidErrorWithCause("agent is not eligible",
			fmt.Errorf("agent %s is at capacity (%d assignments)", a.ID(), a.AssignedCount()))
	}
	return nil
}
