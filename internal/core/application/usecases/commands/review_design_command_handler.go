package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/designjob"
	"manufacturing/internal/core/domain/model/kernel"
)

// ReviewDesignCommandHandler applies a review verdict to a submitted design
// job. The verdict, its audit event, and the release of the designer's slot
// on terminal verdicts commit together; on approval the work order cascade
// runs afterwards and cannot undo the approval.
type ReviewDesignCommandHandler struct {
	uowFactory UoWFactory
	cascades   CascadeRunner
}

// NewReviewDesignCommandHandler creates a handler for design review verdicts.
func NewReviewDesignCommandHandler(uowFactory UoWFactory, cascades CascadeRunner) ReviewDesignCommandHandler {
	return ReviewDesignCommandHandler{
		uowFactory: uowFactory,
		cascades:   cascades,
	}
}

// Handle commits the verdict's primary transition, then fires the
// auto-work-order cascade for approvals.
func (h ReviewDesignCommandHandler) Handle(ctx context.Context, command ReviewDesignCommand) (*designjob.DesignJob, error) {
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
	job, err := jobRepo.Get(ctx, command.OrgID(), command.DesignJobID())
	if err != nil {
		return nil, err
	}
	from := job.Status()

	var code audit.Code
	switch command.Decision() {
	case DecisionApprove:
		err = job.Approve()
		code = audit.DesignApproved
	case DecisionRequestRevisions:
		err = job.RequestRevisions()
		code = audit.RevisionsRequested
	case DecisionReject:
		err = job.Reject()
		code = audit.DesignRejected
	}
	if err != nil {
		return nil, err
	}

	if err = jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	// A job leaving the active pipeline no longer occupies its designer.
	if job.Status().IsTerminal() && job.AssigneeDesignerID() != nil {
		designer, err := uow.AgentRepository().Get(ctx, command.OrgID(), *job.AssigneeDesignerID())
		if err != nil {
			return nil, err
		}
		designer.ReleaseAssignment()
		if err = uow.AgentRepository().Update(ctx, designer); err != nil {
			return nil, err
		}
	}

	err = appendEvent(ctx, uow.AuditEventRepository(), command.OrgID(),
		kernel.KindDesignJob, job.ID(), code, command.ActorID(), audit.Payload{
			"from":  from.String(),
			"to":    job.Status().String(),
			"notes": command.Notes(),
		})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if command.Decision() == DecisionApprove {
		h.cascades.DesignApproved(ctx, job)
	}
	return job, nil
}
