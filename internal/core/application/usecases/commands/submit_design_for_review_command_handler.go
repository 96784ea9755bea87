package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/designjob"
	"manufacturing/internal/core/domain/model/kernel"
)

// SubmitDesignForReviewCommandHandler moves a drafting design job into the
// review queue.
type SubmitDesignForReviewCommandHandler struct {
	uowFactory DesignUoWFactory
}

// NewSubmitDesignForReviewCommandHandler creates a handler for review
// submission.
func NewSubmitDesignForReviewCommandHandler(uowFactory DesignUoWFactory) SubmitDesignForReviewCommandHandler {
	return SubmitDesignForReviewCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle performs the primary transition and writes SUBMITTED_FOR_REVIEW in
// the same transaction.
func (h SubmitDesignForReviewCommandHandler) Handle(ctx context.Context, command SubmitDesignForReviewCommand) (*designjob.DesignJob, error) {
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

	job, err := uow.DesignJobRepository().Get(ctx, command.OrgID(), command.DesignJobID())
	if err != nil {
		return nil, err
	}

	from := job.Status()
	if err = job.SubmitForReview(); err != nil {
		return nil, err
	}
	if err = uow.DesignJobRepository().Update(ctx, job); err != nil {
		return nil, err
	}

	err = appendEvent(ctx, uow.AuditEventRepository(), command.OrgID(),
		kernel.KindDesignJob, job.ID(), audit.SubmittedForReview, command.ActorID(),
		audit.Payload{
			"from": from.String(),
			"to":   job.Status().String(),
		})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return job, nil
}
