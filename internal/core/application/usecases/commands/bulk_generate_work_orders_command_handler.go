package commands

import (
	"context"
	"fmt"

	"manufacturing/internal/core/domain/model/designjob"
	"manufacturing/internal/core/domain/model/kernel"
)

// GeneratedWorkOrder is one outcome of a bulk generation run. Created is
// false when the order item already had a work order.
type GeneratedWorkOrder struct {
	DesignJobID kernel.UUID
	WorkOrderID kernel.UUID
	Created     bool
}

// BulkGenerateFailure is one design job the batch could not generate for.
type BulkGenerateFailure struct {
	DesignJobID kernel.UUID
	Reason      string
}

// BulkGenerateResult reports a whole generation run.
type BulkGenerateResult struct {
	Generated []GeneratedWorkOrder
	Failures  []BulkGenerateFailure
}

// BulkGenerateWorkOrdersCommandHandler opens work orders for a batch of
// approved design jobs. Each job is processed independently: one bad job
// never aborts the batch.
type BulkGenerateWorkOrdersCommandHandler struct {
	uowFactory UoWFactory
}

// NewBulkGenerateWorkOrdersCommandHandler creates a handler for batch work
// order generation.
func NewBulkGenerateWorkOrdersCommandHandler(uowFactory UoWFactory) BulkGenerateWorkOrdersCommandHandler {
	return BulkGenerateWorkOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle walks the batch, creating (or fetching) one work order per approved
// design job, and returns what happened to every job in it.
func (h BulkGenerateWorkOrdersCommandHandler) Handle(ctx context.Context, command BulkGenerateWorkOrdersCommand) (BulkGenerateResult, error) {
	if err := command.Validate(); err != nil {
		return BulkGenerateResult{}, err
	}

	var result BulkGenerateResult
	for _, jobID := range command.DesignJobIDs() {
		job, err := h.loadApprovedJob(ctx, command.OrgID(), jobID)
		if err != nil {
			result.Failures = append(result.Failures, BulkGenerateFailure{
				DesignJobID: jobID, Reason: err.Error(),
			})
			continue
		}

		wo, created, err := createOrFetchWorkOrder(ctx, h.uowFactory, workOrderSeed{
			orgID:       command.OrgID(),
			orderItemID: job.OrderItemID(),
			quantity:    1,
			priority:    job.Priority(),
			actorID:     command.ActorID(),
		})
		if err != nil {
			result.Failures = append(result.Failures, BulkGenerateFailure{
				DesignJobID: jobID, Reason: err.Error(),
			})
			continue
		}

		result.Generated = append(result.Generated, GeneratedWorkOrder{
			DesignJobID: jobID,
			WorkOrderID: wo.ID(),
			Created:     created,
		})
	}
	return result, nil
}

func (h BulkGenerateWorkOrdersCommandHandler) loadApprovedJob(ctx context.Context, orgID, jobID kernel.UUID) (*designjob.DesignJob, error) {
	uow := h.uowFactory.Create()
	job, err := uow.DesignJobRepository().Get(ctx, orgID, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status() != designjob.Approved {
		return nil, fmt.Errorf("design job %s is %s, not approved", jobID, job.Status())
	}
	return job, nil
}
