package commands

import (
	"context"
	"errors"

	"manufacturing/internal/pkg/errs"
)

// ErrNoQueuedDesignJobs is returned when no organization has queued
// unassigned design jobs. The background job treats it as a quiet sweep, not
// a failure.
var ErrNoQueuedDesignJobs = errors.New("no queued unassigned design jobs found")

// AutoAssignDesignJobsCommandHandler runs the background assignment sweep:
// one smart bulk assignment per organization that has queued unassigned
// design jobs. Organizations are independent; a failing one does not stop the
// sweep.
type AutoAssignDesignJobsCommandHandler struct {
	uowFactory  UoWFactory
	bulkHandler BulkAssignDesignJobsCommandHandler
}

// NewAutoAssignDesignJobsCommandHandler creates a handler for the background
// assignment sweep.
func NewAutoAssignDesignJobsCommandHandler(uowFactory UoWFactory, bulkHandler BulkAssignDesignJobsCommandHandler) AutoAssignDesignJobsCommandHandler {
	return AutoAssignDesignJobsCommandHandler{
		uowFactory:  uowFactory,
		bulkHandler: bulkHandler,
	}
}

// Handle sweeps every organization with queued unassigned jobs. It returns
// ErrNoQueuedDesignJobs when there is nothing to do, and otherwise the first
// per-organization error after the whole sweep finished.
func (h AutoAssignDesignJobsCommandHandler) Handle(ctx context.Context, command AutoAssignDesignJobsCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	orgIDs, err := uow.DesignJobRepository().OrgIDsWithQueuedUnassigned(ctx)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if len(orgIDs) == 0 {
		return ErrNoQueuedDesignJobs
	}

	var firstErr error
	for _, orgID := range orgIDs {
		bulkCmd, err := NewBulkAssignDesignJobsCommand(orgID, ModeSmart, nil, nil, nil, nil)
		if err == nil {
			_, err = h.bulkHandler.Handle(ctx, bulkCmd)
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
