package commands

import (
	"context"
	"errors"

	"manufacturing/internal/core/domain/model/agent"
	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/designjob"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/services"
	"manufacturing/internal/pkg/errs"
)

// BulkAssignment is one successful placement of a bulk run.
type BulkAssignment struct {
	DesignJobID kernel.UUID
	DesignerID  kernel.UUID
	Score       float64
}

// BulkAssignmentFailure is one job the batch could not place, with the reason.
type BulkAssignmentFailure struct {
	DesignJobID kernel.UUID
	Reason      string
}

// BulkAssignResult reports a whole batch: what was placed and what was not.
// A batch never aborts on a per-job failure.
type BulkAssignResult struct {
	Assigned []BulkAssignment
	Failures []BulkAssignmentFailure
}

// BulkAssignDesignJobsCommandHandler distributes a batch of design jobs over
// the designer pool, either by explicit pairs or through the assignment
// scheduler. The whole batch commits in one transaction; jobs that cannot be
// placed are reported as failures, not rolled back.
type BulkAssignDesignJobsCommandHandler struct {
	uowFactory DesignUoWFactory
	scheduler  services.AssignmentScheduler
}

// NewBulkAssignDesignJobsCommandHandler creates a handler for batch design
// job assignment.
func NewBulkAssignDesignJobsCommandHandler(uowFactory DesignUoWFactory) BulkAssignDesignJobsCommandHandler {
	return BulkAssignDesignJobsCommandHandler{
		uowFactory: uowFactory,
		scheduler:  services.NewAssignmentScheduler(),
	}
}

// Handle runs the batch and returns what happened to every job in it.
func (h BulkAssignDesignJobsCommandHandler) Handle(ctx context.Context, command BulkAssignDesignJobsCommand) (BulkAssignResult, error) {
	if err := command.Validate(); err != nil {
		return BulkAssignResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BulkAssignResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var (
		result BulkAssignResult
		err    error
	)
	if command.Mode() == ModeExplicit {
		result, err = h.assignExplicit(ctx, uow, command)
	} else {
		result, err = h.assignSmart(ctx, uow, command)
	}
	if err != nil {
		return BulkAssignResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return BulkAssignResult{}, err
	}
	return result, nil
}

func (h BulkAssignDesignJobsCommandHandler) assignExplicit(ctx context.Context, uow DesignUoW, command BulkAssignDesignJobsCommand) (BulkAssignResult, error) {
	var result BulkAssignResult
	jobRepo := uow.DesignJobRepository()
	agentRepo := uow.AgentRepository()

	for _, pair := range command.Pairs() {
		job, err := jobRepo.Get(ctx, command.OrgID(), pair.DesignJobID)
		if err != nil {
			result.Failures = append(result.Failures, BulkAssignmentFailure{
				DesignJobID: pair.DesignJobID, Reason: err.Error(),
			})
			continue
		}
		designer, err := agentRepo.Get(ctx, command.OrgID(), pair.DesignerID)
		if err == nil {
			err = validateAssignable(designer, agent.RoleDesigner)
		}
		if err == nil {
			err = job.AssignDesigner(pair.DesignerID)
		}
		if err != nil {
			result.Failures = append(result.Failures, BulkAssignmentFailure{
				DesignJobID: pair.DesignJobID, Reason: err.Error(),
			})
			continue
		}

		designer.TakeAssignment()
		if err = agentRepo.Update(ctx, designer); err != nil {
			return BulkAssignResult{}, err
		}
		if err = h.persistAssignment(ctx, uow, command, job, pair.DesignerID); err != nil {
			return BulkAssignResult{}, err
		}
		result.Assigned = append(result.Assigned, BulkAssignment{
			DesignJobID: pair.DesignJobID, DesignerID: pair.DesignerID,
		})
	}
	return result, nil
}

func (h BulkAssignDesignJobsCommandHandler) assignSmart(ctx context.Context, uow DesignUoW, command BulkAssignDesignJobsCommand) (BulkAssignResult, error) {
	var result BulkAssignResult
	agentRepo := uow.AgentRepository()

	jobs, err := h.loadSmartBatch(ctx, uow, command)
	if err != nil {
		return BulkAssignResult{}, err
	}
	if len(jobs) == 0 {
		return result, nil
	}

	pool, err := agentRepo.ListActiveByRole(ctx, command.OrgID(), agent.RoleDesigner)
	if err != nil {
		return BulkAssignResult{}, err
	}

	items := make([]services.WorkItem, 0, len(jobs))
	byID := make(map[kernel.UUID]*designjob.DesignJob, len(jobs))
	for _, job := range jobs {
		items = append(items, services.WorkItem{ID: job.ID()})
		byID[job.ID()] = job
	}

	assignments, err := h.scheduler.Assign(items, pool, command.CapacityOverride())
	if err != nil {
		return BulkAssignResult{}, err
	}

	placed := make(map[kernel.UUID]struct{}, len(assignments))
	touchedAgents := make(map[kernel.UUID]*agent.Agent)
	for _, a := range pool {
		touchedAgents[a.ID()] = a
	}

	for _, assignment := range assignments {
		job := byID[assignment.ItemID]
		if err = job.AssignDesigner(assignment.AgentID); err != nil {
			result.Failures = append(result.Failures, BulkAssignmentFailure{
				DesignJobID: assignment.ItemID, Reason: err.Error(),
			})
			// The scheduler already bumped the agent; hand the slot back.
			touchedAgents[assignment.AgentID].ReleaseAssignment()
			continue
		}
		if err = h.persistAssignment(ctx, uow, command, job, assignment.AgentID); err != nil {
			return BulkAssignResult{}, err
		}
		placed[assignment.ItemID] = struct{}{}
		result.Assigned = append(result.Assigned, BulkAssignment{
			DesignJobID: assignment.ItemID,
			DesignerID:  assignment.AgentID,
			Score:       assignment.Score,
		})
	}

	for _, item := range items {
		if _, ok := placed[item.ID]; ok {
			continue
		}
		if alreadyFailed(result.Failures, item.ID) {
			continue
		}
		result.Failures = append(result.Failures, BulkAssignmentFailure{
			DesignJobID: item.ID, Reason: "no eligible designer with free capacity",
		})
	}

	for _, a := range pool {
		if err = agentRepo.Update(ctx, a); err != nil {
			return BulkAssignResult{}, err
		}
	}
	return result, nil
}

// loadSmartBatch resolves the smart-mode job selection: the named jobs, or
// every queued unassigned job when none are named.
func (h BulkAssignDesignJobsCommandHandler) loadSmartBatch(ctx context.Context, uow DesignUoW, command BulkAssignDesignJobsCommand) ([]*designjob.DesignJob, error) {
	jobRepo := uow.DesignJobRepository()
	ids := command.DesignJobIDs()
	if len(ids) == 0 {
		jobs, err := jobRepo.ListQueuedUnassigned(ctx, command.OrgID())
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
		return jobs, nil
	}

	jobs := make([]*designjob.DesignJob, 0, len(ids))
	for _, id := range ids {
		job, err := jobRepo.Get(ctx, command.OrgID(), id)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (h BulkAssignDesignJobsCommandHandler) persistAssignment(
	ctx context.Context,
	uow DesignUoW,
	command BulkAssignDesignJobsCommand,
	job *designjob.DesignJob,
	designerID kernel.UUID,
) error {
	if err := uow.DesignJobRepository().Update(ctx, job); err != nil {
		return err
	}
	return appendEvent(ctx, uow.AuditEventRepository(), command.OrgID(),
		kernel.KindDesignJob, job.ID(), audit.AssignedToDesigner, command.ActorID(),
		audit.Payload{
			"designer_id": designerID.String(),
			"mode":        string(command.Mode()),
		})
}

func alreadyFailed(failures []BulkAssignmentFailure, id kernel.UUID) bool {
	for _, f := range failures {
		if f.DesignJobID.IsEqual(id) {
			return true
		}
	}
	return false
}
