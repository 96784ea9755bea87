package commands_test

import (
	"testing"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/domain/model/agent"
	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/designjob"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bulkAssignFixture struct {
	orgID kernel.UUID

	jobRepo   *MockDesignJobRepository
	agentRepo *MockAgentRepository
	auditRepo *MockAuditEventRepository
	uow       *MockDesignUoW
	handler   commands.BulkAssignDesignJobsCommandHandler
}

func newBulkAssignFixture(t *testing.T) *bulkAssignFixture {
	t.Helper()

	f := &bulkAssignFixture{
		orgID:     kernel.NewUUID(),
		jobRepo:   new(MockDesignJobRepository),
		agentRepo: new(MockAgentRepository),
		auditRepo: new(MockAuditEventRepository),
		uow:       new(MockDesignUoW),
	}

	factory := new(MockDesignUoWFactory)
	factory.On("Create").Return(f.uow)
	f.uow.On("DesignJobRepository").Return(f.jobRepo)
	f.uow.On("AgentRepository").Return(f.agentRepo)
	f.uow.On("AuditEventRepository").Return(f.auditRepo)
	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("Commit", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)

	f.handler = commands.NewBulkAssignDesignJobsCommandHandler(factory)
	return f
}

func (f *bulkAssignFixture) queuedJob(t *testing.T) *designjob.DesignJob {
	t.Helper()
	job, err := designjob.NewDesignJob(
		kernel.NewUUID(), f.orgID, kernel.NewUUID(), "Engraved panel", "", 3)
	require.NoError(t, err)
	return job
}

func (f *bulkAssignFixture) designer(t *testing.T, name string, capacityLimit int) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgent(
		kernel.NewUUID(), f.orgID, agent.RoleDesigner, name, nil, capacityLimit)
	require.NoError(t, err)
	return a
}

func TestBulkAssignDesignJobsCommandHandler_Handle_ExplicitPairs(t *testing.T) {
	ctx := t.Context()
	f := newBulkAssignFixture(t)
	job := f.queuedJob(t)
	designer := f.designer(t, "mira", 5)

	cmd, err := commands.NewBulkAssignDesignJobsCommand(
		f.orgID, commands.ModeExplicit,
		[]commands.ExplicitPair{{DesignJobID: job.ID(), DesignerID: designer.ID()}},
		nil, nil, nil)
	require.NoError(t, err)

	f.jobRepo.On("Get", ctx, f.orgID, job.ID()).Return(job, nil).Once()
	f.agentRepo.On("Get", ctx, f.orgID, designer.ID()).Return(designer, nil).Once()
	f.agentRepo.On("Update", ctx, designer).Return(nil).Once()
	f.jobRepo.On("Update", ctx, job).Return(nil).Once()
	f.auditRepo.On("Append", ctx, eventWithCode(audit.AssignedToDesigner)).Return(nil).Once()

	result, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, result.Assigned, 1)
	assert.Empty(t, result.Failures)
	assert.Equal(t, designjob.Assigned, job.Status())
	assert.Equal(t, 1, designer.AssignedCount())
	f.jobRepo.AssertExpectations(t)
	f.agentRepo.AssertExpectations(t)
	f.auditRepo.AssertExpectations(t)
	f.uow.AssertCalled(t, "Commit", ctx)
}

func TestBulkAssignDesignJobsCommandHandler_Handle_CollectsPerJobFailures(t *testing.T) {
	ctx := t.Context()
	f := newBulkAssignFixture(t)
	missingID := kernel.NewUUID()
	job := f.queuedJob(t)
	designer := f.designer(t, "mira", 5)

	cmd, err := commands.NewBulkAssignDesignJobsCommand(
		f.orgID, commands.ModeExplicit,
		[]commands.ExplicitPair{
			{DesignJobID: missingID, DesignerID: designer.ID()},
			{DesignJobID: job.ID(), DesignerID: designer.ID()},
		},
		nil, nil, nil)
	require.NoError(t, err)

	f.jobRepo.On("Get", ctx, f.orgID, missingID).
		Return(nil, errs.NewObjectNotFoundError("designJob", missingID.String())).Once()
	f.jobRepo.On("Get", ctx, f.orgID, job.ID()).Return(job, nil).Once()
	f.agentRepo.On("Get", ctx, f.orgID, designer.ID()).Return(designer, nil).Once()
	f.agentRepo.On("Update", ctx, designer).Return(nil).Once()
	f.jobRepo.On("Update", ctx, job).Return(nil).Once()
	f.auditRepo.On("Append", ctx, eventWithCode(audit.AssignedToDesigner)).Return(nil).Once()

	result, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err, "per-job failures do not abort the batch")
	require.Len(t, result.Assigned, 1)
	require.Len(t, result.Failures, 1)
	assert.True(t, result.Failures[0].DesignJobID.IsEqual(missingID))
	assert.Contains(t, result.Failures[0].Reason, "object not found")
	f.uow.AssertCalled(t, "Commit", ctx)
}

func TestBulkAssignDesignJobsCommandHandler_Handle_RejectsIneligibleDesigner(t *testing.T) {
	ctx := t.Context()
	f := newBulkAssignFixture(t)
	job := f.queuedJob(t)
	designer := f.designer(t, "mira", 5)
	designer.Deactivate()

	cmd, err := commands.NewBulkAssignDesignJobsCommand(
		f.orgID, commands.ModeExplicit,
		[]commands.ExplicitPair{{DesignJobID: job.ID(), DesignerID: designer.ID()}},
		nil, nil, nil)
	require.NoError(t, err)

	f.jobRepo.On("Get", ctx, f.orgID, job.ID()).Return(job, nil).Once()
	f.agentRepo.On("Get", ctx, f.orgID, designer.ID()).Return(designer, nil).Once()

	result, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Empty(t, result.Assigned)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, designjob.Queued, job.Status())
	f.agentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestBulkAssignDesignJobsCommandHandler_Handle_SmartModeSweepsQueue(t *testing.T) {
	ctx := t.Context()
	f := newBulkAssignFixture(t)
	first := f.queuedJob(t)
	second := f.queuedJob(t)
	designer := f.designer(t, "mira", 1)

	cmd, err := commands.NewBulkAssignDesignJobsCommand(
		f.orgID, commands.ModeSmart, nil, nil, nil, nil)
	require.NoError(t, err)

	f.jobRepo.On("ListQueuedUnassigned", ctx, f.orgID).
		Return([]*designjob.DesignJob{first, second}, nil).Once()
	f.agentRepo.On("ListActiveByRole", ctx, f.orgID, agent.RoleDesigner).
		Return([]*agent.Agent{designer}, nil).Once()
	f.jobRepo.On("Update", ctx, first).Return(nil).Once()
	f.auditRepo.On("Append", ctx, eventWithCode(audit.AssignedToDesigner)).Return(nil).Once()
	f.agentRepo.On("Update", ctx, designer).Return(nil).Once()

	result, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, result.Assigned, 1)
	assert.True(t, result.Assigned[0].DesignJobID.IsEqual(first.ID()))
	assert.True(t, result.Assigned[0].DesignerID.IsEqual(designer.ID()))
	require.Len(t, result.Failures, 1)
	assert.True(t, result.Failures[0].DesignJobID.IsEqual(second.ID()))
	assert.Equal(t, "no eligible designer with free capacity", result.Failures[0].Reason)
	assert.Equal(t, 1, designer.AssignedCount())
	f.jobRepo.AssertExpectations(t)
	f.agentRepo.AssertExpectations(t)
}

func TestBulkAssignDesignJobsCommandHandler_Handle_SmartModeEmptyQueue(t *testing.T) {
	ctx := t.Context()
	f := newBulkAssignFixture(t)

	cmd, err := commands.NewBulkAssignDesignJobsCommand(
		f.orgID, commands.ModeSmart, nil, nil, nil, nil)
	require.NoError(t, err)

	f.jobRepo.On("ListQueuedUnassigned", ctx, f.orgID).
		Return(nil, errs.NewObjectNotFoundError("designJobs", f.orgID.String())).Once()

	result, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Empty(t, result.Assigned)
	assert.Empty(t, result.Failures)
	f.agentRepo.AssertNotCalled(t, "ListActiveByRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestBulkAssignDesignJobsCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockDesignUoWFactory)
	h := commands.NewBulkAssignDesignJobsCommandHandler(factory)

	_, err := h.Handle(t.Context(), commands.BulkAssignDesignJobsCommand{})

	require.ErrorIs(t, err, commands.ErrBulkAssignDesignJobsCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
