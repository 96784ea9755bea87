package commands_test

import (
	"errors"
	"testing"
	"time"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/domain/model/agent"
	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/designjob"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/workorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	orgID      kernel.UUID
	itemID     kernel.UUID
	designerID kernel.UUID
	job        *designjob.DesignJob
	designer   *agent.Agent

	jobRepo   *MockDesignJobRepository
	agentRepo *MockAgentRepository
	woRepo    *MockWorkOrderRepository
	auditRepo *MockAuditEventRepository
	uow       *MockUoW
	factory   *MockUoWFactory
	handler   commands.ReviewDesignCommandHandler
}

// newReviewFixture builds a job under review with an assigned designer
// carrying two open assignments, wired into a handler with a real cascade
// runner over the mocked unit of work.
func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	f := &reviewFixture{
		orgID:      kernel.NewUUID(),
		itemID:     kernel.NewUUID(),
		designerID: kernel.NewUUID(),
		jobRepo:    new(MockDesignJobRepository),
		agentRepo:  new(MockAgentRepository),
		woRepo:     new(MockWorkOrderRepository),
		auditRepo:  new(MockAuditEventRepository),
		uow:        new(MockUoW),
		factory:    new(MockUoWFactory),
	}

	now := time.Now().UTC()
	job, err := designjob.RestoreDesignJob(
		kernel.NewUUID(), f.orgID, f.itemID, &f.designerID,
		designjob.UnderReview, 3, "Engraved panel", "walnut, 20x30", now, now)
	require.NoError(t, err)
	f.job = job

	designer, err := agent.RestoreAgent(
		f.designerID, f.orgID, agent.RoleDesigner, "mira", true, nil, 5, 2, now)
	require.NoError(t, err)
	f.designer = designer

	f.factory.On("Create").Return(f.uow)
	f.uow.On("DesignJobRepository").Return(f.jobRepo)
	f.uow.On("AgentRepository").Return(f.agentRepo)
	f.uow.On("WorkOrderRepository").Return(f.woRepo)
	f.uow.On("AuditEventRepository").Return(f.auditRepo)
	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("Commit", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)

	cascades := commands.NewCascadeRunner(f.factory, discardLogger())
	f.handler = commands.NewReviewDesignCommandHandler(f.factory, cascades)
	return f
}

func (f *reviewFixture) command(t *testing.T, decision commands.ReviewDecision) commands.ReviewDesignCommand {
	t.Helper()
	cmd, err := commands.NewReviewDesignCommand(f.orgID, f.job.ID(), decision, "looks right", nil)
	require.NoError(t, err)
	return cmd
}

func TestReviewDesignCommandHandler_Handle_ApproveFiresWorkOrderCascade(t *testing.T) {
	ctx := t.Context()
	f := newReviewFixture(t)

	existing, err := workorder.NewWorkOrder(
		kernel.NewUUID(), f.orgID, f.itemID, kernel.NewUUID(), 1, 3)
	require.NoError(t, err)

	f.jobRepo.On("Get", ctx, f.orgID, f.job.ID()).Return(f.job, nil).Once()
	f.jobRepo.On("Update", ctx, f.job).Return(nil).Once()
	f.agentRepo.On("Get", ctx, f.orgID, f.designerID).Return(f.designer, nil).Once()
	f.agentRepo.On("Update", ctx, f.designer).Return(nil).Once()
	f.auditRepo.On("Append", ctx, eventWithCode(audit.DesignApproved)).Return(nil).Once()
	// The cascade finds the work order already in place and stops there.
	f.woRepo.On("GetByOrderItemID", ctx, f.orgID, f.itemID).Return(existing, nil).Once()

	job, err := f.handler.Handle(ctx, f.command(t, commands.DecisionApprove))

	require.NoError(t, err)
	assert.Equal(t, designjob.Approved, job.Status())
	assert.Equal(t, 1, f.designer.AssignedCount(), "approval frees the designer's slot")
	f.jobRepo.AssertExpectations(t)
	f.agentRepo.AssertExpectations(t)
	f.woRepo.AssertExpectations(t)
	f.auditRepo.AssertExpectations(t)
}

func TestReviewDesignCommandHandler_Handle_CascadeFailureDoesNotUndoApproval(t *testing.T) {
	ctx := t.Context()
	f := newReviewFixture(t)

	f.jobRepo.On("Get", ctx, f.orgID, f.job.ID()).Return(f.job, nil).Once()
	f.jobRepo.On("Update", ctx, f.job).Return(nil).Once()
	f.agentRepo.On("Get", ctx, f.orgID, f.designerID).Return(f.designer, nil).Once()
	f.agentRepo.On("Update", ctx, f.designer).Return(nil).Once()
	f.auditRepo.On("Append", ctx, eventWithCode(audit.DesignApproved)).Return(nil).Once()
	f.woRepo.On("GetByOrderItemID", ctx, f.orgID, f.itemID).
		Return(nil, errors.New("connection reset")).Once()
	// The broken cascade leaves a failure event behind and nothing else.
	f.auditRepo.On("Append", ctx, eventWithCode(audit.WorkOrderAutoCreateFailed)).Return(nil).Once()

	job, err := f.handler.Handle(ctx, f.command(t, commands.DecisionApprove))

	require.NoError(t, err, "the committed approval stands")
	assert.Equal(t, designjob.Approved, job.Status())
	f.auditRepo.AssertExpectations(t)
}

func TestReviewDesignCommandHandler_Handle_RequestRevisionsKeepsDesigner(t *testing.T) {
	ctx := t.Context()
	f := newReviewFixture(t)

	f.jobRepo.On("Get", ctx, f.orgID, f.job.ID()).Return(f.job, nil).Once()
	f.jobRepo.On("Update", ctx, f.job).Return(nil).Once()
	f.auditRepo.On("Append", ctx, eventWithCode(audit.RevisionsRequested)).Return(nil).Once()

	job, err := f.handler.Handle(ctx, f.command(t, commands.DecisionRequestRevisions))

	require.NoError(t, err)
	assert.Equal(t, designjob.RevisionRequested, job.Status())
	assert.Equal(t, 2, f.designer.AssignedCount(), "the designer keeps working the job")
	f.uow.AssertNotCalled(t, "AgentRepository")
	f.uow.AssertNotCalled(t, "WorkOrderRepository")
}

func TestReviewDesignCommandHandler_Handle_RejectReleasesDesignerWithoutCascade(t *testing.T) {
	ctx := t.Context()
	f := newReviewFixture(t)

	f.jobRepo.On("Get", ctx, f.orgID, f.job.ID()).Return(f.job, nil).Once()
	f.jobRepo.On("Update", ctx, f.job).Return(nil).Once()
	f.agentRepo.On("Get", ctx, f.orgID, f.designerID).Return(f.designer, nil).Once()
	f.agentRepo.On("Update", ctx, f.designer).Return(nil).Once()
	f.auditRepo.On("Append", ctx, eventWithCode(audit.DesignRejected)).Return(nil).Once()

	job, err := f.handler.Handle(ctx, f.command(t, commands.DecisionReject))

	require.NoError(t, err)
	assert.Equal(t, designjob.Rejected, job.Status())
	assert.Equal(t, 1, f.designer.AssignedCount())
	f.woRepo.AssertNotCalled(t, "GetByOrderItemID", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewDesignCommandHandler_Handle_RejectsVerdictOutsideReview(t *testing.T) {
	ctx := t.Context()
	f := newReviewFixture(t)

	queued, err := designjob.NewDesignJob(
		kernel.NewUUID(), f.orgID, kernel.NewUUID(), "Engraved panel", "", 3)
	require.NoError(t, err)

	f.jobRepo.On("Get", ctx, f.orgID, f.job.ID()).Return(queued, nil).Once()

	cmd := f.command(t, commands.DecisionApprove)
	_, err = f.handler.Handle(ctx, cmd)

	require.Error(t, err)
	f.jobRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestReviewDesignCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	h := commands.NewReviewDesignCommandHandler(factory, commands.NewCascadeRunner(factory, discardLogger()))

	_, err := h.Handle(t.Context(), commands.ReviewDesignCommand{})

	require.ErrorIs(t, err, commands.ErrReviewDesignCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
