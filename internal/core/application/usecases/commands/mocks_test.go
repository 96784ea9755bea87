package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/domain/model/agent"
	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/designjob"
	"manufacturing/internal/core/domain/model/fulfillment"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/purchaseorder"
	"manufacturing/internal/core/domain/model/workorder"
	"manufacturing/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockDesignJobRepository struct{ mock.Mock }

func (m *MockDesignJobRepository) Add(ctx context.Context, job *designjob.DesignJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
func (m *MockDesignJobRepository) Update(ctx context.Context, job *designjob.DesignJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
func (m *MockDesignJobRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*designjob.DesignJob, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*designjob.DesignJob), args.Error(1)
}
func (m *MockDesignJobRepository) GetByOrderItemID(ctx context.Context, orgID, orderItemID kernel.UUID) (*designjob.DesignJob, error) {
	args := m.Called(ctx, orgID, orderItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*designjob.DesignJob), args.Error(1)
}
func (m *MockDesignJobRepository) ListQueuedUnassigned(ctx context.Context, orgID kernel.UUID) ([]*designjob.DesignJob, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*designjob.DesignJob), args.Error(1)
}
func (m *MockDesignJobRepository) OrgIDsWithQueuedUnassigned(_ context.Context) ([]kernel.UUID, error) {
	return nil, errors.New("not implemented in mock")
}

type MockWorkOrderRepository struct{ mock.Mock }

func (m *MockWorkOrderRepository) Add(ctx context.Context, wo *workorder.WorkOrder) error {
	args := m.Called(ctx, wo)
	return args.Error(0)
}
func (m *MockWorkOrderRepository) Update(ctx context.Context, wo *workorder.WorkOrder) error {
	args := m.Called(ctx, wo)
	return args.Error(0)
}
func (m *MockWorkOrderRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.WorkOrder), args.Error(1)
}
func (m *MockWorkOrderRepository) GetByOrderItemID(ctx context.Context, orgID, orderItemID kernel.UUID) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, orgID, orderItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.WorkOrder), args.Error(1)
}
func (m *MockWorkOrderRepository) ListByOrderID(ctx context.Context, orgID, orderID kernel.UUID) ([]*workorder.WorkOrder, error) {
	args := m.Called(ctx, orgID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workorder.WorkOrder), args.Error(1)
}
func (m *MockWorkOrderRepository) ListOpen(_ context.Context, _ kernel.UUID) ([]*workorder.WorkOrder, error) {
	return nil, errors.New("not implemented in mock")
}

type MockMaterialRequirementRepository struct{ mock.Mock }

func (m *MockMaterialRequirementRepository) Add(_ context.Context, _ *workorder.MaterialRequirement) error {
	return errors.New("not implemented in mock")
}
func (m *MockMaterialRequirementRepository) Update(ctx context.Context, req *workorder.MaterialRequirement) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockMaterialRequirementRepository) Get(_ context.Context, _, _ kernel.UUID) (*workorder.MaterialRequirement, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockMaterialRequirementRepository) ListPendingByWorkOrderIDs(ctx context.Context, orgID kernel.UUID, workOrderIDs []kernel.UUID) ([]*workorder.MaterialRequirement, error) {
	args := m.Called(ctx, orgID, workOrderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workorder.MaterialRequirement), args.Error(1)
}

type MockPurchaseOrderRepository struct{ mock.Mock }

func (m *MockPurchaseOrderRepository) Add(ctx context.Context, po *purchaseorder.PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}
func (m *MockPurchaseOrderRepository) Update(ctx context.Context, po *purchaseorder.PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}
func (m *MockPurchaseOrderRepository) Get(_ context.Context, _, _ kernel.UUID) (*purchaseorder.PurchaseOrder, error) {
	return nil, errors.New("not implemented in mock")
}

type MockOrderItemRepository struct{ mock.Mock }

func (m *MockOrderItemRepository) Add(ctx context.Context, item *fulfillment.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockOrderItemRepository) Update(ctx context.Context, item *fulfillment.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockOrderItemRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*fulfillment.OrderItem, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.OrderItem), args.Error(1)
}

type MockMilestoneRepository struct{ mock.Mock }

func (m *MockMilestoneRepository) AddAll(ctx context.Context, milestones []*fulfillment.Milestone) error {
	args := m.Called(ctx, milestones)
	return args.Error(0)
}
func (m *MockMilestoneRepository) Update(ctx context.Context, milestone *fulfillment.Milestone) error {
	args := m.Called(ctx, milestone)
	return args.Error(0)
}
func (m *MockMilestoneRepository) ListByOrderID(ctx context.Context, orgID, orderID kernel.UUID) ([]*fulfillment.Milestone, error) {
	args := m.Called(ctx, orgID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fulfillment.Milestone), args.Error(1)
}
func (m *MockMilestoneRepository) GetByCode(ctx context.Context, orgID, orderID kernel.UUID, code fulfillment.Code) (*fulfillment.Milestone, error) {
	args := m.Called(ctx, orgID, orderID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.Milestone), args.Error(1)
}

type MockAgentRepository struct{ mock.Mock }

func (m *MockAgentRepository) Add(ctx context.Context, a *agent.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAgentRepository) Update(ctx context.Context, a *agent.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAgentRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*agent.Agent, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.Agent), args.Error(1)
}
func (m *MockAgentRepository) ListActiveByRole(ctx context.Context, orgID kernel.UUID, role agent.Role) ([]*agent.Agent, error) {
	args := m.Called(ctx, orgID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agent.Agent), args.Error(1)
}

type MockAuditEventRepository struct{ mock.Mock }

func (m *MockAuditEventRepository) Append(ctx context.Context, event *audit.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockAuditEventRepository) ListByEntity(_ context.Context, _ kernel.UUID, _ kernel.EntityKind, _ kernel.UUID) ([]*audit.Event, error) {
	return nil, errors.New("not implemented in mock")
}

// MockUoW implements commands.UoW over mocked repositories.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) DesignJobRepository() ports.DesignJobRepository {
	return m.Called().Get(0).(ports.DesignJobRepository)
}
func (m *MockUoW) WorkOrderRepository() ports.WorkOrderRepository {
	return m.Called().Get(0).(ports.WorkOrderRepository)
}
func (m *MockUoW) MaterialRequirementRepository() ports.MaterialRequirementRepository {
	return m.Called().Get(0).(ports.MaterialRequirementRepository)
}
func (m *MockUoW) PurchaseOrderRepository() ports.PurchaseOrderRepository {
	return m.Called().Get(0).(ports.PurchaseOrderRepository)
}
func (m *MockUoW) OrderItemRepository() ports.OrderItemRepository {
	return m.Called().Get(0).(ports.OrderItemRepository)
}
func (m *MockUoW) MilestoneRepository() ports.MilestoneRepository {
	return m.Called().Get(0).(ports.MilestoneRepository)
}
func (m *MockUoW) AgentRepository() ports.AgentRepository {
	return m.Called().Get(0).(ports.AgentRepository)
}
func (m *MockUoW) AuditEventRepository() ports.AuditEventRepository {
	return m.Called().Get(0).(ports.AuditEventRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

// MockDesignUoW implements commands.DesignUoW over mocked repositories.
type MockDesignUoW struct{ mock.Mock }

func (m *MockDesignUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockDesignUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockDesignUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockDesignUoW) DesignJobRepository() ports.DesignJobRepository {
	return m.Called().Get(0).(ports.DesignJobRepository)
}
func (m *MockDesignUoW) AgentRepository() ports.AgentRepository {
	return m.Called().Get(0).(ports.AgentRepository)
}
func (m *MockDesignUoW) AuditEventRepository() ports.AuditEventRepository {
	return m.Called().Get(0).(ports.AuditEventRepository)
}

type MockDesignUoWFactory struct{ mock.Mock }

func (m *MockDesignUoWFactory) Create() commands.DesignUoW {
	return m.Called().Get(0).(commands.DesignUoW)
}
