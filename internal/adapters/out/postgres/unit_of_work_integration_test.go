package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "manufacturing/internal/adapters/out/postgres"
	"manufacturing/internal/core/domain/model/agent"
	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/designjob"
	"manufacturing/internal/core/domain/model/fulfillment"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/purchaseorder"
	"manufacturing/internal/core/domain/model/workorder"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work and the
// org-scoped repositories against a real PostgreSQL instance.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	// TranslateError matches the production configuration so unique
	// violations surface as gorm.ErrDuplicatedKey.
	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.AutoMigrate(db))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE design_jobs, work_orders, material_requirements,
		purchase_orders, purchase_order_items, order_items, milestones, agents, audit_events`).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactoryCreatesIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.DesignJobRepository())
	suite.NotNil(uow1.WorkOrderRepository())
	suite.NotNil(uow1.MilestoneRepository())
	suite.NotNil(uow2.AuditEventRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "repeated Begin must not open a nested transaction")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "commit without begin must fail")
	suite.Require().Error(uow.Rollback(ctx), "rollback without begin must fail")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDesignJobNaturalKey() {
	ctx := context.Background()
	orgID := kernel.NewUUID()
	orderItemID := kernel.NewUUID()
	uow := suite.factory.Create()

	first := suite.newDesignJob(orgID, orderItemID)
	suite.Require().NoError(uow.DesignJobRepository().Add(ctx, first))

	duplicate := suite.newDesignJob(orgID, orderItemID)
	err := uow.DesignJobRepository().Add(ctx, duplicate)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)

	// The same order item in a different organization is a different key.
	otherOrg := suite.newDesignJob(kernel.NewUUID(), orderItemID)
	suite.Require().NoError(uow.DesignJobRepository().Add(ctx, otherOrg))

	fetched, err := uow.DesignJobRepository().GetByOrderItemID(ctx, orgID, orderItemID)
	suite.Require().NoError(err)
	suite.True(fetched.ID().IsEqual(first.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTenantMismatchReadsAsNotFound() {
	ctx := context.Background()
	orgID := kernel.NewUUID()
	uow := suite.factory.Create()

	job := suite.newDesignJob(orgID, kernel.NewUUID())
	suite.Require().NoError(uow.DesignJobRepository().Add(ctx, job))

	_, err := uow.DesignJobRepository().Get(ctx, kernel.NewUUID(), job.ID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = uow.DesignJobRepository().Get(ctx, orgID, job.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMilestoneSeedingIsIdempotent() {
	ctx := context.Background()
	orgID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.MilestoneRepository().AddAll(ctx, suite.newMilestones(orgID, orderID)))

	// Seeding the same order again hits the (org, order, code) constraint
	// and must be absorbed as a no-op.
	suite.Require().NoError(uow.MilestoneRepository().AddAll(ctx, suite.newMilestones(orgID, orderID)))

	milestones, err := uow.MilestoneRepository().ListByOrderID(ctx, orgID, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(milestones, len(fulfillment.DefaultCodes()))
	for i, code := range fulfillment.DefaultCodes() {
		suite.Equal(code, milestones[i].Code())
		suite.Equal(fulfillment.MilestonePending, milestones[i].Status())
	}

	scheduled, err := uow.MilestoneRepository().GetByCode(ctx, orgID, orderID, fulfillment.ProductionScheduled)
	suite.Require().NoError(err)
	suite.Equal(fulfillment.ProductionScheduled, scheduled.Code())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestProductionWorkflowCommit() {
	ctx := context.Background()
	orgID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	item, err := fulfillment.NewOrderItem(kernel.NewUUID(), orgID, orderID, "walnut dining table")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderItemRepository().Add(ctx, item))

	wo, err := workorder.NewWorkOrder(kernel.NewUUID(), orgID, item.ID(), orderID, 4, 5)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.WorkOrderRepository().Add(ctx, wo))

	req, err := workorder.NewMaterialRequirement(
		kernel.NewUUID(), orgID, wo.ID(), kernel.NewUUID(), kernel.NewUUID(), 12, 2_500)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.MaterialRequirementRepository().Add(ctx, req))

	event, err := audit.NewEvent(orgID, kernel.KindWorkOrder, wo.ID(), audit.WorkOrderCreated, nil,
		audit.Payload{"quantity": 4})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AuditEventRepository().Append(ctx, event))

	suite.Require().NoError(uow.Commit(ctx))

	newUow := suite.factory.Create()

	restored, err := newUow.WorkOrderRepository().Get(ctx, orgID, wo.ID())
	suite.Require().NoError(err)
	suite.Equal(workorder.Pending, restored.Status())
	suite.Equal(4, restored.Quantity())

	pending, err := newUow.MaterialRequirementRepository().
		ListPendingByWorkOrderIDs(ctx, orgID, []kernel.UUID{wo.ID()})
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.True(pending[0].ID().IsEqual(req.ID()))

	events, err := newUow.AuditEventRepository().ListByEntity(ctx, orgID, kernel.KindWorkOrder, wo.ID())
	suite.Require().NoError(err)
	suite.Require().Len(events, 1)
	suite.Equal(audit.WorkOrderCreated, events[0].EventCode())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsAllChanges() {
	ctx := context.Background()
	orgID := kernel.NewUUID()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	job := suite.newDesignJob(orgID, kernel.NewUUID())
	suite.Require().NoError(uow.DesignJobRepository().Add(ctx, job))

	wo, err := workorder.NewWorkOrder(kernel.NewUUID(), orgID, kernel.NewUUID(), kernel.NewUUID(), 1, 5)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.WorkOrderRepository().Add(ctx, wo))

	// Both rows are visible inside the transaction.
	_, err = uow.DesignJobRepository().Get(ctx, orgID, job.ID())
	suite.Require().NoError(err)
	_, err = uow.WorkOrderRepository().Get(ctx, orgID, wo.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.DesignJobRepository().Get(ctx, orgID, job.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = newUow.WorkOrderRepository().Get(ctx, orgID, wo.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUpdatePersistsOptionalFields() {
	ctx := context.Background()
	orgID := kernel.NewUUID()
	uow := suite.factory.Create()

	wo, err := workorder.NewWorkOrder(kernel.NewUUID(), orgID, kernel.NewUUID(), kernel.NewUUID(), 2, 7)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.WorkOrderRepository().Add(ctx, wo))

	manufacturerID := kernel.NewUUID()
	suite.Require().NoError(wo.AssignManufacturer(manufacturerID))
	suite.Require().NoError(wo.ChangeStatus(workorder.Queued))
	suite.Require().NoError(wo.ChangeStatus(workorder.InProduction))
	suite.Require().NoError(wo.ReportDelay("supplier shipment late", true))
	suite.Require().NoError(uow.WorkOrderRepository().Update(ctx, wo))

	restored, err := suite.factory.Create().WorkOrderRepository().Get(ctx, orgID, wo.ID())
	suite.Require().NoError(err)
	suite.Equal(workorder.OnHold, restored.Status())
	suite.Equal("supplier shipment late", restored.DelayReason())
	suite.Require().NotNil(restored.ManufacturerID())
	suite.True(restored.ManufacturerID().IsEqual(manufacturerID))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUpdateMissingRowReturnsNotFound() {
	ctx := context.Background()
	uow := suite.factory.Create()

	wo, err := workorder.NewWorkOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 1, 5)
	suite.Require().NoError(err)

	err = uow.WorkOrderRepository().Update(ctx, wo)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPurchaseOrderRoundTrip() {
	ctx := context.Background()
	orgID := kernel.NewUUID()
	uow := suite.factory.Create()

	items := []purchaseorder.Item{
		suite.newItem(10, 20_000),
		suite.newItem(3, 150_000),
	}
	po, err := purchaseorder.NewPurchaseOrder(
		kernel.NewUUID(), orgID, kernel.NewUUID(), purchaseorder.DefaultApprovalThresholdCent, items)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.PurchaseOrderRepository().Add(ctx, po))

	restored, err := suite.factory.Create().PurchaseOrderRepository().Get(ctx, orgID, po.ID())
	suite.Require().NoError(err)
	suite.Equal(po.Status(), restored.Status())
	suite.Require().Len(restored.Items(), 2)
	suite.Equal(po.TotalAmountCent(), restored.TotalAmountCent())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAgentPoolOrdering() {
	ctx := context.Background()
	orgID := kernel.NewUUID()
	uow := suite.factory.Create()

	names := []string{"mira", "alex", "kenji"}
	for _, name := range names {
		a, err := agent.NewAgent(kernel.NewUUID(), orgID, agent.RoleDesigner, name, []string{"cad"}, 5)
		suite.Require().NoError(err)
		suite.Require().NoError(uow.AgentRepository().Add(ctx, a))
	}
	inactive, err := agent.NewAgent(kernel.NewUUID(), orgID, agent.RoleDesigner, "zoe", nil, 5)
	suite.Require().NoError(err)
	inactive.Deactivate()
	suite.Require().NoError(uow.AgentRepository().Add(ctx, inactive))

	pool, err := uow.AgentRepository().ListActiveByRole(ctx, orgID, agent.RoleDesigner)
	suite.Require().NoError(err)
	suite.Require().Len(pool, 3)
	suite.Equal("alex", pool[0].Name())
	suite.Equal("kenji", pool[1].Name())
	suite.Equal("mira", pool[2].Name())
}

func (suite *UnitOfWorkIntegrationTestSuite) newDesignJob(orgID, orderItemID kernel.UUID) *designjob.DesignJob {
	job, err := designjob.NewDesignJob(kernel.NewUUID(), orgID, orderItemID, "oak chair rework", "match existing finish", 5)
	suite.Require().NoError(err)
	return job
}

func (suite *UnitOfWorkIntegrationTestSuite) newMilestones(orgID, orderID kernel.UUID) []*fulfillment.Milestone {
	milestones := make([]*fulfillment.Milestone, 0, len(fulfillment.DefaultCodes()))
	for _, code := range fulfillment.DefaultCodes() {
		m, err := fulfillment.NewMilestone(kernel.NewUUID(), orgID, orderID, code)
		suite.Require().NoError(err)
		milestones = append(milestones, m)
	}
	return milestones
}

func (suite *UnitOfWorkIntegrationTestSuite) newItem(quantity int, unitPriceCent int64) purchaseorder.Item {
	item, err := purchaseorder.NewItem(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), quantity, unitPriceCent)
	suite.Require().NoError(err)
	return item
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
