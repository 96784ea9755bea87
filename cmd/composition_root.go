package cmd

import (
	"log/slog"

	"manufacturing/internal/adapters/out/postgres"
	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

// CompositionRoot wires the application together: one GORM connection, one
// unit of work factory, and constructors for every handler.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) designUoWFactory() commands.DesignUoWFactory {
	return FuncDesignUoWFactory(func() commands.DesignUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) procurementUoWFactory() commands.ProcurementUoWFactory {
	return FuncProcurementUoWFactory(func() commands.ProcurementUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// CreateCascadeRunner builds the post-commit cascade runner shared by the
// handlers that trigger cross-lifecycle reactions.
func (c *CompositionRoot) CreateCascadeRunner() commands.CascadeRunner {
	return commands.NewCascadeRunner(c.fullUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateCreateDesignJobCommandHandler() commands.CreateDesignJobCommandHandler {
	return commands.NewCreateDesignJobCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateAssignDesignJobCommandHandler() commands.AssignDesignJobCommandHandler {
	return commands.NewAssignDesignJobCommandHandler(c.designUoWFactory())
}

func (c *CompositionRoot) CreateSubmitDesignForReviewCommandHandler() commands.SubmitDesignForReviewCommandHandler {
	return commands.NewSubmitDesignForReviewCommandHandler(c.designUoWFactory())
}

func (c *CompositionRoot) CreateReviewDesignCommandHandler() commands.ReviewDesignCommandHandler {
	return commands.NewReviewDesignCommandHandler(c.fullUoWFactory(), c.CreateCascadeRunner())
}

func (c *CompositionRoot) CreateBulkAssignDesignJobsCommandHandler() commands.BulkAssignDesignJobsCommandHandler {
	return commands.NewBulkAssignDesignJobsCommandHandler(c.designUoWFactory())
}

func (c *CompositionRoot) CreateCreateWorkOrderCommandHandler() commands.CreateWorkOrderCommandHandler {
	return commands.NewCreateWorkOrderCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateBulkGenerateWorkOrdersCommandHandler() commands.BulkGenerateWorkOrdersCommandHandler {
	return commands.NewBulkGenerateWorkOrdersCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateUpdateWorkOrderStatusCommandHandler() commands.UpdateWorkOrderStatusCommandHandler {
	return commands.NewUpdateWorkOrderStatusCommandHandler(c.fullUoWFactory(), c.CreateCascadeRunner())
}

func (c *CompositionRoot) CreateAssignManufacturerCommandHandler() commands.AssignManufacturerCommandHandler {
	return commands.NewAssignManufacturerCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateReportProductionDelayCommandHandler() commands.ReportProductionDelayCommandHandler {
	return commands.NewReportProductionDelayCommandHandler(c.fullUoWFactory(), c.CreateCascadeRunner())
}

func (c *CompositionRoot) CreateGeneratePurchaseOrdersCommandHandler() commands.GeneratePurchaseOrdersCommandHandler {
	return commands.NewGeneratePurchaseOrdersCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateApprovePurchaseOrderCommandHandler() commands.ApprovePurchaseOrderCommandHandler {
	return commands.NewApprovePurchaseOrderCommandHandler(c.procurementUoWFactory())
}

func (c *CompositionRoot) CreateReceivePurchaseOrderCommandHandler() commands.ReceivePurchaseOrderCommandHandler {
	return commands.NewReceivePurchaseOrderCommandHandler(c.procurementUoWFactory())
}

func (c *CompositionRoot) CreateAutoAssignDesignJobsCommandHandler() commands.AutoAssignDesignJobsCommandHandler {
	return commands.NewAutoAssignDesignJobsCommandHandler(
		c.fullUoWFactory(),
		c.CreateBulkAssignDesignJobsCommandHandler(),
	)
}

func (c *CompositionRoot) CreateGetAgentCapacityQueryHandler() queries.GetAgentCapacityQueryHandler {
	return queries.NewGetAgentCapacityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAuditTrailQueryHandler() queries.GetAuditTrailQueryHandler {
	return queries.NewGetAuditTrailQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOpenWorkOrdersQueryHandler() queries.GetOpenWorkOrdersQueryHandler {
	return queries.NewGetOpenWorkOrdersQueryHandler(c.gormDB)
}

type FuncDesignUoWFactory func() commands.DesignUoW

func (f FuncDesignUoWFactory) Create() commands.DesignUoW {
	return f()
}

type FuncProcurementUoWFactory func() commands.ProcurementUoW

func (f FuncProcurementUoWFactory) Create() commands.ProcurementUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
