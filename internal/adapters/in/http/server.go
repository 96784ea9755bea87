// Package http is the inbound HTTP adapter. Handlers stay thin: they bind
// the request, build a command or query, delegate to the application layer,
// and translate the outcome to a status code. No business rules live here.
package http

import (
	"net/http"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/application/usecases/queries"
	"manufacturing/internal/core/domain/model/agent"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/workorder"
	"manufacturing/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// actorHeader optionally identifies the human behind a request. Requests
// without it are recorded as engine-actor events.
const actorHeader = "X-Actor-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createDesignJobHandler    commands.CreateDesignJobCommandHandler
	assignDesignJobHandler    commands.AssignDesignJobCommandHandler
	submitForReviewHandler    commands.SubmitDesignForReviewCommandHandler
	reviewDesignHandler       commands.ReviewDesignCommandHandler
	bulkAssignHandler         commands.BulkAssignDesignJobsCommandHandler
	createWorkOrderHandler    commands.CreateWorkOrderCommandHandler
	bulkGenerateHandler       commands.BulkGenerateWorkOrdersCommandHandler
	updateWorkOrderHandler    commands.UpdateWorkOrderStatusCommandHandler
	assignManufacturerHandler commands.AssignManufacturerCommandHandler
	reportDelayHandler        commands.ReportProductionDelayCommandHandler
	generatePOsHandler        commands.GeneratePurchaseOrdersCommandHandler
	approvePOHandler          commands.ApprovePurchaseOrderCommandHandler
	receivePOHandler          commands.ReceivePurchaseOrderCommandHandler

	agentCapacityHandler  queries.GetAgentCapacityQueryHandler
	auditTrailHandler     queries.GetAuditTrailQueryHandler
	openWorkOrdersHandler queries.GetOpenWorkOrdersQueryHandler
}

// NewServer creates an HTTP server over the given command and query
// handlers.
func NewServer(
	createDesignJobHandler commands.CreateDesignJobCommandHandler,
	assignDesignJobHandler commands.AssignDesignJobCommandHandler,
	submitForReviewHandler commands.SubmitDesignForReviewCommandHandler,
	reviewDesignHandler commands.ReviewDesignCommandHandler,
	bulkAssignHandler commands.BulkAssignDesignJobsCommandHandler,
	createWorkOrderHandler commands.CreateWorkOrderCommandHandler,
	bulkGenerateHandler commands.BulkGenerateWorkOrdersCommandHandler,
	updateWorkOrderHandler commands.UpdateWorkOrderStatusCommandHandler,
	assignManufacturerHandler commands.AssignManufacturerCommandHandler,
	reportDelayHandler commands.ReportProductionDelayCommandHandler,
	generatePOsHandler commands.GeneratePurchaseOrdersCommandHandler,
	approvePOHandler commands.ApprovePurchaseOrderCommandHandler,
	receivePOHandler commands.ReceivePurchaseOrderCommandHandler,
	agentCapacityHandler queries.GetAgentCapacityQueryHandler,
	auditTrailHandler queries.GetAuditTrailQueryHandler,
	openWorkOrdersHandler queries.GetOpenWorkOrdersQueryHandler,
) *Server {
	return &Server{
		createDesignJobHandler:    createDesignJobHandler,
		assignDesignJobHandler:    assignDesignJobHandler,
		submitForReviewHandler:    submitForReviewHandler,
		reviewDesignHandler:       reviewDesignHandler,
		bulkAssignHandler:         bulkAssignHandler,
		createWorkOrderHandler:    createWorkOrderHandler,
		bulkGenerateHandler:       bulkGenerateHandler,
		updateWorkOrderHandler:    updateWorkOrderHandler,
		assignManufacturerHandler: assignManufacturerHandler,
		reportDelayHandler:        reportDelayHandler,
		generatePOsHandler:        generatePOsHandler,
		approvePOHandler:          approvePOHandler,
		receivePOHandler:          receivePOHandler,
		agentCapacityHandler:      agentCapacityHandler,
		auditTrailHandler:         auditTrailHandler,
		openWorkOrdersHandler:     openWorkOrdersHandler,
	}
}

// RegisterRoutes mounts every endpoint under /api/v1. All routes are
// org-scoped through the path.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1/orgs/:orgID")

	api.POST("/design-jobs", s.CreateDesignJob)
	api.POST("/design-jobs/bulk-assign", s.BulkAssignDesignJobs)
	api.POST("/design-jobs/:jobID/assign", s.AssignDesignJob)
	api.POST("/design-jobs/:jobID/submit-review", s.SubmitDesignForReview)
	api.POST("/design-jobs/:jobID/review", s.ReviewDesign)

	api.POST("/work-orders", s.CreateWorkOrder)
	api.POST("/work-orders/bulk-generate", s.BulkGenerateWorkOrders)
	api.GET("/work-orders/open", s.GetOpenWorkOrders)
	api.POST("/work-orders/:workOrderID/status", s.UpdateWorkOrderStatus)
	api.POST("/work-orders/:workOrderID/assign", s.AssignManufacturer)
	api.POST("/work-orders/:workOrderID/delay", s.ReportProductionDelay)

	api.POST("/purchase-orders/generate", s.GeneratePurchaseOrders)
	api.POST("/purchase-orders/:purchaseOrderID/approve", s.ApprovePurchaseOrder)
	api.POST("/purchase-orders/:purchaseOrderID/receive", s.ReceivePurchaseOrder)

	api.GET("/agents/capacity", s.GetAgentCapacity)
	api.GET("/audit/:entityKind/:entityID", s.GetAuditTrail)

	// Status vocabularies are engine-wide, not per-organization.
	e.GET("/api/v1/transitions/:entityKind/:from", s.GetValidTransitions)
}

// CreateDesignJob handles POST /design-jobs.
func (s *Server) CreateDesignJob(ctx echo.Context) error {
	orgID, err := pathUUID(ctx, "orgID")
	if err != nil {
		return badRequest(ctx, "invalid org id")
	}

	var req CreateDesignJobRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	orderItemID, err := kernel.UUIDFromString(req.OrderItemID)
	if err != nil {
		return badRequest(ctx, "invalid order item id")
	}
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, "invalid actor id")
	}

	cmd, err := commands.NewCreateDesignJobCommand(orgID, orderItemID, req.Title, req.Brief, req.Priority, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	job, err := s.createDesignJobHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, designJobFromDomain(job))
}

// AssignDesignJob handles POST /design-jobs/:jobID/assign.
func (s *Server) AssignDesignJob(ctx echo.Context) error {
	orgID, err := pathUUID(ctx, "orgID")
	if err != nil {
		return badRequest(ctx, "invalid org id")
	}
	jobID, err := pathUUID(ctx, "jobID")
	if err != nil {
		return badRequest(ctx, "invalid design job id")
	}

	var req AssignDesignJobRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	designerID, err := kernel.UUIDFromString(req.DesignerID)
	if err != nil {
		return badRequest(ctx, "invalid designer id")
	}
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, "invalid actor id")
	}

	cmd, err := commands.NewAssignDesignJobCommand(orgID, jobID, designerID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	job, err := s.assignDesignJobHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, designJobFromDomain(job))
}

// SubmitDesignForReview handles POST /design-jobs/:jobID/submit-review.
func (s *Server) SubmitDesignForReview(ctx echo.Context) error {
	orgID, err := pathUUID(ctx, "orgID")
	if err != nil {
		return badRequest(ctx, "invalid org id")
	}
	jobID, err := pathUUID(ctx, "jobID")
	if err != nil {
		return badRequest(ctx, "invalid design job id")
	}
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, "invalid actor id")
	}

	cmd, err := commands.NewSubmitDesignForReviewCommand(orgID, jobID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	job, err := s.submitForReviewHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, designJobFromDomain(job))
}

// ReviewDesign handles POST /design-jobs/:jobID/review.
func (s *Server) ReviewDesign(ctx echo.Context) error {
	orgID, err := pathUUID(ctx, "orgID")
	if err != nil {
		return badRequest(ctx, "invalid org id")
	}
	jobID, err := pathUUID(ctx, "jobID")
	if err != nil {
		return badRequest(ctx, "invalid design job id")
	}

	var req ReviewDesignRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, "invalid actor id")
	}

	cmd, err := commands.NewReviewDesignCommand(orgID, jobID, commands.ReviewDecision(req.Decision), req.Notes, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	job, err := s.reviewDesignHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, designJobFromDomain(job))
}

// BulkAssignDesignJobs handles POST /design-jobs/bulk-assign.
func (s *Server) BulkAssignDesignJobs(ctx echo.Context) error {
	orgID, err := pathUUID(ctx, "orgID")
	if err != nil {
		return badRequest(ctx, "invalid org id")
	}

	var req BulkAssignRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	pairs := make([]commands.ExplicitPair, 0, len(req.Pairs))
	for _, p := range req.Pairs {
		jobID, pairErr := kernel.UUIDFromString(p.DesignJobID)
		if pairErr != nil {
			return badRequest(ctx, "invalid design job id in pair")
		}
		designerID, pairErr := kernel.UUIDFromString(p.DesignerID)
		if pairErr != nil {
			return badRequest(ctx, "invalid designer id in pair")
		}
		pairs = append(pairs, commands.ExplicitPair{DesignJobID: jobID, DesignerID: designerID})
	}

	jobIDs, err := uuidsFromStrings(req.DesignJobIDs)
	if err != nil {
		return badRequest(ctx, "invalid design job id")
	}
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, "invalid actor id")
	}

	cmd, err := commands.NewBulkAssignDesignJobsCommand(
		orgID, commands.AssignmentMode(req.Mode), pairs, jobIDs, req.CapacityOverride, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.bulkAssignHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, bulkAssignResponseFromResult(result))
}

// CreateWorkOrder handles POST /work-orders.
func (s *Server) CreateWorkOrder(ctx echo.Context) error {
	orgID, err := pathUUID(ctx, "orgID")
	if err != nil {
		return badRequest(ctx, "invalid org id")
	}

	var req CreateWorkOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	orderItemID, err := kernel.UUIDFromString(req.OrderItemID)
	if err != nil {
		return badRequest(ctx, "invalid order item id")
	}
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, "invalid actor id")
	}

	cmd, err := commands.NewCreateWorkOrderCommand(
		orgID, orderItemID, req.Quantity, req.Priority, req.PlannedStart, req.PlannedEnd, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	wo, err := s.createWorkOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, workOrderFromDomain(wo))
}

// BulkGenerateWorkOrders handles POST /work-orders/bulk-generate.
func (s *Server) BulkGenerateWorkOrders(ctx echo.Context) error {
	orgID, err := pathUUID(ctx, "orgID")
	if err != nil {
		return badRequest(ctx, "invalid org id")
	}

	var req BulkGenerateWorkOrdersRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	jobIDs, err := uuidsFromStrings(req.DesignJobIDs)
	if err != nil {
		return badRequest(ctx, "invalid design job id")
	}
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, "invalid actor id")
	}

	cmd, err := commands.NewBulkGenerateWorkOrdersCommand(orgID, jobIDs, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.bulkGenerateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, bulkGenerateResponseFromResult(result))
}

// UpdateWorkOrderStatus handles POST /work-orders/:workOrderID/status.
func (s *Server) UpdateWorkOrderStatus(ctx echo.Context) error {
	orgID, err := pathUUID(ctx, "orgID")
	if err != nil {
		return badRequest(ctx, "invalid org id")
	}
	workOrderID, err := pathUUID(ctx, "workOrderID")
	if err != nil {
		return badRequest(ctx, "invalid work order id")
	}

	var req UpdateWorkOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, "invalid actor id")
	}

	cmd, err := commands.NewUpdateWorkOrderStatusCommand(
		orgID, workOrderID, workorder.Status(req.Status), req.QualityNotes, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	wo, err := s.updateWorkOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, workOrderFromDomain(wo))
}

// AssignManufacturer handles POST /work-orders/:workOrderID/assign.
func (s *Server) AssignManufacturer(ctx echo.Context) error {
	orgID, err := pathUUID(ctx, "orgID")
	if err != nil {
		return badRequest(ctx, "invalid org id")
	}
	workOrderID, err := pathUUID(ctx, "workOrderID")
	if err != nil {
		return badRequest(ctx, "invalid work order id")
	}

	var req AssignManufacturerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	manufacturerID, err := kernel.UUIDFromString(req.ManufacturerID)
	if err != nil {
		return badRequest(ctx, "invalid manufacturer id")
	}
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, "invalid actor id")
	}

	cmd, err := commands.NewAssignManufacturerCommand(orgID, workOrderID, manufacturerID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	wo, err := s.assignManufacturerHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, workOrderFromDomain(wo))
}

// ReportProductionDelay handles POST /work-orders/:workOrderID/delay.
func (s *Server) ReportProductionDelay(ctx echo.Context) error {
	orgID, err := pathUUID(ctx, "orgID")
	if err != nil {
		return badRequest(ctx, "invalid org id")
	}
	workOrderID, err := pathUUID(ctx, "workOrderID")
	if err != nil {
		return badRequest(ctx, "invalid work order id")
	}

	var req ReportDelayRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, "invalid actor id")
	}

	cmd, err := commands.NewReportProductionDelayCommand(orgID, workOrderID, req.Reason, req.Hold, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	wo, err := s.reportDelayHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, workOrderFromDomain(wo))
}

// GeneratePurchaseOrders handles POST /purchase-orders/generate.
func (s *Server) GeneratePurchaseOrders(ctx echo.Context) error {
	orgID, err := pathUUID(ctx, "orgID")
	if err != nil {
		return badRequest(ctx, "invalid org id")
	}

	var req GeneratePurchaseOrdersRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	workOrderIDs, err := uuidsFromStrings(req.WorkOrderIDs)
	if err != nil {
		return badRequest(ctx, "invalid work order id")
	}
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, "invalid actor id")
	}

	cmd, err := commands.NewGeneratePurchaseOrdersCommand(orgID, workOrderIDs, req.ThresholdCent, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	purchaseOrders, err := s.generatePOsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]PurchaseOrder, 0, len(purchaseOrders))
	for _, po := range purchaseOrders {
		response = append(response, purchaseOrderFromDomain(po))
	}
	return ctx.JSON(http.StatusCreated, response)
}

// ApprovePurchaseOrder handles POST /purchase-orders/:purchaseOrderID/approve.
func (s *Server) ApprovePurchaseOrder(ctx echo.Context) error {
	orgID, err := pathUUID(ctx, "orgID")
	if err != nil {
		return badRequest(ctx, "invalid org id")
	}
	purchaseOrderID, err := pathUUID(ctx, "purchaseOrderID")
	if err != nil {
		return badRequest(ctx, "invalid purchase order id")
	}
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, "invalid actor id")
	}

	cmd, err := commands.NewApprovePurchaseOrderCommand(orgID, purchaseOrderID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	po, err := s.approvePOHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, purchaseOrderFromDomain(po))
}

// ReceivePurchaseOrder handles POST /purchase-orders/:purchaseOrderID/receive.
func (s *Server) ReceivePurchaseOrder(ctx echo.Context) error {
	orgID, err := pathUUID(ctx, "orgID")
	if err != nil {
		return badRequest(ctx, "invalid org id")
	}
	purchaseOrderID, err := pathUUID(ctx, "purchaseOrderID")
	if err != nil {
		return badRequest(ctx, "invalid purchase order id")
	}
	actorID, err := actorFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, "invalid actor id")
	}

	cmd, err := commands.NewReceivePurchaseOrderCommand(orgID, purchaseOrderID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	po, err := s.receivePOHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, purchaseOrderFromDomain(po))
}

// GetAgentCapacity handles GET /agents/capacity?role=designer.
func (s *Server) GetAgentCapacity(ctx echo.Context) error {
	orgID, err := pathUUID(ctx, "orgID")
	if err != nil {
		return badRequest(ctx, "invalid org id")
	}

	query, err := queries.NewGetAgentCapacityQuery(orgID, agent.Role(ctx.QueryParam("role")))
	if err != nil {
		return writeError(ctx, err)
	}

	rows, err := s.agentCapacityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, agentCapacityFromResponse(rows))
}

// GetAuditTrail handles GET /audit/:entityKind/:entityID.
func (s *Server) GetAuditTrail(ctx echo.Context) error {
	orgID, err := pathUUID(ctx, "orgID")
	if err != nil {
		return badRequest(ctx, "invalid org id")
	}
	entityID, err := pathUUID(ctx, "entityID")
	if err != nil {
		return badRequest(ctx, "invalid entity id")
	}

	query, err := queries.NewGetAuditTrailQuery(orgID, kernel.EntityKind(ctx.Param("entityKind")), entityID)
	if err != nil {
		return writeError(ctx, err)
	}

	rows, err := s.auditTrailHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, auditTrailFromResponse(rows))
}

// GetOpenWorkOrders handles GET /work-orders/open.
func (s *Server) GetOpenWorkOrders(ctx echo.Context) error {
	orgID, err := pathUUID(ctx, "orgID")
	if err != nil {
		return badRequest(ctx, "invalid org id")
	}

	query, err := queries.NewGetOpenWorkOrdersQuery(orgID)
	if err != nil {
		return writeError(ctx, err)
	}

	rows, err := s.openWorkOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, openWorkOrdersFromResponse(rows))
}

// GetValidTransitions handles GET /transitions/:entityKind/:from. It exposes
// the status graphs so clients can render the moves a row actually has.
func (s *Server) GetValidTransitions(ctx echo.Context) error {
	kind := kernel.EntityKind(ctx.Param("entityKind"))
	if err := kind.Validate(); err != nil {
		return writeError(ctx, err)
	}
	from := ctx.Param("from")

	return ctx.JSON(http.StatusOK, ValidTransitionsResponse{
		EntityKind:  kind.String(),
		From:        from,
		Transitions: services.ValidTransitions(kind, from),
		Terminal:    services.IsTerminal(kind, from),
	})
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func actorFromHeader(ctx echo.Context) (*kernel.UUID, error) {
	raw := ctx.Request().Header.Get(actorHeader)
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func uuidsFromStrings(raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
