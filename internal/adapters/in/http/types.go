package http

import (
	"time"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/application/usecases/queries"
	"manufacturing/internal/core/domain/model/designjob"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/purchaseorder"
	"manufacturing/internal/core/domain/model/workorder"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateDesignJobRequest opens a design job for an order item.
type CreateDesignJobRequest struct {
	OrderItemID string `json:"order_item_id"`
	Title       string `json:"title"`
	Brief       string `json:"brief"`
	Priority    int    `json:"priority"`
}

// AssignDesignJobRequest hands a design job to a designer.
type AssignDesignJobRequest struct {
	DesignerID string `json:"designer_id"`
}

// ReviewDesignRequest carries a reviewer's verdict.
type ReviewDesignRequest struct {
	Decision string `json:"decision"`
	Notes    string `json:"notes"`
}

// BulkAssignPair is one explicit job/designer pairing.
type BulkAssignPair struct {
	DesignJobID string `json:"design_job_id"`
	DesignerID  string `json:"designer_id"`
}

// BulkAssignRequest assigns a batch of design jobs either explicitly or via
// the scheduler.
type BulkAssignRequest struct {
	Mode             string           `json:"mode"`
	Pairs            []BulkAssignPair `json:"pairs,omitempty"`
	DesignJobIDs     []string         `json:"design_job_ids,omitempty"`
	CapacityOverride *int             `json:"capacity_override,omitempty"`
}

// CreateWorkOrderRequest opens a work order for an order item.
type CreateWorkOrderRequest struct {
	OrderItemID  string     `json:"order_item_id"`
	Quantity     int        `json:"quantity"`
	Priority     int        `json:"priority"`
	PlannedStart *time.Time `json:"planned_start,omitempty"`
	PlannedEnd   *time.Time `json:"planned_end,omitempty"`
}

// BulkGenerateWorkOrdersRequest generates work orders from approved design
// jobs.
type BulkGenerateWorkOrdersRequest struct {
	DesignJobIDs []string `json:"design_job_ids"`
}

// UpdateWorkOrderStatusRequest moves a work order along its lifecycle.
type UpdateWorkOrderStatusRequest struct {
	Status       string `json:"status"`
	QualityNotes string `json:"quality_notes,omitempty"`
}

// AssignManufacturerRequest hands a work order to a manufacturer.
type AssignManufacturerRequest struct {
	ManufacturerID string `json:"manufacturer_id"`
}

// ReportDelayRequest records a production delay.
type ReportDelayRequest struct {
	Reason string `json:"reason"`
	Hold   bool   `json:"hold"`
}

// GeneratePurchaseOrdersRequest turns pending material requirements into
// purchase orders.
type GeneratePurchaseOrdersRequest struct {
	WorkOrderIDs  []string `json:"work_order_ids"`
	ThresholdCent int64    `json:"threshold_cent,omitempty"`
}

// DesignJob is the wire representation of a design job.
type DesignJob struct {
	ID                 string    `json:"id"`
	OrderItemID        string    `json:"order_item_id"`
	AssigneeDesignerID *string   `json:"assignee_designer_id,omitempty"`
	Status             string    `json:"status"`
	Priority           int       `json:"priority"`
	Title              string    `json:"title"`
	Brief              string    `json:"brief,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// WorkOrder is the wire representation of a work order.
type WorkOrder struct {
	ID             string     `json:"id"`
	OrderItemID    string     `json:"order_item_id"`
	OrderID        string     `json:"order_id"`
	ManufacturerID *string    `json:"manufacturer_id,omitempty"`
	Status         string     `json:"status"`
	Priority       int        `json:"priority"`
	Quantity       int        `json:"quantity"`
	PlannedStart   *time.Time `json:"planned_start,omitempty"`
	PlannedEnd     *time.Time `json:"planned_end,omitempty"`
	DelayReason    string     `json:"delay_reason,omitempty"`
	QualityNotes   string     `json:"quality_notes,omitempty"`
}

// PurchaseOrderLine is one line of a purchase order on the wire.
type PurchaseOrderLine struct {
	ID            string `json:"id"`
	RequirementID string `json:"requirement_id"`
	MaterialID    string `json:"material_id"`
	Quantity      int    `json:"quantity"`
	UnitPriceCent int64  `json:"unit_price_cent"`
}

// PurchaseOrder is the wire representation of a purchase order.
type PurchaseOrder struct {
	ID              string              `json:"id"`
	SupplierID      string              `json:"supplier_id"`
	Status          string              `json:"status"`
	TotalAmountCent int64               `json:"total_amount_cent"`
	Items           []PurchaseOrderLine `json:"items"`
}

// BulkAssignment is one successful pairing in a bulk assignment response.
type BulkAssignment struct {
	DesignJobID string  `json:"design_job_id"`
	DesignerID  string  `json:"designer_id"`
	Score       float64 `json:"score"`
}

// BulkFailure is one per-item failure in a bulk response.
type BulkFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkAssignResponse reports the outcome of a bulk assignment run.
type BulkAssignResponse struct {
	Assigned []BulkAssignment `json:"assigned"`
	Failures []BulkFailure    `json:"failures"`
}

// GeneratedWorkOrder is one outcome row of bulk work order generation.
type GeneratedWorkOrder struct {
	DesignJobID string `json:"design_job_id"`
	WorkOrderID string `json:"work_order_id"`
	Created     bool   `json:"created"`
}

// BulkGenerateResponse reports the outcome of bulk work order generation.
type BulkGenerateResponse struct {
	Generated []GeneratedWorkOrder `json:"generated"`
	Failures  []BulkFailure        `json:"failures"`
}

// ValidTransitionsResponse lists the one-step moves out of a status.
type ValidTransitionsResponse struct {
	EntityKind  string   `json:"entity_kind"`
	From        string   `json:"from"`
	Transitions []string `json:"transitions"`
	Terminal    bool     `json:"terminal"`
}

// AgentCapacity is one row of the capacity dashboard.
type AgentCapacity struct {
	AgentID       string     `json:"agent_id"`
	Name          string     `json:"name"`
	CapacityLimit int        `json:"capacity_limit"`
	AssignedCount int        `json:"assigned_count"`
	WorkloadScore float64    `json:"workload_score"`
	Available     bool       `json:"available"`
	NextAvailable *time.Time `json:"next_available,omitempty"`
}

// AuditEvent is one row of an entity's audit trail.
type AuditEvent struct {
	EventID    string         `json:"event_id"`
	Code       string         `json:"code"`
	ActorID    *string        `json:"actor_id,omitempty"`
	Payload    map[string]any `json:"payload"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func designJobFromDomain(job *designjob.DesignJob) DesignJob {
	return DesignJob{
		ID:                 job.ID().String(),
		OrderItemID:        job.OrderItemID().String(),
		AssigneeDesignerID: uuidPtrString(job.AssigneeDesignerID()),
		Status:             job.Status().String(),
		Priority:           job.Priority(),
		Title:              job.Title(),
		Brief:              job.Brief(),
		CreatedAt:          job.CreatedAt(),
		UpdatedAt:          job.UpdatedAt(),
	}
}

func workOrderFromDomain(wo *workorder.WorkOrder) WorkOrder {
	return WorkOrder{
		ID:             wo.ID().String(),
		OrderItemID:    wo.OrderItemID().String(),
		OrderID:        wo.OrderID().String(),
		ManufacturerID: uuidPtrString(wo.ManufacturerID()),
		Status:         wo.Status().String(),
		Priority:       wo.Priority(),
		Quantity:       wo.Quantity(),
		PlannedStart:   wo.PlannedStart(),
		PlannedEnd:     wo.PlannedEnd(),
		DelayReason:    wo.DelayReason(),
		QualityNotes:   wo.QualityNotes(),
	}
}

func purchaseOrderFromDomain(po *purchaseorder.PurchaseOrder) PurchaseOrder {
	items := po.Items()
	lines := make([]PurchaseOrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, PurchaseOrderLine{
			ID:            item.ID().String(),
			RequirementID: item.RequirementID().String(),
			MaterialID:    item.MaterialID().String(),
			Quantity:      item.Quantity(),
			UnitPriceCent: item.UnitPriceCent(),
		})
	}

	return PurchaseOrder{
		ID:              po.ID().String(),
		SupplierID:      po.SupplierID().String(),
		Status:          po.Status().String(),
		TotalAmountCent: po.TotalAmountCent(),
		Items:           lines,
	}
}

func bulkAssignResponseFromResult(result commands.BulkAssignResult) BulkAssignResponse {
	resp := BulkAssignResponse{
		Assigned: make([]BulkAssignment, 0, len(result.Assigned)),
		Failures: make([]BulkFailure, 0, len(result.Failures)),
	}
	for _, a := range result.Assigned {
		resp.Assigned = append(resp.Assigned, BulkAssignment{
			DesignJobID: a.DesignJobID.String(),
			DesignerID:  a.DesignerID.String(),
			Score:       a.Score,
		})
	}
	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, BulkFailure{
			ID:     f.DesignJobID.String(),
			Reason: f.Reason,
		})
	}
	return resp
}

func bulkGenerateResponseFromResult(result commands.BulkGenerateResult) BulkGenerateResponse {
	resp := BulkGenerateResponse{
		Generated: make([]GeneratedWorkOrder, 0, len(result.Generated)),
		Failures:  make([]BulkFailure, 0, len(result.Failures)),
	}
	for _, g := range result.Generated {
		resp.Generated = append(resp.Generated, GeneratedWorkOrder{
			DesignJobID: g.DesignJobID.String(),
			WorkOrderID: g.WorkOrderID.String(),
			Created:     g.Created,
		})
	}
	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, BulkFailure{
			ID:     f.DesignJobID.String(),
			Reason: f.Reason,
		})
	}
	return resp
}

func agentCapacityFromResponse(rows []queries.GetAgentCapacityQueryResponse) []AgentCapacity {
	capacities := make([]AgentCapacity, 0, len(rows))
	for _, row := range rows {
		capacities = append(capacities, AgentCapacity{
			AgentID:       row.AgentID.String(),
			Name:          row.Name,
			CapacityLimit: row.CapacityLimit,
			AssignedCount: row.AssignedCount,
			WorkloadScore: row.WorkloadScore,
			Available:     row.Available,
			NextAvailable: row.NextAvailable,
		})
	}
	return capacities
}

func auditTrailFromResponse(rows []queries.GetAuditTrailQueryResponse) []AuditEvent {
	events := make([]AuditEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, AuditEvent{
			EventID:    row.EventID.String(),
			Code:       row.Code,
			ActorID:    uuidPtrString(row.ActorID),
			Payload:    row.Payload,
			OccurredAt: row.OccurredAt,
		})
	}
	return events
}

func openWorkOrdersFromResponse(rows []queries.GetOpenWorkOrdersQueryResponse) []WorkOrder {
	workOrders := make([]WorkOrder, 0, len(rows))
	for _, row := range rows {
		workOrders = append(workOrders, WorkOrder{
			ID:             row.ID.String(),
			OrderItemID:    row.OrderItemID.String(),
			OrderID:        row.OrderID.String(),
			ManufacturerID: uuidPtrString(row.ManufacturerID),
			Status:         row.Status,
			Priority:       row.Priority,
			Quantity:       row.Quantity,
			PlannedStart:   row.PlannedStart,
			PlannedEnd:     row.PlannedEnd,
			DelayReason:    row.DelayReason,
		})
	}
	return workOrders
}

func uuidPtrString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
