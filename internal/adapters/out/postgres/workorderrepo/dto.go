// Package workorderrepo provides data transfer objects and mapping functions
// for work order and material requirement persistence. The two live in one
// package because requirements are line items of the work order's bill of
// materials and share its lifecycle.
package workorderrepo

import (
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/workorder"

	"github.com/google/uuid"
)

// WorkOrderDTO represents the database structure for persisting work order
// aggregates. The (org_id, order_item_id) unique index backs the
// one-work-order-per-order-item rule that idempotent creation relies on.
type WorkOrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrgID          uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_work_orders_org_item"`
	OrderItemID    uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_work_orders_org_item"`
	OrderID        uuid.UUID  `gorm:"type:uuid;index"`
	ManufacturerID *uuid.UUID `gorm:"type:uuid;index"`
	Status         string     `gorm:"index"`
	Priority       int
	Quantity       int
	PlannedStart   *time.Time
	PlannedEnd     *time.Time
	ActualStart    *time.Time
	ActualEnd      *time.Time
	DelayReason    string
	QualityNotes   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the database table name for work order entities.
func (WorkOrderDTO) TableName() string {
	return "work_orders"
}

// fromDomain converts a work order aggregate to its database representation.
func fromDomain(wo *workorder.WorkOrder) WorkOrderDTO {
	var manufacturerID *uuid.UUID
	if id := wo.ManufacturerID(); id != nil {
		raw := id.Bytes()
		manufacturerID = &raw
	}

	return WorkOrderDTO{
		ID:             wo.ID().Bytes(),
		OrgID:          wo.OrgID().Bytes(),
		OrderItemID:    wo.OrderItemID().Bytes(),
		OrderID:        wo.OrderID().Bytes(),
		ManufacturerID: manufacturerID,
		Status:         wo.Status().String(),
		Priority:       wo.Priority(),
		Quantity:       wo.Quantity(),
		PlannedStart:   wo.PlannedStart(),
		PlannedEnd:     wo.PlannedEnd(),
		ActualStart:    wo.ActualStart(),
		ActualEnd:      wo.ActualEnd(),
		DelayReason:    wo.DelayReason(),
		QualityNotes:   wo.QualityNotes(),
		CreatedAt:      wo.CreatedAt(),
		UpdatedAt:      wo.UpdatedAt(),
	}
}

// toDomain converts a database DTO back to a work order aggregate using
// RestoreWorkOrder.
func toDomain(dto WorkOrderDTO) (*workorder.WorkOrder, error) {
	id, err := kernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	orgID, err := kernelUUID(dto.OrgID)
	if err != nil {
		return nil, err
	}
	orderItemID, err := kernelUUID(dto.OrderItemID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernelUUID(dto.OrderID)
	if err != nil {
		return nil, err
	}
	manufacturerID, err := kernelUUIDPtr(dto.ManufacturerID)
	if err != nil {
		return nil, err
	}

	return workorder.RestoreWorkOrder(
		id, orgID, orderItemID, orderID,
		manufacturerID,
		workorder.Status(dto.Status),
		dto.Priority, dto.Quantity,
		dto.PlannedStart, dto.PlannedEnd, dto.ActualStart, dto.ActualEnd,
		dto.DelayReason, dto.QualityNotes,
		dto.CreatedAt, dto.UpdatedAt,
	)
}

func kernelUUID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

func kernelUUIDPtr(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
