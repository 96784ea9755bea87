// Package fulfillmentrepo provides data transfer objects and mapping
// functions for order item and milestone persistence, the engine's view of
// the outer fulfillment pipeline.
package fulfillmentrepo

import (
	"time"

	"manufacturing/internal/core/domain/model/fulfillment"
	"manufacturing/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// OrderItemDTO represents the database structure for persisting order items.
type OrderItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID       uuid.UUID `gorm:"type:uuid;index"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	ProductName string
	Stage       string `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName specifies the database table name for order item entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// MilestoneDTO represents the database structure for persisting milestones.
// The (org_id, order_id, code) unique index makes milestone seeding
// idempotent: re-inserting an existing code is skipped, not an error.
type MilestoneDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID         uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_milestones_org_order_code"`
	OrderID       uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_milestones_org_order_code"`
	Code          string    `gorm:"uniqueIndex:idx_milestones_org_order_code"`
	Status        string    `gorm:"index"`
	BlockedReason string
	UpdatedAt     time.Time
}

// TableName specifies the database table name for milestone entities.
func (MilestoneDTO) TableName() string {
	return "milestones"
}

// itemFromDomain converts an order item to its database representation.
func itemFromDomain(item *fulfillment.OrderItem) OrderItemDTO {
	return OrderItemDTO{
		ID:          item.ID().Bytes(),
		OrgID:       item.OrgID().Bytes(),
		OrderID:     item.OrderID().Bytes(),
		ProductName: item.ProductName(),
		Stage:       item.Stage().String(),
		UpdatedAt:   item.UpdatedAt(),
	}
}

// itemToDomain converts a database DTO back to an order item using
// RestoreOrderItem.
func itemToDomain(dto OrderItemDTO) (*fulfillment.OrderItem, error) {
	id, err := kernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	orgID, err := kernelUUID(dto.OrgID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernelUUID(dto.OrderID)
	if err != nil {
		return nil, err
	}

	return fulfillment.RestoreOrderItem(
		id, orgID, orderID,
		dto.ProductName,
		fulfillment.Status(dto.Stage),
		dto.UpdatedAt,
	)
}

// milestoneFromDomain converts a milestone to its database representation.
func milestoneFromDomain(m *fulfillment.Milestone) MilestoneDTO {
	return MilestoneDTO{
		ID:            m.ID().Bytes(),
		OrgID:         m.OrgID().Bytes(),
		OrderID:       m.OrderID().Bytes(),
		Code:          m.Code().String(),
		Status:        m.Status().String(),
		BlockedReason: m.BlockedReason(),
		UpdatedAt:     m.UpdatedAt(),
	}
}

// milestoneToDomain converts a database DTO back to a milestone using
// RestoreMilestone.
func milestoneToDomain(dto MilestoneDTO) (*fulfillment.Milestone, error) {
	id, err := kernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	orgID, err := kernelUUID(dto.OrgID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernelUUID(dto.OrderID)
	if err != nil {
		return nil, err
	}

	return fulfillment.RestoreMilestone(
		id, orgID, orderID,
		fulfillment.Code(dto.Code),
		fulfillment.MilestoneStatus(dto.Status),
		dto.BlockedReason,
		dto.UpdatedAt,
	)
}

func kernelUUID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}
