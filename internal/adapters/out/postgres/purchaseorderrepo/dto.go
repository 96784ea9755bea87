// Package purchaseorderrepo provides data transfer objects and mapping
// functions for purchase order persistence. A purchase order and its line
// items form one aggregate: lines are written with the order and never
// change afterwards.
package purchaseorderrepo

import (
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/purchaseorder"

	"github.com/google/uuid"
)

// PurchaseOrderDTO represents the database structure for persisting purchase
// order aggregates.
type PurchaseOrderDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID                 uuid.UUID `gorm:"type:uuid;index"`
	SupplierID            uuid.UUID `gorm:"type:uuid;index"`
	Status                string    `gorm:"index"`
	ApprovalThresholdCent int64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TableName specifies the database table name for purchase order entities.
func (PurchaseOrderDTO) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItemDTO represents one immutable line of a purchase order.
type PurchaseOrderItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;index"`
	RequirementID   uuid.UUID `gorm:"type:uuid;index"`
	MaterialID      uuid.UUID `gorm:"type:uuid"`
	Quantity        int
	UnitPriceCent   int64
}

// TableName specifies the database table name for purchase order lines.
func (PurchaseOrderItemDTO) TableName() string {
	return "purchase_order_items"
}

// fromDomain converts a purchase order aggregate to its database
// representation, header and lines.
func fromDomain(po *purchaseorder.PurchaseOrder) (PurchaseOrderDTO, []PurchaseOrderItemDTO) {
	header := PurchaseOrderDTO{
		ID:                    po.ID().Bytes(),
		OrgID:                 po.OrgID().Bytes(),
		SupplierID:            po.SupplierID().Bytes(),
		Status:                po.Status().String(),
		ApprovalThresholdCent: po.ApprovalThresholdCent(),
		CreatedAt:             po.CreatedAt(),
		UpdatedAt:             po.UpdatedAt(),
	}

	items := po.Items()
	lines := make([]PurchaseOrderItemDTO, 0, len(items))
	for _, item := range items {
		lines = append(lines, PurchaseOrderItemDTO{
			ID:              item.ID().Bytes(),
			PurchaseOrderID: po.ID().Bytes(),
			RequirementID:   item.RequirementID().Bytes(),
			MaterialID:      item.MaterialID().Bytes(),
			Quantity:        item.Quantity(),
			UnitPriceCent:   item.UnitPriceCent(),
		})
	}

	return header, lines
}

// toDomain converts a header row and its line rows back to a purchase order
// aggregate using RestorePurchaseOrder.
func toDomain(dto PurchaseOrderDTO, lineDTOs []PurchaseOrderItemDTO) (*purchaseorder.PurchaseOrder, error) {
	id, err := kernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	orgID, err := kernelUUID(dto.OrgID)
	if err != nil {
		return nil, err
	}
	supplierID, err := kernelUUID(dto.SupplierID)
	if err != nil {
		return nil, err
	}

	items := make([]purchaseorder.Item, 0, len(lineDTOs))
	for _, lineDTO := range lineDTOs {
		item, err := lineToDomain(lineDTO)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return purchaseorder.RestorePurchaseOrder(
		id, orgID, supplierID,
		purchaseorder.Status(dto.Status),
		items,
		dto.ApprovalThresholdCent,
		dto.CreatedAt, dto.UpdatedAt,
	)
}

func lineToDomain(dto PurchaseOrderItemDTO) (purchaseorder.Item, error) {
	id, err := kernelUUID(dto.ID)
	if err != nil {
		return purchaseorder.Item{}, err
	}
	requirementID, err := kernelUUID(dto.RequirementID)
	if err != nil {
		return purchaseorder.Item{}, err
	}
	materialID, err := kernelUUID(dto.MaterialID)
	if err != nil {
		return purchaseorder.Item{}, err
	}

	return purchaseorder.NewItem(id, requirementID, materialID, dto.Quantity, dto.UnitPriceCent)
}

func kernelUUID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}
