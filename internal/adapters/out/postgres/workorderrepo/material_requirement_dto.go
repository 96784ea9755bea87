package workorderrepo

import (
	"time"

	"manufacturing/internal/core/domain/model/workorder"

	"github.com/google/uuid"
)

// MaterialRequirementDTO represents the database structure for persisting
// one line of a work order's bill of materials.
type MaterialRequirementDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID          uuid.UUID `gorm:"type:uuid;index"`
	WorkOrderID    uuid.UUID `gorm:"type:uuid;index"`
	MaterialID     uuid.UUID `gorm:"type:uuid"`
	SupplierID     uuid.UUID `gorm:"type:uuid;index"`
	QuantityNeeded int
	UnitCostCent   int64
	Status         string `gorm:"index"`
	UpdatedAt      time.Time
}

// TableName specifies the database table name for material requirements.
func (MaterialRequirementDTO) TableName() string {
	return "material_requirements"
}

// requirementFromDomain converts a material requirement to its database
// representation.
func requirementFromDomain(req *workorder.MaterialRequirement) MaterialRequirementDTO {
	return MaterialRequirementDTO{
		ID:             req.ID().Bytes(),
		OrgID:          req.OrgID().Bytes(),
		WorkOrderID:    req.WorkOrderID().Bytes(),
		MaterialID:     req.MaterialID().Bytes(),
		SupplierID:     req.SupplierID().Bytes(),
		QuantityNeeded: req.QuantityNeeded(),
		UnitCostCent:   req.UnitCostCent(),
		Status:         req.Status().String(),
		UpdatedAt:      req.UpdatedAt(),
	}
}

// requirementToDomain converts a database DTO back to a material requirement
// using RestoreMaterialRequirement.
func requirementToDomain(dto MaterialRequirementDTO) (*workorder.MaterialRequirement, error) {
	id, err := kernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	orgID, err := kernelUUID(dto.OrgID)
	if err != nil {
		return nil, err
	}
	workOrderID, err := kernelUUID(dto.WorkOrderID)
	if err != nil {
		return nil, err
	}
	materialID, err := kernelUUID(dto.MaterialID)
	if err != nil {
		return nil, err
	}
	supplierID, err := kernelUUID(dto.SupplierID)
	if err != nil {
		return nil, err
	}

	return workorder.RestoreMaterialRequirement(
		id, orgID, workOrderID, materialID, supplierID,
		dto.QuantityNeeded,
		dto.UnitCostCent,
		workorder.RequirementStatus(dto.Status),
		dto.UpdatedAt,
	)
}
