// Package designjobrepo provides data transfer objects and mapping functions
// for design job persistence. It implements the repository pattern for the
// design job aggregate, handling conversion between domain entities and
// database rows.
package designjobrepo

import (
	"time"

	"manufacturing/internal/core/domain/model/designjob"
	"manufacturing/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

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

// DesignJobDTO represents the database structure for persisting design job
// aggregates. The (org_id, order_item_id) unique index backs the one-job-per-
// order-item rule that idempotent creation relies on.
type DesignJobDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrgID              uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_design_jobs_org_item"`
	OrderItemID        uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_design_jobs_org_item"`
	AssigneeDesignerID *uuid.UUID `gorm:"type:uuid;index"`
	Status             string     `gorm:"index"`
	Priority           int
	Title              string
	Brief              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the database table name for design job entities.
func (DesignJobDTO) TableName() string {
	return "design_jobs"
}

// fromDomain converts a design job aggregate to its database representation.
func fromDomain(job *designjob.DesignJob) DesignJobDTO {
	var assigneeID *uuid.UUID
	if id := job.AssigneeDesignerID(); id != nil {
		raw := id.Bytes()
		assigneeID = &raw
	}

	return DesignJobDTO{
		ID:                 job.ID().Bytes(),
		OrgID:              job.OrgID().Bytes(),
		OrderItemID:        job.OrderItemID().Bytes(),
		AssigneeDesignerID: assigneeID,
		Status:             job.Status().String(),
		Priority:           job.Priority(),
		Title:              job.Title(),
		Brief:              job.Brief(),
		CreatedAt:          job.CreatedAt(),
		UpdatedAt:          job.UpdatedAt(),
	}
}

// toDomain converts a database DTO back to a design job aggregate using
// RestoreDesignJob.
func toDomain(dto DesignJobDTO) (*designjob.DesignJob, error) {
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
	assigneeID, err := kernelUUIDPtr(dto.AssigneeDesignerID)
	if err != nil {
		return nil, err
	}

	return designjob.RestoreDesignJob(
		id, orgID, orderItemID,
		assigneeID,
		designjob.Status(dto.Status),
		dto.Priority,
		dto.Title, dto.Brief,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
