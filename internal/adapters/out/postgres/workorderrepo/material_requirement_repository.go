package workorderrepo

import (
	"context"
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/workorder"
	"manufacturing/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMaterialRequirementRepository implements material requirement
// persistence using GORM.
type GormMaterialRequirementRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormMaterialRequirementRepository creates a repository bound to the
// given connection, which may be a transaction.
func NewGormMaterialRequirementRepository(db *gorm.DB, tracker aggregateTracker) *GormMaterialRequirementRepository {
	return &GormMaterialRequirementRepository{db: db, tracker: tracker}
}

// Add persists a new material requirement.
func (r *GormMaterialRequirementRepository) Add(ctx context.Context, req *workorder.MaterialRequirement) error {
	if err := req.Validate(); err != nil {
		return err
	}

	dto := requirementFromDomain(req)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(req.ID(), req)
	return nil
}

// Update persists status changes to an existing material requirement.
func (r *GormMaterialRequirementRepository) Update(ctx context.Context, req *workorder.MaterialRequirement) error {
	if err := req.Validate(); err != nil {
		return err
	}

	dto := requirementFromDomain(req)
	result := r.db.WithContext(ctx).
		Model(&MaterialRequirementDTO{}).
		Where("id = ? AND org_id = ?", dto.ID, dto.OrgID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("material requirement", req.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(req.ID(), req)
	return nil
}

// Get retrieves a material requirement by id within the organization. A
// tenant mismatch reads as not-found.
func (r *GormMaterialRequirementRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*workorder.MaterialRequirement, error) {
	var dto MaterialRequirementDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND org_id = ?", id.Bytes(), orgID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("material requirement", id.String(), err)
		}
		return nil, err
	}

	return requirementToDomain(dto)
}

// ListPendingByWorkOrderIDs returns pending requirements of the given work
// orders in a stable order, the input to purchase-order generation.
func (r *GormMaterialRequirementRepository) ListPendingByWorkOrderIDs(
	ctx context.Context,
	orgID kernel.UUID,
	workOrderIDs []kernel.UUID,
) ([]*workorder.MaterialRequirement, error) {
	if len(workOrderIDs) == 0 {
		return []*workorder.MaterialRequirement{}, nil
	}

	rawIDs := make([]uuid.UUID, 0, len(workOrderIDs))
	for _, id := range workOrderIDs {
		rawIDs = append(rawIDs, id.Bytes())
	}

	var dtos []MaterialRequirementDTO
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND work_order_id IN ? AND status = ?",
			orgID.Bytes(), rawIDs, workorder.RequirementPending.String()).
		Order("work_order_id, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	requirements := make([]*workorder.MaterialRequirement, 0, len(dtos))
	for _, dto := range dtos {
		req, err := requirementToDomain(dto)
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, req)
	}
	return requirements, nil
}
