package designjobrepo

import (
	"context"
	"errors"

	"manufacturing/internal/adapters/out/postgres/pgerr"
	"manufacturing/internal/core/domain/model/designjob"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// aggregateTracker allows the repository to notify the unit of work about
// modified aggregates for post-commit processing.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate interface{})
}

// GormDesignJobRepository implements design job persistence using GORM.
type GormDesignJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormDesignJobRepository creates a repository bound to the given
// connection, which may be a transaction.
func NewGormDesignJobRepository(db *gorm.DB, tracker aggregateTracker) *GormDesignJobRepository {
	return &GormDesignJobRepository{db: db, tracker: tracker}
}

// Add persists a new design job. A second job for the same order item hits
// the (org_id, order_item_id) unique index and surfaces as
// errs.ObjectAlreadyExistsError.
func (r *GormDesignJobRepository) Add(ctx context.Context, aggregate *designjob.DesignJob) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.TranslateUnique(err, "design job", aggregate.OrderItemID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists changes to an existing design job. All columns are written
// so that a cleared assignee reaches the database.
func (r *GormDesignJobRepository) Update(ctx context.Context, aggregate *designjob.DesignJob) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DesignJobDTO{}).
		Where("id = ? AND org_id = ?", dto.ID, dto.OrgID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("design job", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a design job by id within the organization. A tenant
// mismatch reads as not-found.
func (r *GormDesignJobRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*designjob.DesignJob, error) {
	var dto DesignJobDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND org_id = ?", id.Bytes(), orgID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("design job", id.String(), err)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderItemID retrieves the design job for an order item, the
// natural-key lookup used by idempotent creation.
func (r *GormDesignJobRepository) GetByOrderItemID(ctx context.Context, orgID, orderItemID kernel.UUID) (*designjob.DesignJob, error) {
	var dto DesignJobDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_item_id = ? AND org_id = ?", orderItemID.Bytes(), orgID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("design job", orderItemID.String(), err)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListQueuedUnassigned returns queued jobs without an assignee, oldest first,
// forming the work list for auto-assignment.
func (r *GormDesignJobRepository) ListQueuedUnassigned(ctx context.Context, orgID kernel.UUID) ([]*designjob.DesignJob, error) {
	var dtos []DesignJobDTO
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND status = ? AND assignee_designer_id IS NULL",
			orgID.Bytes(), designjob.Queued.String()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*designjob.DesignJob, 0, len(dtos))
	for _, dto := range dtos {
		job, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// OrgIDsWithQueuedUnassigned returns the organizations that currently have
// queued unassigned jobs. Used by the background assignment job to sweep
// tenants one at a time.
func (r *GormDesignJobRepository) OrgIDsWithQueuedUnassigned(ctx context.Context) ([]kernel.UUID, error) {
	var rawIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&DesignJobDTO{}).
		Distinct("org_id").
		Where("status = ? AND assignee_designer_id IS NULL", designjob.Queued.String()).
		Order("org_id").
		Pluck("org_id", &rawIDs).Error
	if err != nil {
		return nil, err
	}

	orgIDs := make([]kernel.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		orgID, err := kernelUUID(raw)
		if err != nil {
			return nil, err
		}
		orgIDs = append(orgIDs, orgID)
	}
	return orgIDs, nil
}
