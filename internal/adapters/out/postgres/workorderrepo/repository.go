package workorderrepo

import (
	"context"
	"errors"

	"manufacturing/internal/adapters/out/postgres/pgerr"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/workorder"
	"manufacturing/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker allows the repository to notify the unit of work about
// modified aggregates for post-commit processing.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate interface{})
}

// GormWorkOrderRepository implements work order persistence using GORM.
type GormWorkOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormWorkOrderRepository creates a repository bound to the given
// connection, which may be a transaction.
func NewGormWorkOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{db: db, tracker: tracker}
}

// Add persists a new work order. A second work order for the same order item
// hits the (org_id, order_item_id) unique index and surfaces as
// errs.ObjectAlreadyExistsError.
func (r *GormWorkOrderRepository) Add(ctx context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.TranslateUnique(err, "work order", aggregate.OrderItemID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists changes to an existing work order. All columns are written
// so cleared optionals reach the database.
func (r *GormWorkOrderRepository) Update(ctx context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&WorkOrderDTO{}).
		Where("id = ? AND org_id = ?", dto.ID, dto.OrgID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("work order", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a work order by id within the organization. A tenant
// mismatch reads as not-found.
func (r *GormWorkOrderRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*workorder.WorkOrder, error) {
	var dto WorkOrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND org_id = ?", id.Bytes(), orgID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("work order", id.String(), err)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderItemID retrieves the work order for an order item, the
// natural-key lookup used by idempotent creation.
func (r *GormWorkOrderRepository) GetByOrderItemID(ctx context.Context, orgID, orderItemID kernel.UUID) (*workorder.WorkOrder, error) {
	var dto WorkOrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_item_id = ? AND org_id = ?", orderItemID.Bytes(), orgID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("work order", orderItemID.String(), err)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByOrderID returns every work order of a customer order in creation
// order, the input to the all-siblings-complete check.
func (r *GormWorkOrderRepository) ListByOrderID(ctx context.Context, orgID, orderID kernel.UUID) ([]*workorder.WorkOrder, error) {
	var dtos []WorkOrderDTO
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND order_id = ?", orgID.Bytes(), orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// ListOpen returns work orders in non-terminal statuses, oldest first.
func (r *GormWorkOrderRepository) ListOpen(ctx context.Context, orgID kernel.UUID) ([]*workorder.WorkOrder, error) {
	var dtos []WorkOrderDTO
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND status NOT IN ?", orgID.Bytes(), []string{
			workorder.Completed.String(),
			workorder.Shipped.String(),
			workorder.Cancelled.String(),
		}).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []WorkOrderDTO) ([]*workorder.WorkOrder, error) {
	workOrders := make([]*workorder.WorkOrder, 0, len(dtos))
	for _, dto := range dtos {
		wo, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		workOrders = append(workOrders, wo)
	}
	return workOrders, nil
}
