package purchaseorderrepo

import (
	"context"
	"errors"

	"manufacturing/internal/adapters/out/postgres/pgerr"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/purchaseorder"
	"manufacturing/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker allows the repository to notify the unit of work about
// modified aggregates for post-commit processing.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate interface{})
}

// GormPurchaseOrderRepository implements purchase order persistence using
// GORM.
type GormPurchaseOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormPurchaseOrderRepository creates a repository bound to the given
// connection, which may be a transaction.
func NewGormPurchaseOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db, tracker: tracker}
}

// Add persists a new purchase order and all of its lines. Callers run Add
// inside a unit of work, so header and lines land atomically.
func (r *GormPurchaseOrderRepository) Add(ctx context.Context, aggregate *purchaseorder.PurchaseOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, lines := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&header).Error; err != nil {
		return pgerr.TranslateUnique(err, "purchase order", aggregate.ID().String())
	}
	if err := r.db.WithContext(ctx).Create(&lines).Error; err != nil {
		return pgerr.TranslateUnique(err, "purchase order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists header changes to an existing purchase order. Lines are
// immutable once written and are not touched.
func (r *GormPurchaseOrderRepository) Update(ctx context.Context, aggregate *purchaseorder.PurchaseOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, _ := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PurchaseOrderDTO{}).
		Where("id = ? AND org_id = ?", header.ID, header.OrgID).
		Select("*").Omit("id", "created_at").
		Updates(&header)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("purchase order", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a purchase order with its lines by id within the
// organization. A tenant mismatch reads as not-found.
func (r *GormPurchaseOrderRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*purchaseorder.PurchaseOrder, error) {
	var header PurchaseOrderDTO
	err := r.db.WithContext(ctx).
		First(&header, "id = ? AND org_id = ?", id.Bytes(), orgID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("purchase order", id.String(), err)
		}
		return nil, err
	}

	var lines []PurchaseOrderItemDTO
	err = r.db.WithContext(ctx).
		Where("purchase_order_id = ?", header.ID).
		Order("id").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}

	return toDomain(header, lines)
}
