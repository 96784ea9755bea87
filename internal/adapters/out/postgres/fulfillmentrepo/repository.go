package fulfillmentrepo

import (
	"context"
	"errors"
	"sort"

	"manufacturing/internal/adapters/out/postgres/pgerr"
	"manufacturing/internal/core/domain/model/fulfillment"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// aggregateTracker allows the repositories to notify the unit of work about
// modified aggregates for post-commit processing.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate interface{})
}

// GormOrderItemRepository implements order item persistence using GORM.
type GormOrderItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormOrderItemRepository creates a repository bound to the given
// connection, which may be a transaction.
func NewGormOrderItemRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderItemRepository {
	return &GormOrderItemRepository{db: db, tracker: tracker}
}

// Add persists a new order item.
func (r *GormOrderItemRepository) Add(ctx context.Context, item *fulfillment.OrderItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := itemFromDomain(item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.TranslateUnique(err, "order item", item.ID().String())
	}

	r.tracker.TrackAggregate(item.ID(), item)
	return nil
}

// Update persists stage changes to an existing order item.
func (r *GormOrderItemRepository) Update(ctx context.Context, item *fulfillment.OrderItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := itemFromDomain(item)
	result := r.db.WithContext(ctx).
		Model(&OrderItemDTO{}).
		Where("id = ? AND org_id = ?", dto.ID, dto.OrgID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("order item", item.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(item.ID(), item)
	return nil
}

// Get retrieves an order item by id within the organization. A tenant
// mismatch reads as not-found.
func (r *GormOrderItemRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*fulfillment.OrderItem, error) {
	var dto OrderItemDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND org_id = ?", id.Bytes(), orgID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("order item", id.String(), err)
		}
		return nil, err
	}

	return itemToDomain(dto)
}

// GormMilestoneRepository implements milestone persistence using GORM.
type GormMilestoneRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormMilestoneRepository creates a repository bound to the given
// connection, which may be a transaction.
func NewGormMilestoneRepository(db *gorm.DB, tracker aggregateTracker) *GormMilestoneRepository {
	return &GormMilestoneRepository{db: db, tracker: tracker}
}

// AddAll persists a batch of milestones with on-conflict-do-nothing
// semantics on the (org_id, order_id, code) natural key. Re-seeding an
// already seeded order inserts nothing and returns no error, which keeps
// the surrounding transaction alive.
func (r *GormMilestoneRepository) AddAll(ctx context.Context, milestones []*fulfillment.Milestone) error {
	if len(milestones) == 0 {
		return nil
	}

	dtos := make([]MilestoneDTO, 0, len(milestones))
	for _, m := range milestones {
		if err := m.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, milestoneFromDomain(m))
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dtos).Error
	if err != nil {
		return err
	}

	for _, m := range milestones {
		r.tracker.TrackAggregate(m.ID(), m)
	}
	return nil
}

// Update persists status changes to an existing milestone.
func (r *GormMilestoneRepository) Update(ctx context.Context, milestone *fulfillment.Milestone) error {
	if err := milestone.Validate(); err != nil {
		return err
	}

	dto := milestoneFromDomain(milestone)
	result := r.db.WithContext(ctx).
		Model(&MilestoneDTO{}).
		Where("id = ? AND org_id = ?", dto.ID, dto.OrgID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("milestone", milestone.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(milestone.ID(), milestone)
	return nil
}

// ListByOrderID returns the milestones of an order in seeded sequence.
// Rows carry random ids, so sequence is recovered from the code vocabulary
// rather than from the table.
func (r *GormMilestoneRepository) ListByOrderID(ctx context.Context, orgID, orderID kernel.UUID) ([]*fulfillment.Milestone, error) {
	var dtos []MilestoneDTO
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND order_id = ?", orgID.Bytes(), orderID.Bytes()).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	milestones := make([]*fulfillment.Milestone, 0, len(dtos))
	for _, dto := range dtos {
		m, err := milestoneToDomain(dto)
		if err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}

	rank := make(map[fulfillment.Code]int, len(fulfillment.DefaultCodes()))
	for i, code := range fulfillment.DefaultCodes() {
		rank[code] = i
	}
	sort.SliceStable(milestones, func(i, j int) bool {
		ri, iKnown := rank[milestones[i].Code()]
		rj, jKnown := rank[milestones[j].Code()]
		if iKnown && jKnown {
			return ri < rj
		}
		return iKnown
	})

	return milestones, nil
}

// GetByCode retrieves one milestone by its (orderID, code) natural key.
func (r *GormMilestoneRepository) GetByCode(
	ctx context.Context,
	orgID, orderID kernel.UUID,
	code fulfillment.Code,
) (*fulfillment.Milestone, error) {
	var dto MilestoneDTO
	err := r.db.WithContext(ctx).
		First(&dto, "org_id = ? AND order_id = ? AND code = ?",
			orgID.Bytes(), orderID.Bytes(), code.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("milestone", code.String(), err)
		}
		return nil, err
	}

	return milestoneToDomain(dto)
}
