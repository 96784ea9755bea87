package auditrepo

import (
	"context"

	"manufacturing/internal/adapters/out/postgres/pgerr"
	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// aggregateTracker allows the repository to notify the unit of work about
// written aggregates for post-commit processing.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate interface{})
}

// GormAuditEventRepository implements the append-only audit stream using
// GORM. Rows are never updated or deleted.
type GormAuditEventRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormAuditEventRepository creates a repository bound to the given
// connection, which may be a transaction.
func NewGormAuditEventRepository(db *gorm.DB, tracker aggregateTracker) *GormAuditEventRepository {
	return &GormAuditEventRepository{db: db, tracker: tracker}
}

// Append writes one event within the caller's transaction.
func (r *GormAuditEventRepository) Append(ctx context.Context, event *audit.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(event)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.TranslateUnique(err, "audit event", event.ID().String())
	}

	r.tracker.TrackAggregate(event.ID(), event)
	return nil
}

// ListByEntity returns an entity's stream ordered by occurrence, id breaking
// ties between events written in the same instant.
func (r *GormAuditEventRepository) ListByEntity(
	ctx context.Context,
	orgID kernel.UUID,
	kind kernel.EntityKind,
	entityID kernel.UUID,
) ([]*audit.Event, error) {
	var dtos []AuditEventDTO
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND entity_kind = ? AND entity_id = ?",
			orgID.Bytes(), kind.String(), entityID.Bytes()).
		Order("occurred_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*audit.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
