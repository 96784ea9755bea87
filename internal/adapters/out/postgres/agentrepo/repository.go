package agentrepo

import (
	"context"
	"errors"

	"manufacturing/internal/adapters/out/postgres/pgerr"
	"manufacturing/internal/core/domain/model/agent"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker allows the repository to notify the unit of work about
// modified aggregates for post-commit processing.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate interface{})
}

// GormAgentRepository implements agent persistence using GORM.
type GormAgentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormAgentRepository creates a repository bound to the given connection,
// which may be a transaction.
func NewGormAgentRepository(db *gorm.DB, tracker aggregateTracker) *GormAgentRepository {
	return &GormAgentRepository{db: db, tracker: tracker}
}

// Add persists a new agent.
func (r *GormAgentRepository) Add(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.TranslateUnique(err, "agent", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists changes to an existing agent, including the assignment
// counter.
func (r *GormAgentRepository) Update(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&AgentDTO{}).
		Where("id = ? AND org_id = ?", dto.ID, dto.OrgID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("agent", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an agent by id within the organization. A tenant mismatch
// reads as not-found.
func (r *GormAgentRepository) Get(ctx context.Context, orgID, id kernel.UUID) (*agent.Agent, error) {
	var dto AgentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND org_id = ?", id.Bytes(), orgID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("agent", id.String(), err)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListActiveByRole returns the active agents of a role ordered by name then
// id, the stable pool order assignment runs depend on.
func (r *GormAgentRepository) ListActiveByRole(ctx context.Context, orgID kernel.UUID, role agent.Role) ([]*agent.Agent, error) {
	var dtos []AgentDTO
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND role = ? AND is_active", orgID.Bytes(), role.String()).
		Order("name, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	agents := make([]*agent.Agent, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}
