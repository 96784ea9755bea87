package queries

import (
	"context"
	"time"

	"manufacturing/internal/core/domain/model/agent"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAgentCapacityQueryHandler reads agent workload straight from the
// database and runs the capacity calculator over it, so the read model and
// the assignment scheduler share one definition of "available".
type GetAgentCapacityQueryHandler struct {
	db       *gorm.DB
	capacity services.CapacityCalculator
}

// NewGetAgentCapacityQueryHandler creates a handler for agent capacity
// queries.
func NewGetAgentCapacityQueryHandler(db *gorm.DB) GetAgentCapacityQueryHandler {
	return GetAgentCapacityQueryHandler{
		db:       db,
		capacity: services.NewCapacityCalculator(),
	}
}

// Handle returns the workload of every active agent of the queried role,
// ordered by name for stable output.
func (h GetAgentCapacityQueryHandler) Handle(
	ctx context.Context,
	query GetAgentCapacityQuery,
) ([]GetAgentCapacityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	responses := make([]GetAgentCapacityQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			capacity_limit,
			assigned_count,
			updated_at
		FROM agents
		WHERE org_id = ? AND role = ? AND is_active
		ORDER BY name, id
	`, query.OrgID().Bytes(), query.Role().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id            uuid.UUID
			name          string
			capacityLimit int
			assignedCount int
			updatedAt     time.Time
		)
		if err = rows.Scan(&id, &name, &capacityLimit, &assignedCount, &updatedAt); err != nil {
			return nil, err
		}

		agentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		// Specializations do not influence capacity, so the row is restored
		// without them.
		a, restoreErr := agent.RestoreAgent(agentID, query.OrgID(), query.Role(),
			name, true, nil, capacityLimit, assignedCount, updatedAt)
		if restoreErr != nil {
			return nil, restoreErr
		}

		responses = append(responses, GetAgentCapacityQueryResponse{
			AgentID:       agentID,
			Name:          name,
			CapacityLimit: a.EffectiveCapacityLimit(nil),
			AssignedCount: assignedCount,
			WorkloadScore: h.capacity.WorkloadScore(a),
			Available:     h.capacity.IsAvailable(a, 0),
			NextAvailable: h.capacity.NextAvailableDate(a, time.Now().UTC()),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
