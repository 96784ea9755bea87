package queries

import (
	"context"
	"encoding/json"
	"time"

	"manufacturing/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAuditTrailQueryHandler reads audit streams straight from the database.
type GetAuditTrailQueryHandler struct {
	db *gorm.DB
}

// NewGetAuditTrailQueryHandler creates a handler for audit trail queries.
func NewGetAuditTrailQueryHandler(db *gorm.DB) GetAuditTrailQueryHandler {
	return GetAuditTrailQueryHandler{db: db}
}

// Handle returns the entity's events ordered by occurrence. An entity with no
// events (or one outside the caller's organization) yields an empty stream.
func (h GetAuditTrailQueryHandler) Handle(
	ctx context.Context,
	query GetAuditTrailQuery,
) ([]GetAuditTrailQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events := make([]GetAuditTrailQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			actor_id,
			payload,
			occurred_at
		FROM audit_events
		WHERE org_id = ? AND entity_kind = ? AND entity_id = ?
		ORDER BY occurred_at, id
	`, query.OrgID().Bytes(), query.EntityKind().String(), query.EntityID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         uuid.UUID
			code       string
			actorID    *uuid.UUID
			rawPayload []byte
			occurredAt time.Time
		)
		if err = rows.Scan(&id, &code, &actorID, &rawPayload, &occurredAt); err != nil {
			return nil, err
		}

		eventID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		var actor *kernel.UUID
		if actorID != nil {
			parsed, actorErr := kernel.UUIDFromBytes(actorID[:])
			if actorErr != nil {
				return nil, actorErr
			}
			actor = &parsed
		}

		payload := make(map[string]any)
		if len(rawPayload) > 0 {
			if err = json.Unmarshal(rawPayload, &payload); err != nil {
				return nil, err
			}
		}

		events = append(events, GetAuditTrailQueryResponse{
			EventID:    eventID,
			Code:       code,
			ActorID:    actor,
			Payload:    payload,
			OccurredAt: occurredAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
