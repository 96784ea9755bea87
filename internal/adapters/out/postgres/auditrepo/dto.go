// Package auditrepo provides data transfer objects and mapping functions for
// the append-only audit stream. Rows are immutable once written: there is no
// update path, and the payload is stored as jsonb.
package auditrepo

import (
	"encoding/json"
	"time"

	"manufacturing/internal/core/domain/model/audit"
	"manufacturing/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AuditEventDTO represents the database structure for one audit event.
type AuditEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID      uuid.UUID `gorm:"type:uuid;index:idx_audit_events_stream"`
	EntityKind string    `gorm:"index:idx_audit_events_stream"`
	EntityID   uuid.UUID `gorm:"type:uuid;index:idx_audit_events_stream"`
	Code       string
	ActorID    *uuid.UUID `gorm:"type:uuid"`
	Payload    []byte     `gorm:"type:jsonb"`
	OccurredAt time.Time  `gorm:"index"`
}

// TableName specifies the database table name for audit events.
func (AuditEventDTO) TableName() string {
	return "audit_events"
}

// fromDomain converts an audit event to its database representation.
func fromDomain(event *audit.Event) (AuditEventDTO, error) {
	payload, err := json.Marshal(event.EventPayload())
	if err != nil {
		return AuditEventDTO{}, err
	}

	var actorID *uuid.UUID
	if id := event.ActorID(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	return AuditEventDTO{
		ID:         event.ID().Bytes(),
		OrgID:      event.OrgID().Bytes(),
		EntityKind: event.EntityKind().String(),
		EntityID:   event.EntityID().Bytes(),
		Code:       string(event.EventCode()),
		ActorID:    actorID,
		Payload:    payload,
		OccurredAt: event.OccurredAt(),
	}, nil
}

// toDomain converts a database DTO back to an audit event using
// RestoreEvent.
func toDomain(dto AuditEventDTO) (*audit.Event, error) {
	id, err := kernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	orgID, err := kernelUUID(dto.OrgID)
	if err != nil {
		return nil, err
	}
	entityID, err := kernelUUID(dto.EntityID)
	if err != nil {
		return nil, err
	}

	var actorID *kernel.UUID
	if dto.ActorID != nil {
		parsed, err := kernelUUID(*dto.ActorID)
		if err != nil {
			return nil, err
		}
		actorID = &parsed
	}

	payload := audit.Payload{}
	if len(dto.Payload) > 0 {
		if err := json.Unmarshal(dto.Payload, &payload); err != nil {
			return nil, err
		}
	}

	return audit.RestoreEvent(
		id, orgID,
		kernel.EntityKind(dto.EntityKind),
		entityID,
		audit.Code(dto.Code),
		actorID,
		payload,
		dto.OccurredAt,
	)
}

func kernelUUID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}
